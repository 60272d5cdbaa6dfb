package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/hecmproj/internal/compare"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.parametersModel.SetInput(m.baseInput(), m.engine.Limits.DefaultExpectedRate)
		m.loadingMessage = "Projecting " + msg.Config.Name + "..."
		return m, projectCmd(m.engine, m.scenarioName(), m.baseInput(), m.Horizon())

	case ProjectionRequestedMsg:
		m.loading = true
		m.loadingMessage = "Projecting " + msg.Name + "..."
		return m, projectCmd(m.engine, msg.Name, msg.Input, m.Horizon())

	case ProjectionCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResult(msg.Result)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil

	case ComparisonRequestedMsg:
		if m.config == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing scenarios..."
		return m, compareCmd(m.compareEngine, m.baseInput(), compare.CompareOptions{
			BaseScenarioName: m.scenarioName(),
			HorizonYears:     m.Horizon(),
			Templates:        msg.Templates,
			ConfigPath:       m.configPath,
		})

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.compareModel.SetResult(nil)
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResult(msg.Set)
		return m, nil

	case tuimsg.ParametersResetMsg:
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// scenarioName names the loaded input for display
func (m Model) scenarioName() string {
	if m.config != nil && m.config.Name != "" {
		return m.config.Name
	}
	return "base"
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The exact-value prompt owns the keyboard while open
	if m.currentScene == SceneParameters && m.parametersModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene != m.previousScene {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneResults)
	case "p":
		if m.currentScene != SceneParameters {
			return m, navigate(SceneParameters)
		}
	case "c":
		if m.currentScene != SceneCompare {
			return m, navigate(SceneCompare)
		}
	case "r":
		if m.currentScene != SceneResults {
			return m, navigate(SceneResults)
		}
	}

	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
