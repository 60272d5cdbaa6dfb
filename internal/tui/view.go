package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/hecmproj/internal/transform"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("hecm - Reverse Mortgage Projection")
	crumb := m.currentScene.String()
	if m.config != nil {
		crumb = fmt.Sprintf("%s / %s / %d years", crumb, m.scenarioName(), m.Horizon())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("r", "results"),
		formatShortcut("p", "parameters"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	text := strings.Join(shortcuts, " • ")
	if m.configPath != "" {
		name := SubtitleStyle.Render(m.configPath)
		if gap := m.width - lipgloss.Width(text) - lipgloss.Width(name) - 2; gap > 0 {
			text += strings.Repeat(" ", gap) + name
		}
	}
	return StatusBarStyle.Width(m.width).Render(text)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(`hecm - Reverse Mortgage Projection

KEYBOARD SHORTCUTS:
  r        Results (metrics, table, chart)
  p        Parameters (edit inputs and re-project)
  c        Compare (what-if templates against the loaded input)
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

RESULTS:
  ↑/↓      Scroll the yearly table
  v        Toggle table and chart

PARAMETERS:
  ←/→      Adjust the focused value
  e        Type an exact value
  Enter    Project the edited input
  x        Reset to the loaded input

`)
	b.WriteString(transform.GetTemplateHelp(m.templateRegistry()))
	return BorderStyle.Render(b.String())
}
