// Package tui is the interactive terminal front end for projections.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/compare"
	"github.com/rgehrsitz/hecmproj/internal/config"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/transform"
	"github.com/rgehrsitz/hecmproj/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	horizon    int

	engine        *calculation.ProjectionEngine
	compareEngine *compare.CompareEngine

	// Scene models
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	resultsModel    *scenes.ResultsModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates the application model. horizon overrides the input file's
// horizon unless it is negative.
func NewModel(configPath string, engine *calculation.ProjectionEngine, horizon int) Model {
	ce := compare.NewCompareEngine(engine)
	return Model{
		currentScene:    SceneResults,
		previousScene:   SceneResults,
		configPath:      configPath,
		horizon:         horizon,
		engine:          engine,
		compareEngine:   ce,
		parametersModel: scenes.NewParametersModel(),
		compareModel:    scenes.NewCompareModel(ce.TemplateRegistry),
		resultsModel:    scenes.NewResultsModel(),
		width:           80,
		height:          24,
		loading:         true,
		loadingMessage:  "Loading " + configPath + "...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// Horizon returns the projection horizon in effect
func (m Model) Horizon() int {
	if m.horizon >= 0 {
		return m.horizon
	}
	if m.config != nil && m.config.Projection.HorizonYears != nil {
		return m.config.Projection.Horizon()
	}
	return config.DefaultHorizonYears
}

// loadConfigCmd returns a command that loads the input file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// projectCmd runs one projection off the UI goroutine
func projectCmd(engine *calculation.ProjectionEngine, name string, in domain.ReverseMortgageInput, horizon int) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.ProjectNamed(context.Background(), name, in, horizon)
		return ProjectionCompleteMsg{Name: name, Result: result, Err: err}
	}
}

// compareCmd runs the selected templates against the base input
func compareCmd(ce *compare.CompareEngine, base domain.ReverseMortgageInput, opts compare.CompareOptions) tea.Cmd {
	return func() tea.Msg {
		set, err := ce.Compare(context.Background(), base, opts)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// baseInput returns the input as loaded from the file
func (m Model) baseInput() domain.ReverseMortgageInput {
	return m.config.Input()
}

// templateRegistry exposes the compare engine's templates
func (m Model) templateRegistry() *transform.TemplateRegistry {
	return m.compareEngine.TemplateRegistry
}
