package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/config"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuimsg"
)

func newTestModel(t *testing.T, horizon int) Model {
	t.Helper()
	limits, err := config.DefaultLendingLimits()
	require.NoError(t, err)
	engine, err := calculation.NewProjectionEngine(limits)
	require.NoError(t, err)
	return NewModel("example.yaml", engine, horizon)
}

func loadExample(t *testing.T, m Model) Model {
	t.Helper()
	cfg, err := config.CreateExampleConfiguration()
	require.NoError(t, err)

	next, cmd := m.Update(ConfigLoadedMsg{Config: cfg})
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(ProjectionCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	next, _ = next.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadProjectsBaseInput(t *testing.T) {
	m := newTestModel(t, 10)
	assert.True(t, m.loading)
	assert.Equal(t, 10, m.Horizon())

	m = loadExample(t, m)
	assert.False(t, m.loading)
	assert.Equal(t, SceneResults, m.currentScene)
	require.NotNil(t, m.resultsModel.Result())
	assert.Len(t, m.resultsModel.Result().Rows, 11)
	assert.Equal(t, "Example household", m.resultsModel.Result().Name)
	assert.Contains(t, m.View(), "Projection Results")
}

func TestModel_HorizonFallsBackToInputFile(t *testing.T) {
	m := newTestModel(t, -1)
	assert.Equal(t, config.DefaultHorizonYears, m.Horizon(), "before the file loads")
	m = loadExample(t, m)
	assert.Equal(t, 30, m.Horizon())
}

func TestModel_ZeroHorizonOverride(t *testing.T) {
	m := loadExample(t, newTestModel(t, 0))
	assert.Equal(t, 0, m.Horizon())
	require.NotNil(t, m.resultsModel.Result())
	assert.Len(t, m.resultsModel.Result().Rows, 1, "application year only")
}

func TestModel_Navigation(t *testing.T) {
	m := loadExample(t, newTestModel(t, 5))

	next, cmd := m.Update(runes("p"))
	require.NotNil(t, cmd)
	next, _ = next.Update(cmd())
	m = next.(Model)
	assert.Equal(t, SceneParameters, m.currentScene)
	assert.Contains(t, m.View(), "Edit Parameters")

	next, cmd = m.Update(runes("c"))
	next, _ = next.Update(cmd())
	m = next.(Model)
	assert.Equal(t, SceneCompare, m.currentScene)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next, _ = next.Update(cmd())
	m = next.(Model)
	assert.Equal(t, SceneParameters, m.currentScene)

	next, cmd = m.Update(runes("?"))
	next, _ = next.Update(cmd())
	m = next.(Model)
	assert.Contains(t, m.View(), "delay_5yr")
}

func TestModel_ProjectionRequest(t *testing.T) {
	m := loadExample(t, newTestModel(t, 5))
	in := m.baseInput()
	in.HomeAppreciationRate = in.HomeAppreciationRate.Add(in.HomeAppreciationRate)

	next, cmd := m.Update(ProjectionRequestedMsg{Name: "edited", Input: in})
	assert.True(t, next.(Model).loading)
	next, _ = next.Update(cmd())
	m = next.(Model)
	assert.Equal(t, "edited", m.resultsModel.Result().Name)
}

func TestModel_Comparison(t *testing.T) {
	m := loadExample(t, newTestModel(t, 5))
	next, cmd := m.Update(tuimsg.ComparisonRequestedMsg{Templates: []string{"delay_1yr"}})
	require.NotNil(t, cmd)
	msg := cmd().(ComparisonCompleteMsg)
	require.NoError(t, msg.Err)
	require.Len(t, msg.Set.AlternativeResults, 1)

	next, _ = next.Update(msg)
	m = next.(Model)
	assert.Same(t, msg.Set, m.compareModel.Result())
}

func TestModel_ErrorDismissedByAnyKey(t *testing.T) {
	m := loadExample(t, newTestModel(t, 5))
	next, _ := m.Update(ErrorMsg{Err: errors.New("boom")})
	m = next.(Model)
	assert.Contains(t, m.View(), "boom")

	next, cmd := m.Update(runes("p"))
	assert.Nil(t, cmd)
	assert.Nil(t, next.(Model).err)
}

func TestModel_LoadError(t *testing.T) {
	msg := loadConfigCmd("does-not-exist.yaml")()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)
	assert.Contains(t, errMsg.Err.Error(), "does-not-exist.yaml")
}
