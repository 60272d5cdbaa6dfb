package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/tui/components"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
)

// ResultsModel shows a projection as metric cards plus a table or chart
type ResultsModel struct {
	result    *domain.ProjectionResult
	baseline  *domain.ProjectionResult
	table     *components.ProjectionTable
	showChart bool
	width     int
	height    int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult shows a projection. The first result set becomes the baseline
// that later results are measured against.
func (m *ResultsModel) SetResult(result *domain.ProjectionResult) {
	m.result = result
	if m.baseline == nil {
		m.baseline = result
	}
	m.table = nil
	if result != nil {
		m.table = components.NewProjectionTable(result.Rows, m.visibleRows())
		m.table.HighlightYear = result.Summary.MaxNetProceedsYear
	}
}

// SetBaseline replaces the reference projection
func (m *ResultsModel) SetBaseline(result *domain.ProjectionResult) {
	m.baseline = result
}

// Result returns the projection on screen
func (m *ResultsModel) Result() *domain.ProjectionResult {
	return m.result
}

// ShowingChart reports whether the chart view is active
func (m *ResultsModel) ShowingChart() bool {
	return m.showChart
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.table != nil {
		m.table.VisibleRows = m.visibleRows()
	}
}

func (m *ResultsModel) visibleRows() int {
	if m.height <= 0 {
		return 12
	}
	if rows := m.height - 16; rows > 3 {
		return rows
	}
	return 3
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.table == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.table.ScrollUp()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.table.ScrollDown()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("v"))):
		m.showChart = !m.showChart
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return "No projection yet.\n\nAdjust inputs on the Parameters screen (p) and press Enter."
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Projection Results")
	subtitle := tuistyles.SubtitleStyle.Render(m.result.Name + " • " +
		tuistyles.StatusStyle(m.result.Summary.ApplicationStatus).Render(m.result.Summary.ApplicationStatus.Description()))

	var detail string
	if m.showChart {
		width := m.width - 14
		if width < 20 {
			width = 60
		}
		detail = components.ProjectionChart(m.result, width, 10).Render()
	} else {
		detail = m.table.Render()
	}

	help := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("↑/↓ scroll • v table/chart")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", m.metrics(), "", detail, "", help)
}

func (m *ResultsModel) metrics() string {
	s := m.result.Summary
	cards := []*components.MetricCard{
		components.NewCurrencyCard("Net Proceeds Now", s.ProceedsAtApplication),
		components.NewCurrencyCard("Peak Net Proceeds", s.MaxNetProceeds),
		components.NewCurrencyCard("Equity at Horizon", s.EquityAtHorizon),
		components.NewYearCard("Mortgage Paid Off", s.MortgagePayoffYear),
	}
	if s.MaxNetProceedsYear > 0 {
		cards[1].WithCaption("in " + itoa(s.MaxNetProceedsYear))
	}
	if s.FirstEligibleYear > 0 {
		cards[0].WithCaption("eligible from " + itoa(s.FirstEligibleYear))
	}

	if b := m.baseline; b != nil && b != m.result {
		cards[0].WithDelta(s.ProceedsAtApplication.Sub(b.Summary.ProceedsAtApplication))
		cards[1].WithDelta(s.MaxNetProceeds.Sub(b.Summary.MaxNetProceeds))
		cards[2].WithDelta(s.EquityAtHorizon.Sub(b.Summary.EquityAtHorizon))
	}
	return components.MetricGrid(cards, 4)
}
