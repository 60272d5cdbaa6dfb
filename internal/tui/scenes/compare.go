package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/hecmproj/internal/compare"
	"github.com/rgehrsitz/hecmproj/internal/transform"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuimsg"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
)

// CompareModel selects what-if templates and shows them against the base input
type CompareModel struct {
	templates   []transform.Template
	selected    map[int]bool
	cursorIndex int
	result      *compare.ComparisonSet
	comparing   bool
	width       int
	height      int
}

// NewCompareModel lists the templates of registry in name order
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{selected: make(map[int]bool)}
	for _, name := range registry.List() {
		if t, ok := registry.Get(name); ok {
			m.templates = append(m.templates, t)
		}
	}
	return m
}

// SetResult stores a finished comparison
func (m *CompareModel) SetResult(set *compare.ComparisonSet) {
	m.result = set
	m.comparing = false
}

// Result returns the last comparison, if any
func (m *CompareModel) Result() *compare.ComparisonSet {
	return m.result
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedTemplates returns the chosen template names in list order
func (m *CompareModel) SelectedTemplates() []string {
	var names []string
	for i, t := range m.templates {
		if m.selected[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		m.selected[m.cursorIndex] = !m.selected[m.cursorIndex]
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		names := m.SelectedTemplates()
		if len(names) == 0 {
			return m, nil
		}
		m.comparing = true
		return m, func() tea.Msg {
			return tuimsg.ComparisonRequestedMsg{Templates: names}
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("n"))):
		m.selected = make(map[int]bool)
		m.result = nil
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	switch {
	case m.comparing:
		return tuistyles.BorderStyle.Render(tuistyles.TitleStyle.Render("Running comparison...") +
			"\n\n" + fmt.Sprintf("Projecting %d alternative%s", len(m.SelectedTemplates()), plural(len(m.SelectedTemplates()))))
	case m.result != nil:
		return m.renderComparison()
	default:
		return m.renderSelection()
	}
}

func (m *CompareModel) renderSelection() string {
	var b strings.Builder
	subtle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	highlight := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)

	b.WriteString(tuistyles.TitleStyle.Render("Select What-If Templates"))
	b.WriteString("\n\n")
	if len(m.templates) == 0 {
		b.WriteString(tuistyles.ErrorStyle.Render("No templates available"))
		return tuistyles.BorderStyle.Render(b.String())
	}
	b.WriteString(subtle.Render("↑/↓ navigate • Space/x select • Enter compare • n clear"))
	b.WriteString("\n\n")

	for i, t := range m.templates {
		if i == m.cursorIndex {
			b.WriteString(highlight.Render("❯ "))
		} else {
			b.WriteString("  ")
		}
		if m.selected[i] {
			b.WriteString(highlight.Render("[✓] "))
		} else {
			b.WriteString(subtle.Render("[ ] "))
		}
		name := padRight(t.Name, 24)
		if i == m.cursorIndex {
			name = highlight.Render(name)
		}
		b.WriteString(name)
		b.WriteString(subtle.Render(truncate(t.Description, 50)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if n := len(m.SelectedTemplates()); n == 0 {
		b.WriteString(subtle.Render("Select at least one template"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).
			Render(fmt.Sprintf("Selected: %d template%s • Press Enter to compare", n, plural(n))))
	}
	return tuistyles.BorderStyle.Render(b.String())
}

type compareMetric struct {
	label string
	value func(*compare.ComparisonResult) decimal.Decimal
}

var compareMetrics = []compareMetric{
	{"Net Proceeds Now", func(r *compare.ComparisonResult) decimal.Decimal { return r.ProceedsAtApplication }},
	{"Peak Net Proceeds", func(r *compare.ComparisonResult) decimal.Decimal { return r.MaxNetProceeds }},
	{"Equity at Horizon", func(r *compare.ComparisonResult) decimal.Decimal { return r.EquityAtHorizon }},
}

func (m *CompareModel) renderComparison() string {
	var b strings.Builder
	subtle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	header := tuistyles.TableHeaderStyle
	best := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)

	b.WriteString(tuistyles.TitleStyle.Render("Scenario Comparison"))
	b.WriteString("\n")
	b.WriteString(subtle.Render(fmt.Sprintf("Horizon: %d years", m.result.HorizonYears)))
	b.WriteString("\n\n")

	results := m.result.Results()
	const labelWidth, colWidth = 20, 18

	b.WriteString(header.Render(padRight("Metric", labelWidth)))
	for _, r := range results {
		b.WriteString(header.Render(padRight(truncate(r.ScenarioName, colWidth-1), colWidth)))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", labelWidth+colWidth*len(results)))
	b.WriteString("\n")

	for _, metric := range compareMetrics {
		top := decimal.Zero
		for i := range results {
			if v := metric.value(&results[i]); i == 0 || v.GreaterThan(top) {
				top = v
			}
		}
		b.WriteString(subtle.Render(padRight(metric.label, labelWidth)))
		for i := range results {
			v := metric.value(&results[i])
			cell := tuistyles.FormatCurrency(v)
			if len(results) > 1 && v.Equal(top) {
				cell = best.Render(cell + " ★")
			}
			b.WriteString(padRight(cell, colWidth))
		}
		b.WriteString("\n")
	}

	b.WriteString(subtle.Render(padRight("Mortgage Paid Off", labelWidth)))
	for _, r := range results {
		year := "-"
		if r.MortgagePayoffYear > 0 {
			year = itoa(r.MortgagePayoffYear)
		}
		b.WriteString(padRight(year, colWidth))
	}
	b.WriteString("\n")

	if len(m.result.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(tuistyles.TableHeaderStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, rec := range m.result.Recommendations {
			b.WriteString("• " + rec + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(subtle.Render("n new comparison • ESC back"))
	return tuistyles.BorderStyle.Render(b.String())
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// padRight pads to a display width, ignoring ANSI escapes
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
