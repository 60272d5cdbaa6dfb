package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one summary figure with an optional change against a reference
type MetricCard struct {
	Label   string
	Value   string
	Delta   *Delta
	Caption string
	Width   int
}

// Delta is the change of a metric against a reference scenario
type Delta struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a card with a preformatted value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// NewCurrencyCard creates a card for a dollar amount
func NewCurrencyCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// NewYearCard creates a card for a calendar year; zero renders as a dash
func NewYearCard(label string, year int) *MetricCard {
	if year == 0 {
		return NewMetricCard(label, "-")
	}
	return NewMetricCard(label, fmt.Sprintf("%d", year))
}

// WithDelta attaches a currency change. A zero change is not shown.
func (m *MetricCard) WithDelta(change decimal.Decimal) *MetricCard {
	if change.IsZero() {
		return m
	}
	m.Delta = &Delta{
		IsPositive: change.IsPositive(),
		Change:     tuistyles.FormatDelta(change),
	}
	return m
}

// WithCaption adds a muted line under the value
func (m *MetricCard) WithCaption(caption string) *MetricCard {
	m.Caption = caption
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) body() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)
	if m.Delta != nil {
		style := tuistyles.MetricTrendStyle(m.Delta.IsPositive)
		content += "\n" + style.Render(tuistyles.TrendIndicator(m.Delta.IsPositive)+" "+m.Delta.Change)
	}
	if m.Caption != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Caption)
	}
	return content
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(m.body())
}

// RenderCompact returns a single line without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Delta != nil {
		style := tuistyles.MetricTrendStyle(m.Delta.IsPositive)
		line += " " + style.Render(tuistyles.TrendIndicator(m.Delta.IsPositive)+" "+m.Delta.Change)
	}
	return line
}

// MetricGrid lays cards out in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
