// Package tuistyles holds the shared lipgloss palette and styles so that
// scenes and components can use them without importing the tui package.
package tuistyles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E86AB")
	ColorSecondary = lipgloss.Color("#A23B72")
	ColorAccent    = lipgloss.Color("#F18F01")
	ColorSuccess   = lipgloss.Color("#3BB273")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorInfo      = lipgloss.Color("#7EC8E3")

	ColorBackground = lipgloss.Color("#1B1B1E")
	ColorForeground = lipgloss.Color("#F4F4F9")
	ColorMuted      = lipgloss.Color("#8D8D92")
	ColorBorder     = lipgloss.Color("#3A3A40")

	ColorChartLine1 = lipgloss.Color("#2E86AB")
	ColorChartLine2 = lipgloss.Color("#F18F01")
	ColorChartLine3 = lipgloss.Color("#3BB273")
	ColorChartLine4 = lipgloss.Color("#A23B72")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorInfo)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	TableMutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
)

// MetricTrendStyle picks the color for a change
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// StatusStyle colors an eligibility status
func StatusStyle(s domain.EligibilityStatus) lipgloss.Style {
	switch {
	case s == domain.StatusEligible:
		return MetricPositiveStyle
	case s.IsProgramIneligible():
		return MetricNegativeStyle
	default:
		return lipgloss.NewStyle().Foreground(ColorAccent)
	}
}

// FormatCurrency renders whole dollars with thousands separators
func FormatCurrency(d decimal.Decimal) string {
	s := d.Abs().Round(0).String()
	var sb strings.Builder
	if d.Round(0).IsNegative() {
		sb.WriteByte('-')
	}
	sb.WriteByte('$')
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FormatDelta renders a signed currency change
func FormatDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCurrency(d)
	}
	return FormatCurrency(d)
}
