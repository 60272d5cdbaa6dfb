package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider adjusts one projection input within a fixed range
type ParameterSlider struct {
	Key         string // input parameter the slider drives, e.g. "appreciation_rate"
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Unit        string // "%", "$" or "years"
	Places      int32
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider; the value is clamped to the range
func NewParameterSlider(key, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Key:    key,
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Places: 2,
		Width:  30,
	}
	p.SetValue(value)
	return p
}

// WithUnit sets the unit shown with the value
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPlaces sets the number of decimal places displayed
func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

// WithWidth sets the bar width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up, stopping at Max
func (p *ParameterSlider) Increment() {
	if next := p.Value.Add(p.Step); next.LessThanOrEqual(p.Max) {
		p.Value = next
	}
}

// Decrement moves one step down, stopping at Min
func (p *ParameterSlider) Decrement() {
	if next := p.Value.Sub(p.Step); next.GreaterThanOrEqual(p.Min) {
		p.Value = next
	}
}

// SetValue sets the value clamped to [Min, Max]
func (p *ParameterSlider) SetValue(v decimal.Decimal) {
	switch {
	case v.LessThan(p.Min):
		p.Value = p.Min
	case v.GreaterThan(p.Max):
		p.Value = p.Max
	default:
		p.Value = v
	}
}

// Fraction returns the position of the value within the range, 0 to 1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	f, _ := p.Value.Sub(p.Min).Div(span).Float64()
	return f
}

// FormatValue renders a value with the slider's unit
func (p *ParameterSlider) FormatValue(v decimal.Decimal) string {
	switch p.Unit {
	case "$":
		return tuistyles.FormatCurrency(v)
	case "%":
		return v.StringFixed(p.Places) + "%"
	case "":
		return v.StringFixed(p.Places)
	default:
		return v.StringFixed(p.Places) + " " + p.Unit
	}
}

// Render returns the full multi-line slider
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(p.FormatValue(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.bar(p.Width))
	b.WriteString("\n")
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	b.WriteString(muted.Render(p.FormatValue(p.Min) + "  ─  " + p.FormatValue(p.Max)))
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(muted.Italic(true).Render(p.Description))
	}
	return b.String()
}

// RenderCompact returns a single line with a short bar
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return labelStyle.Render(p.Label+":") + " " + valueStyle.Render(p.FormatValue(p.Value)) + " " + p.bar(10)
}

func (p *ParameterSlider) bar(width int) string {
	if width < 1 {
		width = 1
	}
	thumb := int(p.Fraction()*float64(width-1) + 0.5)

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < width; i++ {
		switch {
		case i == thumb:
			b.WriteString(thumbStyle.Render("●"))
		case i < thumb:
			b.WriteString(thumbStyle.Render("━"))
		default:
			b.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	b.WriteString("]")
	return b.String()
}
