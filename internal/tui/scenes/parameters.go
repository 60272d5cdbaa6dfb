package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/transform"
	"github.com/rgehrsitz/hecmproj/internal/tui/components"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuimsg"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
)

// Slider keys
const (
	ParamHomeValue    = "home_value"
	ParamAppreciation = "appreciation_rate"
	ParamExpectedRate = "expected_rate"
	ParamPayment      = "monthly_payment"
	ParamDelayYears   = "delay_years"
)

// ParametersModel edits the loaded input with sliders
type ParametersModel struct {
	base          domain.ReverseMortgageInput
	loaded        bool
	defaultRate   decimal.Decimal
	sliders       []*components.ParameterSlider
	focusedSlider int
	editing       bool
	input         textinput.Model
	inputErr      string
	width         int
	height        int
	modified      bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	ti := textinput.New()
	ti.Placeholder = "exact value"
	ti.CharLimit = 12
	ti.Width = 16
	return &ParametersModel{input: ti}
}

// SetInput loads the input being edited. defaultRate is the lending table's
// expected rate, shown when the input leaves it unset.
func (m *ParametersModel) SetInput(in domain.ReverseMortgageInput, defaultRate decimal.Decimal) {
	m.base = in.Clone()
	m.defaultRate = defaultRate
	m.loaded = true
	m.buildSliders()
}

func (m *ParametersModel) buildSliders() {
	in := m.base
	m.sliders = nil
	m.focusedSlider = 0
	m.modified = false
	m.editing = false
	m.inputErr = ""

	m.sliders = append(m.sliders,
		components.NewParameterSlider(ParamHomeValue, "Current Home Value", in.CurrentHomeValue,
			decimal.NewFromInt(50000), decimal.NewFromInt(3000000), decimal.NewFromInt(10000)).
			WithUnit("$").WithWidth(40).
			WithDescription("Market value in the application year"),
		components.NewParameterSlider(ParamAppreciation, "Home Appreciation", in.HomeAppreciationRate,
			decimal.NewFromInt(-5), decimal.NewFromInt(10), decimal.NewFromFloat(0.25)).
			WithUnit("%").WithWidth(40).
			WithDescription("Annual compound growth of the home value"),
	)

	rate := in.ExpectedRate
	if rate.IsZero() {
		rate = m.defaultRate
	}
	m.sliders = append(m.sliders,
		components.NewParameterSlider(ParamExpectedRate, "Expected Rate", rate,
			decimal.NewFromInt(2), decimal.NewFromInt(12), decimal.NewFromFloat(0.25)).
			WithUnit("%").WithWidth(40).
			WithDescription("Selects the principal limit factor band"),
	)

	if in.CurrentMortgageBalance.IsPositive() {
		payment := in.MonthlyPayment
		if payment.IsZero() {
			if scheduled, err := calculation.ScheduledPayment(in.CurrentMortgageBalance, in.MortgageInterestRate, in.LoanTermYears); err == nil {
				payment = scheduled.Round(0)
			}
		}
		m.sliders = append(m.sliders,
			components.NewParameterSlider(ParamPayment, "Monthly Mortgage Payment", payment,
				decimal.Zero, decimal.NewFromInt(10000), decimal.NewFromInt(50)).
				WithUnit("$").WithWidth(40).
				WithDescription("Payment from the application year onward"),
		)
	}

	m.sliders = append(m.sliders,
		components.NewParameterSlider(ParamDelayYears, "Delay Application", decimal.Zero,
			decimal.Zero, decimal.NewFromInt(15), decimal.NewFromInt(1)).
			WithUnit("years").WithPlaces(0).WithWidth(40).
			WithDescription("Apply this many years later"),
	)

	m.sliders[0].SetFocused(true)
}

// Editing reports whether the exact-value prompt has the keyboard
func (m *ParametersModel) Editing() bool {
	return m.editing
}

// Modified reports whether any slider moved since the last reset
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// Sliders returns the sliders in display order
func (m *ParametersModel) Sliders() []*components.ParameterSlider {
	return m.sliders
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// BuildInput applies the slider values to the loaded input
func (m *ParametersModel) BuildInput() (domain.ReverseMortgageInput, error) {
	in := m.base.Clone()
	var transforms []transform.ScenarioTransform
	delay := 0

	for _, s := range m.sliders {
		switch s.Key {
		case ParamHomeValue:
			in.CurrentHomeValue = s.Value
		case ParamAppreciation:
			transforms = append(transforms, &transform.SetAppreciation{RatePercent: s.Value})
		case ParamExpectedRate:
			transforms = append(transforms, &transform.SetExpectedRate{RatePercent: s.Value})
		case ParamPayment:
			transforms = append(transforms, &transform.SetMonthlyPayment{Amount: s.Value})
		case ParamDelayYears:
			delay = int(s.Value.IntPart())
		}
	}
	// Delay last so the projected home value uses the edited rate.
	if delay > 0 {
		transforms = append(transforms, &transform.DelayApplication{Years: delay})
	}

	return transform.ApplyTransforms(in, transforms)
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}
	if m.editing {
		return m.handleEditKey(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
		m.sliders[m.focusedSlider].Decrement()
		m.modified = true
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		m.sliders[m.focusedSlider].Increment()
		m.modified = true
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("e"))):
		m.editing = true
		m.inputErr = ""
		m.input.SetValue(m.sliders[m.focusedSlider].Value.String())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("x"))):
		m.buildSliders()
		return m, func() tea.Msg { return tuimsg.ParametersResetMsg{} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.projectCmd()
	}
	return m, nil
}

func (m *ParametersModel) handleEditKey(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		v, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(m.input.Value(), ",", "")))
		if err != nil {
			m.inputErr = fmt.Sprintf("%q is not a number", m.input.Value())
			return m, nil
		}
		m.sliders[m.focusedSlider].SetValue(v)
		m.modified = true
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[m.focusedSlider].SetFocused(true)
}

func (m *ParametersModel) projectCmd() tea.Cmd {
	in, err := m.BuildInput()
	if err != nil {
		return func() tea.Msg { return tuimsg.ErrorMsg{Err: err} }
	}
	name := "edited"
	if !m.modified {
		name = "base"
	}
	return func() tea.Msg {
		return tuimsg.ProjectionRequestedMsg{Name: name, Input: in}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if !m.loaded {
		return "No input loaded."
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Edit Parameters")

	container := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 3).
		Width(70)
	rendered := make([]string, 0, len(m.sliders))
	for _, s := range m.sliders {
		rendered = append(rendered, s.Render())
	}
	body := container.Render(strings.Join(rendered, "\n\n"))

	parts := []string{title, "", body}
	if m.editing {
		prompt := tuistyles.ParameterLabelStyle.Render(m.sliders[m.focusedSlider].Label+": ") + m.input.View()
		parts = append(parts, "", prompt)
		if m.inputErr != "" {
			parts = append(parts, tuistyles.MetricNegativeStyle.Render(m.inputErr))
		}
	} else if m.modified {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Bold(true).
			Render("⚠ Modified - Enter to project, x to reset"))
	}

	help := "↑/↓ navigate • ←/→ adjust • e exact value • Enter project • x reset"
	if m.editing {
		help = "Enter accept • Esc cancel"
	}
	parts = append(parts, "", lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
