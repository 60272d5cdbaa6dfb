package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 5, 10} {
		delay := &DelayApplication{Years: years}
		registry.Register(Template{
			Name:        fmt.Sprintf("delay_%dyr", years),
			Description: delay.Description(),
			Transforms:  []ScenarioTransform{delay},
		})
	}

	registry.Register(Template{
		Name:        "appreciation_flat",
		Description: "Home values do not appreciate (0% per year)",
		Transforms: []ScenarioTransform{
			&SetAppreciation{RatePercent: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "appreciation_low",
		Description: "Appreciation 2 points below the assumption",
		Transforms: []ScenarioTransform{
			&AdjustAppreciation{DeltaPercent: decimal.NewFromInt(-2)},
		},
	})

	registry.Register(Template{
		Name:        "appreciation_high",
		Description: "Appreciation 2 points above the assumption",
		Transforms: []ScenarioTransform{
			&AdjustAppreciation{DeltaPercent: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "extra_payment_200",
		Description: "Pay an extra $200 per month on the forward mortgage",
		Transforms: []ScenarioTransform{
			&ChangeMonthlyPayment{Delta: decimal.NewFromInt(200)},
		},
	})

	registry.Register(Template{
		Name:        "extra_payment_500",
		Description: "Pay an extra $500 per month on the forward mortgage",
		Transforms: []ScenarioTransform{
			&ChangeMonthlyPayment{Delta: decimal.NewFromInt(500)},
		},
	})

	registry.Register(Template{
		Name:        "pay_off_mortgage",
		Description: "Retire the forward mortgage before applying",
		Transforms: []ScenarioTransform{
			&PayOffMortgage{},
		},
	})

	registry.Register(Template{
		Name:        "single_borrower",
		Description: "Apply with the primary borrower only",
		Transforms: []ScenarioTransform{
			&SingleBorrower{},
		},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "delay_5yr_extra_500",
		Description: "Pay an extra $500 per month, then apply in 5 years",
		Transforms: []ScenarioTransform{
			&ChangeMonthlyPayment{Delta: decimal.NewFromInt(500)},
			&DelayApplication{Years: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base domain.ReverseMortgageInput, template Template) (domain.ReverseMortgageInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Application Timing", "Appreciation", "Forward Mortgage", "Borrowers", "Combination Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		var category string
		switch {
		case strings.Contains(name, "_extra_"):
			category = "Combination Strategies"
		case strings.HasPrefix(name, "delay_"):
			category = "Application Timing"
		case strings.HasPrefix(name, "appreciation_"):
			category = "Appreciation"
		case strings.HasPrefix(name, "extra_payment_"), strings.HasPrefix(name, "pay_off"):
			category = "Forward Mortgage"
		case name == "single_borrower":
			category = "Borrowers"
		default:
			category = "Combination Strategies"
		}
		categories[category] = append(categories[category], template)
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  hecm compare input.yaml --with delay_5yr,appreciation_low\n")
	sb.WriteString("  hecm compare input.yaml --with extra_payment_500 --transform set_appreciation:rate=2\n")

	return sb.String()
}
