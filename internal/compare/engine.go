package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(engine *calculation.ProjectionEngine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the base scenario
	HorizonYears     int      // Projection horizon for every scenario
	Templates        []string // List of template names to apply
	ConfigPath       string   // Source file, for display
}

// Alternative is an explicitly constructed scenario to compare against the base
type Alternative struct {
	Name        string
	Description string
	Transforms  []transform.ScenarioTransform
}

// Compare projects the base input and one alternative per template
func (ce *CompareEngine) Compare(ctx context.Context, base domain.ReverseMortgageInput, options CompareOptions) (*ComparisonSet, error) {
	alternatives := make([]Alternative, 0, len(options.Templates))
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		alternatives = append(alternatives, Alternative{
			Name:        template.Name,
			Description: template.Description,
			Transforms:  template.Transforms,
		})
	}
	return ce.CompareAlternatives(ctx, base, options, alternatives)
}

// CompareAlternatives projects the base input and each alternative concurrently.
// Any failed projection fails the comparison.
func (ce *CompareEngine) CompareAlternatives(
	ctx context.Context,
	base domain.ReverseMortgageInput,
	options CompareOptions,
	alternatives []Alternative,
) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	requests := make([]calculation.ProjectionRequest, 0, len(alternatives)+1)
	requests = append(requests, calculation.ProjectionRequest{Name: baseName, Input: base, HorizonYears: options.HorizonYears})

	for _, alt := range alternatives {
		modified, err := transform.ApplyTransforms(base, alt.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.Name, err)
		}
		requests = append(requests, calculation.ProjectionRequest{
			Name:         baseName + "_" + alt.Name,
			Input:        modified,
			HorizonYears: options.HorizonYears,
		})
	}

	results := ce.Engine.ProjectBatch(ctx, requests)
	if err := results[0].Err; err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(results[0].Result)
	baseResult.Description = "Base scenario"

	altResults := make([]ComparisonResult, 0, len(alternatives))
	for i, alt := range alternatives {
		r := results[i+1]
		if r.Err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, r.Err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(r.Result)
		altResult.Description = alt.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		altResults = append(altResults, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		HorizonYears:       options.HorizonYears,
		BaseResult:         &baseResult,
		AlternativeResults: altResults,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
