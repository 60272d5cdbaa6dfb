package compare

import (
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Result       *domain.ProjectionResult `json:"-"`

	// Key Metrics
	ApplicationYear       int                      `json:"applicationYear"`
	ApplicationStatus     domain.EligibilityStatus `json:"applicationStatus"`
	ProceedsAtApplication decimal.Decimal          `json:"proceedsAtApplication"`
	MaxNetProceeds        decimal.Decimal          `json:"maxNetProceeds"`
	MaxNetProceedsYear    int                      `json:"maxNetProceedsYear"`
	FirstEligibleYear     int                      `json:"firstEligibleYear"`
	MortgagePayoffYear    int                      `json:"mortgagePayoffYear"`
	EquityAtHorizon       decimal.Decimal          `json:"equityAtHorizon"`

	// Comparison to Base
	ProceedsDiffFromBase decimal.Decimal `json:"proceedsDiffFromBase"`
	ProceedsPctFromBase  decimal.Decimal `json:"proceedsPctFromBase"`
	MaxProceedsDiff      decimal.Decimal `json:"maxProceedsDiff"`
	EquityDiffFromBase   decimal.Decimal `json:"equityDiffFromBase"`
	PayoffYearDiff       int             `json:"payoffYearDiff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	HorizonYears       int                `json:"horizonYears"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// Results returns the base followed by the alternatives
func (cs *ComparisonSet) Results() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.ProjectionResult) ComparisonResult {
	s := result.Summary
	return ComparisonResult{
		ScenarioName:          result.Name,
		Result:                result,
		ApplicationYear:       result.Input.ApplicationYear,
		ApplicationStatus:     s.ApplicationStatus,
		ProceedsAtApplication: s.ProceedsAtApplication,
		MaxNetProceeds:        s.MaxNetProceeds,
		MaxNetProceedsYear:    s.MaxNetProceedsYear,
		FirstEligibleYear:     s.FirstEligibleYear,
		MortgagePayoffYear:    s.MortgagePayoffYear,
		EquityAtHorizon:       s.EquityAtHorizon,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ProceedsDiffFromBase = scenario.ProceedsAtApplication.Sub(base.ProceedsAtApplication)

	if !base.ProceedsAtApplication.IsZero() {
		scenario.ProceedsPctFromBase = scenario.ProceedsDiffFromBase.
			Div(base.ProceedsAtApplication).
			Mul(decimal.NewFromInt(100))
	}

	scenario.MaxProceedsDiff = scenario.MaxNetProceeds.Sub(base.MaxNetProceeds)
	scenario.EquityDiffFromBase = scenario.EquityAtHorizon.Sub(base.EquityAtHorizon)

	// only meaningful when both pay off within the horizon
	if scenario.MortgagePayoffYear > 0 && base.MortgagePayoffYear > 0 {
		scenario.PayoffYearDiff = scenario.MortgagePayoffYear - base.MortgagePayoffYear
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by proceeds at application
	bestNow := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ProceedsAtApplication.GreaterThan(bestNow.ProceedsAtApplication) {
			bestNow = alt
		}
	}

	if bestNow != base {
		diff := bestNow.ProceedsAtApplication.Sub(base.ProceedsAtApplication)
		recommendations = append(recommendations,
			fmt.Sprintf("Most Proceeds: %s nets $%s more at application (%d) than the base scenario",
				bestNow.ScenarioName, diff.StringFixed(0), bestNow.ApplicationYear))
	}

	// Find best peak proceeds within the horizon
	bestPeak := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MaxNetProceeds.GreaterThan(bestPeak.MaxNetProceeds) {
			bestPeak = alt
		}
	}

	if bestPeak != base && bestPeak != bestNow {
		diff := bestPeak.MaxNetProceeds.Sub(base.MaxNetProceeds)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Peak: %s reaches $%s in %d, $%s above the base peak",
				bestPeak.ScenarioName, bestPeak.MaxNetProceeds.StringFixed(0), bestPeak.MaxNetProceedsYear, diff.StringFixed(0)))
	}

	// Find most equity left at the horizon
	bestEquity := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EquityAtHorizon.GreaterThan(bestEquity.EquityAtHorizon) {
			bestEquity = alt
		}
	}

	if bestEquity != base {
		diff := bestEquity.EquityAtHorizon.Sub(base.EquityAtHorizon)
		recommendations = append(recommendations,
			fmt.Sprintf("Most Equity: %s leaves $%s more home equity at the horizon",
				bestEquity.ScenarioName, diff.StringFixed(0)))
	}

	// Scenarios that open eligibility the base never reaches
	if base.FirstEligibleYear == 0 {
		for _, alt := range compSet.AlternativeResults {
			if alt.FirstEligibleYear > 0 {
				recommendations = append(recommendations,
					fmt.Sprintf("Eligibility: %s becomes eligible in %d; the base scenario never does",
						alt.ScenarioName, alt.FirstEligibleYear))
			}
		}
	}

	return recommendations
}
