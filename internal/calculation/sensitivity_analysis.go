package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// maxSweepPoints caps the number of values generated for one parameter
const maxSweepPoints = 200

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	engine *ProjectionEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *ProjectionEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeParameter sweeps one input parameter and projects every value
func (sa *SensitivityAnalyzer) AnalyzeParameter(
	ctx context.Context,
	scenarioName string,
	in domain.ReverseMortgageInput,
	horizonYears int,
	parameter domain.SensitivityParameter,
) (*domain.SensitivityAnalysis, error) {
	if parameter.Step.LessThanOrEqual(decimal.Zero) {
		return nil, newRangeError("sensitivity", "step", parameter.Step, "must be positive")
	}
	if parameter.MaxValue.LessThan(parameter.MinValue) {
		return nil, newRangeError("sensitivity", "maxValue", parameter.MaxValue, "is below minValue")
	}
	base, err := parameterValue(in, parameter.Name)
	if err != nil {
		return nil, err
	}
	parameter.BaseValue = base

	// zero stands for the scheduled payment or the table default rate, so a
	// point labeled 0 would report a different input
	if zeroMeansDefault(parameter.Name) && !parameter.MinValue.IsPositive() {
		return nil, newRangeError("sensitivity", "minValue", parameter.MinValue,
			fmt.Sprintf("%s sweeps must start above zero", parameter.Name))
	}

	values := sa.generateParameterValues(parameter)
	requests := make([]ProjectionRequest, 0, len(values))
	for _, value := range values {
		modified, err := modifyInputParameter(in, parameter.Name, value)
		if err != nil {
			return nil, err
		}
		requests = append(requests, ProjectionRequest{
			Name:         fmt.Sprintf("%s_%s_%s", scenarioName, parameter.Name, value.String()),
			Input:        modified,
			HorizonYears: horizonYears,
		})
	}

	points := make([]domain.SensitivityPoint, 0, len(values))
	for i, br := range sa.engine.ProjectBatch(ctx, requests) {
		if br.Err != nil {
			return nil, fmt.Errorf("failed to run scenario for %s=%s: %w", parameter.Name, values[i], br.Err)
		}
		s := br.Result.Summary
		points = append(points, domain.SensitivityPoint{
			Value:                 values[i],
			ProceedsAtApplication: s.ProceedsAtApplication,
			MaxNetProceeds:        s.MaxNetProceeds,
			MaxNetProceedsYear:    s.MaxNetProceedsYear,
			EquityAtHorizon:       s.EquityAtHorizon,
			MortgagePayoffYear:    s.MortgagePayoffYear,
			ApplicationStatus:     s.ApplicationStatus,
		})
	}

	return &domain.SensitivityAnalysis{
		ScenarioName: scenarioName,
		Parameter:    parameter,
		HorizonYears: horizonYears,
		Points:       points,
		Summary:      calculateSensitivitySummary(points, parameter),
	}, nil
}

// generateParameterValues generates values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	values := make([]decimal.Decimal, 0)
	for v := param.MinValue; v.LessThanOrEqual(param.MaxValue) && len(values) < maxSweepPoints; v = v.Add(param.Step) {
		values = append(values, v)
	}
	return values
}

func parameterValue(in domain.ReverseMortgageInput, name string) (decimal.Decimal, error) {
	switch name {
	case domain.SensitivityAppreciationRate.Name:
		return in.HomeAppreciationRate, nil
	case domain.SensitivityMortgageRate.Name:
		return in.MortgageInterestRate, nil
	case domain.SensitivityMonthlyPayment.Name:
		return in.MonthlyPayment, nil
	case domain.SensitivityHomeValue.Name:
		return in.CurrentHomeValue, nil
	case domain.SensitivityExpectedRate.Name:
		return in.ExpectedRate, nil
	}
	return decimal.Zero, fmt.Errorf("unknown sensitivity parameter %q", name)
}

func zeroMeansDefault(name string) bool {
	return name == domain.SensitivityMonthlyPayment.Name || name == domain.SensitivityExpectedRate.Name
}

// modifyInputParameter returns a copy of the input with one parameter replaced
func modifyInputParameter(in domain.ReverseMortgageInput, name string, value decimal.Decimal) (domain.ReverseMortgageInput, error) {
	out := in.Clone()
	switch name {
	case domain.SensitivityAppreciationRate.Name:
		out.HomeAppreciationRate = value
	case domain.SensitivityMortgageRate.Name:
		out.MortgageInterestRate = value
	case domain.SensitivityMonthlyPayment.Name:
		out.MonthlyPayment = value
	case domain.SensitivityHomeValue.Name:
		out.CurrentHomeValue = value
	case domain.SensitivityExpectedRate.Name:
		out.ExpectedRate = value
	default:
		return out, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return out, nil
}

func calculateSensitivitySummary(points []domain.SensitivityPoint, parameter domain.SensitivityParameter) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{}
	if len(points) == 0 {
		return summary
	}

	minProceeds, maxProceeds := points[0].ProceedsAtApplication, points[0].ProceedsAtApplication
	minEquity, maxEquity := points[0].EquityAtHorizon, points[0].EquityAtHorizon
	bestValue := points[0].Value
	for _, p := range points {
		if p.ProceedsAtApplication.LessThan(minProceeds) {
			minProceeds = p.ProceedsAtApplication
		}
		if p.ProceedsAtApplication.GreaterThan(maxProceeds) {
			maxProceeds = p.ProceedsAtApplication
			bestValue = p.Value
		}
		if p.EquityAtHorizon.LessThan(minEquity) {
			minEquity = p.EquityAtHorizon
		}
		if p.EquityAtHorizon.GreaterThan(maxEquity) {
			maxEquity = p.EquityAtHorizon
		}
		if p.ProceedsAtApplication.IsZero() {
			summary.ZeroProceedsAt = append(summary.ZeroProceedsAt, p.Value)
		}
	}
	summary.ProceedsRange = maxProceeds.Sub(minProceeds)
	summary.EquityRange = maxEquity.Sub(minEquity)

	if summary.ProceedsRange.IsZero() {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Proceeds at application do not depend on %s over this range", parameter.Name))
	} else {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Proceeds at application vary by %s; highest at %s = %s",
				summary.ProceedsRange.StringFixed(0), parameter.Name, bestValue.String()))
	}
	if n := len(summary.ZeroProceedsAt); n > 0 && n < len(points) {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("%d of %d values leave no net proceeds at application", n, len(points)))
	} else if n == len(points) {
		summary.Recommendations = append(summary.Recommendations,
			"No value in this range produces net proceeds at application; consider a later application year")
	}
	return summary
}
