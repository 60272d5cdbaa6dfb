package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Step        decimal.Decimal `yaml:"step" json:"step"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "dollars"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the outcome of one value in a sweep
type SensitivityPoint struct {
	Value                 decimal.Decimal   `json:"value"`
	ProceedsAtApplication decimal.Decimal   `json:"proceedsAtApplication"`
	MaxNetProceeds        decimal.Decimal   `json:"maxNetProceeds"`
	MaxNetProceedsYear    int               `json:"maxNetProceedsYear"`
	EquityAtHorizon       decimal.Decimal   `json:"equityAtHorizon"`
	MortgagePayoffYear    int               `json:"mortgagePayoffYear"`
	ApplicationStatus     EligibilityStatus `json:"applicationStatus"`
}

// SensitivityAnalysis is a complete single-parameter sweep
type SensitivityAnalysis struct {
	ScenarioName string               `json:"scenarioName"`
	Parameter    SensitivityParameter `json:"parameter"`
	HorizonYears int                  `json:"horizonYears"`
	Points       []SensitivityPoint   `json:"points"`
	Summary      SensitivitySummary   `json:"summary"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	ProceedsRange   decimal.Decimal   `json:"proceedsRange"`  // max - min proceeds at application
	EquityRange     decimal.Decimal   `json:"equityRange"`    // max - min equity at horizon
	ZeroProceedsAt  []decimal.Decimal `json:"zeroProceedsAt"` // parameter values yielding zero proceeds at application
	Recommendations []string          `json:"recommendations"`
}

// Common sensitivity parameters
var (
	SensitivityAppreciationRate = SensitivityParameter{
		Name:        "appreciation_rate",
		MinValue:    decimal.NewFromFloat(-2.0),
		MaxValue:    decimal.NewFromFloat(6.0),
		Step:        decimal.NewFromFloat(1.0),
		Unit:        "percent",
		Description: "Annual home appreciation rate",
	}

	SensitivityMortgageRate = SensitivityParameter{
		Name:        "mortgage_interest_rate",
		MinValue:    decimal.NewFromFloat(2.0),
		MaxValue:    decimal.NewFromFloat(8.0),
		Step:        decimal.NewFromFloat(1.0),
		Unit:        "percent",
		Description: "Forward mortgage interest rate",
	}

	SensitivityMonthlyPayment = SensitivityParameter{
		Name:        "monthly_payment",
		MinValue:    decimal.NewFromInt(250),
		MaxValue:    decimal.NewFromInt(2000),
		Step:        decimal.NewFromInt(250),
		Unit:        "dollars",
		Description: "Forward mortgage monthly payment going forward (must be positive)",
	}

	SensitivityHomeValue = SensitivityParameter{
		Name:        "home_value",
		MinValue:    decimal.NewFromInt(200000),
		MaxValue:    decimal.NewFromInt(1000000),
		Step:        decimal.NewFromInt(100000),
		Unit:        "dollars",
		Description: "Current home value",
	}

	SensitivityExpectedRate = SensitivityParameter{
		Name:        "expected_rate",
		MinValue:    decimal.NewFromFloat(3.0),
		MaxValue:    decimal.NewFromFloat(9.0),
		Step:        decimal.NewFromFloat(1.0),
		Unit:        "percent",
		Description: "Expected rate used to select the principal limit factor band",
	}
)

// SensitivityParameters lists the built-in sweep parameters by name
var SensitivityParameters = map[string]SensitivityParameter{
	SensitivityAppreciationRate.Name: SensitivityAppreciationRate,
	SensitivityMortgageRate.Name:     SensitivityMortgageRate,
	SensitivityMonthlyPayment.Name:   SensitivityMonthlyPayment,
	SensitivityHomeValue.Name:        SensitivityHomeValue,
	SensitivityExpectedRate.Name:     SensitivityExpectedRate,
}
