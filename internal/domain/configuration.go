package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration represents the complete YAML input file
type Configuration struct {
	Name            string           `yaml:"name" json:"name"`
	ApplicationYear int              `yaml:"application_year" json:"application_year"`
	Borrower        BorrowerConfig   `yaml:"borrower" json:"borrower"`
	Property        PropertyConfig   `yaml:"property" json:"property"`
	Mortgage        *MortgageConfig  `yaml:"mortgage,omitempty" json:"mortgage,omitempty"`
	Projection      ProjectionConfig `yaml:"projection" json:"projection"`
}

// BorrowerConfig holds the household ages
type BorrowerConfig struct {
	Age       int  `yaml:"age" json:"age"`
	SpouseAge *int `yaml:"spouse_age,omitempty" json:"spouse_age,omitempty"`
}

// PropertyConfig describes the home
type PropertyConfig struct {
	Type             string          `yaml:"type" json:"type"`
	PrimaryResidence *bool           `yaml:"primary_residence" json:"primary_residence"`
	CurrentValue     decimal.Decimal `yaml:"current_value" json:"current_value"`
	AppreciationRate decimal.Decimal `yaml:"appreciation_rate" json:"appreciation_rate"` // annual %
}

// MortgageConfig describes the existing forward mortgage. Omit the section when the home is owned free and clear.
type MortgageConfig struct {
	Balance        decimal.Decimal `yaml:"balance" json:"balance"`             // principal at start_year
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interest_rate"` // annual %
	TermYears      int             `yaml:"term_years" json:"term_years"`
	StartYear      int             `yaml:"start_year" json:"start_year"`
	MonthlyPayment decimal.Decimal `yaml:"monthly_payment" json:"monthly_payment"`
	PrincipalPaid  decimal.Decimal `yaml:"principal_paid" json:"principal_paid"`
}

// ProjectionConfig controls the projection run
type ProjectionConfig struct {
	HorizonYears *int            `yaml:"horizon_years" json:"horizon_years"` // nil until defaults apply; 0 is a valid horizon
	ExpectedRate decimal.Decimal `yaml:"expected_rate" json:"expected_rate"` // annual %, zero = table default
}

// Horizon returns the configured horizon, or 0 when none is set
func (p ProjectionConfig) Horizon() int {
	if p.HorizonYears == nil {
		return 0
	}
	return *p.HorizonYears
}

// Input builds the immutable engine input from a validated configuration
func (c *Configuration) Input() ReverseMortgageInput {
	pt, err := ParsePropertyType(c.Property.Type)
	if err != nil {
		pt = PropertyType(c.Property.Type)
	}

	in := ReverseMortgageInput{
		ApplicationYear:      c.ApplicationYear,
		CurrentAge:           c.Borrower.Age,
		CurrentHomeValue:     c.Property.CurrentValue,
		HomeAppreciationRate: c.Property.AppreciationRate,
		PropertyType:         pt,
		IsPrimaryResidence:   c.Property.PrimaryResidence != nil && *c.Property.PrimaryResidence,
		ExpectedRate:         c.Projection.ExpectedRate,
		MortgageStartYear:    c.ApplicationYear,
	}
	if c.Borrower.SpouseAge != nil {
		s := *c.Borrower.SpouseAge
		in.SpouseAge = &s
	}
	if m := c.Mortgage; m != nil {
		in.CurrentMortgageBalance = m.Balance
		in.MortgageInterestRate = m.InterestRate
		in.LoanTermYears = m.TermYears
		in.MortgageStartYear = m.StartYear
		in.MonthlyPayment = m.MonthlyPayment
		in.MonthlyPrincipalPaid = m.PrincipalPaid
	}
	return in
}
