package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PropertyType identifies the kind of dwelling securing the loan
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyCondo        PropertyType = "condo"
	PropertyMultiFamily  PropertyType = "multi_family"
	PropertyManufactured PropertyType = "manufactured"
)

// PropertyTypes lists the recognized property types in display order
var PropertyTypes = []PropertyType{
	PropertySingleFamily,
	PropertyCondo,
	PropertyMultiFamily,
	PropertyManufactured,
}

// ParsePropertyType normalizes user supplied names ("Single Family", "single-family", "condo")
func ParsePropertyType(s string) (PropertyType, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "-", "_")
	switch n {
	case "", "single_family", "singlefamily", "sfr", "house":
		return PropertySingleFamily, nil
	case "condo", "condominium":
		return PropertyCondo, nil
	case "multi_family", "multifamily", "multi", "duplex", "2_4_unit":
		return PropertyMultiFamily, nil
	case "manufactured", "manufactured_home", "mobile":
		return PropertyManufactured, nil
	}
	return "", fmt.Errorf("unknown property type %q", s)
}

// String returns a display label for the property type
func (p PropertyType) String() string {
	switch p {
	case PropertySingleFamily:
		return "Single Family"
	case PropertyCondo:
		return "Condo"
	case PropertyMultiFamily:
		return "Multi-Family"
	case PropertyManufactured:
		return "Manufactured"
	default:
		return string(p)
	}
}

// ReverseMortgageInput is the immutable input of a single projection run.
// It is passed by value; SpouseAge is the only reference field and is
// copied by Clone before any transform modifies it.
//
// Rates are annual percentages (3.5 means 3.5%).
type ReverseMortgageInput struct {
	ApplicationYear int  `json:"applicationYear"`
	CurrentAge      int  `json:"currentAge"`
	SpouseAge       *int `json:"spouseAge,omitempty"`

	CurrentHomeValue     decimal.Decimal `json:"currentHomeValue"`
	HomeAppreciationRate decimal.Decimal `json:"homeAppreciationRate"`

	CurrentMortgageBalance decimal.Decimal `json:"currentMortgageBalance"` // principal at MortgageStartYear
	MonthlyPayment         decimal.Decimal `json:"monthlyPayment"`         // zero means the scheduled payment
	MortgageInterestRate   decimal.Decimal `json:"mortgageInterestRate"`
	LoanTermYears          int             `json:"loanTermYears"`
	MortgageStartYear      int             `json:"mortgageStartYear"`

	PropertyType       PropertyType `json:"propertyType"`
	IsPrimaryResidence bool         `json:"isPrimaryResidence"`

	// MonthlyPrincipalPaid is principal already retired according to actual
	// payment history. Zero means no reconciliation.
	MonthlyPrincipalPaid decimal.Decimal `json:"monthlyPrincipalPaid"`

	// ExpectedRate selects the lending-limit rate band. Zero uses the table default.
	ExpectedRate decimal.Decimal `json:"expectedRate"`
}

// HasSpouse reports whether a second borrower is present
func (in ReverseMortgageInput) HasSpouse() bool {
	return in.SpouseAge != nil
}

// YoungestAge returns the age of the youngest borrower
func (in ReverseMortgageInput) YoungestAge() int {
	if in.SpouseAge != nil && *in.SpouseAge < in.CurrentAge {
		return *in.SpouseAge
	}
	return in.CurrentAge
}

// AgesInYear returns borrower and spouse ages for a projection year
func (in ReverseMortgageInput) AgesInYear(year int) (int, *int) {
	offset := year - in.ApplicationYear
	age := in.CurrentAge + offset
	if in.SpouseAge == nil {
		return age, nil
	}
	spouse := *in.SpouseAge + offset
	return age, &spouse
}

// MortgageTerms extracts the forward mortgage terms
func (in ReverseMortgageInput) MortgageTerms() MortgageTerms {
	return MortgageTerms{
		Principal:         in.CurrentMortgageBalance,
		AnnualRatePercent: in.MortgageInterestRate,
		TermYears:         in.LoanTermYears,
		StartYear:         in.MortgageStartYear,
		MonthlyPayment:    in.MonthlyPayment,
	}
}

// Reconciliation returns the principal-paid override, or nil when none was supplied
func (in ReverseMortgageInput) Reconciliation() *Reconciliation {
	if in.MonthlyPrincipalPaid.IsZero() {
		return nil
	}
	return &Reconciliation{PrincipalPaid: in.MonthlyPrincipalPaid}
}

// Clone returns a copy that shares no pointers with the receiver
func (in ReverseMortgageInput) Clone() ReverseMortgageInput {
	out := in
	if in.SpouseAge != nil {
		s := *in.SpouseAge
		out.SpouseAge = &s
	}
	return out
}

// MortgageTerms describes a fixed-rate, fixed-term amortizing loan
type MortgageTerms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermYears         int
	StartYear         int
	MonthlyPayment    decimal.Decimal // zero means the scheduled payment
}

// TermMonths returns the number of scheduled payments
func (t MortgageTerms) TermMonths() int {
	return t.TermYears * 12
}

// Reconciliation patches the computed principal-paid figure with ground truth
// from actual payment history at the application point.
type Reconciliation struct {
	PrincipalPaid decimal.Decimal
}
