package domain

import (
	"github.com/shopspring/decimal"
)

// EligibilityStatus is the outcome of the reverse-mortgage eligibility check.
// Statuses are results, not errors: a zero-proceeds year is still a valid row.
type EligibilityStatus string

const (
	StatusEligible               EligibilityStatus = "eligible"
	StatusNotPrimaryResidence    EligibilityStatus = "ineligible_not_primary_residence"
	StatusIneligiblePropertyType EligibilityStatus = "ineligible_property_type"
	StatusIneligibleAge          EligibilityStatus = "ineligible_age"
	StatusInsufficientEquity     EligibilityStatus = "insufficient_equity"
)

// IsProgramIneligible reports hard program gates (residence, property, age),
// as opposed to a computed financial shortfall.
func (s EligibilityStatus) IsProgramIneligible() bool {
	switch s {
	case StatusNotPrimaryResidence, StatusIneligiblePropertyType, StatusIneligibleAge:
		return true
	}
	return false
}

// Description returns a short human readable explanation
func (s EligibilityStatus) Description() string {
	switch s {
	case StatusEligible:
		return "Eligible"
	case StatusNotPrimaryResidence:
		return "Ineligible: home is not the primary residence"
	case StatusIneligiblePropertyType:
		return "Ineligible: property type not accepted"
	case StatusIneligibleAge:
		return "Ineligible: youngest borrower below minimum age"
	case StatusInsufficientEquity:
		return "Eligible, but forward mortgage and costs exceed the principal limit"
	default:
		return string(s)
	}
}

// ReverseMortgageQuote is the result of evaluating one point in time
type ReverseMortgageQuote struct {
	Factor          decimal.Decimal   `json:"factor"`
	PrincipalLimit  decimal.Decimal   `json:"principalLimit"`
	OriginationCost decimal.Decimal   `json:"originationCost"`
	NetProceeds     decimal.Decimal   `json:"netProceeds"`
	Status          EligibilityStatus `json:"status"`
}

// ProjectionRow is one projected year
type ProjectionRow struct {
	Year      int  `json:"year"`
	Age       int  `json:"age"`
	SpouseAge *int `json:"spouseAge,omitempty"`

	HomeValue                decimal.Decimal `json:"homeValue"`
	RemainingMortgageBalance decimal.Decimal `json:"remainingMortgageBalance"`
	HomeEquity               decimal.Decimal `json:"homeEquity"`

	LendingLimitFactor            decimal.Decimal   `json:"lendingLimitFactor"`
	ReverseMortgagePrincipalLimit decimal.Decimal   `json:"reverseMortgagePrincipalLimit"`
	OriginationCost               decimal.Decimal   `json:"originationCost"`
	ReverseMortgageNetProceeds    decimal.Decimal   `json:"reverseMortgageNetProceeds"`
	Status                        EligibilityStatus `json:"status"`
}

// YoungestAge returns the youngest borrower age for the row
func (r ProjectionRow) YoungestAge() int {
	if r.SpouseAge != nil && *r.SpouseAge < r.Age {
		return *r.SpouseAge
	}
	return r.Age
}

// ProjectionSummary provides key metrics for a projection run
type ProjectionSummary struct {
	ApplicationStatus           EligibilityStatus `json:"applicationStatus"`
	ProceedsAtApplication       decimal.Decimal   `json:"proceedsAtApplication"`
	PrincipalLimitAtApplication decimal.Decimal   `json:"principalLimitAtApplication"`
	MaxNetProceeds              decimal.Decimal   `json:"maxNetProceeds"`
	MaxNetProceedsYear          int               `json:"maxNetProceedsYear"`
	FirstEligibleYear           int               `json:"firstEligibleYear"`  // 0 when never eligible within the horizon
	MortgagePayoffYear          int               `json:"mortgagePayoffYear"` // year of the final payment; 0 when none falls within the horizon
	EquityAtHorizon             decimal.Decimal   `json:"equityAtHorizon"`
	HomeValueAtHorizon          decimal.Decimal   `json:"homeValueAtHorizon"`
}

// ProjectionResult is the complete output of one projection run
type ProjectionResult struct {
	Name         string               `json:"name"`
	Input        ReverseMortgageInput `json:"input"`
	HorizonYears int                  `json:"horizonYears"`
	Rows         []ProjectionRow      `json:"rows"`
	Summary      ProjectionSummary    `json:"summary"`
	Assumptions  []string             `json:"assumptions"`
}

// Row returns the row for a calendar year
func (pr *ProjectionResult) Row(year int) (ProjectionRow, bool) {
	idx := year - pr.Input.ApplicationYear
	if idx < 0 || idx >= len(pr.Rows) {
		return ProjectionRow{}, false
	}
	return pr.Rows[idx], true
}

// ScheduleEntry is one month of the forward mortgage replay
type ScheduleEntry struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"` // 1-12
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
	HomeValue decimal.Decimal `json:"homeValue"`
}
