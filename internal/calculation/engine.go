package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxHorizonYears bounds a single projection run
const MaxHorizonYears = 100

// ProjectionEngine orchestrates the home value projector, the forward mortgage
// amortizer and the reverse mortgage calculator into a yearly projection.
type ProjectionEngine struct {
	Limits  *domain.LendingLimits
	Reverse *ReverseMortgageCalculator
	Logger  Logger
	Debug   bool // Enable debug output for per-row calculations
}

// NewProjectionEngine creates a new projection engine for a lending-limit table
func NewProjectionEngine(limits *domain.LendingLimits) (*ProjectionEngine, error) {
	reverse, err := NewReverseMortgageCalculator(limits)
	if err != nil {
		return nil, err
	}
	return &ProjectionEngine{
		Limits:  limits,
		Reverse: reverse,
		Logger:  NopLogger{},
	}, nil
}

// SetLogger sets the logger for the engine
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// ValidateInput rejects inputs the calculators cannot project
func (pe *ProjectionEngine) ValidateInput(in domain.ReverseMortgageInput, horizonYears int) error {
	if horizonYears < 0 || horizonYears > MaxHorizonYears {
		return newRangeError("project", "horizonYears", horizonYears, fmt.Sprintf("must be between 0 and %d", MaxHorizonYears))
	}
	if in.CurrentAge < 0 {
		return newRangeError("project", "currentAge", in.CurrentAge, "cannot be negative")
	}
	if in.SpouseAge != nil && *in.SpouseAge < 0 {
		return newRangeError("project", "spouseAge", *in.SpouseAge, "cannot be negative")
	}
	if in.ExpectedRate.IsNegative() {
		return newRangeError("project", "expectedRate", in.ExpectedRate, "cannot be negative")
	}
	if err := validateAppreciation(in.CurrentHomeValue, in.HomeAppreciationRate); err != nil {
		return err
	}
	return nil
}

// Project produces horizonYears+1 rows, one for January 1 of each year from
// the application year through the horizon. Any error fails the whole run.
func (pe *ProjectionEngine) Project(ctx context.Context, in domain.ReverseMortgageInput, horizonYears int) (*domain.ProjectionResult, error) {
	return pe.ProjectNamed(ctx, "", in, horizonYears)
}

// ProjectNamed is Project with a scenario name attached to the result
func (pe *ProjectionEngine) ProjectNamed(ctx context.Context, name string, in domain.ReverseMortgageInput, horizonYears int) (*domain.ProjectionResult, error) {
	if err := pe.ValidateInput(in, horizonYears); err != nil {
		return nil, err
	}
	in = in.Clone()

	amortizer, err := NewAmortizer(in.MortgageTerms(), in.ApplicationYear, in.Reconciliation())
	if err != nil {
		return nil, err
	}
	if amortizer.NegativelyAmortizing() {
		pe.Logger.Warnf("monthly payment %s does not cover interest; balance grows", in.MonthlyPayment.StringFixed(2))
	}
	if balloon := amortizer.BalloonAmount(); balloon.IsPositive() {
		pe.Logger.Warnf("payments leave %s unpaid when the term ends in %d",
			balloon.StringFixed(2), in.MortgageStartYear+in.LoanTermYears)
	}

	pe.Logger.Debugf("projecting %q: application year %d, horizon %d years", name, in.ApplicationYear, horizonYears)

	rows := make([]domain.ProjectionRow, 0, horizonYears+1)
	for offset := 0; offset <= horizonYears; offset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := pe.projectYear(in, amortizer, in.ApplicationYear+offset)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", in.ApplicationYear+offset, err)
		}
		if pe.Debug {
			pe.Logger.Debugf("  %d age %d value %s balance %s PL %s net %s (%s)",
				row.Year, row.YoungestAge(), row.HomeValue.StringFixed(2), row.RemainingMortgageBalance.StringFixed(2),
				row.ReverseMortgagePrincipalLimit.StringFixed(2), row.ReverseMortgageNetProceeds.StringFixed(2), row.Status)
		}
		rows = append(rows, row)
	}

	result := &domain.ProjectionResult{
		Name:         name,
		Input:        in,
		HorizonYears: horizonYears,
		Rows:         rows,
		Summary:      summarize(rows, amortizer, in),
		Assumptions:  pe.Assumptions(in),
	}
	return result, nil
}

func (pe *ProjectionEngine) projectYear(in domain.ReverseMortgageInput, amortizer *Amortizer, year int) (domain.ProjectionRow, error) {
	homeValue, err := ProjectHomeValue(in.CurrentHomeValue, in.HomeAppreciationRate, year-in.ApplicationYear)
	if err != nil {
		return domain.ProjectionRow{}, err
	}
	balance := amortizer.RemainingBalance(year)
	age, spouseAge := in.AgesInYear(year)

	row := domain.ProjectionRow{
		Year:                     year,
		Age:                      age,
		SpouseAge:                spouseAge,
		HomeValue:                homeValue,
		RemainingMortgageBalance: balance,
		HomeEquity:               homeEquity(homeValue, balance),
	}

	quote, err := pe.Reverse.Evaluate(QuoteRequest{
		YoungestAge:      row.YoungestAge(),
		HomeValue:        homeValue,
		RemainingBalance: balance,
		ExpectedRate:     in.ExpectedRate,
		PropertyType:     in.PropertyType,
		PrimaryResidence: in.IsPrimaryResidence,
	})
	if err != nil {
		return domain.ProjectionRow{}, err
	}
	row.LendingLimitFactor = quote.Factor
	row.ReverseMortgagePrincipalLimit = quote.PrincipalLimit
	row.OriginationCost = quote.OriginationCost
	row.ReverseMortgageNetProceeds = quote.NetProceeds
	row.Status = quote.Status
	return row, nil
}

// homeEquity is floored at zero for reporting; the home value itself never is
func homeEquity(homeValue, balance decimal.Decimal) decimal.Decimal {
	equity := homeValue.Sub(balance)
	if equity.IsNegative() {
		return decimal.Zero
	}
	return equity
}

func summarize(rows []domain.ProjectionRow, amortizer *Amortizer, in domain.ReverseMortgageInput) domain.ProjectionSummary {
	var s domain.ProjectionSummary
	if len(rows) == 0 {
		return s
	}
	first, last := rows[0], rows[len(rows)-1]
	s.ApplicationStatus = first.Status
	s.ProceedsAtApplication = first.ReverseMortgageNetProceeds
	s.PrincipalLimitAtApplication = first.ReverseMortgagePrincipalLimit
	s.EquityAtHorizon = last.HomeEquity
	s.HomeValueAtHorizon = last.HomeValue
	s.MaxNetProceeds = decimal.Zero

	for _, row := range rows {
		if row.ReverseMortgageNetProceeds.GreaterThan(s.MaxNetProceeds) {
			s.MaxNetProceeds = row.ReverseMortgageNetProceeds
			s.MaxNetProceedsYear = row.Year
		}
		if s.FirstEligibleYear == 0 && row.Status == domain.StatusEligible {
			s.FirstEligibleYear = row.Year
		}
	}

	// the year of the final payment; loans retired before the application
	// year, never retired, or absent report 0
	if m := amortizer.PayoffMonth(); m > 0 {
		payoff := in.MortgageStartYear + (m-1)/12
		if payoff >= first.Year && payoff <= last.Year {
			s.MortgagePayoffYear = payoff
		}
	}
	return s
}

// Assumptions lists the modelling assumptions that apply to a run
func (pe *ProjectionEngine) Assumptions(in domain.ReverseMortgageInput) []string {
	assumptions := []string{
		fmt.Sprintf("Home value grows %s%% per year, compounded annually from %d", in.HomeAppreciationRate.StringFixed(2), in.ApplicationYear),
		"Rows are evaluated as of January 1 of each year",
		fmt.Sprintf("Maximum claim amount held at %s for every year", pe.Limits.MaxClaimAmount.StringFixed(0)),
	}

	band, _ := pe.Limits.Band(in.ExpectedRate)
	rate := in.ExpectedRate
	if rate.IsZero() {
		rate = pe.Limits.DefaultExpectedRate
	}
	assumptions = append(assumptions,
		fmt.Sprintf("Expected rate %s%% selects the factor band up to %s%%", rate.StringFixed(2), band.MaxExpectedRate.StringFixed(2)))

	if in.CurrentMortgageBalance.IsPositive() {
		if in.MonthlyPayment.IsPositive() {
			assumptions = append(assumptions,
				fmt.Sprintf("Monthly payment of %s applied from %d onward", in.MonthlyPayment.StringFixed(2), in.ApplicationYear))
		} else {
			assumptions = append(assumptions, "Scheduled level payment applied for the life of the loan")
		}
		if in.Reconciliation() != nil {
			assumptions = append(assumptions,
				fmt.Sprintf("Principal paid through %d reconciled to %s", in.ApplicationYear, in.MonthlyPrincipalPaid.StringFixed(2)))
		}
	} else {
		assumptions = append(assumptions, "No forward mortgage")
	}
	if pe.Limits.Metadata.DataYear != 0 {
		assumptions = append(assumptions, fmt.Sprintf("Lending limits data year %d", pe.Limits.Metadata.DataYear))
	}
	return assumptions
}

// Schedule returns the month-by-month forward mortgage replay from January of
// fromYear, with the home value projected to the start of each month.
func (pe *ProjectionEngine) Schedule(in domain.ReverseMortgageInput, fromYear, months int) ([]domain.ScheduleEntry, error) {
	if fromYear < in.ApplicationYear {
		return nil, newRangeError("schedule", "fromYear", fromYear, "cannot precede the application year")
	}
	amortizer, err := NewAmortizer(in.MortgageTerms(), in.ApplicationYear, in.Reconciliation())
	if err != nil {
		return nil, err
	}
	entries, err := amortizer.Schedule(fromYear, months)
	if err != nil {
		return nil, err
	}
	offset := (fromYear - in.ApplicationYear) * 12
	for i := range entries {
		hv, err := ProjectHomeValueMonths(in.CurrentHomeValue, in.HomeAppreciationRate, offset+i)
		if err != nil {
			return nil, err
		}
		entries[i].HomeValue = hv
	}
	return entries, nil
}
