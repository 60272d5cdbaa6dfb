package calculation

import (
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// interest is carried to this many places during replay
	balancePrecision = 10
	// keeps exponentiation of (1+r)^n from growing unbounded digits
	growthPrecision = 20
)

// balances below half a cent are treated as paid off
var paidOffTolerance = decimal.New(5, -3)

// MonthlyRate converts an annual percentage rate to a monthly fraction
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(decimal.NewFromInt(1200))
}

// ScheduledPayment returns the level payment that retires principal over termYears:
// P*r*(1+r)^n / ((1+r)^n - 1), or P/n at a zero rate. The result is not rounded.
func ScheduledPayment(principal, annualRatePercent decimal.Decimal, termYears int) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, newRangeError("scheduled payment", "principal", principal, "cannot be negative")
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, newRangeError("scheduled payment", "mortgageInterestRate", annualRatePercent, "cannot be negative")
	}
	if principal.IsZero() {
		return decimal.Zero, nil
	}
	if termYears <= 0 {
		return decimal.Zero, newRangeError("scheduled payment", "loanTermYears", termYears, "must be positive when a balance is owed")
	}

	n := decimal.NewFromInt(int64(termYears * 12))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(n), nil
	}
	growth := one.Add(r).Pow(n).Round(growthPrecision)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one)), nil
}

// ClosedFormBalance returns the balance after k level payments:
// P*(1+r)^k - pmt*((1+r)^k - 1)/r, floored at zero.
func ClosedFormBalance(principal, annualRatePercent, payment decimal.Decimal, months int) (decimal.Decimal, error) {
	if months < 0 {
		return decimal.Zero, newRangeError("closed form balance", "months", months, "cannot be negative")
	}
	k := decimal.NewFromInt(int64(months))
	r := MonthlyRate(annualRatePercent)

	var balance decimal.Decimal
	if r.IsZero() {
		balance = principal.Sub(payment.Mul(k))
	} else {
		growth := one.Add(r).Pow(k).Round(growthPrecision)
		balance = principal.Mul(growth).Sub(payment.Mul(growth.Sub(one)).Div(r))
	}
	if balance.LessThan(paidOffTolerance) {
		return decimal.Zero, nil
	}
	return balance, nil
}

// ReplayBalance applies months of payments to a starting balance. Interest is
// charged on the running balance, the principal portion is capped at what is
// owed, and the balance stays at zero once the loan is paid off. A payment
// smaller than the interest grows the balance.
func ReplayBalance(balance, monthlyRate, payment decimal.Decimal, months int) (decimal.Decimal, error) {
	if months < 0 {
		return decimal.Zero, newRangeError("replay balance", "months", months, "cannot be negative")
	}
	for i := 0; i < months && balance.IsPositive(); i++ {
		_, _, balance = amortizeMonth(balance, monthlyRate, payment)
	}
	return balance, nil
}

func amortizeMonth(balance, r, payment decimal.Decimal) (interest, principal, next decimal.Decimal) {
	interest = balance.Mul(r).Round(balancePrecision)
	principal = payment.Sub(interest)
	if principal.GreaterThan(balance) {
		principal = balance
	}
	next = balance.Sub(principal)
	if next.LessThan(paidOffTolerance) {
		principal = balance
		next = decimal.Zero
	}
	return interest, principal, next
}

// Amortizer answers balance questions for one forward mortgage.
//
// Payments before the anchor year follow the level schedule implied by the
// terms. From the anchor onward the caller's monthly payment (when set) is
// applied to the anchor balance, which is either the scheduled balance or,
// with a reconciliation, principal minus the principal actually paid.
type Amortizer struct {
	terms         domain.MortgageTerms
	monthlyRate   decimal.Decimal
	scheduled     decimal.Decimal
	forward       decimal.Decimal
	termMonths    int
	anchorMonth   int
	anchorBalance decimal.Decimal
}

// NewAmortizer validates the terms and fixes the anchor balance
func NewAmortizer(terms domain.MortgageTerms, anchorYear int, rec *domain.Reconciliation) (*Amortizer, error) {
	if terms.Principal.IsNegative() {
		return nil, newRangeError("amortize", "currentMortgageBalance", terms.Principal, "cannot be negative")
	}
	if terms.MonthlyPayment.IsNegative() {
		return nil, newRangeError("amortize", "monthlyPayment", terms.MonthlyPayment, "cannot be negative")
	}
	if terms.AnnualRatePercent.IsNegative() {
		return nil, newRangeError("amortize", "mortgageInterestRate", terms.AnnualRatePercent, "cannot be negative")
	}

	scheduled, err := ScheduledPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	if err != nil {
		return nil, err
	}

	a := &Amortizer{
		terms:       terms,
		monthlyRate: MonthlyRate(terms.AnnualRatePercent),
		scheduled:   scheduled,
		forward:     scheduled,
		termMonths:  terms.TermMonths(),
	}
	if terms.Principal.IsZero() {
		a.termMonths = 0
		return a, nil
	}
	if terms.MonthlyPayment.IsPositive() {
		a.forward = terms.MonthlyPayment
	}

	a.anchorMonth = clampMonths((anchorYear-terms.StartYear)*12, a.termMonths)
	if rec != nil {
		if rec.PrincipalPaid.IsNegative() {
			return nil, newRangeError("amortize", "monthlyPrincipalPaid", rec.PrincipalPaid, "cannot be negative")
		}
		if rec.PrincipalPaid.GreaterThan(terms.Principal) {
			return nil, newRangeError("amortize", "monthlyPrincipalPaid", rec.PrincipalPaid, "exceeds original principal")
		}
		a.anchorBalance = terms.Principal.Sub(rec.PrincipalPaid)
		return a, nil
	}

	a.anchorBalance, err = ReplayBalance(terms.Principal, a.monthlyRate, a.scheduled, a.anchorMonth)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func clampMonths(m, limit int) int {
	if m < 0 {
		return 0
	}
	if m > limit {
		return limit
	}
	return m
}

// Payment returns the payment in effect for month m (0-based from the loan start)
func (a *Amortizer) Payment(m int) decimal.Decimal {
	if m < a.anchorMonth {
		return a.scheduled
	}
	return a.forward
}

// ScheduledPayment returns the level payment implied by the terms
func (a *Amortizer) ScheduledPayment() decimal.Decimal {
	return a.scheduled
}

// BalanceAtMonth returns the balance after m payments. Balances before the
// loan starts are the full principal; after the term they hold whatever the
// final payment left, which is zero for a standard schedule.
func (a *Amortizer) BalanceAtMonth(m int) decimal.Decimal {
	if a.terms.Principal.IsZero() {
		return decimal.Zero
	}
	return a.replayTo(clampMonths(m, a.termMonths))
}

// BalloonAmount returns the balance left unpaid after the final scheduled payment
func (a *Amortizer) BalloonAmount() decimal.Decimal {
	if a.terms.Principal.IsZero() {
		return decimal.Zero
	}
	return a.replayTo(a.termMonths)
}

func (a *Amortizer) replayTo(m int) decimal.Decimal {
	if m <= 0 {
		return a.terms.Principal
	}
	if m < a.anchorMonth {
		b, _ := ReplayBalance(a.terms.Principal, a.monthlyRate, a.scheduled, m)
		return b
	}
	b, _ := ReplayBalance(a.anchorBalance, a.monthlyRate, a.forward, m-a.anchorMonth)
	return b
}

// RemainingBalance returns the balance owed on January 1 of asOfYear
func (a *Amortizer) RemainingBalance(asOfYear int) decimal.Decimal {
	return a.BalanceAtMonth((asOfYear - a.terms.StartYear) * 12)
}

// PrincipalPaidToDate returns original principal minus the balance on January 1
// of asOfYear. It is negative when the loan has negatively amortized.
func (a *Amortizer) PrincipalPaidToDate(asOfYear int) decimal.Decimal {
	return a.terms.Principal.Sub(a.RemainingBalance(asOfYear))
}

// NegativelyAmortizing reports whether the forward payment fails to cover interest at the anchor
func (a *Amortizer) NegativelyAmortizing() bool {
	if !a.anchorBalance.IsPositive() {
		return false
	}
	return a.forward.LessThan(a.anchorBalance.Mul(a.monthlyRate))
}

// PayoffMonth returns the number of payments after which the balance reaches
// zero, or -1 when the loan is not retired within its term.
func (a *Amortizer) PayoffMonth() int {
	if a.terms.Principal.IsZero() {
		return 0
	}
	balance := a.terms.Principal
	for m := 0; m < a.termMonths; m++ {
		if m == a.anchorMonth {
			balance = a.anchorBalance
		}
		if balance.IsZero() {
			return m
		}
		_, _, balance = amortizeMonth(balance, a.monthlyRate, a.Payment(m))
		if balance.IsZero() {
			return m + 1
		}
	}
	return -1
}

// Schedule replays months payments starting in January of fromYear. Months
// outside the loan term carry a zero payment and an unchanged balance.
func (a *Amortizer) Schedule(fromYear, months int) ([]domain.ScheduleEntry, error) {
	if months < 0 {
		return nil, newRangeError("schedule", "months", months, "cannot be negative")
	}
	start := (fromYear - a.terms.StartYear) * 12
	balance := a.BalanceAtMonth(start)

	entries := make([]domain.ScheduleEntry, 0, months)
	for i := 0; i < months; i++ {
		m := start + i
		entry := domain.ScheduleEntry{
			Year:      fromYear + i/12,
			Month:     i%12 + 1,
			Payment:   decimal.Zero,
			Interest:  decimal.Zero,
			Principal: decimal.Zero,
		}
		if m >= 0 && m < a.termMonths && balance.IsPositive() {
			var interest, principal decimal.Decimal
			interest, principal, balance = amortizeMonth(balance, a.monthlyRate, a.Payment(m))
			entry.Interest = interest
			entry.Principal = principal
			entry.Payment = interest.Add(principal)
		}
		entry.Balance = balance
		entries = append(entries, entry)
	}
	return entries, nil
}

// RemainingBalance returns the forward mortgage balance for an input on January 1 of asOfYear
func RemainingBalance(in domain.ReverseMortgageInput, asOfYear int) (decimal.Decimal, error) {
	a, err := NewAmortizer(in.MortgageTerms(), in.ApplicationYear, in.Reconciliation())
	if err != nil {
		return decimal.Zero, err
	}
	return a.RemainingBalance(asOfYear), nil
}

// PrincipalPaidToDate returns principal retired for an input by January 1 of asOfYear
func PrincipalPaidToDate(in domain.ReverseMortgageInput, asOfYear int) (decimal.Decimal, error) {
	a, err := NewAmortizer(in.MortgageTerms(), in.ApplicationYear, in.Reconciliation())
	if err != nil {
		return decimal.Zero, err
	}
	return a.PrincipalPaidToDate(asOfYear), nil
}
