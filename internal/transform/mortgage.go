package transform

import (
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// ChangeMonthlyPayment adds Delta to the payment in effect from the application
// year. A zero payment in the base means the scheduled payment, so the delta
// is applied on top of it.
type ChangeMonthlyPayment struct {
	Delta decimal.Decimal
}

func (cp *ChangeMonthlyPayment) Name() string {
	return "change_monthly_payment"
}

func (cp *ChangeMonthlyPayment) Description() string {
	if cp.Delta.IsNegative() {
		return fmt.Sprintf("Pay $%s less per month on the forward mortgage", cp.Delta.Neg().StringFixed(0))
	}
	return fmt.Sprintf("Pay an extra $%s per month on the forward mortgage", cp.Delta.StringFixed(0))
}

func (cp *ChangeMonthlyPayment) Validate(base domain.ReverseMortgageInput) error {
	if !base.CurrentMortgageBalance.IsPositive() {
		return NewTransformError(cp.Name(), "validate", "input has no forward mortgage", nil)
	}
	current, err := effectivePayment(base)
	if err != nil {
		return NewTransformError(cp.Name(), "validate", "cannot compute scheduled payment", err)
	}
	if current.Add(cp.Delta).IsNegative() {
		return NewTransformError(cp.Name(), "validate",
			fmt.Sprintf("payment %s plus %s is negative", current.StringFixed(2), cp.Delta.StringFixed(2)), nil)
	}
	return nil
}

func (cp *ChangeMonthlyPayment) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	current, err := effectivePayment(base)
	if err != nil {
		return base, NewTransformError(cp.Name(), "apply", "cannot compute scheduled payment", err)
	}
	modified.MonthlyPayment = current.Add(cp.Delta)
	return modified, nil
}

// SetMonthlyPayment replaces the payment in effect from the application year.
type SetMonthlyPayment struct {
	Amount decimal.Decimal
}

func (sp *SetMonthlyPayment) Name() string {
	return "set_monthly_payment"
}

func (sp *SetMonthlyPayment) Description() string {
	return fmt.Sprintf("Pay $%s per month on the forward mortgage", sp.Amount.StringFixed(0))
}

func (sp *SetMonthlyPayment) Validate(base domain.ReverseMortgageInput) error {
	if sp.Amount.IsNegative() {
		return NewTransformError(sp.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (sp *SetMonthlyPayment) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	modified.MonthlyPayment = sp.Amount
	return modified, nil
}

// PayOffMortgage models retiring the forward mortgage before applying.
type PayOffMortgage struct{}

func (po *PayOffMortgage) Name() string {
	return "pay_off_mortgage"
}

func (po *PayOffMortgage) Description() string {
	return "Pay off the forward mortgage before applying"
}

func (po *PayOffMortgage) Validate(base domain.ReverseMortgageInput) error {
	return nil
}

func (po *PayOffMortgage) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	modified.CurrentMortgageBalance = decimal.Zero
	modified.MonthlyPayment = decimal.Zero
	modified.MonthlyPrincipalPaid = decimal.Zero
	modified.MortgageInterestRate = decimal.Zero
	modified.LoanTermYears = 0
	modified.MortgageStartYear = base.ApplicationYear
	return modified, nil
}

func effectivePayment(in domain.ReverseMortgageInput) (decimal.Decimal, error) {
	if in.MonthlyPayment.IsPositive() {
		return in.MonthlyPayment, nil
	}
	return calculation.ScheduledPayment(in.CurrentMortgageBalance, in.MortgageInterestRate, in.LoanTermYears)
}
