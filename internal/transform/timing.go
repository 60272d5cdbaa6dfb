package transform

import (
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/calculation"
	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// DelayApplication moves the application later by whole years. Ages advance,
// the home value is projected forward at the input's appreciation rate, and
// the forward mortgage position at the new application year is carried over
// as a principal-paid reconciliation so the balance path is unchanged.
type DelayApplication struct {
	Years int
}

func (da *DelayApplication) Name() string {
	return "delay_application"
}

func (da *DelayApplication) Description() string {
	if da.Years == 1 {
		return "Delay the reverse mortgage application by 1 year"
	}
	return fmt.Sprintf("Delay the reverse mortgage application by %d years", da.Years)
}

func (da *DelayApplication) Validate(base domain.ReverseMortgageInput) error {
	if da.Years <= 0 {
		return NewTransformError(da.Name(), "validate", fmt.Sprintf("years must be positive, got %d", da.Years), nil)
	}
	if da.Years > 30 {
		return NewTransformError(da.Name(), "validate", fmt.Sprintf("years must be 30 or less, got %d", da.Years), nil)
	}
	return nil
}

func (da *DelayApplication) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	newYear := base.ApplicationYear + da.Years

	value, err := calculation.ProjectHomeValue(base.CurrentHomeValue, base.HomeAppreciationRate, da.Years)
	if err != nil {
		return base, NewTransformError(da.Name(), "apply", "cannot project home value", err)
	}

	modified.ApplicationYear = newYear
	modified.CurrentAge += da.Years
	if modified.SpouseAge != nil {
		*modified.SpouseAge += da.Years
	}
	modified.CurrentHomeValue = value

	// a caller payment or a reconciliation applies from the original
	// application year, so pin the balance reached by the new one
	if base.CurrentMortgageBalance.IsPositive() && (base.MonthlyPayment.IsPositive() || base.Reconciliation() != nil) {
		balance, err := calculation.RemainingBalance(base, newYear)
		if err != nil {
			return base, NewTransformError(da.Name(), "apply", "cannot compute mortgage balance", err)
		}
		paid := base.CurrentMortgageBalance.Sub(balance)
		if paid.IsNegative() {
			return base, NewTransformError(da.Name(), "apply",
				fmt.Sprintf("balance grows to %s by %d; negative amortization cannot be carried forward", balance.StringFixed(2), newYear), nil)
		}
		modified.MonthlyPrincipalPaid = paid
	}

	return modified, nil
}
