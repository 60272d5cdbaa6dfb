package transform

import (
	"fmt"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

var minAppreciation = decimal.NewFromInt(-100)

// AdjustAppreciation shifts the annual appreciation rate by DeltaPercent points.
type AdjustAppreciation struct {
	DeltaPercent decimal.Decimal
}

func (aa *AdjustAppreciation) Name() string {
	return "adjust_appreciation"
}

func (aa *AdjustAppreciation) Description() string {
	sign := ""
	if aa.DeltaPercent.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Adjust home appreciation by %s%s points", sign, aa.DeltaPercent.StringFixed(1))
}

func (aa *AdjustAppreciation) Validate(base domain.ReverseMortgageInput) error {
	if base.HomeAppreciationRate.Add(aa.DeltaPercent).LessThanOrEqual(minAppreciation) {
		return NewTransformError(aa.Name(), "validate", "resulting appreciation rate must be greater than -100%", nil)
	}
	return nil
}

func (aa *AdjustAppreciation) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	modified.HomeAppreciationRate = base.HomeAppreciationRate.Add(aa.DeltaPercent)
	return modified, nil
}

// SetAppreciation replaces the annual appreciation rate.
type SetAppreciation struct {
	RatePercent decimal.Decimal
}

func (sa *SetAppreciation) Name() string {
	return "set_appreciation"
}

func (sa *SetAppreciation) Description() string {
	return fmt.Sprintf("Set home appreciation to %s%% per year", sa.RatePercent.StringFixed(1))
}

func (sa *SetAppreciation) Validate(base domain.ReverseMortgageInput) error {
	if sa.RatePercent.LessThanOrEqual(minAppreciation) {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("rate must be greater than -100%%, got %s", sa.RatePercent), nil)
	}
	return nil
}

func (sa *SetAppreciation) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	modified.HomeAppreciationRate = sa.RatePercent
	return modified, nil
}

// SetExpectedRate selects a different lending-limit rate band.
type SetExpectedRate struct {
	RatePercent decimal.Decimal
}

func (se *SetExpectedRate) Name() string {
	return "set_expected_rate"
}

func (se *SetExpectedRate) Description() string {
	return fmt.Sprintf("Use an expected rate of %s%%", se.RatePercent.StringFixed(2))
}

func (se *SetExpectedRate) Validate(base domain.ReverseMortgageInput) error {
	if se.RatePercent.IsNegative() {
		return NewTransformError(se.Name(), "validate", "expected rate cannot be negative", nil)
	}
	return nil
}

func (se *SetExpectedRate) Apply(base domain.ReverseMortgageInput) (domain.ReverseMortgageInput, error) {
	modified := base.Clone()
	modified.ExpectedRate = se.RatePercent
	return modified, nil
}
