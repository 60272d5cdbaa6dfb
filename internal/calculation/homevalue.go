package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// projected values are carried to this many places
const valuePrecision = 6

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// ProjectHomeValue compounds a home value annually: base * (1 + rate/100)^years.
// Negative rates are allowed and are not floored; rates at or below -100% are rejected.
func ProjectHomeValue(base, annualRatePercent decimal.Decimal, yearsElapsed int) (decimal.Decimal, error) {
	if err := validateAppreciation(base, annualRatePercent); err != nil {
		return decimal.Zero, err
	}
	if yearsElapsed < 0 {
		return decimal.Zero, newRangeError("project home value", "yearsElapsed", yearsElapsed, "cannot be negative")
	}
	return base.Mul(growthFactor(annualRatePercent, yearsElapsed)).Round(valuePrecision), nil
}

// ProjectHomeValueMonths projects to a month offset using the same effective
// annual rate: whole years compound exactly and the remaining months use the
// fractional exponent (1 + rate/100)^(m/12). The fractional factor is the one
// float computation in the package; it is rounded to growthPrecision before use.
func ProjectHomeValueMonths(base, annualRatePercent decimal.Decimal, monthsElapsed int) (decimal.Decimal, error) {
	if err := validateAppreciation(base, annualRatePercent); err != nil {
		return decimal.Zero, err
	}
	if monthsElapsed < 0 {
		return decimal.Zero, newRangeError("project home value", "monthsElapsed", monthsElapsed, "cannot be negative")
	}

	value := base.Mul(growthFactor(annualRatePercent, monthsElapsed/12))
	if rem := monthsElapsed % 12; rem != 0 {
		annual := one.Add(annualRatePercent.Div(hundred)).InexactFloat64()
		partial := decimal.NewFromFloat(math.Pow(annual, float64(rem)/12.0)).Round(growthPrecision)
		value = value.Mul(partial)
	}
	return value.Round(valuePrecision), nil
}

func growthFactor(annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	if years == 0 {
		return one
	}
	return one.Add(annualRatePercent.Div(hundred)).Pow(decimal.NewFromInt(int64(years))).Round(growthPrecision)
}

func validateAppreciation(base, annualRatePercent decimal.Decimal) error {
	if base.LessThanOrEqual(decimal.Zero) {
		return newRangeError("project home value", "currentHomeValue", base, "must be positive")
	}
	if annualRatePercent.LessThanOrEqual(hundred.Neg()) {
		return newRangeError("project home value", "homeAppreciationRate", annualRatePercent, "must be greater than -100%")
	}
	return nil
}
