package calculation

import (
	"errors"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
)

// QuoteRequest is one point in time for the reverse mortgage calculator
type QuoteRequest struct {
	YoungestAge      int
	HomeValue        decimal.Decimal
	RemainingBalance decimal.Decimal
	ExpectedRate     decimal.Decimal
	PropertyType     domain.PropertyType
	PrimaryResidence bool
}

// ReverseMortgageCalculator evaluates eligibility and proceeds against a lending-limit table
type ReverseMortgageCalculator struct {
	Limits *domain.LendingLimits
}

// NewReverseMortgageCalculator creates a calculator for the given table
func NewReverseMortgageCalculator(limits *domain.LendingLimits) (*ReverseMortgageCalculator, error) {
	if limits == nil {
		return nil, errors.New("lending limits are required")
	}
	if len(limits.RateBands) == 0 {
		return nil, errors.New("lending limits contain no rate bands")
	}
	return &ReverseMortgageCalculator{Limits: limits}, nil
}

// LendingLimitFactor returns the principal limit factor for the youngest
// borrower age. Ages below the program minimum get zero; ages past the last
// table entry keep the last factor. The property-type multiplier is applied.
func (c *ReverseMortgageCalculator) LendingLimitFactor(youngestAge int, expectedRate decimal.Decimal, pt domain.PropertyType) decimal.Decimal {
	if youngestAge < c.Limits.MinimumAge {
		return decimal.Zero
	}
	band, ok := c.Limits.Band(expectedRate)
	if !ok {
		return decimal.Zero
	}

	factor := decimal.Zero
	for _, f := range band.Factors {
		if youngestAge < f.Age {
			break
		}
		factor = f.Factor
	}

	rule := c.Limits.PropertyRule(pt)
	if !rule.FactorMultiplier.IsZero() {
		factor = factor.Mul(rule.FactorMultiplier)
	}
	return factor
}

// CappedValue limits a home value to the maximum claim amount
func (c *ReverseMortgageCalculator) CappedValue(homeValue decimal.Decimal) decimal.Decimal {
	if c.Limits.MaxClaimAmount.IsPositive() && homeValue.GreaterThan(c.Limits.MaxClaimAmount) {
		return c.Limits.MaxClaimAmount
	}
	return homeValue
}

// PrincipalLimit returns min(homeValue, max claim amount) * factor for the youngest borrower
func (c *ReverseMortgageCalculator) PrincipalLimit(youngestAge int, homeValue, expectedRate decimal.Decimal, pt domain.PropertyType) (decimal.Decimal, error) {
	if homeValue.IsNegative() {
		return decimal.Zero, newRangeError("principal limit", "homeValue", homeValue, "cannot be negative")
	}
	factor := c.LendingLimitFactor(youngestAge, expectedRate, pt)
	return c.CappedValue(homeValue).Mul(factor), nil
}

// OriginationCost returns origination fee plus upfront insurance premium plus
// other closing costs. The fee is tiered on the capped value and clamped to
// the table's minimum and maximum.
func (c *ReverseMortgageCalculator) OriginationCost(homeValue decimal.Decimal) decimal.Decimal {
	rules := c.Limits.Costs
	capped := c.CappedValue(homeValue)
	if capped.IsNegative() {
		capped = decimal.Zero
	}

	firstTier := decimal.Min(capped, rules.OriginationTierThreshold)
	fee := firstTier.Mul(rules.OriginationRateFirstTier)
	if remainder := capped.Sub(rules.OriginationTierThreshold); remainder.IsPositive() {
		fee = fee.Add(remainder.Mul(rules.OriginationRateRemainder))
	}
	if fee.LessThan(rules.OriginationMinimum) {
		fee = rules.OriginationMinimum
	}
	if rules.OriginationMaximum.IsPositive() && fee.GreaterThan(rules.OriginationMaximum) {
		fee = rules.OriginationMaximum
	}

	mip := capped.Mul(rules.UpfrontMIPRate)
	return fee.Add(mip).Add(rules.OtherClosingCosts)
}

// NetProceeds returns principalLimit - remainingBalance - cost, floored at zero
func NetProceeds(principalLimit, remainingBalance, cost decimal.Decimal) decimal.Decimal {
	net := principalLimit.Sub(remainingBalance).Sub(cost)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// Evaluate applies the eligibility gates in order (primary residence,
// property type, age, equity) and computes the quote. Program-ineligible
// quotes always carry zero net proceeds.
func (c *ReverseMortgageCalculator) Evaluate(req QuoteRequest) (domain.ReverseMortgageQuote, error) {
	if req.RemainingBalance.IsNegative() {
		return domain.ReverseMortgageQuote{}, newRangeError("evaluate", "remainingBalance", req.RemainingBalance, "cannot be negative")
	}
	pl, err := c.PrincipalLimit(req.YoungestAge, req.HomeValue, req.ExpectedRate, req.PropertyType)
	if err != nil {
		return domain.ReverseMortgageQuote{}, err
	}

	quote := domain.ReverseMortgageQuote{
		Factor:          c.LendingLimitFactor(req.YoungestAge, req.ExpectedRate, req.PropertyType),
		PrincipalLimit:  pl,
		OriginationCost: c.OriginationCost(req.HomeValue),
		NetProceeds:     decimal.Zero,
	}

	switch {
	case !req.PrimaryResidence:
		quote.Status = domain.StatusNotPrimaryResidence
	case !c.Limits.PropertyRule(req.PropertyType).Eligible:
		quote.Status = domain.StatusIneligiblePropertyType
	case req.YoungestAge < c.Limits.MinimumAge:
		quote.Status = domain.StatusIneligibleAge
	default:
		quote.NetProceeds = NetProceeds(pl, req.RemainingBalance, quote.OriginationCost)
		if quote.NetProceeds.IsZero() {
			quote.Status = domain.StatusInsufficientEquity
		} else {
			quote.Status = domain.StatusEligible
		}
	}
	return quote, nil
}
