package domain

import (
	"github.com/shopspring/decimal"
)

// LendingLimits contains the program data that drives principal limits and costs.
// This is loaded from lending_limits.yaml and is expected to change with regulatory updates.
type LendingLimits struct {
	Metadata            LendingLimitsMetadata         `yaml:"metadata" json:"metadata"`
	MaxClaimAmount      decimal.Decimal               `yaml:"max_claim_amount" json:"maxClaimAmount"`
	MinimumAge          int                           `yaml:"minimum_age" json:"minimumAge"`
	DefaultExpectedRate decimal.Decimal               `yaml:"default_expected_rate" json:"defaultExpectedRate"`
	RateBands           []RateBand                    `yaml:"rate_bands" json:"rateBands"`
	PropertyTypes       map[PropertyType]PropertyRule `yaml:"property_types" json:"propertyTypes"`
	Costs               CostRules                     `yaml:"costs" json:"costs"`
}

// LendingLimitsMetadata describes the table's provenance
type LendingLimitsMetadata struct {
	DataYear    int    `yaml:"data_year" json:"dataYear"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Description string `yaml:"description" json:"description"`
}

// RateBand is the age factor schedule that applies up to an expected rate (annual %)
type RateBand struct {
	MaxExpectedRate decimal.Decimal `yaml:"max_expected_rate" json:"maxExpectedRate"`
	Factors         []AgeFactor     `yaml:"factors" json:"factors"`
}

// AgeFactor applies from Age upward until the next entry
type AgeFactor struct {
	Age    int             `yaml:"age" json:"age"`
	Factor decimal.Decimal `yaml:"factor" json:"factor"`
}

// PropertyRule gates and scales the factor for a property type
type PropertyRule struct {
	Eligible         bool            `yaml:"eligible" json:"eligible"`
	FactorMultiplier decimal.Decimal `yaml:"factor_multiplier" json:"factorMultiplier"`
}

// CostRules contains origination and closing cost assumptions.
// Rates are fractions (0.02 = 2%) applied to the capped home value.
type CostRules struct {
	OriginationTierThreshold decimal.Decimal `yaml:"origination_tier_threshold" json:"originationTierThreshold"`
	OriginationRateFirstTier decimal.Decimal `yaml:"origination_rate_first_tier" json:"originationRateFirstTier"`
	OriginationRateRemainder decimal.Decimal `yaml:"origination_rate_remainder" json:"originationRateRemainder"`
	OriginationMinimum       decimal.Decimal `yaml:"origination_minimum" json:"originationMinimum"`
	OriginationMaximum       decimal.Decimal `yaml:"origination_maximum" json:"originationMaximum"`
	UpfrontMIPRate           decimal.Decimal `yaml:"upfront_mip_rate" json:"upfrontMipRate"`
	OtherClosingCosts        decimal.Decimal `yaml:"other_closing_costs" json:"otherClosingCosts"`
}

// Band selects the rate band for an expected rate; zero uses the default rate.
// Rates above every band use the last band.
func (ll *LendingLimits) Band(expectedRate decimal.Decimal) (RateBand, bool) {
	if len(ll.RateBands) == 0 {
		return RateBand{}, false
	}
	rate := expectedRate
	if rate.IsZero() {
		rate = ll.DefaultExpectedRate
	}
	for _, b := range ll.RateBands {
		if rate.LessThanOrEqual(b.MaxExpectedRate) {
			return b, true
		}
	}
	return ll.RateBands[len(ll.RateBands)-1], true
}

// PropertyRule returns the rule for a property type. Unlisted types are eligible at 1.0.
func (ll *LendingLimits) PropertyRule(pt PropertyType) PropertyRule {
	if rule, ok := ll.PropertyTypes[pt]; ok {
		return rule
	}
	return PropertyRule{Eligible: true, FactorMultiplier: decimal.NewFromInt(1)}
}
