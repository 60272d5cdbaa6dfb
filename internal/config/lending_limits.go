package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed lending_limits.yaml
var defaultLendingLimits []byte

// DefaultLendingLimits returns the table shipped with the binary
func DefaultLendingLimits() (*domain.LendingLimits, error) {
	limits, err := ParseLendingLimits(defaultLendingLimits)
	if err != nil {
		return nil, fmt.Errorf("embedded lending limits: %w", err)
	}
	return limits, nil
}

// LoadLendingLimits loads a table from path, or the embedded default when path is empty
func LoadLendingLimits(path string) (*domain.LendingLimits, error) {
	if path == "" {
		return DefaultLendingLimits()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lending limits file %s: %w", path, err)
	}
	return ParseLendingLimits(data)
}

// ParseLendingLimits decodes and validates a lending-limit table
func ParseLendingLimits(data []byte) (*domain.LendingLimits, error) {
	var limits domain.LendingLimits
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return nil, fmt.Errorf("failed to parse lending limits YAML: %w", err)
	}
	if err := ValidateLendingLimits(&limits); err != nil {
		return nil, fmt.Errorf("lending limits validation failed: %w", err)
	}
	return &limits, nil
}

// ValidateLendingLimits checks the table is usable: bands sorted by rate and
// factors strictly ordered by age, non-decreasing, and within [0, 1].
func ValidateLendingLimits(limits *domain.LendingLimits) error {
	if !limits.MaxClaimAmount.IsPositive() {
		return fmt.Errorf("max_claim_amount must be positive")
	}
	if limits.MinimumAge <= 0 {
		return fmt.Errorf("minimum_age must be positive")
	}
	if limits.DefaultExpectedRate.IsNegative() {
		return fmt.Errorf("default_expected_rate cannot be negative")
	}
	if len(limits.RateBands) == 0 {
		return fmt.Errorf("at least one rate band is required")
	}

	for i, band := range limits.RateBands {
		if i > 0 && !band.MaxExpectedRate.GreaterThan(limits.RateBands[i-1].MaxExpectedRate) {
			return fmt.Errorf("rate band %d: max_expected_rate must increase", i)
		}
		if len(band.Factors) == 0 {
			return fmt.Errorf("rate band %d: no factors", i)
		}
		for j, f := range band.Factors {
			if f.Factor.IsNegative() || f.Factor.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("rate band %d: factor for age %d must be between 0 and 1", i, f.Age)
			}
			if j == 0 {
				continue
			}
			prev := band.Factors[j-1]
			if f.Age <= prev.Age {
				return fmt.Errorf("rate band %d: ages must increase (age %d after %d)", i, f.Age, prev.Age)
			}
			if f.Factor.LessThan(prev.Factor) {
				return fmt.Errorf("rate band %d: factor decreases at age %d", i, f.Age)
			}
		}
	}

	for pt, rule := range limits.PropertyTypes {
		if _, err := domain.ParsePropertyType(string(pt)); err != nil {
			return fmt.Errorf("property_types: %w", err)
		}
		if rule.FactorMultiplier.IsNegative() || rule.FactorMultiplier.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("property_types.%s: factor_multiplier must be between 0 and 1", pt)
		}
	}

	c := limits.Costs
	for name, v := range map[string]decimal.Decimal{
		"origination_tier_threshold":  c.OriginationTierThreshold,
		"origination_rate_first_tier": c.OriginationRateFirstTier,
		"origination_rate_remainder":  c.OriginationRateRemainder,
		"origination_minimum":         c.OriginationMinimum,
		"origination_maximum":         c.OriginationMaximum,
		"upfront_mip_rate":            c.UpfrontMIPRate,
		"other_closing_costs":         c.OtherClosingCosts,
	} {
		if v.IsNegative() {
			return fmt.Errorf("costs.%s cannot be negative", name)
		}
	}
	if c.OriginationMaximum.IsPositive() && c.OriginationMaximum.LessThan(c.OriginationMinimum) {
		return fmt.Errorf("costs.origination_maximum is below origination_minimum")
	}
	return nil
}
