package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLendingLimits(t *testing.T) {
	limits, err := DefaultLendingLimits()
	require.NoError(t, err, "embedded table must validate")

	assert.Equal(t, 62, limits.MinimumAge)
	assert.True(t, limits.MaxClaimAmount.Equal(decimal.NewFromInt(1209750)))
	assert.Len(t, limits.RateBands, 5)
	assert.NotEmpty(t, limits.Metadata.Description)

	band, ok := limits.Band(decimal.Zero)
	require.True(t, ok)
	assert.True(t, band.MaxExpectedRate.Equal(decimal.NewFromInt(7)), "default 6.5% falls in the 7% band")

	rule := limits.PropertyRule(domain.PropertyManufactured)
	assert.False(t, rule.Eligible)
	assert.True(t, limits.PropertyRule(domain.PropertyCondo).Eligible)
}

func TestDefaultLendingLimits_HigherRatesLowerFactors(t *testing.T) {
	limits, err := DefaultLendingLimits()
	require.NoError(t, err)

	for i := 1; i < len(limits.RateBands); i++ {
		prev, cur := limits.RateBands[i-1], limits.RateBands[i]
		require.Equal(t, len(prev.Factors), len(cur.Factors))
		for j := range cur.Factors {
			assert.True(t, cur.Factors[j].Factor.LessThanOrEqual(prev.Factors[j].Factor),
				"band %d age %d", i, cur.Factors[j].Age)
		}
	}
}

func TestLoadLendingLimits(t *testing.T) {
	limits, err := LoadLendingLimits("")
	require.NoError(t, err)
	assert.NotNil(t, limits, "empty path loads the embedded table")

	_, err = LoadLendingLimits("missing.yaml")
	assert.ErrorContains(t, err, "failed to read lending limits file")

	path := filepath.Join(t.TempDir(), "limits.yaml")
	custom := strings.Replace(string(defaultLendingLimits), "max_claim_amount: 1209750", "max_claim_amount: 1000000", 1)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	limits, err = LoadLendingLimits(path)
	require.NoError(t, err)
	assert.True(t, limits.MaxClaimAmount.Equal(decimal.NewFromInt(1000000)))
}

func TestValidateLendingLimits(t *testing.T) {
	valid := func() *domain.LendingLimits {
		return &domain.LendingLimits{
			MaxClaimAmount: decimal.NewFromInt(1000000),
			MinimumAge:     62,
			RateBands: []domain.RateBand{
				{MaxExpectedRate: decimal.NewFromInt(6), Factors: []domain.AgeFactor{
					{Age: 62, Factor: decimal.RequireFromString("0.4")},
					{Age: 70, Factor: decimal.RequireFromString("0.5")},
				}},
				{MaxExpectedRate: decimal.NewFromInt(9), Factors: []domain.AgeFactor{
					{Age: 62, Factor: decimal.RequireFromString("0.3")},
				}},
			},
		}
	}
	require.NoError(t, ValidateLendingLimits(valid()))

	tests := []struct {
		name    string
		mutate  func(*domain.LendingLimits)
		message string
	}{
		{"no max claim", func(l *domain.LendingLimits) { l.MaxClaimAmount = decimal.Zero }, "max_claim_amount"},
		{"no minimum age", func(l *domain.LendingLimits) { l.MinimumAge = 0 }, "minimum_age"},
		{"no bands", func(l *domain.LendingLimits) { l.RateBands = nil }, "at least one rate band"},
		{"bands out of order", func(l *domain.LendingLimits) {
			l.RateBands[1].MaxExpectedRate = decimal.NewFromInt(5)
		}, "must increase"},
		{"empty band", func(l *domain.LendingLimits) { l.RateBands[1].Factors = nil }, "no factors"},
		{"decreasing factor", func(l *domain.LendingLimits) {
			l.RateBands[0].Factors[1].Factor = decimal.RequireFromString("0.3")
		}, "factor decreases"},
		{"ages out of order", func(l *domain.LendingLimits) { l.RateBands[0].Factors[1].Age = 60 }, "ages must increase"},
		{"factor above one", func(l *domain.LendingLimits) {
			l.RateBands[0].Factors[1].Factor = decimal.RequireFromString("1.2")
		}, "between 0 and 1"},
		{"unknown property type", func(l *domain.LendingLimits) {
			l.PropertyTypes = map[domain.PropertyType]domain.PropertyRule{"castle": {Eligible: true}}
		}, "unknown property type"},
		{"negative cost", func(l *domain.LendingLimits) {
			l.Costs.OtherClosingCosts = decimal.NewFromInt(-1)
		}, "other_closing_costs"},
		{"max below min", func(l *domain.LendingLimits) {
			l.Costs.OriginationMinimum = decimal.NewFromInt(5000)
			l.Costs.OriginationMaximum = decimal.NewFromInt(1000)
		}, "origination_maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := valid()
			tt.mutate(limits)
			err := ValidateLendingLimits(limits)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseLendingLimits_InvalidYAML(t *testing.T) {
	_, err := ParseLendingLimits([]byte("rate_bands: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse lending limits YAML")
}
