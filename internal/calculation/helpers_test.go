package calculation

import (
	"sync"
	"testing"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(prefix, format string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, prefix+format)
}

func (tl *TestLogger) Debugf(format string, args ...any) { tl.record("DEBUG: ", format) }
func (tl *TestLogger) Infof(format string, args ...any)  { tl.record("INFO: ", format) }
func (tl *TestLogger) Warnf(format string, args ...any)  { tl.record("WARN: ", format) }
func (tl *TestLogger) Errorf(format string, args ...any) { tl.record("ERROR: ", format) }

func (tl *TestLogger) count(prefix string) int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	n := 0
	for _, m := range tl.messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int {
	return &i
}

func factors(pairs ...string) []domain.AgeFactor {
	out := make([]domain.AgeFactor, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		age := decimal.RequireFromString(pairs[i]).IntPart()
		out = append(out, domain.AgeFactor{Age: int(age), Factor: d(pairs[i+1])})
	}
	return out
}

// testLimits is a small fixed table so expectations do not move with the shipped data
func testLimits() *domain.LendingLimits {
	return &domain.LendingLimits{
		Metadata:            domain.LendingLimitsMetadata{DataYear: 2025, Description: "test table"},
		MaxClaimAmount:      d("1209750"),
		MinimumAge:          62,
		DefaultExpectedRate: d("6.5"),
		RateBands: []domain.RateBand{
			{MaxExpectedRate: d("6.0"), Factors: factors("62", "0.40", "65", "0.42", "70", "0.46", "75", "0.50", "80", "0.55", "85", "0.60")},
			{MaxExpectedRate: d("99"), Factors: factors("62", "0.35", "65", "0.37", "70", "0.41", "75", "0.45", "80", "0.50", "85", "0.55")},
		},
		PropertyTypes: map[domain.PropertyType]domain.PropertyRule{
			domain.PropertySingleFamily: {Eligible: true, FactorMultiplier: d("1")},
			domain.PropertyCondo:        {Eligible: true, FactorMultiplier: d("0.95")},
			domain.PropertyManufactured: {Eligible: false, FactorMultiplier: d("1")},
		},
		Costs: domain.CostRules{
			OriginationTierThreshold: d("200000"),
			OriginationRateFirstTier: d("0.02"),
			OriginationRateRemainder: d("0.01"),
			OriginationMinimum:       d("2500"),
			OriginationMaximum:       d("6000"),
			UpfrontMIPRate:           d("0.02"),
			OtherClosingCosts:        d("2500"),
		},
	}
}

func testEngine(t *testing.T) *ProjectionEngine {
	t.Helper()
	engine, err := NewProjectionEngine(testLimits())
	require.NoError(t, err)
	return engine
}

// scenarioInput is a 65 year old with ten years paid on a 30 year loan
func scenarioInput() domain.ReverseMortgageInput {
	return domain.ReverseMortgageInput{
		ApplicationYear:        2025,
		CurrentAge:             65,
		CurrentHomeValue:       d("400000"),
		HomeAppreciationRate:   d("3.5"),
		CurrentMortgageBalance: d("50000"),
		MonthlyPayment:         d("1000"),
		MortgageInterestRate:   d("4.5"),
		LoanTermYears:          30,
		MortgageStartYear:      2015,
		PropertyType:           domain.PropertySingleFamily,
		IsPrimaryResidence:     true,
	}
}
