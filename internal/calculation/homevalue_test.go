package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectHomeValue(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		rate     string
		years    int
		expected float64
	}{
		{"zero years returns base", "400000", "3.5", 0, 400000},
		{"one year", "400000", "3.5", 1, 414000},
		{"ten years", "400000", "3.5", 10, 400000 * math.Pow(1.035, 10)},
		{"zero rate", "250000", "0", 25, 250000},
		{"negative rate is not floored", "300000", "-2", 5, 300000 * math.Pow(0.98, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProjectHomeValue(d(tt.base), d(tt.rate), tt.years)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got.InexactFloat64(), 0.0001, "home value after %d years", tt.years)
		})
	}
}

func TestProjectHomeValue_Exact(t *testing.T) {
	got, err := ProjectHomeValue(d("400000"), d("3.5"), 2)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("428490")), "expected exact compounding, got %s", got)
}

func TestProjectHomeValue_Errors(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		rate  string
		years int
		field string
	}{
		{"zero base", "0", "3", 1, "currentHomeValue"},
		{"negative base", "-1", "3", 1, "currentHomeValue"},
		{"rate at -100", "100000", "-100", 1, "homeAppreciationRate"},
		{"rate below -100", "100000", "-150", 1, "homeAppreciationRate"},
		{"negative years", "100000", "3", -1, "yearsElapsed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectHomeValue(d(tt.base), d(tt.rate), tt.years)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInputRange), "should match ErrInputRange")

			var rangeErr *InputRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.field, rangeErr.Field)
		})
	}
}

func TestProjectHomeValueMonths(t *testing.T) {
	base, rate := d("400000"), d("3.5")

	yearly, err := ProjectHomeValue(base, rate, 3)
	require.NoError(t, err)
	monthly, err := ProjectHomeValueMonths(base, rate, 36)
	require.NoError(t, err)
	assert.True(t, yearly.Equal(monthly), "whole years must match the annual projector")

	half, err := ProjectHomeValueMonths(base, rate, 6)
	require.NoError(t, err)
	assert.InDelta(t, 400000*math.Sqrt(1.035), half.InexactFloat64(), 0.01)

	// monotonic for positive rates
	prev := decimal.Zero
	for m := 0; m <= 24; m++ {
		v, err := ProjectHomeValueMonths(base, rate, m)
		require.NoError(t, err)
		assert.True(t, v.GreaterThan(prev), "month %d should exceed month %d", m, m-1)
		prev = v
	}

	_, err = ProjectHomeValueMonths(base, rate, -1)
	assert.ErrorIs(t, err, ErrInputRange)
}
