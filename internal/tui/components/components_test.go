package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParameterSlider_Bounds(t *testing.T) {
	s := NewParameterSlider("appreciation_rate", "Appreciation", dec("9.9"), dec("0"), dec("10"), dec("0.25"))

	s.Increment()
	assert.True(t, s.Value.Equal(dec("9.9")), "increment past max is ignored")

	s.SetValue(dec("12"))
	assert.True(t, s.Value.Equal(dec("10")))
	s.SetValue(dec("-3"))
	assert.True(t, s.Value.Equal(dec("0")))

	s.Decrement()
	assert.True(t, s.Value.Equal(dec("0")))
	s.Increment()
	assert.True(t, s.Value.Equal(dec("0.25")))

	s.SetValue(dec("5"))
	assert.InDelta(t, 0.5, s.Fraction(), 1e-9)
}

func TestParameterSlider_NewClampsInitialValue(t *testing.T) {
	s := NewParameterSlider("home_value", "Home", dec("5000000"), dec("50000"), dec("3000000"), dec("10000"))
	assert.True(t, s.Value.Equal(dec("3000000")))
}

func TestParameterSlider_FormatValue(t *testing.T) {
	s := NewParameterSlider("k", "K", dec("1"), dec("0"), dec("10"), dec("1"))
	assert.Equal(t, "1.00", s.FormatValue(dec("1")))
	assert.Equal(t, "3.50%", s.WithUnit("%").FormatValue(dec("3.5")))
	assert.Equal(t, "$1,200", s.WithUnit("$").FormatValue(dec("1200")))
	assert.Equal(t, "5 years", s.WithUnit("years").WithPlaces(0).FormatValue(dec("5")))
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("k", "Expected Rate", dec("5"), dec("2"), dec("12"), dec("0.25")).
		WithUnit("%").WithDescription("Selects the band")
	out := s.Render()
	assert.Contains(t, out, "Expected Rate")
	assert.Contains(t, out, "5.00%")
	assert.Contains(t, out, "2.00%")
	assert.Contains(t, out, "Selects the band")
	assert.Contains(t, s.RenderCompact(), "Expected Rate:")
}

func TestMetricCard(t *testing.T) {
	card := NewCurrencyCard("Net Proceeds Now", dec("80955.28")).WithDelta(dec("1500")).WithCaption("eligible from 2025")
	out := card.Render()
	assert.Contains(t, out, "Net Proceeds Now")
	assert.Contains(t, out, "$80,955")
	assert.Contains(t, out, "+$1,500")

	compact := NewYearCard("Mortgage Paid Off", 0).WithDelta(decimal.Zero).RenderCompact()
	assert.Contains(t, compact, "Mortgage Paid Off: -")
	assert.NotContains(t, compact, "▲")

	assert.Empty(t, MetricGrid(nil, 3))
	assert.NotEmpty(t, MetricGrid([]*MetricCard{card, NewYearCard("Year", 2030)}, 0))
}

func sampleRows(n int) []domain.ProjectionRow {
	rows := make([]domain.ProjectionRow, n)
	for i := range rows {
		rows[i] = domain.ProjectionRow{
			Year:                       2025 + i,
			Age:                        65 + i,
			HomeValue:                  decimal.NewFromInt(int64(400000 + 10000*i)),
			RemainingMortgageBalance:   decimal.NewFromInt(int64(40000 - 1000*i)),
			HomeEquity:                 decimal.NewFromInt(int64(360000 + 11000*i)),
			LendingLimitFactor:         dec("0.35"),
			ReverseMortgageNetProceeds: decimal.NewFromInt(int64(80000 + 5000*i)),
			Status:                     domain.StatusEligible,
		}
	}
	return rows
}

func TestProjectionTable_Scroll(t *testing.T) {
	table := NewProjectionTable(sampleRows(5), 3)

	table.ScrollUp()
	assert.Equal(t, 0, table.Offset)

	table.ScrollDown()
	table.ScrollDown()
	table.ScrollDown()
	assert.Equal(t, 2, table.Offset, "window stops at the last page")

	out := table.Render()
	assert.Contains(t, out, "2029")
	assert.NotContains(t, out, "2026 ")
	assert.Contains(t, out, "rows 3-5 of 5")
}

func TestProjectionTable_Empty(t *testing.T) {
	assert.Contains(t, NewProjectionTable(nil, 0).Render(), "No projection rows")
}

func TestProjectionChart(t *testing.T) {
	result := &domain.ProjectionResult{
		Input: domain.ReverseMortgageInput{CurrentMortgageBalance: dec("50000")},
		Rows:  sampleRows(11),
	}
	chart := ProjectionChart(result, 40, 8)
	require.Len(t, chart.Series, 3)
	assert.Len(t, chart.Labels, 11)

	out := chart.Render()
	assert.Contains(t, out, "Projection by Year")
	assert.Contains(t, out, "Home Value")
	assert.Contains(t, out, "2035")
}

func TestProjectionChart_NoMortgageSingleRow(t *testing.T) {
	result := &domain.ProjectionResult{Rows: sampleRows(1)}
	chart := ProjectionChart(result, 30, 5)
	assert.Len(t, chart.Series, 2)
	assert.NotPanics(t, func() { _ = chart.Render() })
}

func TestASCIIChart_Empty(t *testing.T) {
	assert.Contains(t, NewASCIIChart("x").Render(), "No data to display")
	assert.Contains(t, ProjectionChart(nil, 30, 5).Render(), "No data to display")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.5M", formatChartValue(1_500_000))
	assert.Equal(t, "$250K", formatChartValue(250_000))
	assert.Equal(t, "$-40K", formatChartValue(-40_000))
	assert.Equal(t, "$12", formatChartValue(12))
}
