package calculation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectionEngine(t *testing.T) {
	engine, err := NewProjectionEngine(testLimits())

	require.NoError(t, err)
	assert.NotNil(t, engine.Reverse, "Should initialize reverse mortgage calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")

	_, err = NewProjectionEngine(nil)
	assert.Error(t, err, "Should require a lending-limit table")
}

func TestProjectionEngine_SetLogger(t *testing.T) {
	engine := testEngine(t)

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestProject_EndToEndScenario(t *testing.T) {
	engine := testEngine(t)

	result, err := engine.Project(context.Background(), scenarioInput(), 20)
	require.NoError(t, err)
	require.Len(t, result.Rows, 21)

	row := result.Rows[0]
	assert.Equal(t, 2025, row.Year)
	assert.Equal(t, 65, row.Age)
	assert.True(t, row.HomeValue.Equal(d("400000")), "home value at application")
	assert.True(t, row.RemainingMortgageBalance.IsPositive(), "loan partially amortized")
	assert.True(t, row.RemainingMortgageBalance.LessThan(d("50000")), "loan partially amortized")
	assert.True(t, row.HomeEquity.Equal(row.HomeValue.Sub(row.RemainingMortgageBalance)))
	assert.False(t, row.ReverseMortgageNetProceeds.IsNegative())

	// 400000 * 0.37 - 40044.72 - 16500
	assert.InDelta(t, 91455.28, row.ReverseMortgageNetProceeds.InexactFloat64(), 0.01)
	assert.Equal(t, domain.StatusEligible, row.Status)

	assert.Equal(t, 2028, result.Summary.MortgagePayoffYear)
	assert.Equal(t, 2025, result.Summary.FirstEligibleYear)
	assert.Equal(t, domain.StatusEligible, result.Summary.ApplicationStatus)
	assert.NotEmpty(t, result.Assumptions)
}

func TestProject_RowInvariants(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.SpouseAge = intPtr(63)

	result, err := engine.Project(context.Background(), in, 40)
	require.NoError(t, err)
	require.Len(t, result.Rows, 41)

	for i, row := range result.Rows {
		assert.Equal(t, in.ApplicationYear+i, row.Year, "rows ordered by year")
		assert.Equal(t, in.CurrentAge+i, row.Age)
		require.NotNil(t, row.SpouseAge)
		assert.Equal(t, 63+i, *row.SpouseAge)
		assert.True(t, row.HomeEquity.Equal(row.HomeValue.Sub(row.RemainingMortgageBalance)), "equity identity in %d", row.Year)
		assert.False(t, row.RemainingMortgageBalance.IsNegative())
		assert.False(t, row.ReverseMortgageNetProceeds.IsNegative())
		if i > 0 {
			prev := result.Rows[i-1]
			assert.True(t, row.HomeValue.GreaterThan(prev.HomeValue), "positive appreciation grows value")
			assert.True(t, row.RemainingMortgageBalance.LessThanOrEqual(prev.RemainingMortgageBalance))
		}
	}
}

func TestProject_ZeroHorizon(t *testing.T) {
	engine := testEngine(t)

	result, err := engine.Project(context.Background(), scenarioInput(), 0)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 0, result.Summary.MortgagePayoffYear, "payoff falls outside the horizon")
	assert.True(t, result.Summary.EquityAtHorizon.Equal(result.Rows[0].HomeEquity))
}

func TestProject_SpousalRule(t *testing.T) {
	engine := testEngine(t)

	couple := scenarioInput()
	couple.CurrentAge = 72
	couple.SpouseAge = intPtr(64)

	single := scenarioInput()
	single.CurrentAge = 64

	coupleResult, err := engine.Project(context.Background(), couple, 15)
	require.NoError(t, err)
	singleResult, err := engine.Project(context.Background(), single, 15)
	require.NoError(t, err)

	for i := range coupleResult.Rows {
		c, s := coupleResult.Rows[i], singleResult.Rows[i]
		assert.True(t, c.ReverseMortgagePrincipalLimit.Equal(s.ReverseMortgagePrincipalLimit),
			"%d: couple %s vs youngest alone %s", c.Year, c.ReverseMortgagePrincipalLimit, s.ReverseMortgagePrincipalLimit)
		assert.True(t, c.ReverseMortgageNetProceeds.Equal(s.ReverseMortgageNetProceeds))
	}
}

func TestProject_NotPrimaryResidence(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.IsPrimaryResidence = false

	result, err := engine.Project(context.Background(), in, 10)
	require.NoError(t, err)

	for _, row := range result.Rows {
		assert.Equal(t, domain.StatusNotPrimaryResidence, row.Status)
		assert.True(t, row.ReverseMortgageNetProceeds.IsZero())
		assert.True(t, row.ReverseMortgagePrincipalLimit.IsPositive(), "limit is still reported")
	}
	assert.Equal(t, 0, result.Summary.FirstEligibleYear)
	assert.True(t, result.Summary.MaxNetProceeds.IsZero())
}

func TestProject_InsufficientEquityIsNotAnError(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.CurrentMortgageBalance = d("380000")
	in.MortgageStartYear = 2024
	in.MonthlyPayment = decimal.Zero

	result, err := engine.Project(context.Background(), in, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInsufficientEquity, result.Rows[0].Status)
	assert.True(t, result.Rows[0].ReverseMortgageNetProceeds.IsZero())
}

func TestProject_BecomesEligibleWithAge(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.CurrentAge = 60

	result, err := engine.Project(context.Background(), in, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusIneligibleAge, result.Rows[0].Status)
	assert.Equal(t, domain.StatusIneligibleAge, result.Rows[1].Status)
	assert.Equal(t, domain.StatusEligible, result.Rows[2].Status)
	assert.Equal(t, 2027, result.Summary.FirstEligibleYear)
	assert.True(t, result.Summary.ProceedsAtApplication.IsZero())
}

func TestProject_UnderwaterEquityFloorsAtZero(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.CurrentHomeValue = d("150000")
	in.HomeAppreciationRate = d("-5")
	in.CurrentMortgageBalance = d("200000")
	in.MortgageStartYear = 2024
	in.MonthlyPayment = decimal.Zero

	result, err := engine.Project(context.Background(), in, 5)
	require.NoError(t, err)
	for _, row := range result.Rows {
		assert.True(t, row.HomeValue.LessThan(row.RemainingMortgageBalance))
		assert.True(t, row.HomeEquity.IsZero(), "reported equity floors at zero in %d", row.Year)
		assert.Equal(t, domain.StatusInsufficientEquity, row.Status)
	}
}

func TestProject_NoMortgage(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.CurrentMortgageBalance = decimal.Zero
	in.MonthlyPayment = decimal.Zero
	in.LoanTermYears = 0

	result, err := engine.Project(context.Background(), in, 3)
	require.NoError(t, err)
	for _, row := range result.Rows {
		assert.True(t, row.RemainingMortgageBalance.IsZero())
		assert.True(t, row.HomeEquity.Equal(row.HomeValue))
	}
	assert.Equal(t, 0, result.Summary.MortgagePayoffYear, "no loan to pay off")
}

func TestProject_LoanRetiredBeforeApplication(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.MortgageStartYear = in.ApplicationYear - 35
	in.MonthlyPayment = decimal.Zero

	result, err := engine.Project(context.Background(), in, 10)
	require.NoError(t, err)
	assert.True(t, result.Rows[0].RemainingMortgageBalance.IsZero(), "30 year loan ended in %d", in.MortgageStartYear+30)
	assert.Equal(t, 0, result.Summary.MortgagePayoffYear, "payoff precedes the horizon")
}

func TestProject_PayoffYearIsFinalPaymentYear(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.MonthlyPayment = decimal.Zero

	result, err := engine.Project(context.Background(), in, 30)
	require.NoError(t, err)
	// 360 scheduled payments from January 2015 end in December 2044
	assert.Equal(t, 2044, result.Summary.MortgagePayoffYear)
	assert.True(t, result.Rows[20].RemainingMortgageBalance.IsZero(), "balance is zero on January 1, 2045")
}

func TestProject_ProjectedValuesHaveFixedScale(t *testing.T) {
	engine := testEngine(t)

	result, err := engine.Project(context.Background(), scenarioInput(), MaxHorizonYears)
	require.NoError(t, err)

	for _, row := range result.Rows {
		assert.GreaterOrEqual(t, row.HomeValue.Exponent(), int32(-valuePrecision), "home value scale in %d", row.Year)
	}
	assert.GreaterOrEqual(t, result.Summary.HomeValueAtHorizon.Exponent(), int32(-valuePrecision))

	data, err := json.Marshal(result.Rows[40].HomeValue)
	require.NoError(t, err)
	assert.Less(t, len(data), 24, "home value after 40 years serialized as %s", data)

	entries, err := engine.Schedule(scenarioInput(), 2060, 12)
	require.NoError(t, err)
	for _, e := range entries {
		assert.GreaterOrEqual(t, e.HomeValue.Exponent(), int32(-valuePrecision), "month %d", e.Month)
	}
}

func TestProject_FailsAtomically(t *testing.T) {
	engine := testEngine(t)

	tests := []struct {
		name    string
		mutate  func(*domain.ReverseMortgageInput)
		horizon int
	}{
		{"negative horizon", func(in *domain.ReverseMortgageInput) {}, -1},
		{"horizon too long", func(in *domain.ReverseMortgageInput) {}, MaxHorizonYears + 1},
		{"zero home value", func(in *domain.ReverseMortgageInput) { in.CurrentHomeValue = decimal.Zero }, 10},
		{"appreciation at -100%", func(in *domain.ReverseMortgageInput) { in.HomeAppreciationRate = d("-100") }, 10},
		{"negative age", func(in *domain.ReverseMortgageInput) { in.CurrentAge = -1 }, 10},
		{"negative spouse age", func(in *domain.ReverseMortgageInput) { in.SpouseAge = intPtr(-3) }, 10},
		{"negative mortgage balance", func(in *domain.ReverseMortgageInput) { in.CurrentMortgageBalance = d("-5") }, 10},
		{"principal paid above balance", func(in *domain.ReverseMortgageInput) { in.MonthlyPrincipalPaid = d("60000") }, 10},
		{"zero term with a balance", func(in *domain.ReverseMortgageInput) { in.LoanTermYears = 0 }, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioInput()
			tt.mutate(&in)

			result, err := engine.Project(context.Background(), in, tt.horizon)
			assert.Nil(t, result, "no partial rows")
			assert.ErrorIs(t, err, ErrInputRange)
		})
	}
}

func TestProject_Cancelled(t *testing.T) {
	engine := testEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Project(ctx, scenarioInput(), 10)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()
	in.SpouseAge = intPtr(66)

	result, err := engine.Project(context.Background(), in, 2)
	require.NoError(t, err)

	*result.Input.SpouseAge = 99
	assert.Equal(t, 66, *in.SpouseAge)
}

func TestProject_LogsPaymentWarnings(t *testing.T) {
	engine := testEngine(t)
	logger := &TestLogger{}
	engine.SetLogger(logger)

	in := scenarioInput()
	in.MonthlyPayment = d("100")

	_, err := engine.Project(context.Background(), in, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, logger.count("WARN: "), "negative amortization and balloon")
}

func TestProject_Debug(t *testing.T) {
	engine := testEngine(t)
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Project(context.Background(), scenarioInput(), 4)
	require.NoError(t, err)
	assert.Equal(t, 6, logger.count("DEBUG: "), "one run line plus one per row")
}

func TestProjectionResult_Row(t *testing.T) {
	engine := testEngine(t)
	result, err := engine.Project(context.Background(), scenarioInput(), 5)
	require.NoError(t, err)

	row, ok := result.Row(2027)
	require.True(t, ok)
	assert.Equal(t, 2027, row.Year)

	_, ok = result.Row(2031)
	assert.False(t, ok)
}

func TestEngine_Schedule(t *testing.T) {
	engine := testEngine(t)
	in := scenarioInput()

	entries, err := engine.Schedule(in, 2025, 18)
	require.NoError(t, err)
	require.Len(t, entries, 18)

	assert.True(t, entries[0].HomeValue.Equal(d("400000")))
	assert.True(t, entries[12].HomeValue.Equal(d("414000")))
	assert.True(t, entries[0].Payment.Equal(d("1000")))

	_, err = engine.Schedule(in, 2024, 12)
	assert.ErrorIs(t, err, ErrInputRange)
}

func TestProjectBatch(t *testing.T) {
	engine := testEngine(t)

	bad := scenarioInput()
	bad.CurrentHomeValue = decimal.Zero

	requests := []ProjectionRequest{
		{Name: "base", Input: scenarioInput(), HorizonYears: 10},
		{Name: "bad", Input: bad, HorizonYears: 10},
		{Name: "short", Input: scenarioInput(), HorizonYears: 2},
	}
	for i := 0; i < 10; i++ {
		requests = append(requests, ProjectionRequest{Name: "extra", Input: scenarioInput(), HorizonYears: i})
	}

	results := engine.ProjectBatch(context.Background(), requests)
	require.Len(t, results, len(requests))

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "base", results[0].Result.Name)
	assert.Len(t, results[0].Result.Rows, 11)

	assert.ErrorIs(t, results[1].Err, ErrInputRange)
	assert.Nil(t, results[1].Result)

	assert.NoError(t, results[2].Err)
	assert.Len(t, results[2].Result.Rows, 3)

	for i := 0; i < 10; i++ {
		r := results[3+i]
		require.NoError(t, r.Err)
		assert.Len(t, r.Result.Rows, i+1, "results keep request order")
	}
}

func TestProjectBatch_Cancelled(t *testing.T) {
	engine := testEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := engine.ProjectBatch(ctx, []ProjectionRequest{{Name: "a", Input: scenarioInput(), HorizonYears: 5}})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}
