package debt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDefaultDebts(t *testing.T) {
	results := Calculate(Inputs{Debts: defaultDebts(), ExtraPayment: 100, Strategy: Avalanche})

	assert.Equal(t, 23000.0, results.TotalDebt)
	assert.Equal(t, 560.0, results.TotalMinimumPayment)
	assert.Equal(t, 660.0, results.TotalMonthlyPayment)
	assert.Equal(t, 48, results.PayoffMonths)
	assert.InDelta(t, 4866.10, results.TotalInterest, 0.005)

	assert.Equal(t, 64, results.Baseline.PayoffMonths)
	assert.InDelta(t, 7145.55, results.Baseline.TotalInterest, 0.005)
	assert.True(t, results.Baseline.Converged)

	assert.InDelta(t, 2279.45, results.InterestSaved, 0.005)
	assert.Equal(t, 16, results.TimeSaved)
	assert.True(t, results.Converged)
	assert.Equal(t, "USD", results.Currency)
}

func TestCalculateSavingsNeverNegative(t *testing.T) {
	// the minimum strategy ignores the extra payment, so it matches the baseline
	results := Calculate(Inputs{Debts: mixedDebts(), ExtraPayment: 300, Strategy: Minimum, Currency: "EUR"})

	assert.Equal(t, 0.0, results.InterestSaved)
	assert.Equal(t, 0, results.TimeSaved)
	assert.Equal(t, results.Baseline.PayoffMonths, results.PayoffMonths)
	assert.Equal(t, "EUR", results.Currency)
}

func TestCalculateEmptyDebts(t *testing.T) {
	results := Calculate(Inputs{ExtraPayment: 100})

	assert.Zero(t, results.TotalDebt)
	assert.Zero(t, results.TotalMonthlyPayment)
	assert.Zero(t, results.PayoffMonths)
	assert.Empty(t, results.DebtSchedule)
	assert.Empty(t, results.MonthlyBreakdown)
	assert.True(t, results.Converged)
}

func TestCompareStrategies(t *testing.T) {
	comparison := CompareStrategies(mixedDebts(), 200)

	assert.Equal(t, Avalanche, comparison.Recommended)
	assert.InDelta(t, 3843.19, comparison.Avalanche.TotalInterest, 0.005)
	assert.InDelta(t, 5951.37, comparison.Snowball.TotalInterest, 0.005)
	assert.InDelta(t, 2108.18, comparison.InterestSaved, 0.005)
	assert.Equal(t, 8, comparison.MonthsSaved)
	assert.Equal(t, Minimum, comparison.Minimum.Strategy)
}

func TestInputsJSONStrategy(t *testing.T) {
	var inputs Inputs
	err := json.Unmarshal([]byte(`{"strategy":"snowball","extraPayment":50,"debts":[{"name":"Card","balance":100}]}`), &inputs)
	require.NoError(t, err)
	assert.Equal(t, Snowball, inputs.Strategy)
	assert.Len(t, inputs.Debts, 1)

	out, err := json.Marshal(Summary{Strategy: Minimum})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"strategy":"minimum"`)

	err = json.Unmarshal([]byte(`{"strategy":"hurricane"}`), &inputs)
	assert.Error(t, err)
}
