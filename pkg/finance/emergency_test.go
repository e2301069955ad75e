package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanEmergencyFund(t *testing.T) {
	results := PlanEmergencyFund(EmergencyFundInputs{
		MonthlyExpenses: 4000,
		CurrentSavings:  5000,
		TargetMonths:    6,
		MonthlySavings:  500,
		AnnualReturn:    2.5,
	})

	assert.Equal(t, 24000.0, results.TargetAmount)
	assert.Equal(t, 19000.0, results.AmountNeeded)
	assert.False(t, results.IsGoalMet)
	assert.True(t, results.Reachable)
	assert.Equal(t, 36, results.MonthsToGoal)
	assert.Equal(t, 3.0, results.YearsToGoal)

	// the projection keeps running to month 60 before stopping on a met goal
	require.Len(t, results.Monthly, 60)
	assert.InDelta(t, 37585.27, results.Monthly[59].Balance, 0.005)
}

func TestPlanEmergencyFundGoalAlreadyMet(t *testing.T) {
	results := PlanEmergencyFund(EmergencyFundInputs{MonthlyExpenses: 3000, CurrentSavings: 20000, TargetMonths: 6})

	assert.True(t, results.IsGoalMet)
	assert.True(t, results.Reachable)
	assert.Zero(t, results.AmountNeeded)
	assert.Zero(t, results.MonthsToGoal)
	assert.Empty(t, results.Monthly)
}

func TestPlanEmergencyFundNotReached(t *testing.T) {
	results := PlanEmergencyFund(EmergencyFundInputs{MonthlyExpenses: 4000, CurrentSavings: 5000, TargetMonths: 6, MonthlySavings: 100})

	assert.False(t, results.Reachable)
	assert.Zero(t, results.MonthsToGoal)
	assert.Len(t, results.Monthly, 120)
	assert.InDelta(t, 17000.00, results.Monthly[119].Balance, 0.005)
}

func TestPlanEmergencyFundExactTarget(t *testing.T) {
	results := PlanEmergencyFund(EmergencyFundInputs{MonthlyExpenses: 1000, CurrentSavings: 1000, TargetMonths: 3, MonthlySavings: 500})

	assert.Equal(t, 4, results.MonthsToGoal)
	assert.InDelta(t, 3.0, results.Monthly[3].MonthsOfExpense, 0.005)
}

func TestPlanEmergencyFundNoSavings(t *testing.T) {
	results := PlanEmergencyFund(EmergencyFundInputs{MonthlyExpenses: 2000, TargetMonths: 3})

	assert.Equal(t, 6000.0, results.AmountNeeded)
	assert.False(t, results.Reachable)
	assert.Empty(t, results.Monthly)
}
