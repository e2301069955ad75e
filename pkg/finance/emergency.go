package finance

import (
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// EmergencyFundInputs holds the inputs of the emergency fund planner.
type EmergencyFundInputs struct {
	MonthlyExpenses float64 `json:"monthlyExpenses" yaml:"monthlyExpenses" mapstructure:"monthlyExpenses"`
	CurrentSavings  float64 `json:"currentSavings" yaml:"currentSavings" mapstructure:"currentSavings"`
	TargetMonths    float64 `json:"targetMonths" yaml:"targetMonths" mapstructure:"targetMonths"`
	MonthlySavings  float64 `json:"monthlySavings" yaml:"monthlySavings" mapstructure:"monthlySavings"`
	AnnualReturn    float64 `json:"annualReturn" yaml:"annualReturn" mapstructure:"annualReturn"`
	Currency        string  `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// EmergencyFundMonth is one month of the savings projection.
type EmergencyFundMonth struct {
	Month           int     `json:"month"`
	Contribution    float64 `json:"monthlyContribution"`
	Interest        float64 `json:"interest"`
	Balance         float64 `json:"balance"`
	MonthsOfExpense float64 `json:"monthsOfExpensesCovered"`
}

// EmergencyFundResults holds the outputs of the emergency fund planner.
type EmergencyFundResults struct {
	TargetAmount float64 `json:"targetAmount"`
	AmountNeeded float64 `json:"amountNeeded"`
	IsGoalMet    bool    `json:"isGoalMet"`
	// MonthsToGoal is the first projected month at or above the target, 0 when
	// the goal is already met or not reached within the projection.
	MonthsToGoal int                  `json:"monthsToGoal"`
	YearsToGoal  float64              `json:"yearsToGoal"`
	Reachable    bool                 `json:"reachable"`
	Monthly      []EmergencyFundMonth `json:"monthlyBreakdown"`
	Currency     string               `json:"currency"`
}

// PlanEmergencyFund runs the emergency fund planner with a no-op logger.
func PlanEmergencyFund(inputs EmergencyFundInputs) EmergencyFundResults {
	return NewProjector(nil).EmergencyFund(inputs)
}

// EmergencyFund sizes the fund and projects how long saving takes to reach it.
func (p *Projector) EmergencyFund(inputs EmergencyFundInputs) EmergencyFundResults {
	target := inputs.MonthlyExpenses * inputs.TargetMonths
	results := EmergencyFundResults{
		TargetAmount: mathutil.Round(target),
		AmountNeeded: mathutil.Round(mathutil.NonNegative(target - inputs.CurrentSavings)),
		IsGoalMet:    inputs.CurrentSavings >= target,
		Monthly:      []EmergencyFundMonth{},
		Currency:     currencyOrDefault(inputs.Currency),
	}
	results.Reachable = results.IsGoalMet
	if results.IsGoalMet || inputs.MonthlySavings <= 0 {
		return results
	}

	monthlyReturn := mathutil.MonthlyRate(inputs.AnnualReturn)
	balance := inputs.CurrentSavings
	for month := 1; month <= constants.EmergencyFundMaxMonths; month++ {
		interest := balance * monthlyReturn
		balance += inputs.MonthlySavings + interest

		covered := 0.0
		if inputs.MonthlyExpenses > 0 {
			covered = balance / inputs.MonthlyExpenses
		}
		results.Monthly = append(results.Monthly, EmergencyFundMonth{
			Month:           month,
			Contribution:    mathutil.Round(inputs.MonthlySavings),
			Interest:        mathutil.Round(interest),
			Balance:         mathutil.Round(balance),
			MonthsOfExpense: mathutil.Round(covered),
		})

		if balance >= target && results.MonthsToGoal == 0 {
			results.MonthsToGoal = month
		}
		if month >= constants.EmergencyFundMinProjectionMonths && balance >= target {
			break
		}
	}

	results.Reachable = results.MonthsToGoal > 0
	results.YearsToGoal = mathutil.Round(float64(results.MonthsToGoal) / constants.MonthsPerYear)
	if !results.Reachable {
		p.logger.Debug("emergency fund target not reached within projection",
			zap.String("op", "finance.EmergencyFund"),
			zap.Int("months", constants.EmergencyFundMaxMonths),
			zap.Float64("target", results.TargetAmount),
		)
	}
	return results
}
