package finance

import (
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// RetirementInputs holds the inputs of the employer-match retirement projector.
// Contribution, match and cap figures are percentages: a 50% match of
// contributions up to 6% of salary is EmployerMatch 50, EmployerMatchCap 6.
type RetirementInputs struct {
	CurrentAge           int     `json:"currentAge" yaml:"currentAge" mapstructure:"currentAge"`
	RetirementAge        int     `json:"retirementAge" yaml:"retirementAge" mapstructure:"retirementAge"`
	Salary               float64 `json:"currentSalary" yaml:"currentSalary" mapstructure:"currentSalary"`
	CurrentBalance       float64 `json:"currentBalance" yaml:"currentBalance" mapstructure:"currentBalance"`
	EmployeeContribution float64 `json:"employeeContribution" yaml:"employeeContribution" mapstructure:"employeeContribution"`
	EmployerMatch        float64 `json:"employerMatch" yaml:"employerMatch" mapstructure:"employerMatch"`
	EmployerMatchCap     float64 `json:"employerMatchLimit" yaml:"employerMatchLimit" mapstructure:"employerMatchLimit"`
	SalaryGrowth         float64 `json:"salaryIncrease" yaml:"salaryIncrease" mapstructure:"salaryIncrease"`
	AnnualReturn         float64 `json:"annualReturn" yaml:"annualReturn" mapstructure:"annualReturn"`
	// StartYear labels the ledger with calendar years when set; otherwise rows
	// are numbered from 1.
	StartYear int    `json:"startYear" yaml:"startYear" mapstructure:"startYear"`
	Currency  string `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// RetirementYear is one row of the retirement ledger.
type RetirementYear struct {
	Age                  int     `json:"age"`
	Year                 int     `json:"year"`
	Salary               float64 `json:"salary"`
	EmployeeContribution float64 `json:"employeeContribution"`
	EmployerMatch        float64 `json:"employerMatch"`
	TotalContribution    float64 `json:"totalContribution"`
	BeginningBalance     float64 `json:"beginningBalance"`
	Growth               float64 `json:"growth"`
	EndingBalance        float64 `json:"endingBalance"`
}

// RetirementResults holds the outputs of the retirement projector.
type RetirementResults struct {
	YearsToRetirement int     `json:"yearsToRetirement"`
	FinalBalance      float64 `json:"finalBalance"`
	// TotalContributions counts employee contributions only; the starting
	// balance and employer match are reported separately.
	TotalContributions    float64          `json:"totalContributions"`
	TotalEmployerMatch    float64          `json:"totalEmployerMatch"`
	MonthlyIncomeEstimate float64          `json:"monthlyRetirementIncome"`
	Yearly                []RetirementYear `json:"yearlyBreakdown"`
	Currency              string           `json:"currency"`
}

// EmployerMatchFor returns the employer match on a year's employee
// contribution: the contribution, capped at capPercent of salary, scaled by
// matchPercent.
func EmployerMatchFor(salary, employeeContribution, matchPercent, capPercent float64) float64 {
	matchable := salary * percentToDecimal(capPercent)
	return min(employeeContribution, matchable) * percentToDecimal(matchPercent)
}

// ProjectRetirement projects a retirement account with a no-op logger.
func ProjectRetirement(inputs RetirementInputs) RetirementResults {
	return NewProjector(nil).Retirement(inputs)
}

// Retirement projects a retirement account year by year until retirement age.
// Contributions land before the year's growth and salary rises afterwards.
func (p *Projector) Retirement(inputs RetirementInputs) RetirementResults {
	results := RetirementResults{
		Yearly:   []RetirementYear{},
		Currency: currencyOrDefault(inputs.Currency),
	}
	years := inputs.RetirementAge - inputs.CurrentAge
	if years <= 0 {
		return results
	}

	balance := inputs.CurrentBalance
	salary := inputs.Salary
	var totalEmployee, totalMatch float64

	for n := 1; n <= years; n++ {
		employee := mathutil.ApplyPercentage(salary, inputs.EmployeeContribution)
		match := EmployerMatchFor(salary, employee, inputs.EmployerMatch, inputs.EmployerMatchCap)
		beginning := balance

		balance += employee + match
		growth := balance * percentToDecimal(inputs.AnnualReturn)
		balance += growth

		totalEmployee += employee
		totalMatch += match

		label := n
		if inputs.StartYear > 0 {
			label = inputs.StartYear + n
		}
		results.Yearly = append(results.Yearly, RetirementYear{
			Age:                  inputs.CurrentAge + n,
			Year:                 label,
			Salary:               mathutil.Round(salary),
			EmployeeContribution: mathutil.Round(employee),
			EmployerMatch:        mathutil.Round(match),
			TotalContribution:    mathutil.Round(employee + match),
			BeginningBalance:     mathutil.Round(beginning),
			Growth:               mathutil.Round(growth),
			EndingBalance:        mathutil.Round(balance),
		})

		salary *= 1 + percentToDecimal(inputs.SalaryGrowth)
	}

	p.logger.Debug("retirement projected",
		zap.String("op", "finance.Retirement"),
		zap.Int("years", years),
		zap.Float64("finalBalance", mathutil.Round(balance)),
	)

	results.YearsToRetirement = years
	results.FinalBalance = mathutil.Round(balance)
	results.TotalContributions = mathutil.Round(totalEmployee)
	results.TotalEmployerMatch = mathutil.Round(totalMatch)
	results.MonthlyIncomeEstimate = mathutil.Round(balance * constants.SafeWithdrawalRate / constants.MonthsPerYear)
	return results
}
