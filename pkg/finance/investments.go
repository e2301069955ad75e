package finance

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// Compounding is how often growth is credited to an investment.
type Compounding string

const (
	CompoundMonthly   Compounding = "monthly"
	CompoundQuarterly Compounding = "quarterly"
	CompoundAnnually  Compounding = "annually"
)

// ParseCompounding validates a compounding frequency. An empty value means monthly.
func ParseCompounding(value string) (Compounding, error) {
	switch c := Compounding(strings.ToLower(strings.TrimSpace(value))); c {
	case "", CompoundMonthly:
		return CompoundMonthly, nil
	case CompoundQuarterly, CompoundAnnually:
		return c, nil
	default:
		return CompoundMonthly, fmt.Errorf("unknown compounding frequency %q", value)
	}
}

// periods is the number of months between growth credits.
func (c Compounding) periods() int {
	switch c {
	case CompoundQuarterly:
		return 3
	case CompoundAnnually:
		return constants.MonthsPerYear
	default:
		return 1
	}
}

// InvestmentInputs holds the inputs of the investment growth projector.
// ContributionIncrease is the annual escalation of the monthly contribution in
// percent.
type InvestmentInputs struct {
	Initial              float64     `json:"initialInvestment" yaml:"initialInvestment" mapstructure:"initialInvestment"`
	MonthlyContribution  float64     `json:"monthlyContribution" yaml:"monthlyContribution" mapstructure:"monthlyContribution"`
	AnnualReturn         float64     `json:"annualReturn" yaml:"annualReturn" mapstructure:"annualReturn"`
	Years                int         `json:"years" yaml:"years" mapstructure:"years"`
	InflationRate        float64     `json:"inflationRate" yaml:"inflationRate" mapstructure:"inflationRate"`
	ContributionIncrease float64     `json:"contributionIncrease" yaml:"contributionIncrease" mapstructure:"contributionIncrease"`
	Compounding          Compounding `json:"compounding" yaml:"compounding" mapstructure:"compounding"`
	Currency             string      `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// InvestmentMonth is one month of the projection. Month is the 1..12 position
// within Year.
type InvestmentMonth struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	Contribution float64 `json:"monthlyContribution"`
	Growth       float64 `json:"growth"`
	Balance      float64 `json:"balance"`
	RealValue    float64 `json:"realValue"`
}

// InvestmentYear rolls up twelve months of the projection.
type InvestmentYear struct {
	Year            int     `json:"year"`
	StartingBalance float64 `json:"startingBalance"`
	Contributions   float64 `json:"contributions"`
	Growth          float64 `json:"growth"`
	EndingBalance   float64 `json:"endingBalance"`
	RealValue       float64 `json:"realValue"`
}

// InvestmentResults holds the outputs of the investment growth projector.
type InvestmentResults struct {
	FinalAmount float64 `json:"finalAmount"`
	// TotalContributions includes the initial investment.
	TotalContributions float64           `json:"totalContributions"`
	TotalGrowth        float64           `json:"totalGrowth"`
	RealValue          float64           `json:"realValue"`
	Yearly             []InvestmentYear  `json:"yearlyBreakdown"`
	Monthly            []InvestmentMonth `json:"monthlyBreakdown"`
	Currency           string            `json:"currency"`
}

// ProjectGrowth projects an investment with a no-op logger.
func ProjectGrowth(inputs InvestmentInputs) InvestmentResults {
	return NewProjector(nil).Growth(inputs)
}

// Growth projects an investment month by month. Each month's contribution is
// added before that month's growth is credited.
func (p *Projector) Growth(inputs InvestmentInputs) InvestmentResults {
	results := InvestmentResults{
		Yearly:   []InvestmentYear{},
		Monthly:  []InvestmentMonth{},
		Currency: currencyOrDefault(inputs.Currency),
	}
	if inputs.Years <= 0 {
		return results
	}

	compounding, err := ParseCompounding(string(inputs.Compounding))
	if err != nil {
		p.logger.Warn("falling back to monthly compounding",
			zap.String("op", "finance.Growth"),
			zap.Error(err),
		)
	}
	every := compounding.periods()
	periodRate := percentToDecimal(inputs.AnnualReturn) * float64(every) / constants.MonthsPerYear
	escalation := mathutil.MonthlyRate(inputs.ContributionIncrease)
	totalMonths := inputs.Years * constants.MonthsPerYear

	balance := inputs.Initial
	totalContributions := inputs.Initial
	contribution := inputs.MonthlyContribution
	year := InvestmentYear{Year: 1, StartingBalance: mathutil.Round(balance)}
	var yearContributions, yearGrowth float64

	for month := 1; month <= totalMonths; month++ {
		if month > 1 && escalation != 0 {
			contribution *= 1 + escalation
		}
		balance += contribution
		totalContributions += contribution
		yearContributions += contribution

		growth := 0.0
		if month%every == 0 {
			growth = balance * periodRate
			balance += growth
			yearGrowth += growth
		}

		real := realValue(balance, inputs.InflationRate, float64(month)/constants.MonthsPerYear)
		results.Monthly = append(results.Monthly, InvestmentMonth{
			Month:        mathutil.MonthInYear(month),
			Year:         mathutil.YearOfMonth(month),
			Contribution: mathutil.Round(contribution),
			Growth:       mathutil.Round(growth),
			Balance:      mathutil.Round(balance),
			RealValue:    mathutil.Round(real),
		})

		if month%constants.MonthsPerYear == 0 {
			year.Contributions = mathutil.Round(yearContributions)
			year.Growth = mathutil.Round(yearGrowth)
			year.EndingBalance = mathutil.Round(balance)
			year.RealValue = mathutil.Round(real)
			results.Yearly = append(results.Yearly, year)

			year = InvestmentYear{Year: year.Year + 1, StartingBalance: mathutil.Round(balance)}
			yearContributions, yearGrowth = 0, 0
		}
	}

	results.FinalAmount = mathutil.Round(balance)
	results.TotalContributions = mathutil.Round(totalContributions)
	results.TotalGrowth = mathutil.Round(balance - totalContributions)
	results.RealValue = mathutil.Round(realValue(balance, inputs.InflationRate, float64(inputs.Years)))
	return results
}

// realValue discounts an amount by inflation over the given number of years.
func realValue(amount, inflationPercent, years float64) float64 {
	return amount / math.Pow(1+percentToDecimal(inflationPercent), years)
}
