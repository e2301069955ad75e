package debt

import (
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// Inputs holds the inputs of the debt payoff calculator.
type Inputs struct {
	Debts        []Debt   `json:"debts" yaml:"debts" mapstructure:"debts"`
	ExtraPayment float64  `json:"extraPayment" yaml:"extraPayment" mapstructure:"extraPayment"`
	Strategy     Strategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`
	Currency     string   `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// Summary is the headline of a scenario without its schedules.
type Summary struct {
	Strategy      Strategy `json:"strategy"`
	PayoffMonths  int      `json:"payoffMonths"`
	TotalInterest float64  `json:"totalInterest"`
	TotalPaid     float64  `json:"totalPaid"`
	Converged     bool     `json:"converged"`
}

func summarize(strategy Strategy, s Scenario) Summary {
	return Summary{
		Strategy:      strategy,
		PayoffMonths:  s.PayoffMonths,
		TotalInterest: s.TotalInterest,
		TotalPaid:     s.TotalPaid,
		Converged:     s.Converged,
	}
}

// Results holds the outputs of the debt payoff calculator.
type Results struct {
	Strategy            Strategy         `json:"strategy"`
	TotalDebt           float64          `json:"totalDebt"`
	TotalMinimumPayment float64          `json:"totalMinimumPayment"`
	TotalMonthlyPayment float64          `json:"totalMonthlyPayment"`
	PayoffMonths        int              `json:"payoffMonths"`
	TotalInterest       float64          `json:"totalInterest"`
	TotalPaid           float64          `json:"totalPaid"`
	InterestSaved       float64          `json:"interestSaved"`
	TimeSaved           int              `json:"timeSaved"`
	DebtSchedule        []PayoffEvent    `json:"debtSchedule"`
	MonthlyBreakdown    []MonthBreakdown `json:"monthlyBreakdown"`
	Converged           bool             `json:"converged"`
	// Baseline is the minimum-payments-only run the savings are measured against.
	Baseline Summary `json:"baseline"`
	Currency string  `json:"currency"`
}

// Calculate runs the chosen strategy and a minimum-payment baseline.
func Calculate(inputs Inputs) Results {
	return NewSimulator(nil).Calculate(inputs)
}

// Calculate runs the chosen strategy and a minimum-payment baseline.
func (s *Simulator) Calculate(inputs Inputs) Results {
	currency := inputs.Currency
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	results := Results{
		Strategy:         inputs.Strategy,
		DebtSchedule:     []PayoffEvent{},
		MonthlyBreakdown: []MonthBreakdown{},
		Converged:        true,
		Baseline:         Summary{Strategy: Minimum, Converged: true},
		Currency:         currency,
	}
	if len(inputs.Debts) == 0 {
		return results
	}

	var totalDebt, totalMinimum float64
	for _, d := range inputs.Debts {
		totalDebt += d.Balance
		totalMinimum += d.MinimumPayment
	}

	baseline := s.Simulate(inputs.Debts, 0, Minimum)
	chosen := s.Simulate(inputs.Debts, inputs.ExtraPayment, inputs.Strategy)

	s.logger.Debug("debt payoff calculated",
		zap.String("op", "debt.Calculate"),
		zap.String("strategy", inputs.Strategy.String()),
		zap.Int("payoffMonths", chosen.PayoffMonths),
		zap.Int("baselineMonths", baseline.PayoffMonths),
		zap.Bool("converged", chosen.Converged),
	)

	results.TotalDebt = mathutil.Round(totalDebt)
	results.TotalMinimumPayment = mathutil.Round(totalMinimum)
	results.TotalMonthlyPayment = mathutil.Round(totalMinimum + inputs.ExtraPayment)
	results.PayoffMonths = chosen.PayoffMonths
	results.TotalInterest = chosen.TotalInterest
	results.TotalPaid = chosen.TotalPaid
	results.InterestSaved = mathutil.Round(mathutil.NonNegative(baseline.TotalInterest - chosen.TotalInterest))
	if saved := baseline.PayoffMonths - chosen.PayoffMonths; saved > 0 {
		results.TimeSaved = saved
	}
	results.DebtSchedule = chosen.DebtSchedule
	results.MonthlyBreakdown = chosen.MonthlyBreakdown
	results.Converged = chosen.Converged
	results.Baseline = summarize(Minimum, baseline)
	return results
}

// Comparison lines the three strategies up against each other.
type Comparison struct {
	Avalanche Summary `json:"avalanche"`
	Snowball  Summary `json:"snowball"`
	Minimum   Summary `json:"minimum"`
	// Recommended is the converging strategy with the least interest; ties go
	// to avalanche.
	Recommended Strategy `json:"recommended"`
	// InterestSaved and MonthsSaved measure avalanche against snowball.
	InterestSaved float64 `json:"interestSaved"`
	MonthsSaved   int     `json:"monthsSaved"`
}

// CompareStrategies simulates every strategy with the same extra payment.
func CompareStrategies(debts []Debt, extraPayment float64) Comparison {
	return NewSimulator(nil).Compare(debts, extraPayment)
}

// Compare simulates every strategy with the same extra payment.
func (s *Simulator) Compare(debts []Debt, extraPayment float64) Comparison {
	c := Comparison{
		Avalanche: summarize(Avalanche, s.Simulate(debts, extraPayment, Avalanche)),
		Snowball:  summarize(Snowball, s.Simulate(debts, extraPayment, Snowball)),
		Minimum:   summarize(Minimum, s.Simulate(debts, extraPayment, Minimum)),
	}

	c.Recommended = Avalanche
	best := c.Avalanche
	for _, candidate := range []Summary{c.Snowball, c.Minimum} {
		if candidate.Converged && (!best.Converged || candidate.TotalInterest < best.TotalInterest) {
			best = candidate
			c.Recommended = candidate.Strategy
		}
	}

	c.InterestSaved = mathutil.Round(mathutil.NonNegative(c.Snowball.TotalInterest - c.Avalanche.TotalInterest))
	c.MonthsSaved = c.Snowball.PayoffMonths - c.Avalanche.PayoffMonths
	return c
}
