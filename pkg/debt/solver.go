package debt

import (
	"math"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// Solution is the outcome of searching for an extra payment.
type Solution struct {
	Strategy     Strategy `json:"strategy"`
	TargetMonths int      `json:"targetMonths"`
	ExtraPayment float64  `json:"extraPayment"`
	PayoffMonths int      `json:"payoffMonths"`
	Iterations   int      `json:"iterations"`
	// Converged is false when no extra payment up to the total outstanding
	// balance pays everything off within TargetMonths.
	Converged bool `json:"converged"`
}

// TargetInputs asks for the extra payment that clears Debts within
// TargetMonths.
type TargetInputs struct {
	Debts        []Debt   `json:"debts" yaml:"debts" mapstructure:"debts"`
	Strategy     Strategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`
	TargetMonths int      `json:"targetMonths" yaml:"targetMonths" mapstructure:"targetMonths"`
	Currency     string   `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// SolveExtraPayment finds the smallest extra monthly payment, to the cent, that
// clears every debt within targetMonths under strategy.
func SolveExtraPayment(debts []Debt, strategy Strategy, targetMonths int) Solution {
	return NewSimulator(nil).Solve(debts, strategy, targetMonths)
}

// Solve bisects the extra payment between zero and the total outstanding
// balance.
func (s *Simulator) Solve(debts []Debt, strategy Strategy, targetMonths int) Solution {
	solution := Solution{Strategy: strategy, TargetMonths: targetMonths}
	if targetMonths <= 0 {
		return solution
	}

	meets := func(extra float64) (bool, int) {
		scenario := s.Simulate(debts, extra, strategy)
		return scenario.Converged && scenario.PayoffMonths <= targetMonths, scenario.PayoffMonths
	}

	if ok, months := meets(0); ok {
		solution.PayoffMonths = months
		solution.Converged = true
		return solution
	}

	upper := 0.0
	for _, d := range debts {
		upper += mathutil.NonNegative(d.Balance)
	}
	upper = math.Ceil(upper)
	if strategy == Minimum || upper == 0 {
		_, solution.PayoffMonths = meets(0)
		return solution
	}
	if ok, months := meets(upper); !ok {
		solution.ExtraPayment = upper
		solution.PayoffMonths = months
		s.logger.Debug("no extra payment meets the target",
			zap.String("op", "debt.Solve"),
			zap.String("strategy", strategy.String()),
			zap.Int("targetMonths", targetMonths),
			zap.Int("payoffMonths", months),
		)
		return solution
	}

	lower := 0.0
	for solution.Iterations < constants.MaxSolverIterations && upper-lower > constants.CurrencyTolerance {
		solution.Iterations++
		mid := (lower + upper) / 2
		if ok, _ := meets(mid); ok {
			upper = mid
		} else {
			lower = mid
		}
	}

	// The threshold lies in (lower, upper]; settle on the cheapest whole cent.
	extra := math.Floor(upper*constants.PercentageMultiplier) / constants.PercentageMultiplier
	ok, months := meets(extra)
	if !ok {
		extra = math.Ceil(upper*constants.PercentageMultiplier) / constants.PercentageMultiplier
		ok, months = meets(extra)
	}
	solution.ExtraPayment = extra
	solution.PayoffMonths = months
	solution.Converged = ok
	return solution
}
