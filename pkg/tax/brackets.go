// Package tax computes income tax, payroll contributions and take-home pay for
// the UK and US salary calculators.
package tax

import (
	"errors"
	"fmt"
	"math"
)

// Bracket is one marginal band: income in [Min, Max) is taxed at Rate, a
// fraction (0.20 for 20%). The last bracket of a table has Max = +Inf.
type Bracket struct {
	Name string
	Min  float64
	Max  float64
	Rate float64
}

// ErrEmptyBrackets is returned by ValidateBrackets for an empty table.
var ErrEmptyBrackets = errors.New("bracket table is empty")

// Walk applies a bracket table to an amount: each bracket taxes the part of
// the amount that falls inside it.
func Walk(amount float64, brackets []Bracket) float64 {
	var tax float64
	for _, b := range brackets {
		if amount <= b.Min {
			break
		}
		tax += (math.Min(amount, b.Max) - b.Min) * b.Rate
	}
	return tax
}

// BracketFor returns the bracket an amount falls into, with upper bounds
// inclusive, and false when the amount is not positive.
func BracketFor(amount float64, brackets []Bracket) (Bracket, bool) {
	if amount <= 0 || len(brackets) == 0 {
		return Bracket{}, false
	}
	for _, b := range brackets {
		if amount <= b.Max {
			return b, true
		}
	}
	return brackets[len(brackets)-1], true
}

// HighestApplicable returns the highest bracket whose Min does not exceed the
// amount.
func HighestApplicable(amount float64, brackets []Bracket) (Bracket, bool) {
	for i := len(brackets) - 1; i >= 0; i-- {
		if amount >= brackets[i].Min {
			return brackets[i], true
		}
	}
	return Bracket{}, false
}

// ValidateBrackets checks that a table starts at zero, is contiguous and
// ascending, and ends unbounded.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return ErrEmptyBrackets
	}
	if brackets[0].Min != 0 {
		return fmt.Errorf("first bracket starts at %.2f, want 0", brackets[0].Min)
	}
	for i, b := range brackets {
		if b.Max < b.Min {
			return fmt.Errorf("bracket %d: max %.2f below min %.2f", i, b.Max, b.Min)
		}
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket %d: rate %.4f outside [0, 1]", i, b.Rate)
		}
		if i > 0 && b.Min != brackets[i-1].Max {
			return fmt.Errorf("bracket %d: starts at %.2f but previous ends at %.2f", i, b.Min, brackets[i-1].Max)
		}
	}
	if last := brackets[len(brackets)-1]; !math.IsInf(last.Max, 1) {
		return fmt.Errorf("last bracket ends at %.2f, want unbounded", last.Max)
	}
	return nil
}
