// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Midpoints round away from zero on the shortest decimal representation of
// val, so 1.005 becomes 1.01 rather than drifting to 1.00.
func Round(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	rounded, _ := decimal.NewFromFloat(val).Round(constants.DecimalPlaces).Float64()
	if rounded == 0 {
		// normalise -0
		return 0
	}
	return rounded
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NonNegative clamps negative values to zero.
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// MonthlyRate converts an annual percentage rate (6.5 meaning 6.5%) into the
// periodic monthly rate used by every monthly simulation.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// YearOfMonth returns the 1-based year a 1-based month index falls in.
func YearOfMonth(month int) int {
	return (month-1)/constants.MonthsPerYear + 1
}

// MonthInYear returns the 1..12 position of a 1-based month index within its year.
func MonthInYear(month int) int {
	return (month-1)%constants.MonthsPerYear + 1
}
