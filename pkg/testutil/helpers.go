// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
)

// CentTolerance is the slack allowed when comparing amounts rounded to cents.
const CentTolerance = 0.005

// floatNoise absorbs representation error in differences such as
// 1516.96 - 1516.955.
const floatNoise = 1e-9

// WithinCents reports whether two amounts agree to the cent.
func WithinCents(got, want float64) bool {
	return mathutil.WithinTolerance(got, want, CentTolerance+floatNoise)
}

// AssertCents fails the test when got and want differ by more than half a cent.
func AssertCents(t testing.TB, field string, got, want float64) {
	t.Helper()
	if !WithinCents(got, want) {
		t.Errorf("%s = %.2f, expected %.2f", field, got, want)
	}
}

// AssertSum fails the test when values do not add up to want within tolerance.
func AssertSum(t testing.TB, field string, values []float64, want, tolerance float64) {
	t.Helper()
	var sum float64
	for _, v := range values {
		sum += v
	}
	if math.Abs(sum-want) > tolerance {
		t.Errorf("%s sum to %.2f, expected %.2f", field, sum, want)
	}
}
