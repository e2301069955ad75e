// Package finance projects savings, investment and housing decisions over time.
package finance

import (
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"go.uber.org/zap"
)

func percentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

func currencyOrDefault(code string) string {
	if code == "" {
		return constants.DefaultCurrency
	}
	return code
}

// Projector runs the finance projections.
type Projector struct {
	logger *zap.Logger
}

// NewProjector creates a projector for finance calculations.
func NewProjector(logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{logger: logger}
}
