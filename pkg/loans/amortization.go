// Package loans provides loan amortization and the mortgage and loan calculators
// built on top of it.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given month of a schedule.
type Payment struct {
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	Principal        float64 `json:"principalPayment"`
	Interest         float64 `json:"interestPayment"`
	RemainingBalance float64 `json:"remainingBalance"`
	TotalPayment     float64 `json:"totalPayment"`
}

// Amortization is the result of amortizing a fixed-rate loan, optionally with
// overpayments.
type Amortization struct {
	// MonthlyPayment is the principal and interest payment, rounded to cents.
	MonthlyPayment float64 `json:"monthlyPayment"`
	// Schedule is the overpayment schedule when overpayments are configured,
	// otherwise the base schedule.
	Schedule     []Payment `json:"schedule"`
	BaseSchedule []Payment `json:"baseSchedule"`
	// TotalInterest is the interest paid over the full term without overpayments.
	TotalInterest       float64 `json:"totalInterest"`
	OverpaymentInterest float64 `json:"overpaymentInterest"`
	PayoffMonth         int     `json:"payoffMonth"`
	InterestSaved       float64 `json:"interestSaved"`
	TimeSaved           int     `json:"timeSaved"`
}

// Overpayment describes principal paid on top of the scheduled payment.
type Overpayment struct {
	Monthly float64
	LumpSum float64
	// LumpSumYear is the 1-based loan year in which the lump sum is paid. The
	// lump sum is applied once, in the first month of that year.
	LumpSumYear int
}

// Active reports whether any overpayment is configured.
func (o Overpayment) Active() bool {
	return o.Monthly > 0 || o.LumpSum > 0
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 || principal <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// ComputeAmortization amortizes principal at annualRatePct over termYears and,
// when extraMonthly or lumpSum is positive, runs a second pass with the
// overpayments applied. A non-positive term yields a zero result.
func ComputeAmortization(principal, annualRatePct float64, termYears int, extraMonthly, lumpSum float64, lumpSumYear int) Amortization {
	return NewAmortizationScheduleGenerator(nil).Compute(principal, annualRatePct, termYears, Overpayment{
		Monthly:     extraMonthly,
		LumpSum:     lumpSum,
		LumpSumYear: lumpSumYear,
	})
}

// Compute builds the base schedule and, if configured, the overpayment schedule.
func (g *AmortizationScheduleGenerator) Compute(principal, annualRatePct float64, termYears int, over Overpayment) Amortization {
	termMonths := termYears * constants.MonthsPerYear
	if termMonths <= 0 || principal <= 0 {
		return Amortization{Schedule: []Payment{}, BaseSchedule: []Payment{}}
	}
	over.Monthly = mathutil.NonNegative(over.Monthly)
	over.LumpSum = mathutil.NonNegative(over.LumpSum)

	monthlyPayment := CalculateMonthlyPayment(principal, annualRatePct, termMonths)
	base := g.GenerateSchedule(principal, annualRatePct, monthlyPayment, termMonths)

	result := Amortization{
		MonthlyPayment:      mathutil.Round(monthlyPayment),
		Schedule:            base,
		BaseSchedule:        base,
		TotalInterest:       mathutil.Round(mathutil.NonNegative(monthlyPayment*float64(termMonths) - principal)),
		PayoffMonth:         termMonths,
		OverpaymentInterest: 0,
	}
	result.OverpaymentInterest = result.TotalInterest

	if !over.Active() {
		return result
	}

	schedule, interest := g.GenerateOverpaymentSchedule(principal, annualRatePct, monthlyPayment, termMonths, over)
	result.Schedule = schedule
	result.OverpaymentInterest = mathutil.Round(interest)
	result.PayoffMonth = len(schedule)
	result.InterestSaved = mathutil.Round(mathutil.NonNegative(result.TotalInterest - result.OverpaymentInterest))
	if saved := termMonths - result.PayoffMonth; saved > 0 {
		result.TimeSaved = saved
	}
	return result
}

// GenerateSchedule creates the month by month schedule of a fully amortizing
// loan. The last month absorbs any residual so the schedule always ends at a
// zero balance, and each row's principal is the difference of the rounded
// balances so the rounded principal portions sum to the original principal.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal, annualRatePct, monthlyPayment float64, termMonths int) []Payment {
	schedule := make([]Payment, 0, termMonths)
	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, annualRatePct)
		principalPaid := monthlyPayment - interest
		if month == termMonths || principalPaid > balance {
			principalPaid = balance
		}
		schedule = append(schedule, newPayment(month, balance, balance-principalPaid, interest))
		balance = mathutil.NonNegative(balance - principalPaid)
	}
	return schedule
}

// GenerateOverpaymentSchedule runs the schedule with overpayments applied,
// stopping once the balance reaches zero. It returns the schedule and the
// unrounded interest paid.
func (g *AmortizationScheduleGenerator) GenerateOverpaymentSchedule(principal, annualRatePct, monthlyPayment float64,
	termMonths int, over Overpayment) ([]Payment, float64) {
	schedule := make([]Payment, 0, termMonths)
	balance := principal
	totalInterest := 0.0
	lumpSumMonth := (over.LumpSumYear-1)*constants.MonthsPerYear + 1

	for month := 1; month <= termMonths && balance > 0; month++ {
		interest := CalculateInterestPayment(balance, annualRatePct)
		principalPaid := monthlyPayment - interest + over.Monthly
		if over.LumpSum > 0 && month == lumpSumMonth {
			g.logger.Debug(fmt.Sprintf("month %d: applying lump sum payment %.2f", month, over.LumpSum),
				zap.String("op", "loans.GenerateOverpaymentSchedule"),
			)
			principalPaid += over.LumpSum
		}

		// Prevent overpayment by capping the principal to the current balance
		if month == termMonths || principalPaid > balance {
			principalPaid = balance
		}

		schedule = append(schedule, newPayment(month, balance, balance-principalPaid, interest))
		totalInterest += interest
		balance = mathutil.NonNegative(balance - principalPaid)
		if mathutil.Round(balance) == 0 {
			balance = 0
		}
	}

	if n := len(schedule); n < termMonths {
		g.logger.Debug(fmt.Sprintf("loan paid off early in month %d of %d", n, termMonths),
			zap.String("op", "loans.GenerateOverpaymentSchedule"),
		)
	}
	return schedule, totalInterest
}

func newPayment(month int, before, after, interest float64) Payment {
	after = mathutil.NonNegative(after)
	principal := mathutil.Round(mathutil.Round(before) - mathutil.Round(after))
	interest = mathutil.Round(interest)
	return Payment{
		Month:            month,
		Year:             mathutil.YearOfMonth(month),
		Principal:        principal,
		Interest:         interest,
		RemainingBalance: mathutil.Round(after),
		TotalPayment:     mathutil.Round(principal + interest),
	}
}

// YearTotal aggregates one loan year of a schedule.
type YearTotal struct {
	Year       int     `json:"year"`
	Principal  float64 `json:"principal"`
	Interest   float64 `json:"interest"`
	Payments   float64 `json:"payments"`
	EndBalance float64 `json:"endBalance"`
}

// YearlySummary rolls a monthly schedule up into loan years.
func YearlySummary(schedule []Payment) []YearTotal {
	var years []YearTotal
	for _, p := range schedule {
		if len(years) == 0 || years[len(years)-1].Year != p.Year {
			years = append(years, YearTotal{Year: p.Year})
		}
		y := &years[len(years)-1]
		y.Principal = mathutil.Round(y.Principal + p.Principal)
		y.Interest = mathutil.Round(y.Interest + p.Interest)
		y.Payments = mathutil.Round(y.Payments + p.TotalPayment)
		y.EndBalance = p.RemainingBalance
	}
	return years
}
