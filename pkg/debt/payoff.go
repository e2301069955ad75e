// Package debt simulates paying down a set of debts month by month under the
// avalanche, snowball and minimum-payment strategies.
package debt

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// idNamespace seeds the deterministic ids given to debts supplied without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://crunch-the-numbers/debt"))

// Debt is a single balance being paid down. InterestRate is an annual
// percentage (18.99 means 18.99%).
type Debt struct {
	ID             string  `json:"id" yaml:"id" mapstructure:"id"`
	Name           string  `json:"name" yaml:"name" mapstructure:"name"`
	Balance        float64 `json:"balance" yaml:"balance" mapstructure:"balance"`
	InterestRate   float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	MinimumPayment float64 `json:"minimumPayment" yaml:"minimumPayment" mapstructure:"minimumPayment"`
	Category       string  `json:"category" yaml:"category" mapstructure:"category"`
}

// DebtPayment is one debt's line in a month of the simulation.
type DebtPayment struct {
	DebtID           string  `json:"debtId"`
	DebtName         string  `json:"debtName"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
	IsPaidOff        bool    `json:"isPaidOff"`
}

// PayoffEvent records the month a debt reached a zero balance together with the
// cumulative totals across all debts at that point.
type PayoffEvent struct {
	DebtID         string  `json:"debtId"`
	DebtName       string  `json:"debtName"`
	PayoffMonth    int     `json:"payoffMonth"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`
	MonthsToPayoff int     `json:"monthsToPayoff"`
}

// MonthBreakdown summarises one simulated month. Month is the 1..12 position
// within Year.
type MonthBreakdown struct {
	Month                 int           `json:"month"`
	Year                  int           `json:"year"`
	Payments              []DebtPayment `json:"payments"`
	TotalPayment          float64       `json:"totalPayment"`
	TotalInterest         float64       `json:"totalInterest"`
	TotalPrincipal        float64       `json:"totalPrincipal"`
	RemainingDebts        int           `json:"remainingDebts"`
	TotalRemainingBalance float64       `json:"totalRemainingBalance"`
}

// Scenario is the outcome of one simulation run.
type Scenario struct {
	PayoffMonths     int              `json:"payoffMonths"`
	TotalInterest    float64          `json:"totalInterest"`
	TotalPaid        float64          `json:"totalPaid"`
	DebtSchedule     []PayoffEvent    `json:"debtSchedule"`
	MonthlyBreakdown []MonthBreakdown `json:"monthlyBreakdown"`
	// Converged is false when the month cap was reached with balances remaining.
	Converged bool `json:"converged"`
}

type account struct {
	id       string
	name     string
	balance  float64
	rate     float64
	minimum  float64
	recorded bool
}

// Simulator runs payoff simulations.
type Simulator struct {
	logger    *zap.Logger
	maxMonths int
}

// NewSimulator creates a simulator capped at constants.MaxDebtPayoffMonths.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger, maxMonths: constants.MaxDebtPayoffMonths}
}

// SimulatePayoff runs a payoff simulation with a no-op logger.
func SimulatePayoff(debts []Debt, extraPayment float64, strategy Strategy) Scenario {
	return NewSimulator(nil).Simulate(debts, extraPayment, strategy)
}

// AssignIDs returns a copy of debts where every missing id is replaced by a
// deterministic UUID derived from the debt's position and name.
func AssignIDs(debts []Debt) []Debt {
	out := make([]Debt, len(debts))
	copy(out, debts)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewSHA1(idNamespace, []byte(strconv.Itoa(i)+":"+out[i].Name)).String()
		}
	}
	return out
}

// Simulate pays the debts down month by month on a working copy. Each month
// every unpaid debt receives its minimum payment in strategy order, then the
// extra payment goes to the single target re-derived from the live balances.
func (s *Simulator) Simulate(debts []Debt, extraPayment float64, strategy Strategy) Scenario {
	result := Scenario{
		DebtSchedule:     []PayoffEvent{},
		MonthlyBreakdown: []MonthBreakdown{},
		Converged:        true,
	}
	if len(debts) == 0 {
		return result
	}

	accounts := workingCopy(debts, strategy)
	var totalInterest, totalPaid float64

	// Debts that start at zero are already paid off.
	for _, a := range accounts {
		if a.balance <= 0 {
			a.balance = 0
			a.recorded = true
			result.DebtSchedule = append(result.DebtSchedule, PayoffEvent{DebtID: a.id, DebtName: a.name})
		}
	}

	month := 0
	for remaining(accounts) > 0 && month < s.maxMonths {
		month++

		breakdown := MonthBreakdown{
			Month:    mathutil.MonthInYear(month),
			Year:     mathutil.YearOfMonth(month),
			Payments: []DebtPayment{},
		}
		var monthPayment, monthInterest, monthPrincipal float64
		lines := make(map[*account]int)

		record := func(a *account) {
			if a.balance <= 0 && !a.recorded {
				a.recorded = true
				result.DebtSchedule = append(result.DebtSchedule, PayoffEvent{
					DebtID:         a.id,
					DebtName:       a.name,
					PayoffMonth:    month,
					TotalPaid:      mathutil.Round(totalPaid),
					TotalInterest:  mathutil.Round(totalInterest),
					MonthsToPayoff: month,
				})
				s.logger.Debug(fmt.Sprintf("month %d: debt %s paid off", month, a.name),
					zap.String("op", "debt.Simulate"),
				)
			}
		}

		for _, a := range accounts {
			if a.balance <= 0 {
				continue
			}
			interest := a.balance * mathutil.MonthlyRate(a.rate)
			principal := mathutil.NonNegative(a.minimum - interest)
			if principal > a.balance {
				principal = a.balance
			}
			payment := interest + principal

			a.balance -= principal
			totalInterest += interest
			totalPaid += payment
			monthPayment += payment
			monthInterest += interest
			monthPrincipal += principal

			lines[a] = len(breakdown.Payments)
			breakdown.Payments = append(breakdown.Payments, DebtPayment{
				DebtID:           a.id,
				DebtName:         a.name,
				Payment:          payment,
				Principal:        principal,
				Interest:         interest,
				RemainingBalance: a.balance,
				IsPaidOff:        a.balance <= 0,
			})
			record(a)
		}

		if extraPayment > 0 {
			if target := strategy.target(accounts); target != nil {
				extra := min(extraPayment, target.balance)
				target.balance -= extra
				totalPaid += extra
				monthPayment += extra
				monthPrincipal += extra

				if i, ok := lines[target]; ok {
					line := &breakdown.Payments[i]
					line.Payment += extra
					line.Principal += extra
					line.RemainingBalance = target.balance
					line.IsPaidOff = target.balance <= 0
				}
				record(target)
			}
		}

		for i := range breakdown.Payments {
			line := &breakdown.Payments[i]
			line.Payment = mathutil.Round(line.Payment)
			line.Principal = mathutil.Round(line.Principal)
			line.Interest = mathutil.Round(line.Interest)
			line.RemainingBalance = mathutil.Round(mathutil.NonNegative(line.RemainingBalance))
		}

		breakdown.TotalPayment = mathutil.Round(monthPayment)
		breakdown.TotalInterest = mathutil.Round(monthInterest)
		breakdown.TotalPrincipal = mathutil.Round(monthPrincipal)
		breakdown.RemainingDebts = remaining(accounts)
		breakdown.TotalRemainingBalance = mathutil.Round(outstanding(accounts))
		result.MonthlyBreakdown = append(result.MonthlyBreakdown, breakdown)
	}

	result.PayoffMonths = month
	result.TotalInterest = mathutil.Round(totalInterest)
	result.TotalPaid = mathutil.Round(totalPaid)
	result.Converged = remaining(accounts) == 0
	if !result.Converged {
		s.logger.Debug("debt payoff simulation hit the month cap",
			zap.String("op", "debt.Simulate"),
			zap.String("strategy", strategy.String()),
			zap.Int("months", month),
			zap.Float64("remainingBalance", mathutil.Round(outstanding(accounts))),
		)
	}
	return result
}

// workingCopy converts debts into accounts ordered for strategy. The sort is
// stable so equal keys keep their input order.
func workingCopy(debts []Debt, strategy Strategy) []*account {
	withIDs := AssignIDs(debts)
	accounts := make([]*account, len(withIDs))
	for i, d := range withIDs {
		accounts[i] = &account{
			id:      d.ID,
			name:    d.Name,
			balance: d.Balance,
			rate:    d.InterestRate,
			minimum: d.MinimumPayment,
		}
	}
	sortAccounts(accounts, strategy)
	return accounts
}

func remaining(accounts []*account) int {
	n := 0
	for _, a := range accounts {
		if a.balance > 0 {
			n++
		}
	}
	return n
}

func outstanding(accounts []*account) float64 {
	total := 0.0
	for _, a := range accounts {
		if a.balance > 0 {
			total += a.balance
		}
	}
	return total
}
