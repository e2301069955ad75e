package validation

import (
	"fmt"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/debt"
	"github.com/iwvelando/crunch-the-numbers/pkg/finance"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"github.com/iwvelando/crunch-the-numbers/pkg/tax"
	"go.uber.org/multierr"
)

// Issues collects what is wrong with a set of inputs. Errors make the inputs
// unusable; warnings flag inputs that compute but probably were not intended.
type Issues struct {
	errs     error
	Warnings []string
}

func (i *Issues) errorf(format string, args ...any) {
	i.errs = multierr.Append(i.errs, fmt.Errorf(format, args...))
}

func (i *Issues) warnf(format string, args ...any) {
	i.Warnings = append(i.Warnings, fmt.Sprintf(format, args...))
}

func (i *Issues) negative(field string, v float64) {
	if v < 0 {
		i.errorf("%s must not be negative, got %.2f", field, v)
	}
}

func (i *Issues) rate(field string, v float64) {
	if v < -constants.PercentageMultiplier {
		i.errorf("%s must not be below -100%%, got %.2f%%", field, v)
	}
}

func (i *Issues) currency(code string) {
	if err := ValidateCurrency(code); err != nil {
		i.errs = multierr.Append(i.errs, err)
	}
}

// Err combines every error found, nil when the inputs are usable.
func (i Issues) Err() error {
	return i.errs
}

// Errors lists the individual errors found.
func (i Issues) Errors() []error {
	return multierr.Errors(i.errs)
}

func (i *Issues) term(years int) {
	switch {
	case years < 0:
		i.errorf("term must not be negative, got %d years", years)
	case years == 0:
		i.warnf("term of 0 years produces an empty schedule")
	}
}

func (i *Issues) lumpSum(amount float64, year, termYears int) {
	i.negative("lump sum", amount)
	if amount > 0 && (year < 1 || year > termYears) {
		i.warnf("lump sum year %d is outside the %d year term and will not be applied", year, termYears)
	}
}

// Mortgage validates mortgage calculator inputs.
func Mortgage(in loans.MortgageInputs) Issues {
	var i Issues
	i.negative("home price", in.HomePrice)
	i.negative("down payment", in.DownPayment)
	i.negative("property tax", in.PropertyTax)
	i.negative("home insurance", in.HomeInsurance)
	i.negative("PMI", in.PMI)
	i.negative("monthly overpayment", in.MonthlyOverpayment)
	i.rate("interest rate", in.InterestRate)
	i.term(in.TermYears)
	i.lumpSum(in.LumpSumPayment, in.LumpSumYear, in.TermYears)
	i.currency(in.Currency)

	switch in.LoanType {
	case "", loans.MortgagePurchase:
		if in.DownPayment > in.HomePrice {
			i.errorf("down payment %.2f exceeds home price %.2f", in.DownPayment, in.HomePrice)
		}
	case loans.MortgageRefinance:
		i.negative("outstanding balance", in.OutstandingBalance)
		if in.OutstandingBalance > in.HomePrice && in.HomePrice > 0 {
			i.warnf("outstanding balance %.2f exceeds property value %.2f", in.OutstandingBalance, in.HomePrice)
		}
	default:
		i.errorf("unknown loan type %q", in.LoanType)
	}
	return i
}

// Loan validates general loan calculator inputs.
func Loan(in loans.LoanInputs) Issues {
	var i Issues
	i.negative("principal", in.Principal)
	i.negative("monthly overpayment", in.MonthlyOverpayment)
	i.rate("interest rate", in.InterestRate)
	i.term(in.TermYears)
	i.lumpSum(in.LumpSum, in.LumpSumYear, in.TermYears)
	i.currency(in.Currency)
	return i
}

// Debts validates debt payoff inputs. A minimum payment that does not cover a
// debt's first month of interest is a warning: the simulation still runs but
// may hit the month cap.
func Debts(in debt.Inputs) Issues {
	var i Issues
	i.negative("extra payment", in.ExtraPayment)
	i.currency(in.Currency)
	if len(in.Debts) == 0 {
		i.warnf("no debts given")
	}

	seen := make(map[string]bool)
	for n, d := range in.Debts {
		label := d.Name
		if label == "" {
			label = fmt.Sprintf("debt %d", n+1)
		}
		i.negative(label+" balance", d.Balance)
		i.negative(label+" minimum payment", d.MinimumPayment)
		if d.InterestRate < 0 {
			i.errorf("%s interest rate must not be negative, got %.2f%%", label, d.InterestRate)
		}
		if d.ID != "" {
			if seen[d.ID] {
				i.errorf("duplicate debt id %q", d.ID)
			}
			seen[d.ID] = true
		}
		interest := d.Balance * mathutil.MonthlyRate(d.InterestRate)
		if d.Balance > 0 && d.MinimumPayment <= interest {
			i.warnf("%s minimum payment %.2f does not cover monthly interest %.2f", label, d.MinimumPayment, mathutil.Round(interest))
		}
	}
	return i
}

// DebtTarget validates a payoff-target search. The debts themselves are
// checked the same way Debts checks them.
func DebtTarget(in debt.TargetInputs) Issues {
	i := Debts(debt.Inputs{Debts: in.Debts, Strategy: in.Strategy, Currency: in.Currency})
	if in.TargetMonths <= 0 || in.TargetMonths > constants.MaxDebtPayoffMonths {
		i.errorf("target months must be between 1 and %d, got %d", constants.MaxDebtPayoffMonths, in.TargetMonths)
	}
	return i
}

// Investment validates investment projector inputs.
func Investment(in finance.InvestmentInputs) Issues {
	var i Issues
	i.negative("initial investment", in.Initial)
	i.negative("monthly contribution", in.MonthlyContribution)
	i.rate("annual return", in.AnnualReturn)
	i.rate("inflation rate", in.InflationRate)
	i.rate("contribution increase", in.ContributionIncrease)
	i.currency(in.Currency)
	if in.Years < 0 {
		i.errorf("years must not be negative, got %d", in.Years)
	}
	if _, err := finance.ParseCompounding(string(in.Compounding)); err != nil {
		i.errs = multierr.Append(i.errs, err)
	}
	return i
}

// Retirement validates retirement projector inputs.
func Retirement(in finance.RetirementInputs) Issues {
	var i Issues
	if in.CurrentAge < 0 {
		i.errorf("current age must not be negative, got %d", in.CurrentAge)
	}
	if in.RetirementAge < in.CurrentAge {
		i.errorf("retirement age %d is below current age %d", in.RetirementAge, in.CurrentAge)
	}
	i.negative("salary", in.Salary)
	i.negative("current balance", in.CurrentBalance)
	i.negative("employee contribution", in.EmployeeContribution)
	i.negative("employer match", in.EmployerMatch)
	i.negative("employer match limit", in.EmployerMatchCap)
	i.rate("salary increase", in.SalaryGrowth)
	i.rate("annual return", in.AnnualReturn)
	i.currency(in.Currency)
	if in.EmployeeContribution > constants.PercentageMultiplier {
		i.errorf("employee contribution %.2f%% exceeds 100%% of salary", in.EmployeeContribution)
	}
	if in.EmployeeContribution < in.EmployerMatchCap && in.EmployerMatch > 0 {
		i.warnf("contributing %.2f%% leaves employer match up to %.2f%% unclaimed", in.EmployeeContribution, in.EmployerMatchCap)
	}
	return i
}

// RentBuy validates rent-vs-buy inputs.
func RentBuy(in finance.RentBuyInputs) Issues {
	var i Issues
	i.negative("home price", in.HomePrice)
	i.negative("down payment", in.DownPayment)
	i.negative("property tax", in.PropertyTax)
	i.negative("home insurance", in.HomeInsurance)
	i.negative("HOA fees", in.HOAFees)
	i.negative("maintenance rate", in.MaintenanceRate)
	i.negative("monthly rent", in.MonthlyRent)
	i.negative("renter's insurance", in.RentersInsurance)
	i.rate("interest rate", in.InterestRate)
	i.rate("rent increase", in.RentIncrease)
	i.rate("investment return", in.InvestmentReturn)
	i.currency(in.Currency)
	if in.DownPayment > in.HomePrice {
		i.errorf("down payment %.2f exceeds home price %.2f", in.DownPayment, in.HomePrice)
	}
	if in.LoanTerm < 0 {
		i.errorf("loan term must not be negative, got %d years", in.LoanTerm)
	}
	if in.Years <= 0 {
		i.warnf("analysis period of %d years produces an empty comparison", in.Years)
	}
	return i
}

// EmergencyFund validates emergency fund inputs.
func EmergencyFund(in finance.EmergencyFundInputs) Issues {
	var i Issues
	i.negative("monthly expenses", in.MonthlyExpenses)
	i.negative("current savings", in.CurrentSavings)
	i.negative("target months", in.TargetMonths)
	i.negative("monthly savings", in.MonthlySavings)
	i.rate("annual return", in.AnnualReturn)
	i.currency(in.Currency)
	if in.CurrentSavings < in.MonthlyExpenses*in.TargetMonths && in.MonthlySavings <= 0 {
		i.warnf("no monthly savings: the target will not be reached")
	}
	return i
}

// Salary validates salary calculator inputs.
func Salary(in tax.SalaryInput) Issues {
	var i Issues
	i.negative("gross salary", in.GrossSalary)
	i.negative("bonus", in.Bonus)
	i.negative("overtime", in.Overtime)
	i.negative("overtime rate", in.OvertimeRate)
	i.negative("pension contribution", in.PensionContribution)
	i.currency(in.Currency)

	if _, err := tax.ParseCountry(string(in.Country)); err != nil {
		i.errs = multierr.Append(i.errs, err)
	}
	if !in.StudentLoanPlan.Known() {
		i.errorf("unknown student loan plan %q", in.StudentLoanPlan)
	}
	if in.Country == tax.US {
		if _, err := tax.ParseFilingStatus(string(in.FilingStatus)); err != nil {
			i.errs = multierr.Append(i.errs, err)
		}
	}
	switch in.PensionType {
	case "", tax.PensionFixed:
	case tax.PensionPercentage:
		if in.PensionContribution > constants.PercentageMultiplier {
			i.errorf("pension contribution %.2f%% exceeds 100%%", in.PensionContribution)
		}
	default:
		i.errorf("unknown pension contribution type %q", in.PensionType)
	}
	if in.WorkingDaysPerWeek < 0 || in.WorkingDaysPerWeek > 7 {
		i.errorf("working days per week must be between 0 and 7, got %d", in.WorkingDaysPerWeek)
	}
	if in.WeeksPerYear < 0 || in.WeeksPerYear > 53 {
		i.errorf("weeks per year must be between 0 and 53, got %d", in.WeeksPerYear)
	}
	return i
}
