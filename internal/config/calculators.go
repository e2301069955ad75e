package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/crunch-the-numbers/pkg/debt"
	"github.com/iwvelando/crunch-the-numbers/pkg/finance"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/tax"
)

// Calculator names as used on the command line and in API paths.
const (
	CalculatorMortgage       = "mortgage"
	CalculatorLoan           = "loan"
	CalculatorDebt           = "debt"
	CalculatorDebtStrategies = "debt-strategies"
	CalculatorDebtTarget     = "debt-target"
	CalculatorInvestment     = "investment"
	CalculatorRetirement     = "retirement"
	CalculatorRentVsBuy      = "rent-vs-buy"
	CalculatorEmergencyFund  = "emergency-fund"
	CalculatorSalary         = "salary"
)

var (
	// ErrUnknownCalculator is returned for a calculator name not in Catalog.
	ErrUnknownCalculator = errors.New("unknown calculator")
	// ErrMissingSection is returned when a request file has no section for
	// the calculator being run.
	ErrMissingSection = errors.New("missing calculator section")
)

// Info describes one calculator.
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Section     string `json:"section" yaml:"section"`
	Description string `json:"description" yaml:"description"`
}

// Catalog lists every calculator in display order.
var Catalog = []Info{
	{CalculatorMortgage, "mortgage", "Mortgage or remortgage payment with escrow, PMI and overpayments"},
	{CalculatorLoan, "loan", "General amortizing loan with optional overpayments"},
	{CalculatorDebt, "debt", "Multi-debt payoff using avalanche, snowball or minimum payments"},
	{CalculatorDebtStrategies, "debt", "Side-by-side comparison of the debt payoff strategies"},
	{CalculatorDebtTarget, "debtTarget", "Extra monthly payment needed to clear debts by a target month"},
	{CalculatorInvestment, "investment", "Investment growth with contributions, step-ups and inflation"},
	{CalculatorRetirement, "retirement", "Retirement savings with employer match up to retirement age"},
	{CalculatorRentVsBuy, "rentVsBuy", "Net worth of renting and investing versus buying a home"},
	{CalculatorEmergencyFund, "emergencyFund", "Emergency fund target and time to reach it"},
	{CalculatorSalary, "salary", "UK or US take-home pay after tax and deductions"},
}

// Names returns the calculator names in Catalog order.
func Names() []string {
	names := make([]string, len(Catalog))
	for i, info := range Catalog {
		names[i] = info.Name
	}
	return names
}

// Lookup finds a calculator by name.
func Lookup(name string) (Info, error) {
	for _, info := range Catalog {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
}

// NewInputs returns a pointer to zero-valued inputs for the named calculator,
// ready to be decoded into.
func NewInputs(name string) (any, error) {
	switch name {
	case CalculatorMortgage:
		return &loans.MortgageInputs{}, nil
	case CalculatorLoan:
		return &loans.LoanInputs{}, nil
	case CalculatorDebt, CalculatorDebtStrategies:
		return &debt.Inputs{}, nil
	case CalculatorDebtTarget:
		return &debt.TargetInputs{}, nil
	case CalculatorInvestment:
		return &finance.InvestmentInputs{}, nil
	case CalculatorRetirement:
		return &finance.RetirementInputs{}, nil
	case CalculatorRentVsBuy:
		return &finance.RentBuyInputs{}, nil
	case CalculatorEmergencyFund:
		return &finance.EmergencyFundInputs{}, nil
	case CalculatorSalary:
		return &tax.SalaryInput{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
}

// Inputs returns the section of the request file that the named calculator
// runs against.
func (c *Configuration) Inputs(name string) (any, error) {
	info, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	var inputs any
	switch name {
	case CalculatorMortgage:
		inputs = nilOr(c.Mortgage)
	case CalculatorLoan:
		inputs = nilOr(c.Loan)
	case CalculatorDebt, CalculatorDebtStrategies:
		inputs = nilOr(c.Debt)
	case CalculatorDebtTarget:
		inputs = nilOr(c.DebtTarget)
	case CalculatorInvestment:
		inputs = nilOr(c.Investment)
	case CalculatorRetirement:
		inputs = nilOr(c.Retirement)
	case CalculatorRentVsBuy:
		inputs = nilOr(c.RentBuy)
	case CalculatorEmergencyFund:
		inputs = nilOr(c.EmergencyFund)
	case CalculatorSalary:
		inputs = nilOr(c.Salary)
	}
	if inputs == nil {
		return nil, fmt.Errorf("%w %q for calculator %s", ErrMissingSection, info.Section, name)
	}
	return inputs, nil
}

// nilOr keeps a nil section pointer from becoming a non-nil interface.
func nilOr[T any](section *T) any {
	if section == nil {
		return nil
	}
	return section
}
