// Package calculate runs a named calculator against its inputs and turns the
// result into a renderable report.
package calculate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/internal/config"
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/debt"
	"github.com/iwvelando/crunch-the-numbers/pkg/finance"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/output"
	"github.com/iwvelando/crunch-the-numbers/pkg/tax"
	"github.com/iwvelando/crunch-the-numbers/pkg/validation"
	"go.uber.org/zap"
)

// ErrInvalidInputs wraps validation failures so callers can tell bad input
// apart from other errors.
var ErrInvalidInputs = errors.New("invalid inputs")

// Result holds the outcome of one calculator run.
type Result struct {
	Calculator string
	Report     output.Report
	Warnings   []string
}

// Engine dispatches to the calculator engines, sharing one logger.
type Engine struct {
	logger    *zap.Logger
	schedules *loans.AmortizationScheduleGenerator
	debts     *debt.Simulator
	projector *finance.Projector
	salaries  *tax.Calculator
}

// NewEngine creates an engine for every calculator.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:    logger,
		schedules: loans.NewAmortizationScheduleGenerator(logger),
		debts:     debt.NewSimulator(logger),
		projector: finance.NewProjector(logger),
		salaries:  tax.NewCalculator(logger),
	}
}

// Run validates inputs, runs the named calculator and builds its report.
// inputs must be the pointer type config.NewInputs returns for name.
func (e *Engine) Run(name string, inputs any) (Result, error) {
	result := Result{Calculator: name}
	if _, err := config.Lookup(name); err != nil {
		return result, err
	}

	var issues validation.Issues
	var build func() output.Report
	var err error

	switch name {
	case config.CalculatorMortgage:
		var in *loans.MortgageInputs
		if in, err = as[loans.MortgageInputs](name, inputs); err == nil {
			issues = validation.Mortgage(*in)
			build = func() output.Report { return output.MortgageReport(*in, e.schedules.Mortgage(*in)) }
		}
	case config.CalculatorLoan:
		var in *loans.LoanInputs
		if in, err = as[loans.LoanInputs](name, inputs); err == nil {
			issues = validation.Loan(*in)
			build = func() output.Report { return output.LoanReport(*in, e.schedules.Loan(*in)) }
		}
	case config.CalculatorDebt:
		var in *debt.Inputs
		if in, err = as[debt.Inputs](name, inputs); err == nil {
			issues = validation.Debts(*in)
			build = func() output.Report { return output.DebtReport(e.debts.Calculate(*in)) }
		}
	case config.CalculatorDebtStrategies:
		var in *debt.Inputs
		if in, err = as[debt.Inputs](name, inputs); err == nil {
			issues = validation.Debts(*in)
			build = func() output.Report {
				return output.DebtComparisonReport(e.debts.Compare(in.Debts, in.ExtraPayment), currencyOrDefault(in.Currency))
			}
		}
	case config.CalculatorDebtTarget:
		var in *debt.TargetInputs
		if in, err = as[debt.TargetInputs](name, inputs); err == nil {
			issues = validation.DebtTarget(*in)
			build = func() output.Report {
				return output.DebtTargetReport(e.debts.Solve(in.Debts, in.Strategy, in.TargetMonths), currencyOrDefault(in.Currency))
			}
		}
	case config.CalculatorInvestment:
		var in *finance.InvestmentInputs
		if in, err = as[finance.InvestmentInputs](name, inputs); err == nil {
			issues = validation.Investment(*in)
			build = func() output.Report { return output.InvestmentReport(e.projector.Growth(*in)) }
		}
	case config.CalculatorRetirement:
		var in *finance.RetirementInputs
		if in, err = as[finance.RetirementInputs](name, inputs); err == nil {
			issues = validation.Retirement(*in)
			build = func() output.Report { return output.RetirementReport(e.projector.Retirement(*in)) }
		}
	case config.CalculatorRentVsBuy:
		var in *finance.RentBuyInputs
		if in, err = as[finance.RentBuyInputs](name, inputs); err == nil {
			issues = validation.RentBuy(*in)
			build = func() output.Report { return output.RentBuyReport(e.projector.RentBuy(*in)) }
		}
	case config.CalculatorEmergencyFund:
		var in *finance.EmergencyFundInputs
		if in, err = as[finance.EmergencyFundInputs](name, inputs); err == nil {
			issues = validation.EmergencyFund(*in)
			build = func() output.Report { return output.EmergencyFundReport(e.projector.EmergencyFund(*in)) }
		}
	case config.CalculatorSalary:
		var in *tax.SalaryInput
		if in, err = as[tax.SalaryInput](name, inputs); err == nil {
			issues = validation.Salary(*in)
			build = func() output.Report { return output.SalaryReport(e.salaries.Salary(*in)) }
		}
	}
	if err != nil {
		return result, err
	}

	result.Warnings = issues.Warnings
	for _, warning := range issues.Warnings {
		e.logger.Warn(warning,
			zap.String("op", "calculate.Run"),
			zap.String("calculator", name),
		)
	}
	if verr := issues.Err(); verr != nil {
		return result, fmt.Errorf("%w for %s: %w", ErrInvalidInputs, name, verr)
	}

	result.Report = build()
	e.logger.Debug(fmt.Sprintf("computed %s", name),
		zap.String("op", "calculate.Run"),
		zap.Int("rows", len(result.Report.Table.Rows)),
	)
	return result, nil
}

// FillCurrency sets the currency of inputs that do not name one. Salary
// inputs are left alone since their country picks the currency.
func FillCurrency(inputs any, code string) {
	if code == "" {
		return
	}
	var field *string
	switch in := inputs.(type) {
	case *loans.MortgageInputs:
		field = &in.Currency
	case *loans.LoanInputs:
		field = &in.Currency
	case *debt.Inputs:
		field = &in.Currency
	case *debt.TargetInputs:
		field = &in.Currency
	case *finance.InvestmentInputs:
		field = &in.Currency
	case *finance.RetirementInputs:
		field = &in.Currency
	case *finance.RentBuyInputs:
		field = &in.Currency
	case *finance.EmergencyFundInputs:
		field = &in.Currency
	default:
		return
	}
	if *field == "" {
		*field = strings.ToUpper(code)
	}
}

func as[T any](name string, inputs any) (*T, error) {
	in, ok := inputs.(*T)
	if !ok || in == nil {
		return nil, fmt.Errorf("calculator %s cannot run on %T", name, inputs)
	}
	return in, nil
}

func currencyOrDefault(code string) string {
	if code == "" {
		return constants.DefaultCurrency
	}
	return code
}
