package loans

import (
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// MortgageType selects how the mortgage principal is derived.
type MortgageType string

const (
	// MortgagePurchase borrows the home price less the down payment.
	MortgagePurchase MortgageType = "purchase"
	// MortgageRefinance borrows the outstanding balance of an existing mortgage.
	MortgageRefinance MortgageType = "refinance"
)

// MortgageInputs holds the inputs of the mortgage calculator. Rates are whole
// percentages (6.5 means 6.5%), annual costs are per year and PMI is monthly.
type MortgageInputs struct {
	HomePrice          float64      `json:"homePrice" yaml:"homePrice" mapstructure:"homePrice"`
	DownPayment        float64      `json:"downPayment" yaml:"downPayment" mapstructure:"downPayment"`
	InterestRate       float64      `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	TermYears          int          `json:"termYears" yaml:"termYears" mapstructure:"termYears"`
	PropertyTax        float64      `json:"propertyTax" yaml:"propertyTax" mapstructure:"propertyTax"`
	HomeInsurance      float64      `json:"homeInsurance" yaml:"homeInsurance" mapstructure:"homeInsurance"`
	PMI                float64      `json:"pmi" yaml:"pmi" mapstructure:"pmi"`
	Currency           string       `json:"currency" yaml:"currency" mapstructure:"currency"`
	LoanType           MortgageType `json:"loanType" yaml:"loanType" mapstructure:"loanType"`
	OutstandingBalance float64      `json:"outstandingBalance" yaml:"outstandingBalance" mapstructure:"outstandingBalance"`
	MonthlyOverpayment float64      `json:"monthlyOverpayment" yaml:"monthlyOverpayment" mapstructure:"monthlyOverpayment"`
	LumpSumPayment     float64      `json:"lumpSumPayment" yaml:"lumpSumPayment" mapstructure:"lumpSumPayment"`
	LumpSumYear        int          `json:"lumpSumYear" yaml:"lumpSumYear" mapstructure:"lumpSumYear"`
}

// Principal returns the amount borrowed.
func (m MortgageInputs) Principal() float64 {
	if m.LoanType == MortgageRefinance {
		return m.OutstandingBalance
	}
	return mathutil.NonNegative(m.HomePrice - m.DownPayment)
}

// MortgageResults holds the outputs of the mortgage calculator.
type MortgageResults struct {
	Principal           float64     `json:"principal"`
	MonthlyPI           float64     `json:"monthlyPI"`
	MonthlyTaxInsurance float64     `json:"monthlyTaxInsurance"`
	MonthlyPayment      float64     `json:"monthlyPayment"`
	TotalInterest       float64     `json:"totalInterest"`
	TotalPayment        float64     `json:"totalPayment"`
	Schedule            []Payment   `json:"amortizationSchedule"`
	Yearly              []YearTotal `json:"yearly"`
	InterestSaved       float64     `json:"interestSaved"`
	TimeSaved           int         `json:"timeSaved"`
	PayoffMonth         int         `json:"payoffMonth"`
	Currency            string      `json:"currency"`
}

// CalculateMortgage runs the mortgage calculator.
func CalculateMortgage(inputs MortgageInputs) MortgageResults {
	return NewAmortizationScheduleGenerator(nil).Mortgage(inputs)
}

// Mortgage runs the mortgage calculator with the generator's logger.
func (g *AmortizationScheduleGenerator) Mortgage(inputs MortgageInputs) MortgageResults {
	results := MortgageResults{Currency: currencyOrDefault(inputs.Currency), Schedule: []Payment{}}
	if inputs.TermYears <= 0 {
		return results
	}

	principal := inputs.Principal()
	g.logger.Debug("calculating mortgage",
		zap.String("op", "loans.Mortgage"),
		zap.String("type", string(inputs.LoanType)),
		zap.Float64("principal", principal),
	)

	a := g.Compute(principal, inputs.InterestRate, inputs.TermYears, Overpayment{
		Monthly:     inputs.MonthlyOverpayment,
		LumpSum:     inputs.LumpSumPayment,
		LumpSumYear: inputs.LumpSumYear,
	})

	taxInsurance := (inputs.PropertyTax+inputs.HomeInsurance)/constants.MonthsPerYear + inputs.PMI
	results.Principal = mathutil.Round(principal)
	results.MonthlyPI = a.MonthlyPayment
	results.MonthlyTaxInsurance = mathutil.Round(taxInsurance)
	results.MonthlyPayment = mathutil.Round(CalculateMonthlyPayment(principal, inputs.InterestRate,
		inputs.TermYears*constants.MonthsPerYear) + taxInsurance)
	results.TotalInterest = a.TotalInterest
	results.TotalPayment = mathutil.Round(principal + a.TotalInterest)
	results.Schedule = a.Schedule
	results.Yearly = YearlySummary(a.Schedule)
	results.InterestSaved = a.InterestSaved
	results.TimeSaved = a.TimeSaved
	results.PayoffMonth = a.PayoffMonth
	return results
}

// LoanInputs holds the inputs of the general loan calculator.
type LoanInputs struct {
	Principal          float64 `json:"principal" yaml:"principal" mapstructure:"principal"`
	InterestRate       float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	TermYears          int     `json:"termYears" yaml:"termYears" mapstructure:"termYears"`
	Currency           string  `json:"currency" yaml:"currency" mapstructure:"currency"`
	MonthlyOverpayment float64 `json:"monthlyOverpayment" yaml:"monthlyOverpayment" mapstructure:"monthlyOverpayment"`
	LumpSum            float64 `json:"lumpSum" yaml:"lumpSum" mapstructure:"lumpSum"`
	LumpSumYear        int     `json:"lumpSumYear" yaml:"lumpSumYear" mapstructure:"lumpSumYear"`
}

// LoanResults holds the outputs of the general loan calculator.
type LoanResults struct {
	Principal      float64     `json:"principal"`
	MonthlyPayment float64     `json:"monthlyPayment"`
	TotalInterest  float64     `json:"totalInterest"`
	TotalPayment   float64     `json:"totalPayment"`
	Schedule       []Payment   `json:"amortizationSchedule"`
	Yearly         []YearTotal `json:"yearly"`
	InterestSaved  float64     `json:"interestSaved"`
	TimeSaved      int         `json:"timeSaved"`
	PayoffMonth    int         `json:"payoffMonth"`
	Currency       string      `json:"currency"`
}

// CalculateLoan runs the loan calculator.
func CalculateLoan(inputs LoanInputs) LoanResults {
	return NewAmortizationScheduleGenerator(nil).Loan(inputs)
}

// Loan runs the loan calculator with the generator's logger.
func (g *AmortizationScheduleGenerator) Loan(inputs LoanInputs) LoanResults {
	results := LoanResults{Currency: currencyOrDefault(inputs.Currency), Schedule: []Payment{}}
	if inputs.TermYears <= 0 {
		return results
	}

	a := g.Compute(inputs.Principal, inputs.InterestRate, inputs.TermYears, Overpayment{
		Monthly:     inputs.MonthlyOverpayment,
		LumpSum:     inputs.LumpSum,
		LumpSumYear: inputs.LumpSumYear,
	})
	results.Principal = mathutil.Round(inputs.Principal)
	results.MonthlyPayment = a.MonthlyPayment
	results.TotalInterest = a.TotalInterest
	results.TotalPayment = mathutil.Round(inputs.Principal + a.TotalInterest)
	results.Schedule = a.Schedule
	results.Yearly = YearlySummary(a.Schedule)
	results.InterestSaved = a.InterestSaved
	results.TimeSaved = a.TimeSaved
	results.PayoffMonth = a.PayoffMonth
	return results
}

func currencyOrDefault(code string) string {
	if code == "" {
		return constants.DefaultCurrency
	}
	return code
}
