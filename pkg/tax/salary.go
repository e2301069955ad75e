package tax

import (
	"fmt"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// Country selects the tax jurisdiction.
type Country string

const (
	UK Country = "UK"
	US Country = "US"
)

// ParseCountry validates a jurisdiction. GB is accepted as UK.
func ParseCountry(value string) (Country, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "UK", "GB":
		return UK, nil
	case "US", "USA":
		return US, nil
	default:
		return "", fmt.Errorf("unknown country %q", value)
	}
}

// PensionType says how PensionContribution is read.
type PensionType string

const (
	PensionPercentage PensionType = "percentage"
	PensionFixed      PensionType = "fixed"
)

// SalaryInput holds the inputs of the salary calculator. Overtime is in hours
// per year; OvertimeRate multiplies the hourly rate and defaults to 1.5.
type SalaryInput struct {
	GrossSalary         float64         `json:"grossSalary" yaml:"grossSalary" mapstructure:"grossSalary"`
	Country             Country         `json:"country" yaml:"country" mapstructure:"country"`
	TaxCode             string          `json:"taxCode" yaml:"taxCode" mapstructure:"taxCode"`
	ScottishTaxpayer    bool            `json:"isScottishTaxpayer" yaml:"isScottishTaxpayer" mapstructure:"isScottishTaxpayer"`
	StudentLoanPlan     StudentLoanPlan `json:"studentLoanPlan" yaml:"studentLoanPlan" mapstructure:"studentLoanPlan"`
	FilingStatus        FilingStatus    `json:"filingStatus" yaml:"filingStatus" mapstructure:"filingStatus"`
	PensionContribution float64         `json:"pensionContribution" yaml:"pensionContribution" mapstructure:"pensionContribution"`
	PensionType         PensionType     `json:"pensionContributionType" yaml:"pensionContributionType" mapstructure:"pensionContributionType"`
	Bonus               float64         `json:"bonus" yaml:"bonus" mapstructure:"bonus"`
	Overtime            float64         `json:"overtime" yaml:"overtime" mapstructure:"overtime"`
	OvertimeRate        float64         `json:"overtimeRate" yaml:"overtimeRate" mapstructure:"overtimeRate"`
	WorkingDaysPerWeek  int             `json:"workingDaysPerWeek" yaml:"workingDaysPerWeek" mapstructure:"workingDaysPerWeek"`
	WeeksPerYear        int             `json:"weeksPerYear" yaml:"weeksPerYear" mapstructure:"weeksPerYear"`
	BlindAllowance      bool            `json:"blindAllowance" yaml:"blindAllowance" mapstructure:"blindAllowance"`
	NIExemption         bool            `json:"niExemption" yaml:"niExemption" mapstructure:"niExemption"`
	Currency            string          `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// Period splits an annual amount into monthly, weekly and working-day figures.
type Period struct {
	Annual  float64 `json:"annual"`
	Monthly float64 `json:"monthly"`
	Weekly  float64 `json:"weekly"`
	Daily   float64 `json:"daily"`
}

// Deductions itemises what comes off gross pay. NationalInsurance is set for
// the UK and FICA for the US.
type Deductions struct {
	IncomeTax         float64  `json:"incomeTax"`
	NationalInsurance *float64 `json:"nationalInsurance,omitempty"`
	FICA              *FICA    `json:"fica,omitempty"`
	StudentLoan       float64  `json:"studentLoan"`
	Pension           float64  `json:"pension"`
	Total             float64  `json:"totalDeductions"`
}

// Breakdown explains how income tax was reached.
type Breakdown struct {
	TaxBand           string   `json:"taxBand,omitempty"`
	TaxableIncome     float64  `json:"taxableIncome"`
	PersonalAllowance *float64 `json:"personalAllowance,omitempty"`
	NIContributions   *float64 `json:"niContributions,omitempty"`
}

// SalaryResult holds the outputs of the salary calculator. Rates are
// percentages.
type SalaryResult struct {
	Country          Country    `json:"country"`
	Gross            Period     `json:"gross"`
	Deductions       Deductions `json:"deductions"`
	Net              Period     `json:"net"`
	EffectiveTaxRate float64    `json:"effectiveTaxRate"`
	MarginalTaxRate  float64    `json:"marginalTaxRate"`
	Breakdown        Breakdown  `json:"breakdown"`
	Currency         string     `json:"currency"`
}

// Calculator computes take-home pay.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a salary calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// CalculateSalary runs the salary calculator with a no-op logger.
func CalculateSalary(input SalaryInput) SalaryResult {
	return NewCalculator(nil).Salary(input)
}

// Salary computes deductions and net pay. Pension contributions are taken
// before tax: every other deduction is computed on gross pay less pension.
// Anything other than a UK jurisdiction is taxed as US.
func (c *Calculator) Salary(input SalaryInput) SalaryResult {
	days := input.WorkingDaysPerWeek
	if days <= 0 {
		days = constants.DefaultWorkingDaysPerWeek
	}
	weeks := input.WeeksPerYear
	if weeks <= 0 {
		weeks = constants.DefaultWeeksPerYear
	}
	workingDays := float64(days * weeks)

	gross := input.GrossSalary + input.Bonus
	if input.Overtime > 0 {
		rate := input.OvertimeRate
		if rate <= 0 {
			rate = constants.DefaultOvertimeMultiplier
		}
		hourly := input.GrossSalary / (workingDays * constants.HoursPerWorkingDay)
		gross += input.Overtime * hourly * rate
	}

	var pension float64
	if input.PensionContribution > 0 {
		pension = input.PensionContribution
		if input.PensionType == PensionPercentage {
			pension = mathutil.ApplyPercentage(gross, input.PensionContribution)
		}
	}
	pension = mathutil.Round(pension)
	earnings := gross - pension

	country := input.Country
	if country != UK {
		country = US
	}
	result := SalaryResult{Country: country}
	var payroll float64

	switch country {
	case UK:
		code := ParseTaxCode(input.TaxCode)
		allowance := code.Allowance
		if input.BlindAllowance {
			allowance += UKBlindPersonsAllowance
		}
		scottish := input.ScottishTaxpayer || code.Scottish

		var tax, taxable float64
		if !code.NoTax {
			tax, taxable = UKIncomeTax(earnings, allowance, scottish)
		}
		ni := UKNationalInsurance(earnings, input.NIExemption)
		payroll = ni

		result.Deductions.IncomeTax = tax
		result.Deductions.NationalInsurance = &ni
		result.Deductions.StudentLoan = UKStudentLoan(earnings, input.StudentLoanPlan)
		result.Breakdown.TaxableIncome = mathutil.Round(taxable)
		result.Breakdown.PersonalAllowance = &allowance
		result.Breakdown.NIContributions = &ni
		result.Breakdown.TaxBand = "Personal allowance"
		if code.NoTax {
			result.Breakdown.TaxBand = "No tax"
		}
		if b, ok := BracketFor(taxable, UKBrackets(allowance, scottish)); ok {
			result.MarginalTaxRate = b.Rate * constants.PercentageMultiplier
			result.Breakdown.TaxBand = b.Name
		}
		result.Currency = currencyOr(input.Currency, "GBP")

	default:
		status, err := ParseFilingStatus(string(input.FilingStatus))
		if err != nil {
			c.logger.Warn("falling back to single filing status",
				zap.String("op", "tax.Salary"),
				zap.Error(err),
			)
		}
		fica := USFICA(earnings, status)
		payroll = fica.Total()

		result.Deductions.IncomeTax = USFederalTax(earnings, status)
		result.Deductions.FICA = &fica
		result.Breakdown.TaxableIncome = mathutil.Round(mathutil.NonNegative(earnings))
		if b, ok := HighestApplicable(earnings, USBrackets(status)); ok {
			result.MarginalTaxRate = b.Rate * constants.PercentageMultiplier
			result.Breakdown.TaxBand = fmt.Sprintf("%g%% bracket", b.Rate*constants.PercentageMultiplier)
		}
		result.Currency = currencyOr(input.Currency, constants.DefaultCurrency)
	}

	result.Deductions.Pension = pension
	total := result.Deductions.IncomeTax + payroll + result.Deductions.StudentLoan + pension
	result.Deductions.Total = mathutil.Round(total)

	result.Gross = split(gross, weeks, workingDays)
	result.Net = split(gross-total, weeks, workingDays)
	if gross > 0 {
		result.EffectiveTaxRate = mathutil.Round(mathutil.CalculatePercentage(total, gross))
	}

	c.logger.Debug("salary calculated",
		zap.String("op", "tax.Salary"),
		zap.String("country", string(country)),
		zap.Float64("gross", result.Gross.Annual),
		zap.Float64("net", result.Net.Annual),
	)
	return result
}

func split(annual float64, weeks int, workingDays float64) Period {
	return Period{
		Annual:  mathutil.Round(annual),
		Monthly: mathutil.Round(annual / constants.MonthsPerYear),
		Weekly:  mathutil.Round(annual / float64(weeks)),
		Daily:   mathutil.Round(annual / workingDays),
	}
}

func currencyOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
