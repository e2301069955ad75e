// Package output renders calculator results as pretty text, CSV, JSON or PDF.
package output

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/debt"
	"github.com/iwvelando/crunch-the-numbers/pkg/finance"
	"github.com/iwvelando/crunch-the-numbers/pkg/format"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"github.com/iwvelando/crunch-the-numbers/pkg/tax"
	"github.com/shopspring/decimal"
)

// ScheduleHeader is the header row of an exported amortization schedule.
var ScheduleHeader = []string{"Payment #", "Principal Payment", "Interest Payment", "Total Payment", "Remaining Balance"}

// Line is one labelled value of a summary section.
type Line struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Section groups summary lines under a heading.
type Section struct {
	Heading string `json:"heading"`
	Lines   []Line `json:"lines"`
}

// Table is the detail of a report, one row per period.
type Table struct {
	Header []string
	Rows   [][]string
}

// Report is a rendered-ready view of one calculator run. Data holds the raw
// result for JSON output.
type Report struct {
	Name     string
	Title    string
	Currency string
	Sections []Section
	Table    Table
	Data     any
}

// FileName suggests a download name for the report in the given format.
func (r Report) FileName(outputFormat string) string {
	switch outputFormat {
	case "csv":
		return r.Name + "_schedule.csv"
	case "pdf":
		return r.Name + "_report.pdf"
	case "json":
		return r.Name + ".json"
	default:
		return r.Name + ".txt"
	}
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func money(v float64, currency string) string {
	return format.FormatCurrency(v, currency)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func scheduleRows(schedule []loans.Payment) [][]string {
	rows := make([][]string, 0, len(schedule))
	for _, p := range schedule {
		rows = append(rows, []string{
			strconv.Itoa(p.Month),
			fixed(p.Principal),
			fixed(p.Interest),
			fixed(p.TotalPayment),
			fixed(p.RemainingBalance),
		})
	}
	return rows
}

func overpaymentSection(interestSaved float64, timeSaved, payoffMonth int, currency string) Section {
	return Section{Heading: "Overpayment Impact", Lines: []Line{
		{Label: "Interest Saved:", Value: money(interestSaved, currency)},
		{Label: "Time Saved:", Value: fmt.Sprintf("%d months", timeSaved)},
		{Label: "Paid Off In:", Value: fmt.Sprintf("%d months", payoffMonth)},
	}}
}

// MortgageReport summarises a mortgage and carries its amortization schedule.
func MortgageReport(in loans.MortgageInputs, r loans.MortgageResults) Report {
	c := r.Currency
	title, kind := "Mortgage Calculator Report", "New Mortgage (Purchase)"
	priceLabel, downLabel := "Home Price:", "Down Payment:"
	name := string(loans.MortgagePurchase)
	if in.LoanType == loans.MortgageRefinance {
		title, kind = "Remortgage Calculator Report", "Remortgage (Refinance)"
		priceLabel, downLabel = "Property Value:", "Outstanding Balance:"
		name = string(loans.MortgageRefinance)
	}
	second := in.DownPayment
	if in.LoanType == loans.MortgageRefinance {
		second = in.OutstandingBalance
	}

	report := Report{
		Name:     name,
		Title:    title,
		Currency: c,
		Sections: []Section{
			{Heading: "Loan Details", Lines: []Line{
				{Label: "Loan Type:", Value: kind},
				{Label: priceLabel, Value: money(in.HomePrice, c)},
				{Label: downLabel, Value: money(second, c)},
				{Label: "Loan Amount:", Value: money(r.Principal, c)},
				{Label: "Interest Rate:", Value: percent(in.InterestRate)},
				{Label: "Loan Term:", Value: fmt.Sprintf("%d years", in.TermYears)},
				{Label: "Property Tax (Annual):", Value: money(in.PropertyTax, c)},
				{Label: "Home Insurance (Annual):", Value: money(in.HomeInsurance, c)},
				{Label: "PMI (Monthly):", Value: money(in.PMI, c)},
			}},
			{Heading: "Monthly Payment Breakdown", Lines: []Line{
				{Label: "Principal & Interest:", Value: money(r.MonthlyPI, c)},
				{Label: "Property Tax:", Value: money(in.PropertyTax/constants.MonthsPerYear, c)},
				{Label: "Home Insurance:", Value: money(in.HomeInsurance/constants.MonthsPerYear, c)},
				{Label: "PMI:", Value: money(in.PMI, c)},
				{Label: "Total Monthly Payment:", Value: money(r.MonthlyPayment, c), Emphasis: true},
			}},
			{Heading: "Loan Summary", Lines: []Line{
				{Label: "Total Interest:", Value: money(r.TotalInterest, c)},
				{Label: "Total Payment:", Value: money(r.TotalPayment, c)},
			}},
		},
		Table: Table{Header: ScheduleHeader, Rows: scheduleRows(r.Schedule)},
		Data:  r,
	}
	if r.InterestSaved > 0 || r.TimeSaved > 0 {
		report.Sections = append(report.Sections, overpaymentSection(r.InterestSaved, r.TimeSaved, r.PayoffMonth, c))
	}
	return report
}

// LoanReport summarises a general loan and carries its amortization schedule.
func LoanReport(in loans.LoanInputs, r loans.LoanResults) Report {
	c := r.Currency
	report := Report{
		Name:     "loan",
		Title:    "Loan Calculator Report",
		Currency: c,
		Sections: []Section{
			{Heading: "Loan Details", Lines: []Line{
				{Label: "Loan Amount:", Value: money(r.Principal, c)},
				{Label: "Interest Rate:", Value: percent(in.InterestRate)},
				{Label: "Loan Term:", Value: fmt.Sprintf("%d years", in.TermYears)},
			}},
			{Heading: "Loan Summary", Lines: []Line{
				{Label: "Monthly Payment:", Value: money(r.MonthlyPayment, c), Emphasis: true},
				{Label: "Total Interest:", Value: money(r.TotalInterest, c)},
				{Label: "Total Payment:", Value: money(r.TotalPayment, c)},
			}},
		},
		Table: Table{Header: ScheduleHeader, Rows: scheduleRows(r.Schedule)},
		Data:  r,
	}
	if r.InterestSaved > 0 || r.TimeSaved > 0 {
		report.Sections = append(report.Sections, overpaymentSection(r.InterestSaved, r.TimeSaved, r.PayoffMonth, c))
	}
	return report
}

// DebtReport summarises a debt payoff plan with its month-by-month totals.
func DebtReport(r debt.Results) Report {
	c := r.Currency
	summary := []Line{
		{Label: "Strategy:", Value: r.Strategy.String()},
		{Label: "Total Debt:", Value: money(r.TotalDebt, c)},
		{Label: "Monthly Payment:", Value: money(r.TotalMonthlyPayment, c)},
		{Label: "Debt Free In:", Value: fmt.Sprintf("%d months", r.PayoffMonths), Emphasis: true},
		{Label: "Total Interest:", Value: money(r.TotalInterest, c)},
		{Label: "Total Paid:", Value: money(r.TotalPaid, c)},
		{Label: "Interest Saved vs Minimum:", Value: money(r.InterestSaved, c)},
		{Label: "Time Saved vs Minimum:", Value: fmt.Sprintf("%d months", r.TimeSaved)},
	}
	if !r.Converged {
		summary = append(summary, Line{Label: "Warning:", Value: "not paid off within the simulation limit"})
	}
	order := make([]Line, 0, len(r.DebtSchedule))
	for _, e := range r.DebtSchedule {
		order = append(order, Line{Label: e.DebtName + ":", Value: fmt.Sprintf("month %d", e.PayoffMonth)})
	}

	rows := make([][]string, 0, len(r.MonthlyBreakdown))
	for i, m := range r.MonthlyBreakdown {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fixed(m.TotalPayment),
			fixed(m.TotalPrincipal),
			fixed(m.TotalInterest),
			strconv.Itoa(m.RemainingDebts),
			fixed(m.TotalRemainingBalance),
		})
	}
	return Report{
		Name:     "debt_payoff",
		Title:    "Debt Payoff Report",
		Currency: c,
		Sections: []Section{{Heading: "Summary", Lines: summary}, {Heading: "Payoff Order", Lines: order}},
		Table: Table{
			Header: []string{"Month", "Total Payment", "Principal", "Interest", "Remaining Debts", "Remaining Balance"},
			Rows:   rows,
		},
		Data: r,
	}
}

// InvestmentReport summarises an investment projection year by year.
func InvestmentReport(r finance.InvestmentResults) Report {
	c := r.Currency
	rows := make([][]string, 0, len(r.Yearly))
	for _, y := range r.Yearly {
		rows = append(rows, []string{
			strconv.Itoa(y.Year), fixed(y.StartingBalance), fixed(y.Contributions),
			fixed(y.Growth), fixed(y.EndingBalance), fixed(y.RealValue),
		})
	}
	return Report{
		Name:     "investment",
		Title:    "Investment Growth Report",
		Currency: c,
		Sections: []Section{{Heading: "Summary", Lines: []Line{
			{Label: "Final Amount:", Value: money(r.FinalAmount, c), Emphasis: true},
			{Label: "Total Contributions:", Value: money(r.TotalContributions, c)},
			{Label: "Total Growth:", Value: money(r.TotalGrowth, c)},
			{Label: "Inflation-Adjusted Value:", Value: money(r.RealValue, c)},
		}}},
		Table: Table{
			Header: []string{"Year", "Starting Balance", "Contributions", "Growth", "Ending Balance", "Real Value"},
			Rows:   rows,
		},
		Data: r,
	}
}

// RetirementReport summarises a retirement projection year by year.
func RetirementReport(r finance.RetirementResults) Report {
	c := r.Currency
	rows := make([][]string, 0, len(r.Yearly))
	for _, y := range r.Yearly {
		rows = append(rows, []string{
			strconv.Itoa(y.Year), strconv.Itoa(y.Age), fixed(y.Salary), fixed(y.EmployeeContribution),
			fixed(y.EmployerMatch), fixed(y.Growth), fixed(y.EndingBalance),
		})
	}
	return Report{
		Name:     "retirement",
		Title:    "Retirement Projection Report",
		Currency: c,
		Sections: []Section{{Heading: "Summary", Lines: []Line{
			{Label: "Years to Retirement:", Value: strconv.Itoa(r.YearsToRetirement)},
			{Label: "Balance at Retirement:", Value: money(r.FinalBalance, c), Emphasis: true},
			{Label: "Your Contributions:", Value: money(r.TotalContributions, c)},
			{Label: "Employer Match:", Value: money(r.TotalEmployerMatch, c)},
			{Label: "Estimated Monthly Income:", Value: money(r.MonthlyIncomeEstimate, c)},
		}}},
		Table: Table{
			Header: []string{"Year", "Age", "Salary", "Employee Contribution", "Employer Match", "Growth", "Ending Balance"},
			Rows:   rows,
		},
		Data: r,
	}
}

// RentBuyReport summarises a rent-vs-buy comparison year by year.
func RentBuyReport(r finance.RentBuyResults) Report {
	c := r.Currency
	breakEven := "never within the analysis period"
	if r.BreakEvenYear != finance.NoBreakEven {
		breakEven = fmt.Sprintf("year %d", r.BreakEvenYear)
	}
	verdict := "Renting"
	if r.IsBuyingBetter {
		verdict = "Buying"
	}
	rows := make([][]string, 0, len(r.Yearly))
	for _, y := range r.Yearly {
		rows = append(rows, []string{
			strconv.Itoa(y.Year), fixed(y.HomeValue), fixed(y.MortgageBalance), fixed(y.HomeEquity),
			fixed(y.InvestmentBalance), fixed(y.BuyingNetPosition), fixed(y.RentingNetPosition), fixed(y.Difference),
		})
	}
	return Report{
		Name:     "rent_vs_buy",
		Title:    "Rent vs Buy Report",
		Currency: c,
		Sections: []Section{
			{Heading: "Summary", Lines: []Line{
				{Label: "Better Option:", Value: verdict, Emphasis: true},
				{Label: "Break-Even:", Value: breakEven},
				{Label: "Total Cost to Buy:", Value: money(r.TotalCostToBuy, c)},
				{Label: "Total Cost to Rent:", Value: money(r.TotalCostToRent, c)},
				{Label: "Difference:", Value: money(r.CostDifference, c)},
			}},
			{Heading: "Buying Costs", Lines: []Line{
				{Label: "Monthly Mortgage Payment:", Value: money(r.BuyingCosts.MonthlyPayment, c)},
				{Label: "Closing Costs:", Value: money(r.BuyingCosts.ClosingCosts, c)},
				{Label: "Interest:", Value: money(r.BuyingCosts.TotalInterest, c)},
				{Label: "Property Tax:", Value: money(r.BuyingCosts.TotalPropertyTax, c)},
				{Label: "Insurance:", Value: money(r.BuyingCosts.TotalInsurance, c)},
				{Label: "Maintenance:", Value: money(r.BuyingCosts.TotalMaintenance, c)},
				{Label: "HOA:", Value: money(r.BuyingCosts.TotalHOA, c)},
			}},
			{Heading: "Renting Costs", Lines: []Line{
				{Label: "Rent:", Value: money(r.RentingCosts.TotalRent, c)},
				{Label: "Renter's Insurance:", Value: money(r.RentingCosts.TotalInsurance, c)},
				{Label: "Investment Growth:", Value: money(r.RentingCosts.InvestmentGrowth, c)},
			}},
		},
		Table: Table{
			Header: []string{"Year", "Home Value", "Mortgage Balance", "Home Equity", "Investment Balance", "Buying Net", "Renting Net", "Difference"},
			Rows:   rows,
		},
		Data: r,
	}
}

// EmergencyFundReport summarises an emergency fund plan month by month.
func EmergencyFundReport(r finance.EmergencyFundResults) Report {
	c := r.Currency
	status := "not reached within the projection"
	switch {
	case r.IsGoalMet:
		status = "already met"
	case r.Reachable:
		status = fmt.Sprintf("%d months", r.MonthsToGoal)
	}
	rows := make([][]string, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		rows = append(rows, []string{
			strconv.Itoa(m.Month), fixed(m.Contribution), fixed(m.Interest), fixed(m.Balance), fixed(m.MonthsOfExpense),
		})
	}
	return Report{
		Name:     "emergency_fund",
		Title:    "Emergency Fund Report",
		Currency: c,
		Sections: []Section{{Heading: "Summary", Lines: []Line{
			{Label: "Target Amount:", Value: money(r.TargetAmount, c)},
			{Label: "Amount Needed:", Value: money(r.AmountNeeded, c)},
			{Label: "Goal:", Value: status, Emphasis: true},
		}}},
		Table: Table{
			Header: []string{"Month", "Contribution", "Interest", "Balance", "Months Covered"},
			Rows:   rows,
		},
		Data: r,
	}
}

// SalaryReport itemises take-home pay by period.
func SalaryReport(r tax.SalaryResult) Report {
	c := r.Currency
	row := func(label string, annual float64) []string {
		return []string{label, fixed(annual), fixed(mathutil.Round(annual / constants.MonthsPerYear)), "", ""}
	}
	rows := [][]string{
		{"Gross", fixed(r.Gross.Annual), fixed(r.Gross.Monthly), fixed(r.Gross.Weekly), fixed(r.Gross.Daily)},
		row("Income Tax", r.Deductions.IncomeTax),
	}
	deductions := []Line{{Label: "Income Tax:", Value: money(r.Deductions.IncomeTax, c)}}
	if ni := r.Deductions.NationalInsurance; ni != nil {
		rows = append(rows, row("National Insurance", *ni))
		deductions = append(deductions, Line{Label: "National Insurance:", Value: money(*ni, c)})
	}
	if f := r.Deductions.FICA; f != nil {
		rows = append(rows, row("Social Security", f.SocialSecurity), row("Medicare", f.Medicare))
		deductions = append(deductions,
			Line{Label: "Social Security:", Value: money(f.SocialSecurity, c)},
			Line{Label: "Medicare:", Value: money(f.Medicare, c)},
		)
	}
	rows = append(rows,
		row("Student Loan", r.Deductions.StudentLoan),
		row("Pension", r.Deductions.Pension),
		row("Total Deductions", r.Deductions.Total),
		[]string{"Net", fixed(r.Net.Annual), fixed(r.Net.Monthly), fixed(r.Net.Weekly), fixed(r.Net.Daily)},
	)
	deductions = append(deductions,
		Line{Label: "Student Loan:", Value: money(r.Deductions.StudentLoan, c)},
		Line{Label: "Pension:", Value: money(r.Deductions.Pension, c)},
		Line{Label: "Total Deductions:", Value: money(r.Deductions.Total, c)},
	)

	return Report{
		Name:     "salary",
		Title:    "Take-Home Pay Report",
		Currency: c,
		Sections: []Section{
			{Heading: "Take-Home Pay", Lines: []Line{
				{Label: "Gross (Annual):", Value: money(r.Gross.Annual, c)},
				{Label: "Net (Annual):", Value: money(r.Net.Annual, c), Emphasis: true},
				{Label: "Net (Monthly):", Value: money(r.Net.Monthly, c)},
				{Label: "Effective Rate:", Value: percent(r.EffectiveTaxRate)},
				{Label: "Marginal Rate:", Value: percent(r.MarginalTaxRate)},
				{Label: "Tax Band:", Value: r.Breakdown.TaxBand},
			}},
			{Heading: "Deductions", Lines: deductions},
		},
		Table: Table{Header: []string{"Item", "Annual", "Monthly", "Weekly", "Daily"}, Rows: rows},
		Data:  r,
	}
}

// DebtComparisonReport lines the payoff strategies up side by side.
func DebtComparisonReport(c debt.Comparison, currency string) Report {
	rows := make([][]string, 0, 3)
	for _, s := range []debt.Summary{c.Avalanche, c.Snowball, c.Minimum} {
		rows = append(rows, []string{
			s.Strategy.String(), strconv.Itoa(s.PayoffMonths), fixed(s.TotalInterest),
			fixed(s.TotalPaid), strconv.FormatBool(s.Converged),
		})
	}
	return Report{
		Name:     "debt_strategies",
		Title:    "Debt Strategy Comparison",
		Currency: currency,
		Sections: []Section{{Heading: "Summary", Lines: []Line{
			{Label: "Recommended:", Value: c.Recommended.String(), Emphasis: true},
			{Label: "Avalanche Saves vs Snowball:", Value: money(c.InterestSaved, currency)},
			{Label: "Months Saved vs Snowball:", Value: strconv.Itoa(c.MonthsSaved)},
		}}},
		Table: Table{
			Header: []string{"Strategy", "Months", "Total Interest", "Total Paid", "Paid Off"},
			Rows:   rows,
		},
		Data: c,
	}
}

// DebtTargetReport reports the extra payment needed to hit a payoff target.
func DebtTargetReport(s debt.Solution, currency string) Report {
	outcome := fmt.Sprintf("debt free in %d months", s.PayoffMonths)
	if !s.Converged {
		outcome = fmt.Sprintf("target of %d months is not reachable", s.TargetMonths)
	}
	return Report{
		Name:     "debt_target",
		Title:    "Debt Payoff Target",
		Currency: currency,
		Sections: []Section{{Heading: "Summary", Lines: []Line{
			{Label: "Strategy:", Value: s.Strategy.String()},
			{Label: "Target:", Value: fmt.Sprintf("%d months", s.TargetMonths)},
			{Label: "Extra Monthly Payment:", Value: money(s.ExtraPayment, currency), Emphasis: true},
			{Label: "Outcome:", Value: outcome},
		}}},
		Table: Table{
			Header: []string{"Strategy", "Target Months", "Extra Payment", "Payoff Months", "Reachable"},
			Rows: [][]string{{
				s.Strategy.String(), strconv.Itoa(s.TargetMonths), fixed(s.ExtraPayment),
				strconv.Itoa(s.PayoffMonths), strconv.FormatBool(s.Converged),
			}},
		},
		Data: s,
	}
}
