package tax

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
)

// UK 2024/25 income tax figures.
const (
	UKPersonalAllowance     = 12570.0
	UKBasicRateThreshold    = 50270.0
	UKHigherRateThreshold   = 125140.0
	UKTaperThreshold        = 100000.0
	UKBlindPersonsAllowance = 2870.0

	ScottishStarterThreshold      = 14876.0
	ScottishBasicThreshold        = 26561.0
	ScottishIntermediateThreshold = 43662.0
	ScottishHigherThreshold       = 75000.0

	NIPrimaryThreshold   = 12570.0
	NIUpperEarningsLimit = 50270.0
	NIMainRate           = 0.12
	NIUpperRate          = 0.02

	DefaultTaxCode = "1257L"
)

type band struct {
	name      string
	threshold float64
	rate      float64
}

// Thresholds are gross income levels for a taxpayer on the standard allowance.
var (
	ukBands = []band{
		{"Basic rate", UKBasicRateThreshold, 0.20},
		{"Higher rate", UKHigherRateThreshold, 0.40},
		{"Additional rate", math.Inf(1), 0.45},
	}
	scottishBands = []band{
		{"Starter rate", ScottishStarterThreshold, 0.19},
		{"Basic rate", ScottishBasicThreshold, 0.20},
		{"Intermediate rate", ScottishIntermediateThreshold, 0.21},
		{"Higher rate", ScottishHigherThreshold, 0.42},
		{"Top rate", math.Inf(1), 0.47},
	}
	niBrackets = []Bracket{
		{Name: "Below primary threshold", Min: 0, Max: NIPrimaryThreshold, Rate: 0},
		{Name: "Main rate", Min: NIPrimaryThreshold, Max: NIUpperEarningsLimit, Rate: NIMainRate},
		{Name: "Upper rate", Min: NIUpperEarningsLimit, Max: math.Inf(1), Rate: NIUpperRate},
	}
)

// StudentLoanPlan selects a UK student loan repayment plan.
type StudentLoanPlan string

const (
	StudentLoanNone         StudentLoanPlan = "none"
	StudentLoanPlan1        StudentLoanPlan = "plan_1"
	StudentLoanPlan2        StudentLoanPlan = "plan_2"
	StudentLoanPlan4        StudentLoanPlan = "plan_4"
	StudentLoanPlan5        StudentLoanPlan = "plan_5"
	StudentLoanPostgraduate StudentLoanPlan = "postgraduate"
)

type repayment struct {
	threshold float64
	rate      float64
}

var studentLoanPlans = map[StudentLoanPlan]repayment{
	StudentLoanPlan1:        {22015, 0.09},
	StudentLoanPlan2:        {27295, 0.09},
	StudentLoanPlan4:        {31395, 0.09},
	StudentLoanPlan5:        {25000, 0.09},
	StudentLoanPostgraduate: {21000, 0.06},
}

// Known reports whether the plan is none or one of the repayment plans.
func (p StudentLoanPlan) Known() bool {
	if p == "" || p == StudentLoanNone {
		return true
	}
	_, ok := studentLoanPlans[p]
	return ok
}

// TaxCode is a parsed HMRC tax code.
type TaxCode struct {
	Code string `json:"code"`
	// Allowance is negative for K codes.
	Allowance float64 `json:"allowance"`
	NoTax     bool    `json:"noTax"`
	Scottish  bool    `json:"scottish"`
}

var digits = regexp.MustCompile(`\d+`)

// ParseTaxCode derives the personal allowance from a tax code: the numeric
// part times ten. BR, D0 and D1 carry no allowance and NT means no tax at all.
// An S prefix marks a Scottish taxpayer. Codes without digits fall back to the
// standard allowance.
func ParseTaxCode(code string) TaxCode {
	clean := strings.ToUpper(strings.TrimSpace(code))
	if clean == "" {
		clean = DefaultTaxCode
	}
	parsed := TaxCode{Code: clean, Allowance: UKPersonalAllowance}

	rest := clean
	switch {
	case strings.HasPrefix(rest, "S"):
		parsed.Scottish = true
		rest = rest[1:]
	case strings.HasPrefix(rest, "C"):
		rest = rest[1:]
	}

	switch rest {
	case "BR", "D0", "D1":
		parsed.Allowance = 0
		return parsed
	case "NT":
		parsed.NoTax = true
		return parsed
	}

	match := digits.FindString(rest)
	if match == "" {
		return parsed
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return parsed
	}
	parsed.Allowance = float64(n) * 10
	if strings.HasPrefix(rest, "K") {
		parsed.Allowance = -parsed.Allowance
	}
	return parsed
}

// TaperedAllowance reduces a positive allowance by one pound for every two
// pounds of income above the taper threshold, down to zero.
func TaperedAllowance(income, allowance float64) float64 {
	if allowance <= 0 || income <= UKTaperThreshold {
		return allowance
	}
	return allowance - math.Min(allowance, (income-UKTaperThreshold)/2)
}

// UKBrackets returns the income tax bands applied to income above the
// allowance. Band widths are the standard thresholds less the allowance. A K
// code allowance is added to income instead and leaves the standard widths.
func UKBrackets(allowance float64, scottish bool) []Bracket {
	bands := ukBands
	if scottish {
		bands = scottishBands
	}
	if allowance < 0 {
		allowance = UKPersonalAllowance
	}
	brackets := make([]Bracket, 0, len(bands))
	lower := 0.0
	for _, b := range bands {
		upper := math.Max(lower, b.threshold-allowance)
		brackets = append(brackets, Bracket{Name: b.name, Min: lower, Max: upper, Rate: b.rate})
		lower = upper
	}
	return brackets
}

// UKIncomeTax returns the tax due on income and the taxable amount above the
// tapered allowance.
func UKIncomeTax(income, allowance float64, scottish bool) (tax, taxable float64) {
	taxable = income - TaperedAllowance(income, allowance)
	if taxable <= 0 {
		return 0, 0
	}
	return mathutil.Round(Walk(taxable, UKBrackets(allowance, scottish))), taxable
}

// UKNationalInsurance returns the employee's Class 1 contributions.
func UKNationalInsurance(earnings float64, exempt bool) float64 {
	if exempt {
		return 0
	}
	return mathutil.Round(Walk(earnings, niBrackets))
}

// UKStudentLoan returns the annual repayment on a plan, 0 below its threshold.
func UKStudentLoan(earnings float64, plan StudentLoanPlan) float64 {
	r, ok := studentLoanPlans[plan]
	if !ok || earnings <= r.threshold {
		return 0
	}
	return mathutil.Round((earnings - r.threshold) * r.rate)
}
