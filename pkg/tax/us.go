package tax

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
)

// FilingStatus selects the US federal bracket table.
type FilingStatus string

const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "married_filing_jointly"
	MarriedFilingSeparately FilingStatus = "married_filing_separately"
	HeadOfHousehold         FilingStatus = "head_of_household"
)

// FICA figures.
const (
	SocialSecurityRate     = 0.062
	SocialSecurityWageBase = 160200.0
	MedicareRate           = 0.0145
	AdditionalMedicareRate = 0.009
)

var usBrackets = map[FilingStatus][]Bracket{
	Single: {
		{Min: 0, Max: 11000, Rate: 0.10},
		{Min: 11000, Max: 44725, Rate: 0.12},
		{Min: 44725, Max: 95375, Rate: 0.22},
		{Min: 95375, Max: 182050, Rate: 0.24},
		{Min: 182050, Max: 231250, Rate: 0.32},
		{Min: 231250, Max: 578125, Rate: 0.35},
		{Min: 578125, Max: math.Inf(1), Rate: 0.37},
	},
	MarriedFilingJointly: {
		{Min: 0, Max: 22000, Rate: 0.10},
		{Min: 22000, Max: 89450, Rate: 0.12},
		{Min: 89450, Max: 190750, Rate: 0.22},
		{Min: 190750, Max: 364200, Rate: 0.24},
		{Min: 364200, Max: 462500, Rate: 0.32},
		{Min: 462500, Max: 693750, Rate: 0.35},
		{Min: 693750, Max: math.Inf(1), Rate: 0.37},
	},
	MarriedFilingSeparately: {
		{Min: 0, Max: 11000, Rate: 0.10},
		{Min: 11000, Max: 44725, Rate: 0.12},
		{Min: 44725, Max: 95375, Rate: 0.22},
		{Min: 95375, Max: 182100, Rate: 0.24},
		{Min: 182100, Max: 231250, Rate: 0.32},
		{Min: 231250, Max: 346875, Rate: 0.35},
		{Min: 346875, Max: math.Inf(1), Rate: 0.37},
	},
	HeadOfHousehold: {
		{Min: 0, Max: 15700, Rate: 0.10},
		{Min: 15700, Max: 59850, Rate: 0.12},
		{Min: 59850, Max: 95350, Rate: 0.22},
		{Min: 95350, Max: 182100, Rate: 0.24},
		{Min: 182100, Max: 231250, Rate: 0.32},
		{Min: 231250, Max: 578100, Rate: 0.35},
		{Min: 578100, Max: math.Inf(1), Rate: 0.37},
	},
}

var additionalMedicareThresholds = map[FilingStatus]float64{
	Single:                  200000,
	MarriedFilingJointly:    250000,
	MarriedFilingSeparately: 125000,
	HeadOfHousehold:         200000,
}

// ParseFilingStatus validates a filing status. An empty value means single.
func ParseFilingStatus(value string) (FilingStatus, error) {
	status := FilingStatus(strings.ToLower(strings.TrimSpace(value)))
	if status == "" {
		return Single, nil
	}
	if _, ok := usBrackets[status]; !ok {
		return Single, fmt.Errorf("unknown filing status %q", value)
	}
	return status, nil
}

// USBrackets returns the federal bracket table for a filing status, falling
// back to single.
func USBrackets(status FilingStatus) []Bracket {
	if b, ok := usBrackets[status]; ok {
		return b
	}
	return usBrackets[Single]
}

// USFederalTax returns federal income tax on income.
func USFederalTax(income float64, status FilingStatus) float64 {
	if income <= 0 {
		return 0
	}
	return mathutil.Round(Walk(income, USBrackets(status)))
}

// FICA holds the employee's payroll taxes.
type FICA struct {
	SocialSecurity float64 `json:"socialSecurity"`
	Medicare       float64 `json:"medicare"`
}

// Total is Social Security plus Medicare.
func (f FICA) Total() float64 {
	return f.SocialSecurity + f.Medicare
}

// USFICA returns Social Security up to the wage base and Medicare, with the
// additional Medicare surtax above the filing status threshold.
func USFICA(wages float64, status FilingStatus) FICA {
	if wages <= 0 {
		return FICA{}
	}
	threshold, ok := additionalMedicareThresholds[status]
	if !ok {
		threshold = additionalMedicareThresholds[Single]
	}
	medicare := wages * MedicareRate
	if wages > threshold {
		medicare += (wages - threshold) * AdditionalMedicareRate
	}
	return FICA{
		SocialSecurity: mathutil.Round(math.Min(wages, SocialSecurityWageBase) * SocialSecurityRate),
		Medicare:       mathutil.Round(medicare),
	}
}
