package finance

import (
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/loans"
	"github.com/iwvelando/crunch-the-numbers/pkg/mathutil"
	"go.uber.org/zap"
)

// NoBreakEven is the BreakEvenYear reported when buying never overtakes renting
// within the analysis horizon.
const NoBreakEven = 0

// RentBuyInputs holds the inputs of the rent-vs-buy comparator. PropertyTax,
// HomeInsurance and RentersInsurance are annual; HOAFees and MonthlyRent are
// monthly; MaintenanceRate is an annual percentage of the home's value.
type RentBuyInputs struct {
	HomePrice        float64 `json:"homePrice" yaml:"homePrice" mapstructure:"homePrice"`
	DownPayment      float64 `json:"downPayment" yaml:"downPayment" mapstructure:"downPayment"`
	InterestRate     float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	LoanTerm         int     `json:"loanTerm" yaml:"loanTerm" mapstructure:"loanTerm"`
	PropertyTax      float64 `json:"propertyTax" yaml:"propertyTax" mapstructure:"propertyTax"`
	HomeInsurance    float64 `json:"homeInsurance" yaml:"homeInsurance" mapstructure:"homeInsurance"`
	HOAFees          float64 `json:"hoaFees" yaml:"hoaFees" mapstructure:"hoaFees"`
	MaintenanceRate  float64 `json:"maintenanceRate" yaml:"maintenanceRate" mapstructure:"maintenanceRate"`
	MonthlyRent      float64 `json:"monthlyRent" yaml:"monthlyRent" mapstructure:"monthlyRent"`
	RentIncrease     float64 `json:"rentIncrease" yaml:"rentIncrease" mapstructure:"rentIncrease"`
	RentersInsurance float64 `json:"rentersInsurance" yaml:"rentersInsurance" mapstructure:"rentersInsurance"`
	InvestmentReturn float64 `json:"investmentReturn" yaml:"investmentReturn" mapstructure:"investmentReturn"`
	Years            int     `json:"yearsToAnalyze" yaml:"yearsToAnalyze" mapstructure:"yearsToAnalyze"`
	Currency         string  `json:"currency" yaml:"currency" mapstructure:"currency"`
}

// RentBuyYear compares both positions at the end of a year.
type RentBuyYear struct {
	Year int `json:"year"`
	// BuyingCumulativeCost and RentingCumulativeCost are cumulative outlay net
	// of home equity and of the investment balance respectively.
	BuyingCumulativeCost  float64 `json:"buyingCumulativeCost"`
	RentingCumulativeCost float64 `json:"rentingCumulativeCost"`
	BuyingNetPosition     float64 `json:"buyingNetPosition"`
	RentingNetPosition    float64 `json:"rentingNetPosition"`
	// Difference is renting's net position minus buying's.
	Difference        float64 `json:"difference"`
	HomeValue         float64 `json:"homeValue"`
	MortgageBalance   float64 `json:"mortgageBalance"`
	HomeEquity        float64 `json:"homeEquity"`
	InvestmentBalance float64 `json:"investmentBalance"`
}

// BuyingCosts itemises ownership costs over the analysis horizon.
type BuyingCosts struct {
	MonthlyPayment   float64 `json:"monthlyPayment"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalPropertyTax float64 `json:"totalPropertyTax"`
	TotalInsurance   float64 `json:"totalInsurance"`
	TotalMaintenance float64 `json:"totalMaintenance"`
	TotalHOA         float64 `json:"totalHOA"`
	ClosingCosts     float64 `json:"closingCosts"`
}

// RentingCosts itemises renting costs over the analysis horizon.
type RentingCosts struct {
	TotalRent        float64 `json:"totalRent"`
	TotalInsurance   float64 `json:"totalInsurance"`
	InvestmentGrowth float64 `json:"investmentGrowth"`
	OpportunityCost  float64 `json:"opportunityCost"`
}

// RentBuyResults holds the outputs of the rent-vs-buy comparator.
type RentBuyResults struct {
	TotalCostToBuy  float64 `json:"totalCostToBuy"`
	TotalCostToRent float64 `json:"totalCostToRent"`
	// CostDifference is TotalCostToRent minus TotalCostToBuy.
	CostDifference float64 `json:"costDifference"`
	IsBuyingBetter bool    `json:"isBuyingBetter"`
	// BreakEvenYear is the first year buying's net position exceeds renting's,
	// or NoBreakEven.
	BreakEvenYear int           `json:"breakEvenYear"`
	Yearly        []RentBuyYear `json:"yearlyBreakdown"`
	BuyingCosts   BuyingCosts   `json:"buyingCosts"`
	RentingCosts  RentingCosts  `json:"rentingCosts"`
	Currency      string        `json:"currency"`
}

// CompareRentBuy runs the rent-vs-buy comparator with a no-op logger.
func CompareRentBuy(inputs RentBuyInputs) RentBuyResults {
	return NewProjector(nil).RentBuy(inputs)
}

// RentBuy simulates owning and renting month by month. The home appreciates
// and the rent escalates at each year boundary. The renter invests the down
// payment and closing costs up front and then, every month, the difference
// between the cost of owning and the cost of renting.
func (p *Projector) RentBuy(inputs RentBuyInputs) RentBuyResults {
	results := RentBuyResults{
		BreakEvenYear: NoBreakEven,
		Yearly:        []RentBuyYear{},
		Currency:      currencyOrDefault(inputs.Currency),
	}
	if inputs.Years <= 0 {
		return results
	}

	loanAmount := mathutil.NonNegative(inputs.HomePrice - inputs.DownPayment)
	termMonths := inputs.LoanTerm * constants.MonthsPerYear
	payment := loans.CalculateMonthlyPayment(loanAmount, inputs.InterestRate, termMonths)
	closingCosts := inputs.HomePrice * percentToDecimal(constants.ClosingCostRate)
	upfront := inputs.DownPayment + closingCosts
	investReturn := mathutil.MonthlyRate(inputs.InvestmentReturn)

	homeValue := inputs.HomePrice
	mortgage := loanAmount
	if termMonths <= 0 {
		// without a term the purchase is treated as paid in full
		mortgage = 0
	}
	rent := inputs.MonthlyRent
	investment := upfront
	buyOutlay := upfront
	rentOutlay := 0.0
	var costs BuyingCosts
	var totalRent, totalRentersInsurance float64

	for month := 1; month <= inputs.Years*constants.MonthsPerYear; month++ {
		mortgagePayment := 0.0
		if mortgage > 0 {
			interest := loans.CalculateInterestPayment(mortgage, inputs.InterestRate)
			principal := min(payment-interest, mortgage)
			mortgage = mathutil.NonNegative(mortgage - principal)
			mortgagePayment = interest + principal
			costs.TotalInterest += interest
		}
		tax := inputs.PropertyTax / constants.MonthsPerYear
		insurance := inputs.HomeInsurance / constants.MonthsPerYear
		maintenance := homeValue * mathutil.MonthlyRate(inputs.MaintenanceRate)
		owning := mortgagePayment + tax + insurance + inputs.HOAFees + maintenance

		rentersInsurance := inputs.RentersInsurance / constants.MonthsPerYear
		renting := rent + rentersInsurance

		buyOutlay += owning
		rentOutlay += renting
		costs.TotalPropertyTax += tax
		costs.TotalInsurance += insurance
		costs.TotalMaintenance += maintenance
		costs.TotalHOA += inputs.HOAFees
		totalRent += rent
		totalRentersInsurance += rentersInsurance

		investment += investment * investReturn
		investment += owning - renting

		if month%constants.MonthsPerYear != 0 {
			continue
		}

		year := month / constants.MonthsPerYear
		homeValue *= 1 + percentToDecimal(constants.HomeAppreciationRate)
		equity := homeValue - mortgage
		buyNet := equity - buyOutlay
		rentNet := investment - rentOutlay

		results.Yearly = append(results.Yearly, RentBuyYear{
			Year:                  year,
			BuyingCumulativeCost:  mathutil.Round(buyOutlay - equity),
			RentingCumulativeCost: mathutil.Round(rentOutlay - investment),
			BuyingNetPosition:     mathutil.Round(buyNet),
			RentingNetPosition:    mathutil.Round(rentNet),
			Difference:            mathutil.Round(rentNet - buyNet),
			HomeValue:             mathutil.Round(homeValue),
			MortgageBalance:       mathutil.Round(mortgage),
			HomeEquity:            mathutil.Round(equity),
			InvestmentBalance:     mathutil.Round(investment),
		})
		if results.BreakEvenYear == NoBreakEven && buyNet > rentNet {
			results.BreakEvenYear = year
		}

		rent *= 1 + percentToDecimal(inputs.RentIncrease)
	}

	last := results.Yearly[len(results.Yearly)-1]
	results.TotalCostToBuy = last.BuyingCumulativeCost
	results.TotalCostToRent = last.RentingCumulativeCost
	results.CostDifference = mathutil.Round(last.RentingCumulativeCost - last.BuyingCumulativeCost)
	results.IsBuyingBetter = results.CostDifference > 0

	results.BuyingCosts = BuyingCosts{
		MonthlyPayment:   mathutil.Round(payment),
		TotalInterest:    mathutil.Round(costs.TotalInterest),
		TotalPropertyTax: mathutil.Round(costs.TotalPropertyTax),
		TotalInsurance:   mathutil.Round(costs.TotalInsurance),
		TotalMaintenance: mathutil.Round(costs.TotalMaintenance),
		TotalHOA:         mathutil.Round(costs.TotalHOA),
		ClosingCosts:     mathutil.Round(closingCosts),
	}
	results.RentingCosts = RentingCosts{
		TotalRent:        mathutil.Round(totalRent),
		TotalInsurance:   mathutil.Round(totalRentersInsurance),
		InvestmentGrowth: mathutil.Round(investment - upfront),
		OpportunityCost:  mathutil.Round(upfront),
	}

	p.logger.Debug("rent vs buy compared",
		zap.String("op", "finance.RentBuy"),
		zap.Int("years", inputs.Years),
		zap.Int("breakEvenYear", results.BreakEvenYear),
		zap.Bool("buyingBetter", results.IsBuyingBetter),
	)
	return results
}
