package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRentBuy() RentBuyInputs {
	return RentBuyInputs{
		HomePrice:        400000,
		DownPayment:      80000,
		InterestRate:     6.5,
		LoanTerm:         30,
		PropertyTax:      5000,
		HomeInsurance:    1200,
		MaintenanceRate:  1.5,
		MonthlyRent:      2200,
		RentIncrease:     3,
		RentersInsurance: 200,
		InvestmentReturn: 7,
		Years:            10,
	}
}

func TestCompareRentBuyNoBreakEven(t *testing.T) {
	results := CompareRentBuy(defaultRentBuy())

	assert.Equal(t, NoBreakEven, results.BreakEvenYear)
	assert.Equal(t, 0, results.BreakEvenYear)
	assert.False(t, results.IsBuyingBetter)
	assert.InDelta(t, 199214.45, results.TotalCostToBuy, 0.005)
	assert.InDelta(t, 14780.95, results.TotalCostToRent, 0.005)
	assert.InDelta(t, -184433.50, results.CostDifference, 0.005)

	require.Len(t, results.Yearly, 10)
	first := results.Yearly[0]
	assert.InDelta(t, 412000.00, first.HomeValue, 0.005)
	assert.InDelta(t, 316423.28, first.MortgageBalance, 0.005)
	assert.InDelta(t, 108845.05, first.InvestmentBalance, 0.005)
	assert.InDelta(t, first.RentingNetPosition-first.BuyingNetPosition, first.Difference, 0.01)

	last := results.Yearly[9]
	assert.InDelta(t, 537566.55, last.HomeValue, 0.005)
	assert.InDelta(t, 271283.60, last.MortgageBalance, 0.005)
	assert.InDelta(t, last.HomeValue-last.MortgageBalance, last.HomeEquity, 0.01)

	assert.InDelta(t, 2022.62, results.BuyingCosts.MonthlyPayment, 0.005)
	assert.InDelta(t, 12000.00, results.BuyingCosts.ClosingCosts, 0.005)
	assert.InDelta(t, 193997.73, results.BuyingCosts.TotalInterest, 0.005)
	assert.InDelta(t, 50000.00, results.BuyingCosts.TotalPropertyTax, 0.005)
	assert.InDelta(t, 302646.41, results.RentingCosts.TotalRent, 0.005)
	assert.InDelta(t, 2000.00, results.RentingCosts.TotalInsurance, 0.005)
	assert.InDelta(t, 92000.00, results.RentingCosts.OpportunityCost, 0.005)
}

func TestCompareRentBuyBreakEven(t *testing.T) {
	results := CompareRentBuy(RentBuyInputs{
		HomePrice:        300000,
		DownPayment:      60000,
		InterestRate:     5,
		LoanTerm:         30,
		PropertyTax:      3000,
		HomeInsurance:    1000,
		MaintenanceRate:  1,
		MonthlyRent:      3500,
		RentIncrease:     5,
		RentersInsurance: 150,
		InvestmentReturn: 2,
		Years:            15,
	})

	assert.Equal(t, 2, results.BreakEvenYear)
	assert.True(t, results.IsBuyingBetter)
	assert.InDelta(t, 1338385.22, results.CostDifference, 0.005)
	assert.Less(t, results.Yearly[1].Difference, 0.0)
	assert.GreaterOrEqual(t, results.Yearly[0].Difference, 0.0)
}

func TestCompareRentBuyMortgagePaidOff(t *testing.T) {
	inputs := defaultRentBuy()
	inputs.Years = 30

	results := CompareRentBuy(inputs)
	assert.Zero(t, results.Yearly[29].MortgageBalance)
	assert.InDelta(t, 970904.99, results.Yearly[29].HomeValue, 0.005)
	assert.Equal(t, NoBreakEven, results.BreakEvenYear)
}

func TestCompareRentBuyZeroYears(t *testing.T) {
	inputs := defaultRentBuy()
	inputs.Years = 0

	results := CompareRentBuy(inputs)
	assert.Equal(t, NoBreakEven, results.BreakEvenYear)
	assert.Empty(t, results.Yearly)
	assert.Zero(t, results.TotalCostToBuy)
	assert.Zero(t, results.TotalCostToRent)
}

func TestCompareRentBuyIdempotent(t *testing.T) {
	assert.Equal(t, CompareRentBuy(defaultRentBuy()), CompareRentBuy(defaultRentBuy()))
}
