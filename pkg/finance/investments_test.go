package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProjectGrowth(t *testing.T) {
	results := ProjectGrowth(InvestmentInputs{
		Initial:             10000,
		MonthlyContribution: 500,
		AnnualReturn:        7,
		Years:               10,
		InflationRate:       3,
	})

	assert.InDelta(t, 107143.85, results.FinalAmount, 0.005)
	assert.InDelta(t, 70000.00, results.TotalContributions, 0.005)
	assert.InDelta(t, 37143.85, results.TotalGrowth, 0.005)
	assert.InDelta(t, 79725.09, results.RealValue, 0.005)
	assert.Equal(t, "USD", results.Currency)

	require.Len(t, results.Monthly, 120)
	require.Len(t, results.Yearly, 10)

	first := results.Yearly[0]
	assert.Equal(t, 1, first.Year)
	assert.InDelta(t, 10000.00, first.StartingBalance, 0.005)
	assert.InDelta(t, 6000.00, first.Contributions, 0.005)
	assert.InDelta(t, 955.34, first.Growth, 0.005)
	assert.InDelta(t, 16955.34, first.EndingBalance, 0.005)
	assert.InDelta(t, 16461.49, first.RealValue, 0.005)

	last := results.Yearly[9]
	assert.InDelta(t, 94108.31, last.StartingBalance, 0.005)
	assert.InDelta(t, results.FinalAmount, last.EndingBalance, 0.005)

	assert.Equal(t, 12, results.Monthly[119].Month)
	assert.Equal(t, 10, results.Monthly[119].Year)
}

func TestProjectGrowthContributionBeforeGrowth(t *testing.T) {
	results := ProjectGrowth(InvestmentInputs{MonthlyContribution: 1000, AnnualReturn: 12, Years: 1})

	// the first contribution earns its first month of growth immediately
	assert.InDelta(t, 10.00, results.Monthly[0].Growth, 0.005)
	assert.InDelta(t, 1010.00, results.Monthly[0].Balance, 0.005)
}

func TestProjectGrowthZeroReturn(t *testing.T) {
	results := ProjectGrowth(InvestmentInputs{Initial: 1000, MonthlyContribution: 100, Years: 2})

	assert.InDelta(t, 3400.00, results.FinalAmount, 0.005)
	assert.InDelta(t, 3400.00, results.TotalContributions, 0.005)
	assert.Zero(t, results.TotalGrowth)
	assert.InDelta(t, 3400.00, results.RealValue, 0.005)
}

func TestProjectGrowthContributionEscalation(t *testing.T) {
	results := ProjectGrowth(InvestmentInputs{MonthlyContribution: 100, Years: 2, ContributionIncrease: 12})

	assert.InDelta(t, 100.00, results.Monthly[0].Contribution, 0.005)
	assert.InDelta(t, 101.00, results.Monthly[1].Contribution, 0.005)
	assert.InDelta(t, 1268.25, results.Yearly[0].Contributions, 0.005)
	assert.InDelta(t, 1429.10, results.Yearly[1].Contributions, 0.005)
	assert.InDelta(t, 2697.35, results.FinalAmount, 0.005)
}

func TestProjectGrowthCompounding(t *testing.T) {
	tests := []struct {
		compounding Compounding
		expected    float64
	}{
		{CompoundMonthly, 11268.25},
		{CompoundQuarterly, 11255.09},
		{CompoundAnnually, 11200.00},
		{"", 11268.25},
	}

	for _, tt := range tests {
		t.Run(string(tt.compounding), func(t *testing.T) {
			results := ProjectGrowth(InvestmentInputs{Initial: 10000, AnnualReturn: 12, Years: 1, Compounding: tt.compounding})
			assert.InDelta(t, tt.expected, results.FinalAmount, 0.005)
		})
	}

	annual := ProjectGrowth(InvestmentInputs{Initial: 10000, AnnualReturn: 12, Years: 1, Compounding: CompoundAnnually})
	assert.Zero(t, annual.Monthly[10].Growth)
	assert.InDelta(t, 1200.00, annual.Monthly[11].Growth, 0.005)
}

func TestProjectGrowthUnknownCompoundingFallsBack(t *testing.T) {
	results := NewProjector(zap.NewNop()).Growth(InvestmentInputs{Initial: 10000, AnnualReturn: 12, Years: 1, Compounding: "hourly"})
	assert.InDelta(t, 11268.25, results.FinalAmount, 0.005)
}

func TestProjectGrowthZeroYears(t *testing.T) {
	for _, years := range []int{0, -3} {
		results := ProjectGrowth(InvestmentInputs{Initial: 5000, MonthlyContribution: 100, AnnualReturn: 7, Years: years})
		assert.Zero(t, results.FinalAmount)
		assert.Zero(t, results.TotalContributions)
		assert.Zero(t, results.RealValue)
		assert.Empty(t, results.Yearly)
		assert.Empty(t, results.Monthly)
	}
}

func TestProjectGrowthIdempotent(t *testing.T) {
	inputs := InvestmentInputs{Initial: 2500, MonthlyContribution: 250, AnnualReturn: 6.5, Years: 15, InflationRate: 2.5, ContributionIncrease: 3}
	assert.Equal(t, ProjectGrowth(inputs), ProjectGrowth(inputs))
}

func TestParseCompounding(t *testing.T) {
	c, err := ParseCompounding("Quarterly")
	require.NoError(t, err)
	assert.Equal(t, CompoundQuarterly, c)

	c, err = ParseCompounding("")
	require.NoError(t, err)
	assert.Equal(t, CompoundMonthly, c)

	_, err = ParseCompounding("weekly")
	assert.Error(t, err)
}
