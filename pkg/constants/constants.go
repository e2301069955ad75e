// Package constants provides shared constants for the calculators.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimal places money is rounded to
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Simulation bounds
const (
	// MaxDebtPayoffMonths caps the debt payoff simulation at 50 years. Inputs whose
	// minimum payments never outpace accruing interest would otherwise loop forever.
	MaxDebtPayoffMonths = 600

	// EmergencyFundMaxMonths caps the emergency fund savings projection at 10 years.
	EmergencyFundMaxMonths = 120

	// EmergencyFundMinProjectionMonths is how long the savings projection keeps
	// running before it may stop on a met goal.
	EmergencyFundMinProjectionMonths = 60

	// MaxSolverIterations bounds the extra-payment bisection search.
	MaxSolverIterations = 100
)

// Modelling assumptions
const (
	// SafeWithdrawalRate is the 4% rule used to turn a retirement balance into an
	// estimated monthly income: balance * 0.04 / 12.
	SafeWithdrawalRate = 0.04

	// HomeAppreciationRate is the fixed annual home value appreciation (percent)
	// assumed by the rent-vs-buy comparison.
	HomeAppreciationRate = 3.0

	// ClosingCostRate is the share of the home price (percent) paid as closing costs.
	ClosingCostRate = 3.0

	// DefaultOvertimeMultiplier applies to overtime hours when no rate is given.
	DefaultOvertimeMultiplier = 1.5

	// DefaultWorkingDaysPerWeek and DefaultWeeksPerYear normalise salaries into
	// weekly and daily figures.
	DefaultWorkingDaysPerWeek = 5
	DefaultWeeksPerYear       = 52

	// HoursPerWorkingDay converts a salary into an hourly rate for overtime.
	HoursPerWorkingDay = 8
)

// Currency defaults
const (
	// DefaultCurrency is used whenever no currency preference is known.
	DefaultCurrency = "USD"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatPDF is the PDF summary report format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default calculation request file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRedisKeyPrefix namespaces preference keys in Redis
	DefaultRedisKeyPrefix = "crunch:prefs:"

	// AnonymousUser is the preference key used when a request carries no user id
	AnonymousUser = "anonymous"
)
