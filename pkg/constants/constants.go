// Package constants provides shared constants for the finance-tools application.
package constants

// DateLayout is the calendar date format accepted for purchase and sale dates.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the year length used for holding periods.
	DaysPerYear = 365.25

	// DaysPerYearTheta converts annualized option theta into per-day decay.
	DaysPerYearTheta = 365.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Calculator names, shared by the CLI, the HTTP API and usage analytics.
const (
	CalculatorBlackScholes    = "black-scholes"
	CalculatorSIP             = "sip-calculator"
	CalculatorCapitalGains    = "ltcg-calculator"
	CalculatorDTAA            = "dtaa-calculator"
	CalculatorBonds           = "bonds-calculator"
	CalculatorRetirement      = "retirement-calculator"
	CalculatorTermInsurance   = "term-insurance"
	CalculatorBalanceTransfer = "balance-transfer"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default calculation file name
	DefaultConfigFile = "calculations.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimitRequests is the number of calculator requests a client may make per window
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the refill window for the rate limiter, in seconds
	DefaultRateLimitWindow = 60
)

// Usage analytics defaults
const (
	UsageBackendNone     = "none"
	UsageBackendLog      = "log"
	UsageBackendMemory   = "memory"
	UsageBackendSQLite   = "sqlite"
	UsageBackendPostgres = "postgres"
	UsageBackendRedis    = "redis"
	UsageBackendHTTP     = "http"

	// DefaultUsageTimeoutSeconds bounds a single fire-and-forget usage report
	DefaultUsageTimeoutSeconds = 5

	// DefaultUsageStatsDays is the look-back window for usage statistics
	DefaultUsageStatsDays = 30
)
