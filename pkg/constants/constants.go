// Package constants provides shared constants for the rent-vs-buy application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultCGTRate is the capital gains tax rate applied when none is configured
	DefaultCGTRate = 0.28

	// InterestReliefRate is the fraction of cumulative mortgage interest
	// deductible from the capital gain at sale
	InterestReliefRate = 0.20

	// FullHouseTenants is the tenant count assumed once the property switches
	// to full-house letting
	FullHouseTenants = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultAllowedOrigin is the frontend origin allowed by CORS when none
	// are configured
	DefaultAllowedOrigin = "http://localhost:3000"
)

// Validation constants
const (
	// ToleranceForComparison is the tolerance for financial comparisons
	ToleranceForComparison = 1.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 pence)
	CurrencyTolerance = 0.01
)
