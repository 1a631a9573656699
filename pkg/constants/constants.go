// Package constants provides shared constants for the mortgage-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPlaces is the number of decimal places shown for currency values
	DecimalPlaces = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 penny)
	CurrencyTolerance = 0.01
)

// Form field names. These are also the keys of a validation error set.
const (
	FieldAmount = "amount"
	FieldTerm   = "term"
	FieldRate   = "rate"
	FieldType   = "type"
)

// Validation messages
const (
	// MessageRequired is reported for an empty amount, term or rate
	MessageRequired = "This field is required"

	// MessageSelectType is reported for a missing or unrecognized mortgage type
	MessageSelectType = "Please select a mortgage type"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Presentation defaults
const (
	// DefaultLocale is the BCP 47 tag used for number grouping
	DefaultLocale = "en-GB"

	// DefaultCurrencySymbol is prefixed to formatted amounts
	DefaultCurrencySymbol = "£"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxUploadSizeBytes int64 = 64 * 1024

	// DefaultRequestsPerSecond is the default sustained request rate
	DefaultRequestsPerSecond = 10.0

	// DefaultBurst is the default number of requests allowed in a burst
	DefaultBurst = 30
)
