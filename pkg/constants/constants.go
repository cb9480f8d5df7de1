// Package constants provides shared constants for the breach-estimator application.
package constants

// Calculation constants
const (
	// DefaultCreditMonitoringRate is the flat credit-monitoring cost per
	// breached record.
	DefaultCreditMonitoringRate = 20

	// CurrencyPlaces is the number of decimal places used for money.
	CurrencyPlaces = 2

	// NotApplicable is displayed in place of an absent fine.
	NotApplicable = "N/A"

	// InvalidRecordCountMessage is shown when the record count does not
	// parse as a non-negative whole number.
	InvalidRecordCountMessage = "Please enter a valid number of records!"
)

// Currency display defaults
const (
	// DefaultLocale is the BCP-47 tag used for digit grouping.
	DefaultLocale = "en-US"

	// DefaultCurrencySymbol is prefixed to formatted amounts.
	DefaultCurrencySymbol = "$"
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

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultReferenceFile is the default reference workbook
	DefaultReferenceFile = "regulations.xlsx"

	// EnvPrefix prefixes environment overrides, e.g. BREACH_REFERENCE_PATH.
	EnvPrefix = "BREACH"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes limits calculate request bodies (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown
	DefaultShutdownTimeoutSeconds = 10
)
