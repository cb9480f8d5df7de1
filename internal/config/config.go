// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/breach-estimator/pkg/constants"
	"github.com/iwvelando/breach-estimator/pkg/format"
	"github.com/iwvelando/breach-estimator/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for breach-estimator.
type Configuration struct {
	Reference  ReferenceConfig  `yaml:"reference,omitempty"`
	Calculator CalculatorConfig `yaml:"calculator,omitempty"`
	Currency   CurrencyConfig   `yaml:"currency,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
}

// ReferenceConfig locates the regulation tables.
type ReferenceConfig struct {
	Path string `yaml:"path,omitempty"` // .xlsx, .yaml or .json
}

// CalculatorConfig holds calculation parameters.
type CalculatorConfig struct {
	CreditMonitoringRate float64 `yaml:"creditMonitoringRate,omitempty"` // per breached record
}

// CurrencyConfig controls how amounts are displayed.
type CurrencyConfig struct {
	Locale string `yaml:"locale,omitempty"`
	Symbol string `yaml:"symbol,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reference.path", constants.DefaultReferenceFile)
	v.SetDefault("calculator.creditMonitoringRate", float64(constants.DefaultCreditMonitoringRate))
	v.SetDefault("currency.locale", constants.DefaultLocale)
	v.SetDefault("currency.symbol", constants.DefaultCurrencySymbol)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Unset keys take their defaults and any key may be
// overridden by a BREACH_ environment variable, e.g. BREACH_REFERENCE_PATH.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

// LoadDefaults returns the default configuration with environment overrides
// applied, for use when no config file exists.
func LoadDefaults() (*Configuration, error) {
	return decode(newViper())
}

// CreditMonitoringRate returns the configured rate as a decimal.
func (c *Configuration) CreditMonitoringRate() decimal.Decimal {
	return decimal.NewFromFloat(c.Calculator.CreditMonitoringRate)
}

// Formatter builds the currency formatter for the configured locale.
func (c *Configuration) Formatter() (*format.Formatter, error) {
	return format.NewFormatter(c.Currency.Locale, c.Currency.Symbol)
}

// ValidateConfiguration performs general validation of the configuration. It
// returns warnings for questionable settings and an error for unusable ones.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	validator := validation.ConfigValidator{
		ReferencePath:        c.Reference.Path,
		CreditMonitoringRate: c.Calculator.CreditMonitoringRate,
		Locale:               c.Currency.Locale,
		Symbol:               c.Currency.Symbol,
		OutputFormat:         c.Output.Format,
	}
	warnings, errs := validator.ValidateAll()
	return warnings, errors.Join(errs...)
}
