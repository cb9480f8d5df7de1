// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iwvelando/breach-estimator/pkg/constants"
	"golang.org/x/text/language"
)

// ReferenceExtensions lists the file extensions the reference loader reads.
var ReferenceExtensions = []string{".xlsx", ".xlsm", ".yaml", ".yml", ".json"}

// ValidateReferencePath checks that a reference data path is set and names a
// readable format.
func ValidateReferencePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("reference data path must be set")
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range ReferenceExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("reference data path %s must end in one of %s", path, strings.Join(ReferenceExtensions, ", "))
}

// ValidateCreditMonitoringRate rejects negative per-record rates and warns on
// a zero rate.
func ValidateCreditMonitoringRate(rate float64) (string, error) {
	if rate < 0 {
		return "", fmt.Errorf("credit monitoring rate must not be negative, got %g", rate)
	}
	if rate == 0 {
		return "Credit monitoring rate is 0 - credit monitoring cost will always be $0", nil
	}
	return "", nil
}

// ValidateLocale checks that locale is a well-formed BCP 47 tag. An empty
// locale is allowed and means the default.
func ValidateLocale(locale string) error {
	if locale == "" {
		return nil
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid currency locale %q: %w", locale, err)
	}
	return nil
}

// ConfigValidator collects the settings that can be checked before any
// reference data is loaded.
type ConfigValidator struct {
	ReferencePath        string
	CreditMonitoringRate float64
	Locale               string
	Symbol               string
	OutputFormat         string
}

// ValidateAll validates every setting, returning hard errors separately from
// warnings.
func (cv *ConfigValidator) ValidateAll() (warnings []string, errs []error) {
	if err := ValidateReferencePath(cv.ReferencePath); err != nil {
		errs = append(errs, err)
	}

	warning, err := ValidateCreditMonitoringRate(cv.CreditMonitoringRate)
	if err != nil {
		errs = append(errs, err)
	} else if warning != "" {
		warnings = append(warnings, warning)
	}

	if err := ValidateLocale(cv.Locale); err != nil {
		errs = append(errs, err)
	}

	if cv.Symbol == "" {
		warnings = append(warnings, "Currency symbol is empty - defaulting to "+constants.DefaultCurrencySymbol)
	}

	if cv.OutputFormat != "" {
		if err := ValidateOutputFormat(cv.OutputFormat); err != nil {
			errs = append(errs, err)
		}
	}

	return warnings, errs
}
