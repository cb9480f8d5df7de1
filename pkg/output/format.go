// Package output provides utilities for formatting and displaying fine reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/breach-estimator/internal/estimate"
	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/iwvelando/breach-estimator/pkg/constants"
)

// csvHeader names the columns written by WriteCsv.
var csvHeader = []string{
	"state", "state_regulation", "federal_regulation", "federal_violation", "records",
	"state_min", "state_max", "federal_min", "federal_max",
	"total_min", "total_max", "credit_monitoring",
}

// PrettyString renders the report as the human-readable summary.
func PrettyString(report *estimate.Report) string {
	d := report.Display
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Federal Fine: Min: %s, Max: %s\n", d.FederalMin, d.FederalMax)
	fmt.Fprintf(&buf, "State Fine: Min: %s, Max: %s\n", d.StateMin, d.StateMax)
	fmt.Fprintf(&buf, "Total Calculated Fine: Min: %s, Max: %s\n", d.TotalMin, d.TotalMax)
	fmt.Fprintf(&buf, "Credit Monitoring Cost: %s\n", d.CreditMonitoring)
	fmt.Fprintf(&buf, "\nDetails:\n%s\n\n%s\n", report.Federal.Explanation, report.State.Explanation)
	return buf.String()
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(report *estimate.Report) {
	fmt.Print(PrettyString(report))
}

// WriteCsv writes the report's raw amounts to w as a header and one row.
// Absent amounts are left empty.
func WriteCsv(w io.Writer, report *estimate.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.Write(csvRow(report)); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// CsvString renders the report as CSV.
func CsvString(report *estimate.Report) (string, error) {
	var buf bytes.Buffer
	if err := WriteCsv(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report *estimate.Report) error {
	return WriteCsv(os.Stdout, report)
}

func csvRow(report *estimate.Report) []string {
	return []string{
		report.Selection.State,
		report.Selection.StateRegulation,
		report.Selection.FederalRegulation,
		report.Selection.FederalViolation,
		strconv.FormatInt(report.RecordCount, 10),
		csvBound(report.State.MinTotal),
		csvBound(report.State.MaxTotal),
		csvBound(report.Federal.MinTotal),
		csvBound(report.Federal.MaxTotal),
		report.TotalMin.StringFixed(constants.CurrencyPlaces),
		report.TotalMax.StringFixed(constants.CurrencyPlaces),
		report.CreditMonitoring.StringFixed(constants.CurrencyPlaces),
	}
}

// JSONString renders the full report as indented JSON.
func JSONString(report *estimate.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data) + "\n", nil
}

// JSONFormat outputs the report as JSON.
func JSONFormat(report *estimate.Report) error {
	data, err := JSONString(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(data)
	return err
}

// Print writes the report to stdout in the named format.
func Print(format string, report *estimate.Report) error {
	switch format {
	case constants.OutputFormatPretty:
		PrettyFormat(report)
	case constants.OutputFormatCSV:
		return CsvFormat(report)
	case constants.OutputFormatJSON:
		return JSONFormat(report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

func csvBound(b fine.Bound) string {
	amount, ok := b.Amount()
	if !ok {
		return ""
	}
	return amount.StringFixed(constants.CurrencyPlaces)
}
