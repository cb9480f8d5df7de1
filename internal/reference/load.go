package reference

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/shopspring/decimal"
)

// Format identifies how a reference source is encoded.
type Format string

const (
	// FormatXLSX is a workbook with "State Regulations" and "Federal
	// Regulations" sheets.
	FormatXLSX Format = "xlsx"

	// FormatYAML holds the same two tables as YAML lists.
	FormatYAML Format = "yaml"

	// FormatJSON holds the two tables in the shape the records marshal to.
	FormatJSON Format = "json"
)

// Sheet names and column headers of the spreadsheet source.
const (
	StateSheet   = "State Regulations"
	FederalSheet = "Federal Regulations"

	ColumnState         = "State"
	ColumnRegulation    = "Regulation"
	ColumnViolationType = "Violation Type"
	ColumnMinFine       = "Min Fine"
	ColumnMaxFine       = "Max Fine"
)

var (
	stateColumns   = []string{ColumnState, ColumnRegulation, ColumnMinFine, ColumnMaxFine}
	federalColumns = []string{ColumnRegulation, ColumnViolationType, ColumnMinFine, ColumnMaxFine}
)

// FormatFromPath infers the source format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads both reference tables from path.
func Load(path string) (*Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	return load(file, format, path)
}

// LoadReader reads both reference tables from r.
func LoadReader(r io.Reader, format Format) (*Store, error) {
	return load(r, format, "reader")
}

func load(r io.Reader, format Format, source string) (*Store, error) {
	var (
		states  []RegulationRecord
		federal []FederalRecord
		err     error
	)

	switch format {
	case FormatXLSX:
		states, federal, err = decodeWorkbook(r, source)
	case FormatYAML:
		states, federal, err = decodeYAML(r, source)
	case FormatJSON:
		states, federal, err = decodeJSON(r, source)
	default:
		err = &DataLoadError{Source: source, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}
	if err != nil {
		return nil, err
	}

	return newStore(source, states, federal), nil
}

// ParseBound converts a fine cell into a bound. Blank and N/A style cells are
// absent; anything else must be a non-negative amount, optionally with a
// leading "$" and grouping commas.
func ParseBound(raw string) (fine.Bound, error) {
	value := strings.TrimSpace(raw)
	switch strings.ToUpper(value) {
	case "", "N/A", "NA", "-":
		return fine.Absent(), nil
	}

	cleaned := strings.TrimPrefix(value, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return fine.Absent(), fmt.Errorf("%w: %q", ErrMalformedFine, raw)
	}
	if amount.IsNegative() {
		return fine.Absent(), fmt.Errorf("%w: negative amount %q", ErrMalformedFine, raw)
	}
	return fine.Present(amount), nil
}

// row is one record of either table before its fine cells are parsed. The
// cells are keyed by column header.
type row struct {
	number int
	cells  map[string]string
}

func (r row) get(column string) string {
	return strings.TrimSpace(r.cells[column])
}

func (r row) bound(source, table, column string) (fine.Bound, error) {
	b, err := ParseBound(r.cells[column])
	if err != nil {
		return b, &DataLoadError{Source: source, Table: table, Row: r.number, Column: column, Err: err}
	}
	return b, nil
}

func buildStateRecords(source string, rows []row) ([]RegulationRecord, error) {
	records := make([]RegulationRecord, 0, len(rows))
	for _, r := range rows {
		minFine, err := r.bound(source, StateSheet, ColumnMinFine)
		if err != nil {
			return nil, err
		}
		maxFine, err := r.bound(source, StateSheet, ColumnMaxFine)
		if err != nil {
			return nil, err
		}
		records = append(records, RegulationRecord{
			State:      r.get(ColumnState),
			Regulation: r.get(ColumnRegulation),
			MinFine:    minFine,
			MaxFine:    maxFine,
		})
	}
	return records, nil
}

func buildFederalRecords(source string, rows []row) ([]FederalRecord, error) {
	records := make([]FederalRecord, 0, len(rows))
	for _, r := range rows {
		minFine, err := r.bound(source, FederalSheet, ColumnMinFine)
		if err != nil {
			return nil, err
		}
		maxFine, err := r.bound(source, FederalSheet, ColumnMaxFine)
		if err != nil {
			return nil, err
		}
		records = append(records, FederalRecord{
			Regulation:    r.get(ColumnRegulation),
			ViolationType: r.get(ColumnViolationType),
			MinFine:       minFine,
			MaxFine:       maxFine,
		})
	}
	return records, nil
}
