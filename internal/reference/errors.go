package reference

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for sources that are not a
	// spreadsheet, YAML or JSON.
	ErrUnsupportedFormat = errors.New("unsupported reference format")

	// ErrMissingTable is returned when a sheet or YAML table is absent.
	ErrMissingTable = errors.New("missing reference table")

	// ErrMissingColumn is returned when a table lacks an expected column.
	ErrMissingColumn = errors.New("missing expected column")

	// ErrMalformedFine is returned when a fine cell is neither blank, N/A,
	// nor a non-negative amount.
	ErrMalformedFine = errors.New("malformed fine value")
)

// DataLoadError reports a reference source that is missing, malformed or
// lacks expected columns. It is fatal at startup.
type DataLoadError struct {
	Source string
	Table  string
	Row    int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	var location []string
	if e.Table != "" {
		location = append(location, fmt.Sprintf("table %q", e.Table))
	}
	if e.Row > 0 {
		location = append(location, fmt.Sprintf("row %d", e.Row))
	}
	if e.Column != "" {
		location = append(location, fmt.Sprintf("column %q", e.Column))
	}

	msg := fmt.Sprintf("failed to load reference data from %s", e.Source)
	if len(location) > 0 {
		msg += " (" + strings.Join(location, ", ") + ")"
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
