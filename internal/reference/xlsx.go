package reference

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

func decodeWorkbook(r io.Reader, source string) ([]RegulationRecord, []FederalRecord, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &DataLoadError{Source: source, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer func() {
		_ = workbook.Close()
	}()

	stateRows, err := readSheet(workbook, source, StateSheet, stateColumns)
	if err != nil {
		return nil, nil, err
	}
	states, err := buildStateRecords(source, stateRows)
	if err != nil {
		return nil, nil, err
	}

	federalRows, err := readSheet(workbook, source, FederalSheet, federalColumns)
	if err != nil {
		return nil, nil, err
	}
	federal, err := buildFederalRecords(source, federalRows)
	if err != nil {
		return nil, nil, err
	}

	return states, federal, nil
}

// readSheet returns the data rows of sheet keyed by the expected column
// names. Header matching ignores case and surrounding whitespace.
func readSheet(workbook *excelize.File, source, sheet string, columns []string) ([]row, error) {
	index, err := workbook.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		return nil, &DataLoadError{Source: source, Table: sheet, Err: ErrMissingTable}
	}

	grid, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &DataLoadError{Source: source, Table: sheet, Err: err}
	}
	if len(grid) == 0 {
		return nil, &DataLoadError{Source: source, Table: sheet, Err: fmt.Errorf("%w: sheet has no header row", ErrMissingColumn)}
	}

	positions, err := columnPositions(grid[0], columns)
	if err != nil {
		return nil, &DataLoadError{Source: source, Table: sheet, Row: 1, Err: err}
	}

	var rows []row
	for i, cells := range grid[1:] {
		if isBlank(cells) {
			continue
		}
		r := row{number: i + 2, cells: make(map[string]string, len(columns))}
		for column, pos := range positions {
			if pos < len(cells) {
				r.cells[column] = cells[pos]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func columnPositions(header []string, columns []string) (map[string]int, error) {
	positions := make(map[string]int, len(columns))
	for _, column := range columns {
		pos := -1
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), column) {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
		}
		positions[column] = pos
	}
	return positions, nil
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
