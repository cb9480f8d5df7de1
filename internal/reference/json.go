package reference

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/breach-estimator/internal/fine"
)

// jsonDocument uses the same field names the records marshal to, so a JSON
// dump of both tables loads back unchanged.
type jsonDocument struct {
	StateRegulations   *[]jsonStateRow   `json:"stateRegulations"`
	FederalRegulations *[]jsonFederalRow `json:"federalRegulations"`
}

type jsonStateRow struct {
	State      *string         `json:"state"`
	Regulation *string         `json:"regulation"`
	MinFine    json.RawMessage `json:"minFine"`
	MaxFine    json.RawMessage `json:"maxFine"`
}

type jsonFederalRow struct {
	Regulation    *string         `json:"regulation"`
	ViolationType *string         `json:"violationType"`
	MinFine       json.RawMessage `json:"minFine"`
	MaxFine       json.RawMessage `json:"maxFine"`
}

func decodeJSON(r io.Reader, source string) ([]RegulationRecord, []FederalRecord, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, &DataLoadError{Source: source, Table: StateSheet, Err: ErrMissingTable}
		}
		return nil, nil, &DataLoadError{Source: source, Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}

	if doc.StateRegulations == nil {
		return nil, nil, &DataLoadError{Source: source, Table: StateSheet, Err: ErrMissingTable}
	}
	if doc.FederalRegulations == nil {
		return nil, nil, &DataLoadError{Source: source, Table: FederalSheet, Err: ErrMissingTable}
	}

	states := make([]RegulationRecord, 0, len(*doc.StateRegulations))
	for i, item := range *doc.StateRegulations {
		loc := jsonLocation{source: source, table: StateSheet, row: i + 1}
		state, err := loc.text(ColumnState, item.State)
		if err != nil {
			return nil, nil, err
		}
		regulation, err := loc.text(ColumnRegulation, item.Regulation)
		if err != nil {
			return nil, nil, err
		}
		minFine, err := loc.bound(ColumnMinFine, item.MinFine)
		if err != nil {
			return nil, nil, err
		}
		maxFine, err := loc.bound(ColumnMaxFine, item.MaxFine)
		if err != nil {
			return nil, nil, err
		}
		states = append(states, RegulationRecord{
			State:      state,
			Regulation: regulation,
			MinFine:    minFine,
			MaxFine:    maxFine,
		})
	}

	federal := make([]FederalRecord, 0, len(*doc.FederalRegulations))
	for i, item := range *doc.FederalRegulations {
		loc := jsonLocation{source: source, table: FederalSheet, row: i + 1}
		regulation, err := loc.text(ColumnRegulation, item.Regulation)
		if err != nil {
			return nil, nil, err
		}
		violation, err := loc.text(ColumnViolationType, item.ViolationType)
		if err != nil {
			return nil, nil, err
		}
		minFine, err := loc.bound(ColumnMinFine, item.MinFine)
		if err != nil {
			return nil, nil, err
		}
		maxFine, err := loc.bound(ColumnMaxFine, item.MaxFine)
		if err != nil {
			return nil, nil, err
		}
		federal = append(federal, FederalRecord{
			Regulation:    regulation,
			ViolationType: violation,
			MinFine:       minFine,
			MaxFine:       maxFine,
		})
	}

	return states, federal, nil
}

type jsonLocation struct {
	source string
	table  string
	row    int
}

func (l jsonLocation) fail(column string, err error) error {
	return &DataLoadError{Source: l.source, Table: l.table, Row: l.row, Column: column, Err: err}
}

func (l jsonLocation) text(column string, value *string) (string, error) {
	if value == nil {
		return "", l.fail(column, ErrMissingColumn)
	}
	return strings.TrimSpace(*value), nil
}

// bound decodes a fine from JSON. A missing key or null is absent; numbers
// and quoted decimals are amounts and must not be negative.
func (l jsonLocation) bound(column string, raw json.RawMessage) (fine.Bound, error) {
	var b fine.Bound
	if len(raw) == 0 {
		return b, nil
	}
	if err := b.UnmarshalJSON(raw); err != nil {
		return fine.Absent(), l.fail(column, fmt.Errorf("%w: %v", ErrMalformedFine, err))
	}
	if amount, ok := b.Amount(); ok && amount.IsNegative() {
		return fine.Absent(), l.fail(column, fmt.Errorf("%w: negative amount %s", ErrMalformedFine, raw))
	}
	return b, nil
}
