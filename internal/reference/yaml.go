package reference

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument mirrors the workbook: one list per sheet. Pointers
// distinguish a missing table or column from an empty one.
type yamlDocument struct {
	StateRegulations   *[]yamlStateRow   `yaml:"stateRegulations"`
	FederalRegulations *[]yamlFederalRow `yaml:"federalRegulations"`
}

type yamlStateRow struct {
	State      *string  `yaml:"state"`
	Regulation *string  `yaml:"regulation"`
	MinFine    yamlCell `yaml:"minFine"`
	MaxFine    yamlCell `yaml:"maxFine"`
}

type yamlFederalRow struct {
	Regulation    *string  `yaml:"regulation"`
	ViolationType *string  `yaml:"violationType"`
	MinFine       yamlCell `yaml:"minFine"`
	MaxFine       yamlCell `yaml:"maxFine"`
}

// yamlCell keeps a scalar's literal text so numbers and "N/A" go through the
// same parsing as spreadsheet cells. Null is blank.
type yamlCell string

func (c *yamlCell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: fine must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*c = ""
		return nil
	}
	*c = yamlCell(node.Value)
	return nil
}

func decodeYAML(r io.Reader, source string) ([]RegulationRecord, []FederalRecord, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil, &DataLoadError{Source: source, Table: StateSheet, Err: ErrMissingTable}
		}
		return nil, nil, &DataLoadError{Source: source, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	if doc.StateRegulations == nil {
		return nil, nil, &DataLoadError{Source: source, Table: StateSheet, Err: ErrMissingTable}
	}
	if doc.FederalRegulations == nil {
		return nil, nil, &DataLoadError{Source: source, Table: FederalSheet, Err: ErrMissingTable}
	}

	stateRows := make([]row, 0, len(*doc.StateRegulations))
	for i, item := range *doc.StateRegulations {
		r := row{number: i + 1, cells: map[string]string{
			ColumnMinFine: string(item.MinFine),
			ColumnMaxFine: string(item.MaxFine),
		}}
		if err := requireText(&r, source, StateSheet, ColumnState, item.State); err != nil {
			return nil, nil, err
		}
		if err := requireText(&r, source, StateSheet, ColumnRegulation, item.Regulation); err != nil {
			return nil, nil, err
		}
		stateRows = append(stateRows, r)
	}
	states, err := buildStateRecords(source, stateRows)
	if err != nil {
		return nil, nil, err
	}

	federalRows := make([]row, 0, len(*doc.FederalRegulations))
	for i, item := range *doc.FederalRegulations {
		r := row{number: i + 1, cells: map[string]string{
			ColumnMinFine: string(item.MinFine),
			ColumnMaxFine: string(item.MaxFine),
		}}
		if err := requireText(&r, source, FederalSheet, ColumnRegulation, item.Regulation); err != nil {
			return nil, nil, err
		}
		if err := requireText(&r, source, FederalSheet, ColumnViolationType, item.ViolationType); err != nil {
			return nil, nil, err
		}
		federalRows = append(federalRows, r)
	}
	federal, err := buildFederalRecords(source, federalRows)
	if err != nil {
		return nil, nil, err
	}

	return states, federal, nil
}

func requireText(r *row, source, table, column string, value *string) error {
	if value == nil {
		return &DataLoadError{Source: source, Table: table, Row: r.number, Column: column, Err: ErrMissingColumn}
	}
	r.cells[column] = *value
	return nil
}
