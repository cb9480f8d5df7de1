// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/iwvelando/breach-estimator/internal/reference"
	"github.com/xuri/excelize/v2"
)

// SampleStates returns a small state regulations table covering every
// combination of present and absent bounds.
func SampleStates() []reference.RegulationRecord {
	return []reference.RegulationRecord{
		{State: "California", Regulation: "CCPA", MinFine: fine.PresentInt(100), MaxFine: fine.PresentInt(750)},
		{State: "California", Regulation: "CPRA", MinFine: fine.PresentInt(2500), MaxFine: fine.PresentInt(7500)},
		{State: "Texas", Regulation: "TDPSA", MinFine: fine.Absent(), MaxFine: fine.PresentInt(7500)},
		{State: "Florida", Regulation: "FIPA", MinFine: fine.PresentInt(500), MaxFine: fine.Absent()},
		{State: "New York", Regulation: "SHIELD Act", MinFine: fine.Absent(), MaxFine: fine.Absent()},
		{State: "California", Regulation: "Data Breach Notification Law", MinFine: fine.Absent(), MaxFine: fine.Absent()},
	}
}

// SampleFederal returns a small federal regulations table.
func SampleFederal() []reference.FederalRecord {
	return []reference.FederalRecord{
		{Regulation: "HIPAA", ViolationType: "Unknowing", MinFine: fine.PresentInt(100), MaxFine: fine.PresentInt(50000)},
		{Regulation: "HIPAA", ViolationType: "Reasonable Cause", MinFine: fine.PresentInt(1000), MaxFine: fine.PresentInt(50000)},
		{Regulation: "HIPAA", ViolationType: "Willful Neglect (corrected)", MinFine: fine.PresentInt(10000), MaxFine: fine.PresentInt(50000)},
		{Regulation: "HIPAA", ViolationType: "Willful Neglect (not corrected)", MinFine: fine.Absent(), MaxFine: fine.PresentInt(1500000)},
		{Regulation: "GLBA", ViolationType: "Institution Violation", MinFine: fine.PresentInt(100000), MaxFine: fine.Absent()},
		{Regulation: "FTC Act", ViolationType: "Unfair or Deceptive Practice", MinFine: fine.Absent(), MaxFine: fine.Absent()},
	}
}

// SampleStore returns a store built from SampleStates and SampleFederal.
func SampleStore() *reference.Store {
	return reference.NewStore(SampleStates(), SampleFederal())
}

// Sheet is one worksheet of a fixture workbook.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// WriteWorkbook saves states and federal as a reference workbook at path.
// Absent bounds are written as blank cells.
func WriteWorkbook(path string, states []reference.RegulationRecord, federal []reference.FederalRecord) error {
	return WriteSheets(path, StateSheet(states), FederalSheet(federal))
}

// StateSheet lays out states the way the reference workbook expects.
func StateSheet(states []reference.RegulationRecord) Sheet {
	rows := [][]interface{}{{
		reference.ColumnState, reference.ColumnRegulation, reference.ColumnMinFine, reference.ColumnMaxFine,
	}}
	for _, r := range states {
		rows = append(rows, []interface{}{r.State, r.Regulation, cellValue(r.MinFine), cellValue(r.MaxFine)})
	}
	return Sheet{Name: reference.StateSheet, Rows: rows}
}

// FederalSheet lays out federal the way the reference workbook expects.
func FederalSheet(federal []reference.FederalRecord) Sheet {
	rows := [][]interface{}{{
		reference.ColumnRegulation, reference.ColumnViolationType, reference.ColumnMinFine, reference.ColumnMaxFine,
	}}
	for _, r := range federal {
		rows = append(rows, []interface{}{r.Regulation, r.ViolationType, cellValue(r.MinFine), cellValue(r.MaxFine)})
	}
	return Sheet{Name: reference.FederalSheet, Rows: rows}
}

// WriteSheets saves a workbook holding sheets verbatim, in order. It is also
// used to build malformed sources.
func WriteSheets(path string, sheets ...Sheet) error {
	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	for i, sheet := range sheets {
		if i == 0 {
			if err := workbook.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := workbook.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}

		for j, values := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+1)
			if err != nil {
				return err
			}
			if err := workbook.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet.Name, j+1, err)
			}
		}
	}

	return workbook.SaveAs(path)
}

func cellValue(b fine.Bound) interface{} {
	amount, ok := b.Amount()
	if !ok {
		return nil
	}
	return amount.InexactFloat64()
}
