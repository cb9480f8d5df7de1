package reference_test

import (
	"reflect"
	"testing"

	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/iwvelando/breach-estimator/internal/reference"
	"github.com/iwvelando/breach-estimator/pkg/testutil"
)

func TestDistinctStates(t *testing.T) {
	store := testutil.SampleStore()
	expected := []string{"California", "Texas", "Florida", "New York"}
	if got := store.DistinctStates(); !reflect.DeepEqual(got, expected) {
		t.Errorf("DistinctStates() = %v, expected %v", got, expected)
	}
}

func TestStateRegulationsFor(t *testing.T) {
	store := testutil.SampleStore()

	tests := []struct {
		name     string
		state    string
		expected []string
	}{
		{"Several regulations in source order", "California", []string{"CCPA", "CPRA", "Data Breach Notification Law"}},
		{"Single regulation", "Texas", []string{"TDPSA"}},
		{"Unknown state", "Oregon", nil},
		{"Empty selection", "", nil},
		{"Case sensitive", "california", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.StateRegulationsFor(tt.state); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("StateRegulationsFor(%q) = %v, expected %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestFederalQueries(t *testing.T) {
	store := testutil.SampleStore()

	expectedRegs := []string{"HIPAA", "GLBA", "FTC Act"}
	if got := store.FederalRegulations(); !reflect.DeepEqual(got, expectedRegs) {
		t.Errorf("FederalRegulations() = %v, expected %v", got, expectedRegs)
	}

	expectedViolations := []string{
		"Unknowing",
		"Reasonable Cause",
		"Willful Neglect (corrected)",
		"Willful Neglect (not corrected)",
	}
	if got := store.FederalViolationsFor("HIPAA"); !reflect.DeepEqual(got, expectedViolations) {
		t.Errorf("FederalViolationsFor(HIPAA) = %v, expected %v", got, expectedViolations)
	}

	if got := store.FederalViolationsFor(""); len(got) != 0 {
		t.Errorf("FederalViolationsFor(\"\") = %v, expected none", got)
	}
}

func TestDistinctPreservesFirstOccurrence(t *testing.T) {
	store := reference.NewStore([]reference.RegulationRecord{
		{State: "Texas", Regulation: "A"},
		{State: "Ohio", Regulation: "B"},
		{State: "Texas", Regulation: "A"},
		{State: "Texas", Regulation: "C"},
	}, nil)

	if got := store.DistinctStates(); !reflect.DeepEqual(got, []string{"Texas", "Ohio"}) {
		t.Errorf("DistinctStates() = %v", got)
	}
	if got := store.StateRegulationsFor("Texas"); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("StateRegulationsFor(Texas) = %v", got)
	}
}

func TestStateFineFirstMatchWins(t *testing.T) {
	store := reference.NewStore([]reference.RegulationRecord{
		{State: "Texas", Regulation: "A", MinFine: fine.PresentInt(1), MaxFine: fine.PresentInt(2)},
		{State: "Texas", Regulation: "A", MinFine: fine.PresentInt(10), MaxFine: fine.PresentInt(20)},
	}, []reference.FederalRecord{
		{Regulation: "X", ViolationType: "Y", MinFine: fine.Absent(), MaxFine: fine.PresentInt(5)},
		{Regulation: "X", ViolationType: "Y", MinFine: fine.PresentInt(7), MaxFine: fine.PresentInt(9)},
	})

	record, ok := store.StateFine("Texas", "A")
	if !ok {
		t.Fatal("expected a state match")
	}
	if !record.MinFine.Equal(fine.PresentInt(1)) || !record.MaxFine.Equal(fine.PresentInt(2)) {
		t.Errorf("expected first row, got %+v", record)
	}

	federal, ok := store.FederalFine("X", "Y")
	if !ok {
		t.Fatal("expected a federal match")
	}
	if federal.MinFine.IsPresent() {
		t.Errorf("expected first federal row with absent min, got %s", federal.MinFine)
	}

	if _, ok := store.StateFine("Texas", "B"); ok {
		t.Error("expected no match for unknown regulation")
	}
	if _, ok := store.FederalFine("", ""); ok {
		t.Error("expected no match for empty selection")
	}
}

func TestNewStoreCopiesInput(t *testing.T) {
	states := testutil.SampleStates()
	store := reference.NewStore(states, nil)
	states[0].State = "Mutated"

	if got := store.DistinctStates()[0]; got != "California" {
		t.Errorf("store changed after caller mutation: first state = %q", got)
	}
}

func TestValidateWarnings(t *testing.T) {
	if warnings := testutil.SampleStore().Validate(); len(warnings) != 0 {
		t.Errorf("expected no warnings for sample tables, got %v", warnings)
	}

	store := reference.NewStore([]reference.RegulationRecord{
		{State: "Texas", Regulation: "A", MinFine: fine.PresentInt(10), MaxFine: fine.PresentInt(1)},
		{State: "Texas", Regulation: "A"},
	}, []reference.FederalRecord{
		{Regulation: "X", ViolationType: "Y"},
		{Regulation: "X", ViolationType: "Y"},
	})

	warnings := store.Validate()
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
}
