// Package reference holds the state and federal regulation tables and the
// filters the presentation layer uses to populate its choices. Tables are
// loaded once and never mutated, so a Store is safe for concurrent readers.
package reference

import (
	"github.com/iwvelando/breach-estimator/internal/fine"
)

// RegulationRecord is one row of the state regulations table.
type RegulationRecord struct {
	State      string     `json:"state"`
	Regulation string     `json:"regulation"`
	MinFine    fine.Bound `json:"minFine"`
	MaxFine    fine.Bound `json:"maxFine"`
}

// FederalRecord is one row of the federal regulations table.
type FederalRecord struct {
	Regulation    string     `json:"regulation"`
	ViolationType string     `json:"violationType"`
	MinFine       fine.Bound `json:"minFine"`
	MaxFine       fine.Bound `json:"maxFine"`
}

// Store is the immutable pair of reference tables.
type Store struct {
	source  string
	states  []RegulationRecord
	federal []FederalRecord
}

// NewStore builds a store from already-parsed rows. The slices are copied.
func NewStore(states []RegulationRecord, federal []FederalRecord) *Store {
	return newStore("memory", states, federal)
}

func newStore(source string, states []RegulationRecord, federal []FederalRecord) *Store {
	return &Store{
		source:  source,
		states:  append([]RegulationRecord(nil), states...),
		federal: append([]FederalRecord(nil), federal...),
	}
}

// Source names where the tables were loaded from.
func (s *Store) Source() string {
	return s.source
}

// Counts returns the number of state and federal rows.
func (s *Store) Counts() (states, federal int) {
	return len(s.states), len(s.federal)
}

// DistinctStates returns every state once, in source order.
func (s *Store) DistinctStates() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range s.states {
		out = appendUnique(out, seen, row.State)
	}
	return out
}

// StateRegulationsFor returns the regulations listed for state, in source order.
func (s *Store) StateRegulationsFor(state string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range s.states {
		if row.State == state {
			out = appendUnique(out, seen, row.Regulation)
		}
	}
	return out
}

// FederalRegulations returns every federal regulation once, in source order.
func (s *Store) FederalRegulations() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range s.federal {
		out = appendUnique(out, seen, row.Regulation)
	}
	return out
}

// FederalViolationsFor returns the violation types listed for regulation.
func (s *Store) FederalViolationsFor(regulation string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range s.federal {
		if row.Regulation == regulation {
			out = appendUnique(out, seen, row.ViolationType)
		}
	}
	return out
}

// StateFine returns the first row matching state and regulation exactly.
func (s *Store) StateFine(state, regulation string) (RegulationRecord, bool) {
	for _, row := range s.states {
		if row.State == state && row.Regulation == regulation {
			return row, true
		}
	}
	return RegulationRecord{}, false
}

// FederalFine returns the first row matching regulation and violation exactly.
func (s *Store) FederalFine(regulation, violation string) (FederalRecord, bool) {
	for _, row := range s.federal {
		if row.Regulation == regulation && row.ViolationType == violation {
			return row, true
		}
	}
	return FederalRecord{}, false
}

func appendUnique(out []string, seen map[string]struct{}, value string) []string {
	if _, ok := seen[value]; ok {
		return out
	}
	seen[value] = struct{}{}
	return append(out, value)
}
