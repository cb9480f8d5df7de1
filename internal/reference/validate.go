package reference

import (
	"fmt"

	"github.com/iwvelando/breach-estimator/internal/fine"
)

// Validate returns load-time warnings about the tables. None of them stop the
// calculator: shadowed duplicates are never reached and inverted ranges are
// reported as they appear in the source.
func (s *Store) Validate() []string {
	var warnings []string

	seenState := make(map[[2]string]int)
	for i, r := range s.states {
		key := [2]string{r.State, r.Regulation}
		if first, ok := seenState[key]; ok {
			warnings = append(warnings, fmt.Sprintf("state regulation %q for %q at entry %d is shadowed by entry %d",
				r.Regulation, r.State, i+1, first+1))
		} else {
			seenState[key] = i
		}
		if inverted(r.MinFine, r.MaxFine) {
			warnings = append(warnings, fmt.Sprintf("state regulation %q for %q has min fine %s above max fine %s",
				r.Regulation, r.State, r.MinFine, r.MaxFine))
		}
	}

	seenFederal := make(map[[2]string]int)
	for i, r := range s.federal {
		key := [2]string{r.Regulation, r.ViolationType}
		if first, ok := seenFederal[key]; ok {
			warnings = append(warnings, fmt.Sprintf("federal regulation %q violation %q at entry %d is shadowed by entry %d",
				r.Regulation, r.ViolationType, i+1, first+1))
		} else {
			seenFederal[key] = i
		}
		if inverted(r.MinFine, r.MaxFine) {
			warnings = append(warnings, fmt.Sprintf("federal regulation %q violation %q has min fine %s above max fine %s",
				r.Regulation, r.ViolationType, r.MinFine, r.MaxFine))
		}
	}

	return warnings
}

func inverted(minFine, maxFine fine.Bound) bool {
	minAmount, minOK := minFine.Amount()
	maxAmount, maxOK := maxFine.Amount()
	return minOK && maxOK && minAmount.GreaterThan(maxAmount)
}
