package estimate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/iwvelando/breach-estimator/pkg/format"
	"github.com/iwvelando/breach-estimator/pkg/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestCalculator(opts ...Option) *Calculator {
	return NewCalculator(testutil.SampleStore(), append([]Option{WithLogger(zap.NewNop())}, opts...)...)
}

func TestParseRecordCount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int64
		expectErr bool
	}{
		{"Plain number", "1000", 1000, false},
		{"Zero", "0", 0, false},
		{"Surrounding whitespace", "  42 ", 42, false},
		{"Explicit plus sign", "+7", 7, false},
		{"Negative", "-5", 0, true},
		{"Empty", "", 0, true},
		{"Whitespace only", "   ", 0, true},
		{"Text", "many", 0, true},
		{"Fraction", "1.5", 0, true},
		{"Exponent", "1e3", 0, true},
		{"Grouped digits", "1,000", 0, true},
		{"Overflow", "99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseRecordCount(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("ParseRecordCount(%q) expected error but got %d", tt.input, result)
				}
				if !errors.Is(err, ErrInvalidRecordCount) {
					t.Errorf("ParseRecordCount(%q) error = %v, expected ErrInvalidRecordCount", tt.input, err)
				}
				var countErr *InvalidRecordCountError
				if !errors.As(err, &countErr) {
					t.Fatalf("ParseRecordCount(%q) error %T is not InvalidRecordCountError", tt.input, err)
				}
				if countErr.Message() != "Please enter a valid number of records!" {
					t.Errorf("Message() = %q", countErr.Message())
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecordCount(%q) unexpected error = %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseRecordCount(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCalculateStateExample(t *testing.T) {
	report, err := newTestCalculator().Calculate(Selection{
		State:           "California",
		StateRegulation: "CCPA",
		RecordCount:     "1000",
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if !report.State.Matched {
		t.Error("expected state row to match")
	}
	if !report.State.MinTotal.Equal(fine.PresentInt(100000)) {
		t.Errorf("state min total = %s, expected 100000", report.State.MinTotal)
	}
	if !report.State.MaxTotal.Equal(fine.PresentInt(750000)) {
		t.Errorf("state max total = %s, expected 750000", report.State.MaxTotal)
	}
	if report.Display.StateMin != "$100,000.00" || report.Display.StateMax != "$750,000.00" {
		t.Errorf("state display = %q..%q", report.Display.StateMin, report.Display.StateMax)
	}

	if report.Federal.Matched {
		t.Error("expected no federal match for empty selection")
	}
	if report.Federal.MinTotal.IsPresent() || report.Federal.MaxTotal.IsPresent() {
		t.Errorf("federal totals = %s..%s, expected N/A", report.Federal.MinTotal, report.Federal.MaxTotal)
	}
	if report.Display.FederalMin != "N/A" || report.Display.FederalMax != "N/A" {
		t.Errorf("federal display = %q..%q", report.Display.FederalMin, report.Display.FederalMax)
	}

	if !report.TotalMin.Equal(decimal.NewFromInt(100000)) || !report.TotalMax.Equal(decimal.NewFromInt(750000)) {
		t.Errorf("totals = %s..%s", report.TotalMin, report.TotalMax)
	}
	if !report.CreditMonitoring.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("credit monitoring = %s, expected 20000", report.CreditMonitoring)
	}
	if report.Display.CreditMonitoring != "$20,000.00" {
		t.Errorf("credit monitoring display = %q", report.Display.CreditMonitoring)
	}

	expected := "According to the State law of CCPA, in regards to California, the fine ranges from $100,000.00 to $750,000.00."
	if report.State.Explanation != expected {
		t.Errorf("state explanation = %q, expected %q", report.State.Explanation, expected)
	}
}

func TestCalculateFederalExample(t *testing.T) {
	report, err := newTestCalculator().Calculate(Selection{
		FederalRegulation: "HIPAA",
		FederalViolation:  "Willful Neglect (not corrected)",
		RecordCount:       "500",
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if report.Federal.MinTotal.IsPresent() {
		t.Errorf("federal min total = %s, expected N/A", report.Federal.MinTotal)
	}
	if !report.Federal.MaxTotal.Equal(fine.PresentInt(750000000)) {
		t.Errorf("federal max total = %s, expected 750000000", report.Federal.MaxTotal)
	}
	if report.Display.FederalMin != "N/A" {
		t.Errorf("federal min display = %q, expected N/A", report.Display.FederalMin)
	}

	expected := "According to the Federal law of HIPAA, in regards to Willful Neglect (not corrected), " +
		"the fine goes up to $750,000,000.00 depending on the case."
	if report.Federal.Explanation != expected {
		t.Errorf("federal explanation = %q, expected %q", report.Federal.Explanation, expected)
	}

	if !report.TotalMin.IsZero() {
		t.Errorf("total min = %s, expected 0", report.TotalMin)
	}
	if !report.TotalMax.Equal(decimal.NewFromInt(750000000)) {
		t.Errorf("total max = %s, expected 750000000", report.TotalMax)
	}
}

func TestCalculateExplanationTemplates(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selection
		side     func(*Report) SideReport
		expected string
	}{
		{
			name: "Both bounds present",
			sel:  Selection{FederalRegulation: "HIPAA", FederalViolation: "Unknowing", RecordCount: "2"},
			side: func(r *Report) SideReport { return r.Federal },
			expected: "According to the Federal law of HIPAA, in regards to Unknowing, " +
				"the fine ranges from $200.00 to $100,000.00.",
		},
		{
			name: "Only max absent",
			sel:  Selection{State: "Florida", StateRegulation: "FIPA", RecordCount: "3"},
			side: func(r *Report) SideReport { return r.State },
			expected: "According to the State law of FIPA, in regards to Florida, " +
				"the fine starts from $1,500.00 depending on the case.",
		},
		{
			name: "Only min absent",
			sel:  Selection{State: "Texas", StateRegulation: "TDPSA", RecordCount: "10"},
			side: func(r *Report) SideReport { return r.State },
			expected: "According to the State law of TDPSA, in regards to Texas, " +
				"the fine goes up to $75,000.00 depending on the case.",
		},
		{
			name: "Both bounds absent",
			sel:  Selection{State: "New York", StateRegulation: "SHIELD Act", RecordCount: "10"},
			side: func(r *Report) SideReport { return r.State },
			expected: "According to the State law of SHIELD Act, in regards to New York, " +
				"the fines vary case by case.",
		},
		{
			name:     "No matching row",
			sel:      Selection{FederalRegulation: "HIPAA", FederalViolation: "Unknown", RecordCount: "10"},
			side:     func(r *Report) SideReport { return r.Federal },
			expected: "According to the Federal law of HIPAA, in regards to Unknown, the fines vary case by case.",
		},
		{
			name:     "Empty selection",
			sel:      Selection{RecordCount: "10"},
			side:     func(r *Report) SideReport { return r.State },
			expected: "According to the State law of , in regards to , the fines vary case by case.",
		},
	}

	calc := newTestCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := calc.Calculate(tt.sel)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got := tt.side(report).Explanation; got != tt.expected {
				t.Errorf("explanation = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCalculateAllStateRows(t *testing.T) {
	calc := newTestCalculator()
	const records = 1234

	for _, row := range testutil.SampleStates() {
		t.Run(row.State+"/"+row.Regulation, func(t *testing.T) {
			report, err := calc.Calculate(Selection{State: row.State, StateRegulation: row.Regulation, RecordCount: "1234"})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if !report.State.MinTotal.Equal(row.MinFine.Times(records)) {
				t.Errorf("min total = %s, expected %s", report.State.MinTotal, row.MinFine.Times(records))
			}
			if !report.State.MaxTotal.Equal(row.MaxFine.Times(records)) {
				t.Errorf("max total = %s, expected %s", report.State.MaxTotal, row.MaxFine.Times(records))
			}
			if minAmount, ok := row.MinFine.Amount(); ok {
				got, _ := report.State.MinTotal.Amount()
				if !got.Equal(minAmount.Mul(decimal.NewFromInt(records))) {
					t.Errorf("min total = %s, expected table min x records", got)
				}
			}
		})
	}
}

func TestCalculateBothSidesAbsentTotalsZero(t *testing.T) {
	report, err := newTestCalculator().Calculate(Selection{
		State:             "New York",
		StateRegulation:   "SHIELD Act",
		FederalRegulation: "FTC Act",
		FederalViolation:  "Unfair or Deceptive Practice",
		RecordCount:       "100",
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if !report.State.Matched || !report.Federal.Matched {
		t.Fatal("expected both rows to match")
	}
	if !report.TotalMin.IsZero() || !report.TotalMax.IsZero() {
		t.Errorf("totals = %s..%s, expected 0..0", report.TotalMin, report.TotalMax)
	}
	if report.Display.TotalMin != "$0.00" || report.Display.TotalMax != "$0.00" {
		t.Errorf("total display = %q..%q, expected $0.00", report.Display.TotalMin, report.Display.TotalMax)
	}
}

func TestCalculateCombinedTotals(t *testing.T) {
	report, err := newTestCalculator().Calculate(Selection{
		State:             "California",
		StateRegulation:   "CCPA",
		FederalRegulation: "GLBA",
		FederalViolation:  "Institution Violation",
		RecordCount:       "10",
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// State 1,000..7,500 plus federal 1,000,000..N/A.
	if !report.TotalMin.Equal(decimal.NewFromInt(1001000)) {
		t.Errorf("total min = %s, expected 1001000", report.TotalMin)
	}
	if !report.TotalMax.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("total max = %s, expected 7500", report.TotalMax)
	}
	if report.Display.TotalMin != "$1,001,000.00" {
		t.Errorf("total min display = %q", report.Display.TotalMin)
	}
}

func TestCalculateZeroRecords(t *testing.T) {
	report, err := newTestCalculator().Calculate(Selection{
		State:             "Texas",
		StateRegulation:   "TDPSA",
		FederalRegulation: "HIPAA",
		FederalViolation:  "Unknowing",
		RecordCount:       "0",
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if report.State.MinTotal.IsPresent() {
		t.Errorf("state min total = %s, expected N/A to be preserved", report.State.MinTotal)
	}
	for name, bound := range map[string]fine.Bound{
		"state max":   report.State.MaxTotal,
		"federal min": report.Federal.MinTotal,
		"federal max": report.Federal.MaxTotal,
	} {
		if !bound.Equal(fine.PresentInt(0)) {
			t.Errorf("%s = %s, expected 0", name, bound)
		}
	}
	if !report.TotalMin.IsZero() || !report.TotalMax.IsZero() || !report.CreditMonitoring.IsZero() {
		t.Errorf("totals = %s..%s credit %s, expected zeros", report.TotalMin, report.TotalMax, report.CreditMonitoring)
	}
}

func TestCalculateInvalidRecordCount(t *testing.T) {
	calc := newTestCalculator()
	for _, input := range []string{"-1", "abc", "", "12.5"} {
		t.Run(input, func(t *testing.T) {
			report, err := calc.Calculate(Selection{State: "California", StateRegulation: "CCPA", RecordCount: input})
			if !errors.Is(err, ErrInvalidRecordCount) {
				t.Errorf("Calculate(%q) error = %v, expected ErrInvalidRecordCount", input, err)
			}
			if report != nil {
				t.Errorf("Calculate(%q) returned report alongside error", input)
			}
		})
	}
}

func TestCalculateOptions(t *testing.T) {
	gbp, err := format.NewFormatter("en-GB", "£")
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	calc := newTestCalculator(
		WithCreditMonitoringRate(decimal.RequireFromString("12.5")),
		WithFormatter(gbp),
		WithFormatter(nil),
		WithLogger(nil),
	)
	if !calc.CreditMonitoringRate().Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("CreditMonitoringRate() = %s", calc.CreditMonitoringRate())
	}

	report, err := calc.Calculate(Selection{State: "California", StateRegulation: "CCPA", RecordCount: "1000"})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if report.Display.CreditMonitoring != "£12,500.00" {
		t.Errorf("credit monitoring display = %q, expected £12,500.00", report.Display.CreditMonitoring)
	}
	if report.Display.StateMin != "£100,000.00" {
		t.Errorf("state min display = %q", report.Display.StateMin)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	calc := newTestCalculator()
	sel := Selection{
		State:             "California",
		StateRegulation:   "CPRA",
		FederalRegulation: "HIPAA",
		FederalViolation:  "Reasonable Cause",
		RecordCount:       "777",
	}

	first, err := calc.Calculate(sel)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	second, err := calc.Calculate(sel)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("reports differ:\n%s\n%s", a, b)
	}
}
