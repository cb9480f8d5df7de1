// Package estimate computes potential breach fines by looking up one state row
// and one federal row, scaling their fine bounds by the number of breached
// records and adding a flat credit-monitoring cost.
package estimate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/iwvelando/breach-estimator/internal/reference"
	"github.com/iwvelando/breach-estimator/pkg/constants"
	"github.com/iwvelando/breach-estimator/pkg/format"
	"github.com/iwvelando/breach-estimator/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Tables is the lookup side of the reference store.
type Tables interface {
	StateFine(state, regulation string) (reference.RegulationRecord, bool)
	FederalFine(regulation, violation string) (reference.FederalRecord, bool)
}

// Selection holds the user's choices. Any field may be empty; RecordCount is
// the raw text as entered.
type Selection struct {
	State             string `json:"state"`
	StateRegulation   string `json:"stateRegulation"`
	FederalRegulation string `json:"federalRegulation"`
	FederalViolation  string `json:"federalViolation"`
	RecordCount       string `json:"records"`
}

// Calculator computes reports against a fixed set of tables.
type Calculator struct {
	tables    Tables
	rate      decimal.Decimal
	formatter *format.Formatter
	logger    *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithCreditMonitoringRate sets the per-record credit-monitoring cost.
func WithCreditMonitoringRate(rate decimal.Decimal) Option {
	return func(c *Calculator) {
		c.rate = rate
	}
}

// WithFormatter sets the currency formatter used for display strings.
func WithFormatter(f *format.Formatter) Option {
	return func(c *Calculator) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCalculator returns a calculator over tables.
func NewCalculator(tables Tables, opts ...Option) *Calculator {
	c := &Calculator{
		tables:    tables,
		rate:      decimal.NewFromInt(constants.DefaultCreditMonitoringRate),
		formatter: format.Default(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreditMonitoringRate returns the configured per-record rate.
func (c *Calculator) CreditMonitoringRate() decimal.Decimal {
	return c.rate
}

// ParseRecordCount parses input as a non-negative base-10 integer.
func ParseRecordCount(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	count, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &InvalidRecordCountError{Input: input, Err: err}
	}
	if count < 0 {
		return 0, &InvalidRecordCountError{Input: input, Err: errors.New("must not be negative")}
	}
	return count, nil
}

// Calculate produces the fine report for sel. A selection without a matching
// row yields absent bounds for that side; only a bad record count is an
// error.
func (c *Calculator) Calculate(sel Selection) (*Report, error) {
	records, err := ParseRecordCount(sel.RecordCount)
	if err != nil {
		return nil, err
	}

	state := SideReport{Level: LevelState, Regulation: sel.StateRegulation, Subject: sel.State}
	if row, ok := c.tables.StateFine(sel.State, sel.StateRegulation); ok {
		state.Matched = true
		state.MinFine = row.MinFine
		state.MaxFine = row.MaxFine
	} else {
		c.logger.Debug(fmt.Sprintf("no state fine for %q under %q", sel.State, sel.StateRegulation),
			zap.String("op", "estimate.Calculate"),
		)
	}

	federal := SideReport{Level: LevelFederal, Regulation: sel.FederalRegulation, Subject: sel.FederalViolation}
	if row, ok := c.tables.FederalFine(sel.FederalRegulation, sel.FederalViolation); ok {
		federal.Matched = true
		federal.MinFine = row.MinFine
		federal.MaxFine = row.MaxFine
	} else {
		c.logger.Debug(fmt.Sprintf("no federal fine for %q under %q", sel.FederalViolation, sel.FederalRegulation),
			zap.String("op", "estimate.Calculate"),
		)
	}

	for _, side := range []*SideReport{&state, &federal} {
		side.MinTotal = side.MinFine.Times(records)
		side.MaxTotal = side.MaxFine.Times(records)
		side.Explanation = c.explain(*side)
	}

	// Absent totals contribute nothing, so two absent sides sum to zero
	// rather than N/A.
	report := &Report{
		Selection:            sel,
		RecordCount:          records,
		State:                state,
		Federal:              federal,
		TotalMin:             mathutil.Sum(state.MinTotal.OrZero(), federal.MinTotal.OrZero()),
		TotalMax:             mathutil.Sum(state.MaxTotal.OrZero(), federal.MaxTotal.OrZero()),
		CreditMonitoring:     mathutil.Scale(c.rate, records),
		CreditMonitoringRate: c.rate,
	}

	report.Display = Display{
		StateMin:         c.display(state.MinTotal),
		StateMax:         c.display(state.MaxTotal),
		FederalMin:       c.display(federal.MinTotal),
		FederalMax:       c.display(federal.MaxTotal),
		TotalMin:         c.formatter.Currency(report.TotalMin),
		TotalMax:         c.formatter.Currency(report.TotalMax),
		CreditMonitoring: c.formatter.Currency(report.CreditMonitoring),
	}

	return report, nil
}

func (c *Calculator) display(b fine.Bound) string {
	amount, ok := b.Amount()
	if !ok {
		return constants.NotApplicable
	}
	return c.formatter.Currency(amount)
}
