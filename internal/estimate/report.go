package estimate

import (
	"fmt"

	"github.com/iwvelando/breach-estimator/internal/fine"
	"github.com/shopspring/decimal"
)

// Level names the body of law a side of the report belongs to.
type Level string

const (
	LevelState   Level = "State"
	LevelFederal Level = "Federal"
)

// SideReport is the state or federal half of a report.
type SideReport struct {
	Level      Level  `json:"level"`
	Regulation string `json:"regulation"`
	// Subject is the state for the state side and the violation type for the
	// federal side.
	Subject string `json:"subject"`
	Matched bool   `json:"matched"`

	// Per-record bounds from the matched row.
	MinFine fine.Bound `json:"minFine"`
	MaxFine fine.Bound `json:"maxFine"`

	MinTotal    fine.Bound `json:"minTotal"`
	MaxTotal    fine.Bound `json:"maxTotal"`
	Explanation string     `json:"explanation"`
}

// Display holds the report's amounts as formatted currency; absent totals
// read "N/A".
type Display struct {
	StateMin         string `json:"stateMin"`
	StateMax         string `json:"stateMax"`
	FederalMin       string `json:"federalMin"`
	FederalMax       string `json:"federalMax"`
	TotalMin         string `json:"totalMin"`
	TotalMax         string `json:"totalMax"`
	CreditMonitoring string `json:"creditMonitoring"`
}

// Report is the result of one calculation. Raw amounts are exact decimals;
// Display carries the same amounts formatted for people.
type Report struct {
	Selection            Selection       `json:"selection"`
	RecordCount          int64           `json:"recordCount"`
	State                SideReport      `json:"state"`
	Federal              SideReport      `json:"federal"`
	TotalMin             decimal.Decimal `json:"totalMin"`
	TotalMax             decimal.Decimal `json:"totalMax"`
	CreditMonitoring     decimal.Decimal `json:"creditMonitoring"`
	CreditMonitoringRate decimal.Decimal `json:"creditMonitoringRate"`
	Display              Display         `json:"display"`
}

func (c *Calculator) explain(side SideReport) string {
	prefix := fmt.Sprintf("According to the %s law of %s, in regards to %s, ", side.Level, side.Regulation, side.Subject)

	minAmount, hasMin := side.MinTotal.Amount()
	maxAmount, hasMax := side.MaxTotal.Amount()

	switch {
	case !hasMin && !hasMax:
		return prefix + "the fines vary case by case."
	case !hasMax:
		return prefix + fmt.Sprintf("the fine starts from %s depending on the case.", c.formatter.Currency(minAmount))
	case !hasMin:
		return prefix + fmt.Sprintf("the fine goes up to %s depending on the case.", c.formatter.Currency(maxAmount))
	default:
		return prefix + fmt.Sprintf("the fine ranges from %s to %s.",
			c.formatter.Currency(minAmount), c.formatter.Currency(maxAmount))
	}
}
