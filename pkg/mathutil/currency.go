// Package mathutil provides common mathematical utility functions for money.
package mathutil

import (
	"github.com/iwvelando/breach-estimator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to cents, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPlaces)
}

// Sum adds values. The sum of no values is zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Scale multiplies a per-unit amount by a whole count.
func Scale(perUnit decimal.Decimal, count int64) decimal.Decimal {
	return perUnit.Mul(decimal.NewFromInt(count))
}
