// Package fine defines the fine bound type shared by the reference tables and
// the calculator. A bound is either absent ("not applicable") or a present
// per-record amount.
package fine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bound is a Min or Max fine value. The zero value is Absent.
type Bound struct {
	amount  decimal.Decimal
	present bool
}

// Absent returns a bound that is not applicable.
func Absent() Bound {
	return Bound{}
}

// Present returns a bound holding amount.
func Present(amount decimal.Decimal) Bound {
	return Bound{amount: amount, present: true}
}

// PresentInt is a convenience for whole-unit amounts.
func PresentInt(amount int64) Bound {
	return Present(decimal.NewFromInt(amount))
}

// IsPresent reports whether the bound holds an amount.
func (b Bound) IsPresent() bool {
	return b.present
}

// Amount returns the amount and whether it is present.
func (b Bound) Amount() (decimal.Decimal, bool) {
	if !b.present {
		return decimal.Zero, false
	}
	return b.amount, true
}

// OrZero returns the amount, or zero when the bound is absent. Use it only
// when combining bounds into a sum.
func (b Bound) OrZero() decimal.Decimal {
	if !b.present {
		return decimal.Zero
	}
	return b.amount
}

// Times scales the bound by count. An absent bound stays absent.
func (b Bound) Times(count int64) Bound {
	if !b.present {
		return b
	}
	return Present(b.amount.Mul(decimal.NewFromInt(count)))
}

// Equal reports whether both bounds are absent or both hold equal amounts.
func (b Bound) Equal(other Bound) bool {
	if b.present != other.present {
		return false
	}
	return !b.present || b.amount.Equal(other.amount)
}

// String renders the amount, or "N/A" when absent.
func (b Bound) String() string {
	if !b.present {
		return "N/A"
	}
	return b.amount.String()
}

// MarshalJSON encodes an absent bound as null and a present one as its
// decimal representation.
func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.present {
		return []byte("null"), nil
	}
	return b.amount.MarshalJSON()
}

// UnmarshalJSON accepts null, a JSON number or a quoted decimal.
func (b *Bound) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*b = Absent()
		return nil
	}

	var amount decimal.Decimal
	if err := json.Unmarshal(trimmed, &amount); err != nil {
		return fmt.Errorf("invalid fine bound %s: %w", string(trimmed), err)
	}
	*b = Present(amount)
	return nil
}
