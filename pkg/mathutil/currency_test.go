package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Round up at midpoint", "1.235", "1.24"},
		{"Round down below midpoint", "1.234", "1.23"},
		{"No rounding needed", "1.23", "1.23"},
		{"Large number", "12345.678", "12345.68"},
		{"Negative number round up", "-1.235", "-1.24"},
		{"Zero", "0", "0"},
		{"Very small positive", "0.001", "0"},
		{"Whole amount", "750000000", "750000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(decimal.RequireFromString(tt.input))
			if !result.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Round(%s) = %s, expected %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []int64
		expected int64
	}{
		{"No values", nil, 0},
		{"Single value", []int64{5}, 5},
		{"Several values", []int64{100000, 750000000, 0}, 750100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]decimal.Decimal, 0, len(tt.values))
			for _, v := range tt.values {
				values = append(values, decimal.NewFromInt(v))
			}
			result := Sum(values...)
			if !result.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("Sum(%v) = %s, expected %d", tt.values, result, tt.expected)
			}
		})
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name     string
		perUnit  string
		count    int64
		expected string
	}{
		{"Credit monitoring", "20", 1000, "20000"},
		{"Zero count", "20", 0, "0"},
		{"Fractional rate", "12.5", 3, "37.5"},
		{"Large count", "1500000", 500, "750000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Scale(decimal.RequireFromString(tt.perUnit), tt.count)
			if !result.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Scale(%s, %d) = %s, expected %s", tt.perUnit, tt.count, result, tt.expected)
			}
		})
	}
}
