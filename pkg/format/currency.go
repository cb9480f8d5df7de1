// Package format renders money for display.
package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iwvelando/breach-estimator/pkg/constants"
	"github.com/iwvelando/breach-estimator/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders currency amounts with locale-aware digit grouping and a
// fixed currency symbol. It is safe for concurrent use.
type Formatter struct {
	tag      language.Tag
	symbol   string
	group    string
	fraction string
}

// NewFormatter returns a formatter for the BCP-47 locale (e.g. "en-US").
// Empty arguments fall back to the defaults.
func NewFormatter(locale, symbol string) (*Formatter, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = constants.DefaultLocale
	}
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return newFormatter(tag, symbol), nil
}

// Default returns the en-US dollar formatter.
func Default() *Formatter {
	return newFormatter(language.AmericanEnglish, constants.DefaultCurrencySymbol)
}

// newFormatter reads the locale's separators once from a printer. The
// amounts themselves never pass through float64.
func newFormatter(tag language.Tag, symbol string) *Formatter {
	p := message.NewPrinter(tag)
	fraction := separator(p.Sprintf("%.1f", 1.5))
	if fraction == "" {
		fraction = "."
	}
	return &Formatter{
		tag:      tag,
		symbol:   symbol,
		group:    separator(p.Sprintf("%d", 1234567)),
		fraction: fraction,
	}
}

// separator returns the first run of non-digit runes after the leading
// digits of s.
func separator(s string) string {
	trimmed := strings.TrimLeftFunc(s, unicode.IsDigit)
	end := strings.IndexFunc(trimmed, unicode.IsDigit)
	if end < 0 {
		return ""
	}
	return trimmed[:end]
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Symbol returns the currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Currency returns amount rounded to cents with the currency symbol and
// grouping separators (e.g. "-$1,234.56" for en-US).
func (f *Formatter) Currency(amount decimal.Decimal) string {
	rounded := mathutil.Round(amount)
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(constants.CurrencyPlaces), ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(f.symbol)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(digit)
	}
	b.WriteString(f.fraction)
	b.WriteString(cents)
	return b.String()
}
