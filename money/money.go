// Package money handles per-currency rounding and print formatting of
// invoice amounts. Amounts are decimal values throughout; rounding is
// round-half-even at the currency's exponent so repeated sums do not drift.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code known to the formatter.
type Currency string

const (
	TWD Currency = "TWD"
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
)

// Known reports whether c is a supported currency code.
func Known(c Currency) bool {
	switch c {
	case TWD, USD, EUR, JPY:
		return true
	}
	return false
}

// Exponent returns the number of decimal places amounts in c carry.
// TWD and JPY are zero-decimal currencies.
func (c Currency) Exponent() int32 {
	switch c {
	case TWD, JPY:
		return 0
	default:
		return 2
	}
}

// Round rounds d to the currency's exponent using round-half-even.
func (c Currency) Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(c.Exponent())
}

// Format renders d at the currency's precision with thousands grouping.
// Negative amounts are parenthesized, never prefixed with a bare minus
// sign. The output is stable for a given input and meant for the
// monospace role, right-aligned by the caller.
func (c Currency) Format(d decimal.Decimal) string {
	rounded := c.Round(d)
	neg := rounded.IsNegative()
	s := rounded.Abs().StringFixed(c.Exponent())

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	grouped := groupThousands(intPart)
	if hasFrac {
		grouped += "." + fracPart
	}
	if neg {
		return "(" + grouped + ")"
	}
	return grouped
}

// groupThousands inserts commas into a plain digit string.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + n/3)
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
