// Package format renders raw numeric magnitudes as display strings.
// Currency uses the Indian numbering scale (lakh/crore) on purpose.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Rupee        = "₹"
	NotAvailable = "N/A"
)

var (
	billion = decimal.New(1, 9)
	crore   = decimal.New(1, 7)
	lakh    = decimal.New(1, 5)
)

// Currency formats a nullable magnitude as a scaled rupee string:
// ≥1e9 → B, ≥1e7 → Cr, ≥1e5 → L, otherwise the raw value with
// thousands separators. Missing → "N/A".
func Currency(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	return CurrencyValue(n.Decimal)
}

// CurrencyValue formats a known-present magnitude.
func CurrencyValue(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(billion):
		return Rupee + d.Div(billion).StringFixed(2) + "B"
	case d.GreaterThanOrEqual(crore):
		return Rupee + d.Div(crore).StringFixed(2) + "Cr"
	case d.GreaterThanOrEqual(lakh):
		return Rupee + d.Div(lakh).StringFixed(2) + "L"
	default:
		return Rupee + groupThousands(d.StringFixed(2))
	}
}

// CurrencyString formats a string that may already carry currency
// glyphs and separators. A re-parse failure yields "N/A".
func CurrencyString(s string) string {
	s = strings.ReplaceAll(s, Rupee, "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return NotAvailable
	}
	return CurrencyValue(d)
}

// Percent formats a signed percent change ("+1.25%"), "N/A" when missing.
func Percent(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	s := n.Decimal.StringFixed(2)
	if n.Decimal.Sign() >= 0 {
		s = "+" + s
	}
	return s + "%"
}

// Ratio formats a plain two-decimal value, "N/A" when missing.
func Ratio(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	return n.Decimal.StringFixed(2)
}

// RatioPercent is Ratio with a % suffix, for ROE/ROCE/dividend yield.
func RatioPercent(n decimal.NullDecimal) string {
	if !n.Valid {
		return NotAvailable
	}
	return n.Decimal.StringFixed(2) + "%"
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
