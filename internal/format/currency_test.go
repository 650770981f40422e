package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func present(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

func TestCurrencyScales(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1_000_000_000, "₹1.00B"},
		{50_000_000, "₹5.00Cr"},
		{200_000, "₹2.00L"},
		{100_000, "₹1.00L"},
		{99_999, "₹99,999.00"},
		{500, "₹500.00"},
	}
	for _, c := range cases {
		if got := Currency(present(c.in)); got != c.want {
			t.Errorf("Currency(%d): expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestCurrencyMissing(t *testing.T) {
	if got := Currency(decimal.NullDecimal{}); got != "N/A" {
		t.Fatalf("expected N/A, got %s", got)
	}
}

func TestCurrencyValueGrouping(t *testing.T) {
	if got := CurrencyValue(decimal.RequireFromString("1234.5")); got != "₹1,234.50" {
		t.Errorf("expected ₹1,234.50, got %s", got)
	}
	if got := CurrencyValue(decimal.RequireFromString("99999.99")); got != "₹99,999.99" {
		t.Errorf("expected ₹99,999.99, got %s", got)
	}
}

func TestCurrencyString(t *testing.T) {
	if got := CurrencyString("₹50,000,000"); got != "₹5.00Cr" {
		t.Errorf("expected ₹5.00Cr, got %s", got)
	}
	// A trailing scale suffix makes the string unparseable; that
	// degrades to the sentinel rather than raising.
	if got := CurrencyString("₹1,234.5Cr"); got != "N/A" {
		t.Errorf("expected N/A for unparseable string, got %s", got)
	}
	if got := CurrencyString("garbage"); got != "N/A" {
		t.Errorf("expected N/A, got %s", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.NullDecimal{}); got != "N/A" {
		t.Errorf("expected N/A, got %s", got)
	}
	up := decimal.NullDecimal{Decimal: decimal.RequireFromString("1.256"), Valid: true}
	if got := Percent(up); got != "+1.26%" {
		t.Errorf("expected +1.26%%, got %s", got)
	}
	down := decimal.NullDecimal{Decimal: decimal.RequireFromString("-0.5"), Valid: true}
	if got := Percent(down); got != "-0.50%" {
		t.Errorf("expected -0.50%%, got %s", got)
	}
	zero := decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
	if got := Percent(zero); got != "+0.00%" {
		t.Errorf("expected +0.00%%, got %s", got)
	}
}

func TestRatio(t *testing.T) {
	v := decimal.NullDecimal{Decimal: decimal.RequireFromString("25.4"), Valid: true}
	if got := Ratio(v); got != "25.40" {
		t.Errorf("expected 25.40, got %s", got)
	}
	if got := RatioPercent(v); got != "25.40%" {
		t.Errorf("expected 25.40%%, got %s", got)
	}
	if got := RatioPercent(decimal.NullDecimal{}); got != "N/A" {
		t.Errorf("expected N/A, got %s", got)
	}
}

// Round-trip: a raw market cap of 50000000 loaded through the pipeline
// renders as the literal "₹5.00Cr".
func TestCurrencyRoundTrip(t *testing.T) {
	raw, err := decimal.NewFromString("50000000")
	if err != nil {
		t.Fatal(err)
	}
	if got := Currency(decimal.NullDecimal{Decimal: raw, Valid: true}); got != "₹5.00Cr" {
		t.Fatalf("expected ₹5.00Cr, got %s", got)
	}
}
