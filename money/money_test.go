package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormat(t *testing.T) {
	cases := []struct {
		currency Currency
		in       string
		want     string
	}{
		{TWD, "1050", "1,050"},
		{TWD, "1050.4", "1,050"},
		{TWD, "0", "0"},
		{TWD, "1234567", "1,234,567"},
		{USD, "100", "100.00"},
		{USD, "1234.5", "1,234.50"},
		{USD, "0.005", "0.00"}, // half to even: 0.00
		{USD, "0.015", "0.02"}, // half to even: 0.02
		{USD, "0.025", "0.02"}, // half to even: 0.02
		{USD, "-1234.5", "(1,234.50)"},
		{TWD, "-50", "(50)"},
		{JPY, "999", "999"},
		{EUR, "1000000.999", "1,000,001.00"},
	}
	for _, c := range cases {
		got := c.currency.Format(dec(c.in))
		if got != c.want {
			t.Errorf("%s.Format(%s) = %q, want %q", c.currency, c.in, got, c.want)
		}
	}
}

func TestRoundHalfEven(t *testing.T) {
	// Ties round toward the even digit in both directions.
	cases := []struct {
		currency Currency
		in, want string
	}{
		{TWD, "2.5", "2"},
		{TWD, "3.5", "4"},
		{TWD, "-2.5", "-2"},
		{USD, "1.005", "1"},
		{USD, "1.015", "1.02"},
	}
	for _, c := range cases {
		got := c.currency.Round(dec(c.in))
		if !got.Equal(dec(c.want)) {
			t.Errorf("%s.Round(%s) = %s, want %s", c.currency, c.in, got, c.want)
		}
	}
}

func TestExponent(t *testing.T) {
	if TWD.Exponent() != 0 || JPY.Exponent() != 0 {
		t.Error("zero-decimal currencies must have exponent 0")
	}
	if USD.Exponent() != 2 || EUR.Exponent() != 2 {
		t.Error("USD/EUR must have exponent 2")
	}
}

func TestKnown(t *testing.T) {
	if !Known(TWD) || Known(Currency("XXX")) {
		t.Error("Known misclassifies currency codes")
	}
}
