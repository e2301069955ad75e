package format

import (
	"strings"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Small", 5, "$5.00"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.5, "-$1,234.50"},
		{"Zero", 0, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-98765.4); got != "-98,765.40" {
		t.Errorf("NumericCurrency(-98765.4) = %q", got)
	}
	if got := NumericCurrency(999.999); got != "1,000.00" {
		t.Errorf("NumericCurrency(999.999) = %q", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		code     string
		expected string
	}{
		{"US dollars", 1234.4, "USD", "$1,234"},
		{"Rounds to whole units", 1234.5, "USD", "$1,235"},
		{"Pounds", 12570, "GBP", "£12,570"},
		{"Lower case code", 50, "gbp", "£50"},
		{"Unknown code falls back to USD", 10, "XYZ", "$10"},
		{"Negative", -2500, "USD", "-$2,500"},
		{"Canadian symbol", 100, "CAD", "C$100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount, tt.code); got != tt.expected {
				t.Errorf("FormatCurrency(%v, %s) = %q, expected %q", tt.amount, tt.code, got, tt.expected)
			}
		})
	}
}

func TestFormatCurrencyUsesSymbol(t *testing.T) {
	for _, code := range Codes() {
		got := FormatCurrency(1000000, code)
		if !strings.HasPrefix(got, Currencies[code].Symbol) {
			t.Errorf("FormatCurrency(1000000, %s) = %q, missing symbol %q", code, got, Currencies[code].Symbol)
		}
	}
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", " usd "} {
		if !IsSupported(code) {
			t.Errorf("IsSupported(%q) = false, expected true", code)
		}
	}
	if IsSupported("BTC") {
		t.Errorf("IsSupported(BTC) = true, expected false")
	}
	if len(Codes()) != 6 {
		t.Errorf("Codes() returned %d codes, expected 6", len(Codes()))
	}
}
