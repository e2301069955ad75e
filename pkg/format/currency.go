// Package format renders money amounts for display.
package format

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyInfo describes how a currency code is displayed.
type CurrencyInfo struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// Currencies lists every supported currency keyed by ISO code.
var Currencies = map[string]CurrencyInfo{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar", Locale: "en-US"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro", Locale: "de-DE"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound", Locale: "en-GB"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", Locale: "en-CA"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar", Locale: "en-AU"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Locale: "ja-JP"},
}

// Lookup returns the display info for code, falling back to USD for unknown codes.
func Lookup(code string) CurrencyInfo {
	if info, ok := Currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return info
	}
	return Currencies[constants.DefaultCurrency]
}

// IsSupported reports whether code is a known currency.
func IsSupported(code string) bool {
	_, ok := Currencies[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Codes returns the supported currency codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(Currencies))
	for code := range Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// FormatCurrency formats amount as whole units with the currency symbol and the
// grouping rules of the currency's locale (e.g. "£12,570", "€1.234").
func FormatCurrency(amount float64, code string) string {
	info := Lookup(code)
	p := message.NewPrinter(language.Make(info.Locale))
	whole := int64(math.Round(math.Abs(amount)))
	formatted := p.Sprintf("%d", whole)
	if amount < 0 && whole != 0 {
		return "-" + info.Symbol + formatted
	}
	return info.Symbol + formatted
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
