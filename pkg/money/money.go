// Package money handles monetary amounts as int64 minor units (cents).
//
// All arithmetic in the core is integer arithmetic on cents; decimal major
// units exist only at the presentation boundary (API payloads, PDF) and are
// converted here.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var centsPerUnit = decimal.NewFromInt(100)

// ToMajor converts cents to a decimal amount in major units (e.g. 12345 -> 123.45).
func ToMajor(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerUnit)
}

// FromMajor converts a decimal major-unit amount to cents.
// Fails when the amount has sub-cent precision.
func FromMajor(d decimal.Decimal) (int64, error) {
	c := d.Mul(centsPerUnit)
	if !c.IsInteger() {
		return 0, fmt.Errorf("money: %s has sub-cent precision", d.String())
	}
	return c.IntPart(), nil
}

// ParseMajor parses a major-unit string ("49.90") into cents.
func ParseMajor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return FromMajor(d)
}

// FormatMajor renders cents as a plain major-unit string with two decimals ("123.45").
func FormatMajor(cents int64) string {
	return ToMajor(cents).StringFixed(2)
}

var printer = message.NewPrinter(language.English)

// Display renders cents with thousands separators for documents ("1,234.50").
func Display(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return printer.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
