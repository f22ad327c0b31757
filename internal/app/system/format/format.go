// Package format renders numbers for display in the en-US style the
// dashboard uses (thousands grouping, at most three fraction digits).
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Number formats v with grouping separators and up to three fraction digits.
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Int formats n with grouping separators.
func Int(n int) string {
	return printer.Sprint(number.Decimal(n))
}

// Money prefixes the grouped amount with a dollar sign.
func Money(v float64) string {
	return "$" + Number(v)
}
