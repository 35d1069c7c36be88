package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.Spanish)
)

// Price formats a monthly rent, e.g. "€1,200/month"
func Price(amount float64) string {
	return "€" + printer.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(2))) + "/month"
}

// Money formats an amount with two decimals, e.g. "€2,400.00"
func Money(amount float64) string {
	return "€" + printer.Sprintf("%v", number.Decimal(amount, number.Scale(2)))
}

// AreaLabel turns an area slug into a display name: "ciutat-vella" -> "Ciutat Vella"
func AreaLabel(slug string) string {
	return titler.String(strings.ReplaceAll(slug, "-", " "))
}

// Count formats n with a noun, singular only when n == 1: "1 Bed", "2 Beds", "0 Beds"
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Size formats a floor size in square meters
func Size(m2 float64) string {
	return printer.Sprintf("%v", number.Decimal(m2, number.MaxFractionDigits(1))) + "m²"
}
