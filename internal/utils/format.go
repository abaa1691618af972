package utils

import (
	"strconv"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	madPrinter = message.NewPrinter(language.MustParse("fr-MA"))
	mad        = currency.MustParseISO("MAD")
)

// FormatMAD renders an amount the way owners read it, e.g. "4 000,00 MAD".
func FormatMAD(amount float64) string {
	return madPrinter.Sprint(number.Decimal(amount, number.Scale(2))) + " " + mad.String()
}

// FormatLongDate renders t as "January 2nd 2024".
func FormatLongDate(t time.Time) string {
	return t.Format("January") + " " + ordinal(t.Day()) + " " + strconv.Itoa(t.Year())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
