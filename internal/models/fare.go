package models

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nairaSign = "₦"

var farePrinter = message.NewPrinter(language.English)

// FormatFare renders an amount in naira with grouped thousands and at most
// three fraction digits, e.g. ₦15,000 or ₦5,000.125.
func FormatFare(amount float64) string {
	if amount == math.Trunc(amount) && math.Abs(amount) < 1e15 {
		return farePrinter.Sprintf("%s%d", nairaSign, int64(amount))
	}
	return farePrinter.Sprintf("%s%v", nairaSign, number.Decimal(amount, number.MaxFractionDigits(3)))
}

// FormatFareRange renders "₦min - ₦max". The bounds are not reordered.
func FormatFareRange(min, max float64) string {
	return FormatFare(min) + " - " + FormatFare(max)
}
