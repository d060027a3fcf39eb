package footprint

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(41604) returns "41,604".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatTonnes renders an annual amount with two decimals and thousand
// separators, e.g. "8.67 t CO₂e/yr".
func FormatTonnes(t float64) string {
	return FormatValue(t) + " t CO₂e/yr"
}

// FormatValue renders t with two decimals and thousand separators.
// Non-finite values render as "0.00".
func FormatValue(t float64) string {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		t = 0
	}
	return printer.Sprintf("%.2f", t)
}
