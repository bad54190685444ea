package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as Indonesian rupiah for display,
// e.g. 335000 -> "Rp 335.000". Fractions are rounded away.
func FormatIDR(amount float64) string {
	return idPrinter.Sprintf("Rp %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
