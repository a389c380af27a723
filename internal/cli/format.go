package cli

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount as dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsNegative() {
		return "-" + printer.Sprintf("$%.2f", amount.Neg().InexactFloat64())
	}
	return printer.Sprintf("$%.2f", amount.InexactFloat64())
}

// FormatPercentage renders a percentage with two decimals.
func FormatPercentage(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}
