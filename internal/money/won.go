// Package money formats KRW amounts for reports and change events.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Korean)

// FormatWon renders an amount as "₩12,345". Fractional won are dropped; card
// statements carry whole-won amounts.
func FormatWon(amount decimal.Decimal) string {
	return printer.Sprintf("₩%v", number.Decimal(amount.Round(0).IntPart()))
}
