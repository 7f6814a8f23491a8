package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders amount as US dollars with digit grouping. Cents are
// shown only when non-zero: 500000 -> "$500,000", 320.5 -> "$320.50".
func FormatUSD(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	if cents%100 == 0 {
		return sign + "$" + printer.Sprintf("%d", cents/100)
	}
	return sign + "$" + printer.Sprintf("%.2f", float64(cents)/100)
}
