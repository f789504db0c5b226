// Package format renders amounts for human-readable messages.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

// Currency returns a currency string with the rupee sign and thousands separators (e.g., "-₹1,234.56").
func Currency(amount float64) string {
	return withSign(decimal.NewFromFloat(amount).Round(2), 2)
}

// WholeCurrency rounds to the nearest rupee (e.g., "₹1,235").
func WholeCurrency(amount float64) string {
	return withSign(decimal.NewFromFloat(amount).Round(0), 0)
}

func withSign(d decimal.Decimal, places int32) string {
	formatted := group(d.Abs().StringFixed(places))
	if d.IsNegative() {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}

func group(formatted string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
