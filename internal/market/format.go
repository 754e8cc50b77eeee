package market

import (
	"fmt"

	"stock-verdict/internal/ticker"
)

const (
	rupee  = "₹"
	dollar = "$"

	crore = 1e7
)

func CurrencySymbol(symbol string) string {
	if ticker.IsIndian(symbol) {
		return rupee
	}
	return dollar
}

// FormatMarketCap renders a raw market cap in crores for Indian listings
// and in M/B/T otherwise. Non-positive values render as N/A.
func FormatMarketCap(symbol string, value float64) string {
	if value <= 0 {
		return "N/A"
	}
	if ticker.IsIndian(symbol) {
		if value >= crore {
			return fmt.Sprintf("%s%.2f Cr", rupee, value/crore)
		}
		return fmt.Sprintf("%s%.2f", rupee, value)
	}
	switch {
	case value >= 1e12:
		return fmt.Sprintf("%s%.2fT", dollar, value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("%s%.2fB", dollar, value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%s%.2fM", dollar, value/1e6)
	default:
		return fmt.Sprintf("%s%.0f", dollar, value)
	}
}
