// internal/domain/cart/price.go
package cart

import (
	"strconv"
	"strings"
)

// ParsePrice turns a free-text price string ("220€", " 5.50 € ") into a
// number. The currency symbol is stripped and the remainder parsed as a
// float; empty, missing or malformed prices resolve to 0 so that a bad
// price can never break a total calculation.
func ParsePrice(s string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, "€", ""))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Total sums price × quantity over the items, with the lenient ParsePrice
// policy per item.
func Total(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		total += ParsePrice(it.Product.Price) * float64(it.Quantity)
	}
	return total
}
