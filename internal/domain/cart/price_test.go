// internal/domain/cart/price_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	productdom "lmye/internal/domain/product"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"220€", 220},
		{"25.5€", 25.5},
		{" 5.50 € ", 5.5},
		{"85", 85},
		{"", 0},
		{"€", 0},
		{"gratuit", 0},
		{"12,50€", 0}, // comma decimals are not parsed, lenient zero
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePrice(tc.in), "ParsePrice(%q)", tc.in)
	}
}

func TestTotal(t *testing.T) {
	items := []Item{
		{Product: productdom.Product{ID: "a", Price: "220€"}, Quantity: 2},
		{Product: productdom.Product{ID: "b", Price: "25.5€"}, Quantity: 1},
		{Product: productdom.Product{ID: "c", Price: "n/a"}, Quantity: 3}, // contributes zero
	}
	assert.InDelta(t, 465.5, Total(items), 1e-9)
	assert.Zero(t, Total(nil))
}
