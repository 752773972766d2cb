// internal/application/catalog/views.go
package catalog

import (
	"math/rand/v2"

	categorydom "lmye/internal/domain/category"
	productdom "lmye/internal/domain/product"
)

const (
	// NewArrivalsLimit caps the "nouveautés" section on the home page.
	NewArrivalsLimit = 4
	// SuggestionsLimit caps the "you may also like" block on the product page.
	SuggestionsLimit = 3
)

// VisibleOnly filters to products whose active flag is not false. A missing
// flag counts as visible (documents created before the flag existed).
func VisibleOnly(products []productdom.Product) []productdom.Product {
	out := make([]productdom.Product, 0, len(products))
	for _, p := range products {
		if p.Visible() {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns the visible products flagged isNew, truncated to the
// first NewArrivalsLimit in stream order (backend-provided order, no sort).
func NewArrivals(products []productdom.Product) []productdom.Product {
	out := make([]productdom.Product, 0, NewArrivalsLimit)
	for _, p := range products {
		if !p.Visible() || !p.IsNew {
			continue
		}
		out = append(out, p)
		if len(out) == NewArrivalsLimit {
			break
		}
	}
	return out
}

// Gallery returns the visible, non-new products, optionally narrowed to one
// category. The sentinel category.All (or an empty string) means unfiltered.
// Gallery and NewArrivals are deliberately disjoint partitions of the
// visible catalog.
func Gallery(products []productdom.Product, categoryName string) []productdom.Product {
	all := categoryName == "" || categoryName == categorydom.All
	out := make([]productdom.Product, 0, len(products))
	for _, p := range products {
		if !p.Visible() || p.IsNew {
			continue
		}
		if !all && p.Category != categoryName {
			continue
		}
		out = append(out, p)
	}
	return out
}

// UsedCategories keeps only the categories referenced by at least one
// visible product, so the gallery never renders empty filter buttons.
func UsedCategories(categories []categorydom.Category, products []productdom.Product) []categorydom.Category {
	used := map[string]bool{}
	for _, p := range products {
		if p.Visible() {
			used[p.Category] = true
		}
	}
	out := make([]categorydom.Category, 0, len(categories))
	for _, c := range categories {
		if used[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// Suggestions picks up to SuggestionsLimit products other than currentID by
// shuffling the rest of the catalog. Reshuffled on every call, no
// reproducibility guarantee.
func Suggestions(products []productdom.Product, currentID string) []productdom.Product {
	others := make([]productdom.Product, 0, len(products))
	for _, p := range products {
		if p.ID != currentID {
			others = append(others, p)
		}
	}
	rand.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if len(others) > SuggestionsLimit {
		others = others[:SuggestionsLimit]
	}
	return others
}

// FindByID returns the product with the given id from the current list, or
// nil when missing. Absence is not an error here; the HTTP layer maps it to
// a plain 404.
func FindByID(products []productdom.Product, id string) *productdom.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
