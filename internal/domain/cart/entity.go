// internal/domain/cart/entity.go
package cart

import (
	"errors"

	productdom "lmye/internal/domain/product"
)

var (
	ErrInvalidItem = errors.New("cart: invalid item")
)

// Item represents one line in a cart: a full denormalized product copy plus
// a quantity. Uniqueness is defined by Product.ID.
type Item struct {
	Product  productdom.Product `json:"product"`
	Quantity int                `json:"quantity"`
}

// Cart holds the line items for one storefront session.
//
// Cart itself is not safe for concurrent use; the application service owning
// it serializes access. Every mutation keeps the invariant "at most one item
// per product id".
type Cart struct {
	items []Item
}

// New builds a cart from a persisted snapshot. items may be nil.
func New(items []Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Product.ID == "" || it.Quantity <= 0 {
			continue
		}
		if idx := c.indexOf(it.Product.ID); idx >= 0 {
			c.items[idx].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Add increments the quantity for product.ID, appending a new item when the
// product is not in the cart yet.
func (c *Cart) Add(p productdom.Product, quantity int) error {
	if p.ID == "" || quantity <= 0 {
		return ErrInvalidItem
	}
	if idx := c.indexOf(p.ID); idx >= 0 {
		c.items[idx].Quantity += quantity
		return nil
	}
	c.items = append(c.items, Item{Product: p, Quantity: quantity})
	return nil
}

// SetQuantity sets the quantity for product.ID unconditionally, creating the
// item when absent. The product detail page always knows the desired final
// quantity, so this is a set, not a delta.
func (c *Cart) SetQuantity(p productdom.Product, quantity int) error {
	if p.ID == "" {
		return ErrInvalidItem
	}
	if idx := c.indexOf(p.ID); idx >= 0 {
		c.items[idx].Quantity = quantity
		return nil
	}
	c.items = append(c.items, Item{Product: p, Quantity: quantity})
	return nil
}

// UpdateQuantity adds delta to the existing quantity. A resulting quantity
// <= 0 removes the entry entirely; an unknown product id is a no-op.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.items[idx].Quantity += delta
	if c.items[idx].Quantity <= 0 {
		c.items = removeIndex(c.items, idx)
	}
}

// RemoveItem deletes the entry for productID if present.
func (c *Cart) RemoveItem(productID string) {
	if idx := c.indexOf(productID); idx >= 0 {
		c.items = removeIndex(c.items, idx)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns the current line items. Callers must treat the slice as a
// read-only snapshot.
func (c *Cart) Items() []Item {
	if c.items == nil {
		return []Item{}
	}
	return c.items
}

// ItemQuantity returns the stored quantity for productID, or 1 when the
// product is not in the cart. The default pre-fills the "add N" control on
// the product page, so it must be a usable positive quantity.
func (c *Cart) ItemQuantity(productID string) int {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.items[idx].Quantity
	}
	return 1
}

// Count is the total item count (sum of quantities across items).
func (c *Cart) Count() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// ----------------------------
// Helpers
// ----------------------------

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func removeIndex(items []Item, idx int) []Item {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}
