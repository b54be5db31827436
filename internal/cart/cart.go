// Package cart implements the in-memory shopping cart: a mapping from
// product id to (product, quantity) with aggregate total and unit-count
// queries. A cart is owned by exactly one session and is not safe for
// concurrent use; callers that serve multiple sessions must give each
// session its own instance (see internal/session).
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

// ErrInvalidQuantity is returned by AddItem for quantities below one.
var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// Entry is one cart line: a referenced product and how many units of it.
// An entry with quantity below one never exists; it is removed instead.
type Entry struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart maps product ids to entries. Iteration order over entries is
// insertion order, kept stable so renders and tests are deterministic.
type Cart struct {
	entries map[int64]*Entry
	order   []int64
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{entries: make(map[int64]*Entry)}
}

// AddItem puts quantity units of product into the cart. If the product is
// already present its quantity is incremented, not replaced. Quantities
// below one are rejected with ErrInvalidQuantity.
//
// Stock is deliberately not checked here: the cart may exceed a product's
// physical stock. This mirrors the storefront's observed behavior and is a
// documented limitation, not a bug.
func (c *Cart) AddItem(product domain.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if entry, ok := c.entries[product.ID]; ok {
		entry.Quantity += quantity
		return nil
	}
	c.entries[product.ID] = &Entry{Product: product, Quantity: quantity}
	c.order = append(c.order, product.ID)
	return nil
}

// RemoveItem deletes the entry for productID. Removing an id that is not
// in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(productID int64) {
	if _, ok := c.entries[productID]; !ok {
		return
	}
	delete(c.entries, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity sets the entry's quantity to exactly quantity. Unlike
// AddItem this replaces rather than increments. A quantity of zero or less
// removes the entry; an unknown productID is a no-op.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	entry, ok := c.entries[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	entry.Quantity = quantity
}

// Total returns the sum of price times quantity over all entries. It is
// recomputed from the current entries on every call; nothing is cached.
// An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range c.entries {
		line := entry.Product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		total = total.Add(line)
	}
	return total
}

// ItemCount returns the total number of units in the cart, summed across
// entries. Two units of one product count as two.
func (c *Cart) ItemCount() int {
	count := 0
	for _, entry := range c.entries {
		count += entry.Quantity
	}
	return count
}

// Entries returns the cart lines in insertion order. The returned slice is
// a copy; mutating it does not affect the cart.
func (c *Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, *c.entries[id])
	}
	return entries
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.entries)
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	c.entries = make(map[int64]*Entry)
	c.order = nil
}
