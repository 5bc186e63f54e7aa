// Package cart holds a session-scoped selection of products awaiting
// checkout. Items carry copies of the product taken at add time, so later
// catalog price or stock changes never alter a line already in the cart.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"ShopCart/internal/catalog"
)

type Item struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
}

// Cart is safe for concurrent use; the HTTP surface can hit one user's cart
// from parallel requests.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add appends a line for qty units of p. It does not touch inventory: the
// caller commits stock before the line is created. Duplicate products are
// kept as separate lines. Non-positive quantities are rejected.
func (c *Cart) Add(p catalog.Product, qty int) bool {
	if qty <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Item{Product: p, Qty: qty})
	return true
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

// Items returns a snapshot copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}
