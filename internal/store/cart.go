package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"pub-pocket/internal/model"
)

// Cart holds the order lines of the purchase being assembled and the one
// active order produced by checkout. A line is identified by its
// (name, size) pair for every operation. All accessors return snapshot
// copies; mutation goes through the methods.
type Cart struct {
	mu    sync.Mutex
	items []model.OrderItem
	order *model.OrderInfo
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Append adds the line unconditionally, without merging. Most callers want
// Add; Append exists for restoring a saved cart verbatim.
func (c *Cart) Append(item model.OrderItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Add merges the line into an existing entry with the same (name, size),
// summing the counts, or appends it if no such entry exists. This is the
// "add to cart" entry point.
func (c *Cart) Add(item model.OrderItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == item.Key() {
			c.items[i].Count += item.Count
			return
		}
	}
	c.items = append(c.items, item)
}

// Increment raises the quantity of the matching line by one. Returns false
// if no line matches.
func (c *Cart) Increment(name string, size model.Size) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Name == name && c.items[i].Size == size {
			c.items[i].Count++
			return true
		}
	}
	return false
}

// Decrement lowers the quantity of the matching line by one, but never
// below 1. At a count of 1 it is a no-op, not a removal.
func (c *Cart) Decrement(name string, size model.Size) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Name == name && c.items[i].Size == size {
			if c.items[i].Count > 1 {
				c.items[i].Count--
			}
			return true
		}
	}
	return false
}

// SetQuantity overwrites the quantity of the matching line. Any positive
// count is accepted; the per-order ceiling is a screen rule, not a cart
// rule. Counts below 1 are rejected.
func (c *Cart) SetQuantity(name string, size model.Size, count int) bool {
	if count < 1 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Name == name && c.items[i].Size == size {
			c.items[i].Count = count
			return true
		}
	}
	return false
}

// Remove deletes every line matching both name and size, leaving lines for
// the same dish in other sizes untouched.
func (c *Cart) Remove(name string, size model.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Name != name || item.Size != size {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// Items returns a snapshot copy of the cart lines.
func (c *Cart) Items() []model.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalCount returns the sum of quantities across all lines.
func (c *Cart) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Count
	}
	return total
}

// TotalPrice returns the undiscounted sum of line totals.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// SetCurrentOrder installs the backend-confirmed order record and marks it
// submitted. It replaces any previous active order.
func (c *Cart) SetCurrentOrder(info model.OrderInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info.Status = model.OrderSubmitted
	c.order = &info
}

// CurrentOrder returns a copy of the active order, or nil when there is
// none.
func (c *Cart) CurrentOrder() *model.OrderInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return nil
	}
	cp := *c.order
	return &cp
}

// MarkPaid transitions the active order to paid. Returns ErrNoActiveOrder
// when nothing has been submitted.
func (c *Cart) MarkPaid() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return model.ErrNoActiveOrder
	}
	c.order.IsPaid = true
	c.order.Status = model.OrderPaid
	return nil
}

// OrderID returns the id of the active order, or "" when there is none.
func (c *Cart) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return ""
	}
	return c.order.ID
}

// OrderPrice returns the backend-quoted price of the active order, or zero
// when there is none.
func (c *Cart) OrderPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return decimal.Zero
	}
	return c.order.Price
}

// OrderType returns the fulfilment type of the active order, or "" when
// there is none.
func (c *Cart) OrderType() model.OrderType {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return ""
	}
	return c.order.Type
}

// ClearCurrentOrder drops the active order, keeping the cart lines.
func (c *Cart) ClearCurrentOrder() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
}

// ClearAll empties the cart and drops the active order. Called after a
// successful payment, on logout, or when checkout is abandoned.
func (c *Cart) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.order = nil
}
