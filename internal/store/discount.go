package store

import (
	"sync"

	"pub-pocket/internal/model"
)

// Discounts holds the catalog of offers the backend advertised, the single
// discount the user has chosen for the next payment, and the loyalty point
// balance. At most one discount is chosen at a time; a chosen discount
// stays chosen across screens until payment succeeds or the user deselects
// it, regardless of later cart changes.
type Discounts struct {
	mu      sync.Mutex
	catalog []model.Discount
	chosen  *model.Discount
	points  int
}

// NewDiscounts creates an empty discount store.
func NewDiscounts() *Discounts {
	return &Discounts{}
}

// SetCatalog replaces the catalog of available discounts.
func (d *Discounts) SetCatalog(catalog []model.Discount) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.catalog = make([]model.Discount, len(catalog))
	copy(d.catalog, catalog)
}

// Catalog returns a snapshot copy of the available discounts.
func (d *Discounts) Catalog() []model.Discount {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.Discount, len(d.catalog))
	copy(out, d.catalog)
	return out
}

// Choose selects the discount to apply on the next payment. Passing nil
// clears the selection.
func (d *Discounts) Choose(discount *model.Discount) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if discount == nil {
		d.chosen = nil
		return
	}
	cp := *discount
	d.chosen = &cp
}

// Chosen returns a copy of the selected discount, or nil when none is
// selected.
func (d *Discounts) Chosen() *model.Discount {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.chosen == nil {
		return nil
	}
	cp := *d.chosen
	return &cp
}

// AddPoints adjusts the loyalty point balance by a signed delta (earned
// minus redeemed). The store applies no floor; callers must not let the
// balance go negative.
func (d *Discounts) AddPoints(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.points += delta
}

// Points returns the current loyalty point balance.
func (d *Discounts) Points() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.points
}
