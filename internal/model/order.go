package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one cart line: a dish in a given size with a quantity.
// Two lines are the same entry iff both Name and Size match.
type OrderItem struct {
	Name      string          `json:"name"`
	Size      Size            `json:"size"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"price"`
	Meal      Food            `json:"meal"`
}

// ItemKey identifies a cart line.
type ItemKey struct {
	Name string
	Size Size
}

// Key returns the identity key of the line.
func (i OrderItem) Key() ItemKey {
	return ItemKey{Name: i.Name, Size: i.Size}
}

// LineTotal returns unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Count)))
}

// OrderStatus tracks the lifecycle of the active order:
// draft (cart only) -> submitted (backend confirmed) -> paid.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderSubmitted OrderStatus = "submitted"
	OrderPaid      OrderStatus = "paid"
)

// OrderType distinguishes how a submitted order is fulfilled.
type OrderType string

const (
	OrderDelivery    OrderType = "delivery"
	OrderReservation OrderType = "reservation"
)

// OrderInfo is the authoritative record of a submitted order. It is only
// ever built from a backend confirmation, never fabricated locally.
type OrderInfo struct {
	ID            string          `json:"id"`
	User          string          `json:"user"`
	Time          time.Time       `json:"time"`
	Comment       string          `json:"comment"`
	Price         decimal.Decimal `json:"price"`
	DiscountUsed  string          `json:"discount_used"`
	ItemsStart    int64           `json:"items_start"`
	ItemsEnd      int64           `json:"items_end"`
	IsPaid        bool            `json:"is_paid"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Type          OrderType       `json:"type"`
	Status        OrderStatus     `json:"status"`
}

// ItemCount returns the number of item rows the backend recorded for
// this order.
func (o OrderInfo) ItemCount() int64 {
	return o.ItemsEnd - o.ItemsStart
}
