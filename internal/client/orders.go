package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pub-pocket/internal/model"
)

// The backend wraps every order-related request body in an outer "body"
// object and answers with loosely named fields ("order id", money strings).
// These types pin that wire format down in one place.

type orderItemPayload struct {
	Name  string `json:"name"`
	Size  string `json:"size"`
	Count int    `json:"count"`
}

type addressPayload struct {
	PostalCode string `json:"postal code"`
	Street     string `json:"street"`
	Number     int    `json:"number"`
}

type datetimePayload struct {
	Date  string `json:"date"`  // DD.MM.YYYY
	From  string `json:"from"`  // HH:MM
	Until string `json:"until"` // HH:MM
}

type submitPayload struct {
	Items        []orderItemPayload `json:"items"`
	Address      *addressPayload    `json:"address,omitempty"`
	People       int                `json:"people,omitempty"`
	Datetime     *datetimePayload   `json:"datetime,omitempty"`
	Comment      string             `json:"comment,omitempty"`
	DiscountUsed string             `json:"discount used,omitempty"`
}

type wrapped[T any] struct {
	Body T `json:"body"`
}

// CreateOrderResult is the backend's confirmation of POST /order.
type CreateOrderResult struct {
	OrderID    string `json:"order_id"`
	TotalPrice string `json:"total_price"`
	ItemsStart int64  `json:"items_start"`
	ItemsEnd   int64  `json:"items_end"`
}

// Price parses the money string the backend quotes for the order.
func (r CreateOrderResult) Price() (decimal.Decimal, error) {
	return model.ParseMoney(r.TotalPrice)
}

// SubmitResult is the backend's confirmation of a delivery or reservation
// submission.
type SubmitResult struct {
	Message  string `json:"message"`
	RawPrice string `json:"price"`
	OrderID  string `json:"order id"`
}

// Price parses the quoted money string, e.g. "12.50 €".
func (r SubmitResult) Price() (decimal.Decimal, error) {
	return model.ParseMoney(r.RawPrice)
}

func toItemPayloads(items []model.OrderItem) []orderItemPayload {
	out := make([]orderItemPayload, len(items))
	for i, item := range items {
		out[i] = orderItemPayload{
			Name:  item.Name,
			Size:  string(item.Size),
			Count: item.Count,
		}
	}
	return out
}

// CreateOrder snapshots the cart lines into a backend order.
func (c *Client) CreateOrder(ctx context.Context, comment string, items []model.OrderItem) (*CreateOrderResult, error) {
	payload := wrapped[struct {
		Comment string             `json:"comment"`
		Items   []orderItemPayload `json:"items"`
	}]{}
	payload.Body.Comment = comment
	payload.Body.Items = toItemPayloads(items)

	var result CreateOrderResult
	err := c.do(ctx, http.MethodPost, "/order", c.tokenQuery(), payload, &result, uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitDelivery places a delivery order for the given cart snapshot.
func (c *Client) SubmitDelivery(ctx context.Context, items []model.OrderItem, addr model.DeliveryAddress, comment, discountID string) (*SubmitResult, error) {
	payload := wrapped[submitPayload]{Body: submitPayload{
		Items: toItemPayloads(items),
		Address: &addressPayload{
			PostalCode: addr.PostalCode,
			Street:     addr.Street,
			Number:     addr.Number,
		},
		Comment:      comment,
		DiscountUsed: discountID,
	}}
	return c.submit(ctx, "/delivery", payload)
}

// SubmitReservation books a table, optionally with pre-ordered items.
func (c *Client) SubmitReservation(ctx context.Context, items []model.OrderItem, slot model.ReservationSlot, comment, discountID string) (*SubmitResult, error) {
	payload := wrapped[submitPayload]{Body: submitPayload{
		Items:  toItemPayloads(items),
		People: slot.Guests,
		Datetime: &datetimePayload{
			Date:  slot.Date.Format("02.01.2006"),
			From:  slot.From.Format("15:04"),
			Until: slot.Until.Format("15:04"),
		},
		Comment:      comment,
		DiscountUsed: discountID,
	}}
	return c.submit(ctx, "/reservation", payload)
}

func (c *Client) submit(ctx context.Context, path string, payload wrapped[submitPayload]) (*SubmitResult, error) {
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, path, c.tokenQuery(), payload, &result, uuid.NewString()); err != nil {
		return nil, err
	}
	return &result, nil
}

// Pay settles the order. payOnDelivery selects cash on the doorstep over
// card; discountID names the redeemed discount and may be empty.
func (c *Client) Pay(ctx context.Context, orderID string, payOnDelivery bool, discountID string) error {
	query := c.tokenQuery()
	query.Set("order_id", orderID)
	query.Set("pay_on_delivery", strconv.FormatBool(payOnDelivery))

	payload := wrapped[struct {
		DiscountUsed *string `json:"discount_used"`
	}]{}
	if discountID != "" {
		payload.Body.DiscountUsed = &discountID
	}

	return c.do(ctx, http.MethodPost, "/pay", query, payload, nil, uuid.NewString())
}
