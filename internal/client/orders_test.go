package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pub-pocket/internal/model"
)

func cartLines(t *testing.T) []model.OrderItem {
	t.Helper()
	return []model.OrderItem{
		{Name: "Guláš", Size: model.SizeMedium, Count: 2, UnitPrice: mustDecimal(t, "7.90")},
		{Name: "Pivo", Size: model.SizeLarge, Count: 3, UnitPrice: mustDecimal(t, "2.20")},
	}
}

func TestClient_CreateOrder(t *testing.T) {
	var captured map[string]any
	var idemKey string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "tok-test", r.URL.Query().Get("token"))
		idemKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"order_id": "ORD-7", "total_price": "22.40 €", "items_start": 10, "items_end": 12}`))
	}))

	result, err := c.CreateOrder(context.Background(), "no onions", cartLines(t))
	require.NoError(t, err)

	assert.Equal(t, "ORD-7", result.OrderID)
	assert.Equal(t, int64(10), result.ItemsStart)
	assert.Equal(t, int64(12), result.ItemsEnd)

	price, err := result.Price()
	require.NoError(t, err)
	assert.True(t, price.Equal(mustDecimal(t, "22.40")))

	assert.NotEmpty(t, idemKey)

	// the request body is wrapped in an outer "body" object
	body, ok := captured["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "no onions", body["comment"])
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Guláš", first["name"])
	assert.Equal(t, "medium", first["size"])
	assert.Equal(t, float64(2), first["count"])
}

func TestClient_CreateOrder_FreshIdempotencyKeyPerCall(t *testing.T) {
	keys := map[string]bool{}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys[r.Header.Get("Idempotency-Key")] = true
		w.Write([]byte(`{"order_id": "ORD-1", "total_price": "1.00"}`))
	}))

	for i := 0; i < 3; i++ {
		_, err := c.CreateOrder(context.Background(), "", cartLines(t))
		require.NoError(t, err)
	}
	assert.Len(t, keys, 3)
}

func TestClient_SubmitDelivery(t *testing.T) {
	var captured map[string]any

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/delivery", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"message": "ok", "price": "25.40 €", "order id": "DEL-42"}`))
	}))

	addr := model.DeliveryAddress{Street: "Hlavná", Number: 12, PostalCode: "040 01"}
	result, err := c.SubmitDelivery(context.Background(), cartLines(t), addr, "ring twice", "d-20")
	require.NoError(t, err)

	assert.Equal(t, "DEL-42", result.OrderID)
	price, err := result.Price()
	require.NoError(t, err)
	assert.True(t, price.Equal(mustDecimal(t, "25.40")))

	body := captured["body"].(map[string]any)
	address := body["address"].(map[string]any)
	assert.Equal(t, "Hlavná", address["street"])
	assert.Equal(t, float64(12), address["number"])
	assert.Equal(t, "040 01", address["postal code"])
	assert.Equal(t, "ring twice", body["comment"])
	assert.Equal(t, "d-20", body["discount used"])
	_, hasDatetime := body["datetime"]
	assert.False(t, hasDatetime)
}

func TestClient_SubmitReservation(t *testing.T) {
	var captured map[string]any

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"message": "ok", "price": "8.00 €", "order id": "RES-9"}`))
	}))

	slot := model.ReservationSlot{
		Date:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		From:   time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC),
		Until:  time.Date(2026, 9, 12, 21, 0, 0, 0, time.UTC),
		Guests: 4,
	}
	result, err := c.SubmitReservation(context.Background(), nil, slot, "", "")
	require.NoError(t, err)
	assert.Equal(t, "RES-9", result.OrderID)

	body := captured["body"].(map[string]any)
	datetime := body["datetime"].(map[string]any)
	assert.Equal(t, "12.09.2026", datetime["date"])
	assert.Equal(t, "18:30", datetime["from"])
	assert.Equal(t, "21:00", datetime["until"])
	assert.Equal(t, float64(4), body["people"])
	_, hasAddress := body["address"]
	assert.False(t, hasAddress)
	_, hasDiscount := body["discount used"]
	assert.False(t, hasDiscount)
}

func TestClient_Pay(t *testing.T) {
	tests := []struct {
		name          string
		payOnDelivery bool
		discountID    string
	}{
		{name: "card with discount", payOnDelivery: false, discountID: "d-20"},
		{name: "cash without discount", payOnDelivery: true, discountID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured map[string]any

			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/pay", r.URL.Path)
				assert.Equal(t, "DEL-42", r.URL.Query().Get("order_id"))
				if tt.payOnDelivery {
					assert.Equal(t, "true", r.URL.Query().Get("pay_on_delivery"))
				} else {
					assert.Equal(t, "false", r.URL.Query().Get("pay_on_delivery"))
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
				w.Write([]byte(`{"message": "paid"}`))
			}))

			err := c.Pay(context.Background(), "DEL-42", tt.payOnDelivery, tt.discountID)
			require.NoError(t, err)

			body := captured["body"].(map[string]any)
			if tt.discountID == "" {
				assert.Nil(t, body["discount_used"])
			} else {
				assert.Equal(t, tt.discountID, body["discount_used"])
			}
		})
	}
}
