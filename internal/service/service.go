// Package service orchestrates the stores and the backend client into the
// operations the screens call: assembling and submitting an order, paying,
// keeping favourites in sync, and managing the login session.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"pub-pocket/internal/client"
	"pub-pocket/internal/model"
)

// CheckoutService covers the cart, delivery, reservation and payment flow.
type CheckoutService interface {
	// AddToCart puts count portions of the dish in the given size into
	// the cart, merging with an existing line for the same dish and size.
	AddToCart(dish model.Food, size model.Size, count int) error

	// ChangeQuantity applies a +1/-1 tap to a cart line. It enforces the
	// per-order ceiling of MaxQuantity portions (clamping and returning
	// ErrQuantityLimit) and never drops a line below one portion.
	ChangeQuantity(name string, size model.Size, delta int) error

	// Quote prices the current cart, applying the per-dish favourite
	// discount registered users get.
	Quote() CartQuote

	// CreateOrder snapshots the cart into a backend order and records the
	// confirmation as the active order.
	CreateOrder(ctx context.Context, comment string) (*model.OrderInfo, error)

	// SubmitDelivery places the cart as a delivery order to the address.
	SubmitDelivery(ctx context.Context, addr model.DeliveryAddress, comment string) (*model.OrderInfo, error)

	// SubmitReservation books a table for the slot, with the cart as a
	// pre-order.
	SubmitReservation(ctx context.Context, slot model.ReservationSlot, comment string) (*model.OrderInfo, error)

	// Pay settles the active order. On success the chosen discount is
	// redeemed and cart and order state are cleared.
	Pay(ctx context.Context, payOnDelivery bool) error
}

// CartQuote is the priced view of the cart a checkout screen renders.
type CartQuote struct {
	Lines           []QuotedLine
	OriginalTotal   decimal.Decimal
	DiscountedTotal decimal.Decimal
	TotalDiscount   decimal.Decimal
}

// QuotedLine is one cart line with its favourite discount applied.
type QuotedLine struct {
	Item          model.OrderItem
	OriginalPrice decimal.Decimal
	Discount      decimal.Decimal
	FinalPrice    decimal.Decimal
}

// FavouritesService keeps the local favourite list and the backend in
// step.
type FavouritesService interface {
	// PullOnce fetches the favourites list at most once per session
	// (offline sessions read the local cache instead).
	PullOnce(ctx context.Context) error

	// Add favourites a dish, optimistically reconciling a 409 from the
	// backend as "already favourited".
	Add(ctx context.Context, dish model.Food) error

	// Remove unfavourites a dish, reconciling a 404 as "already removed".
	Remove(ctx context.Context, dish model.Food) error
}

// SessionService handles login, logout and session restore.
type SessionService interface {
	// Login authenticates; a transport failure flips the session into
	// offline mode and hydrates favourites from the local cache.
	Login(ctx context.Context, creds client.Credentials) error

	// Register creates an account and logs it in.
	Register(ctx context.Context, creds client.Credentials) error

	// Anonymous starts a guest session.
	Anonymous(ctx context.Context) error

	// Logout resets session, cart and discount selection.
	Logout()

	// SavedLogin returns the credentials persisted by the last successful
	// login, or cache.ErrNotFound.
	SavedLogin() (client.Credentials, error)
}
