package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pub-pocket/internal/client"
	"pub-pocket/internal/model"
	"pub-pocket/internal/store"
)

// MaxQuantity is the per-order ceiling on portions of a single dish. It is
// a checkout rule; the cart store itself accepts any positive quantity.
const MaxQuantity = 15

// checkoutService implements CheckoutService.
type checkoutService struct {
	cart       *store.Cart
	discounts  *store.Discounts
	favourites *store.Favourites
	session    *store.Session
	backend    *client.Client
	validate   *validator.Validate
	inFlight   atomic.Bool
	logger     zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cart *store.Cart,
	discounts *store.Discounts,
	favourites *store.Favourites,
	session *store.Session,
	backend *client.Client,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cart:       cart,
		discounts:  discounts,
		favourites: favourites,
		session:    session,
		backend:    backend,
		validate:   newValidator(),
		logger:     logger.With().Str("service", "checkout").Logger(),
	}
}

// newValidator builds a validator that reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// AddToCart puts count portions of the dish into the cart.
func (s *checkoutService) AddToCart(dish model.Food, size model.Size, count int) error {
	if !size.Valid() {
		return model.ErrInvalidSize
	}
	if count < 1 {
		return model.ErrInvalidQuantity
	}

	s.cart.Add(model.OrderItem{
		Name:      dish.Title,
		Size:      size,
		Count:     count,
		UnitPrice: dish.PriceFor(size),
		Meal:      dish,
	})

	s.logger.Debug().
		Str("dish", dish.Title).
		Str("size", string(size)).
		Int("count", count).
		Msg("added to cart")
	return nil
}

// ChangeQuantity applies a quantity tap to an existing cart line.
func (s *checkoutService) ChangeQuantity(name string, size model.Size, delta int) error {
	for _, item := range s.cart.Items() {
		if item.Name != name || item.Size != size {
			continue
		}
		target := item.Count + delta
		switch {
		case target > MaxQuantity:
			s.cart.SetQuantity(name, size, MaxQuantity)
			return model.ErrQuantityLimit
		case target < 1:
			// decrement floor: keep the line at one portion
			return nil
		default:
			s.cart.SetQuantity(name, size, target)
			return nil
		}
	}
	return nil
}

// Quote prices the cart. Registered users get each favourited dish's base
// discount off that dish's lines.
func (s *checkoutService) Quote() CartQuote {
	quote := CartQuote{
		OriginalTotal:   decimal.Zero,
		DiscountedTotal: decimal.Zero,
		TotalDiscount:   decimal.Zero,
	}

	registered := s.session.Role() == model.RoleRegistered
	for _, item := range s.cart.Items() {
		line := QuotedLine{
			Item:          item,
			OriginalPrice: item.LineTotal(),
			Discount:      decimal.Zero,
		}
		if registered && s.favourites.Contains(item.Meal.ID) {
			line.Discount = line.OriginalPrice.Mul(item.Meal.DiscountBase)
		}
		line.FinalPrice = line.OriginalPrice.Sub(line.Discount)

		quote.Lines = append(quote.Lines, line)
		quote.OriginalTotal = quote.OriginalTotal.Add(line.OriginalPrice)
		quote.DiscountedTotal = quote.DiscountedTotal.Add(line.FinalPrice)
		quote.TotalDiscount = quote.TotalDiscount.Add(line.Discount)
	}
	return quote
}

// CreateOrder snapshots the cart into a backend order.
func (s *checkoutService) CreateOrder(ctx context.Context, comment string) (*model.OrderInfo, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, model.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	result, err := s.backend.CreateOrder(ctx, comment, items)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order creation failed")
		return nil, err
	}

	price, err := result.Price()
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", result.OrderID, model.ErrInvalidResponse)
	}

	info := model.OrderInfo{
		ID:            result.OrderID,
		User:          s.session.Token(),
		Time:          time.Now(),
		Comment:       comment,
		Price:         price,
		ItemsStart:    result.ItemsStart,
		ItemsEnd:      result.ItemsEnd,
		DiscountTotal: s.Quote().TotalDiscount,
	}
	s.cart.SetCurrentOrder(info)

	s.logger.Info().
		Str("order_id", info.ID).
		Str("price", price.String()).
		Msg("order created")

	current := s.cart.CurrentOrder()
	return current, nil
}

// SubmitDelivery places the cart as a delivery order.
func (s *checkoutService) SubmitDelivery(ctx context.Context, addr model.DeliveryAddress, comment string) (*model.OrderInfo, error) {
	if s.cart.TotalCount() == 0 {
		return nil, model.ErrEmptyCart
	}
	if err := s.validate.Struct(addr); err != nil {
		return nil, domainValidationError(model.ErrCodeInvalidAddress, err)
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, model.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	discountID := s.chosenDiscountID()
	result, err := s.backend.SubmitDelivery(ctx, s.cart.Items(), addr, comment, discountID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("delivery submission failed")
		return nil, err
	}

	return s.recordSubmission(result, model.OrderDelivery, comment, discountID)
}

// SubmitReservation books a table for the slot.
func (s *checkoutService) SubmitReservation(ctx context.Context, slot model.ReservationSlot, comment string) (*model.OrderInfo, error) {
	if s.cart.TotalCount() == 0 {
		return nil, model.ErrEmptyCart
	}
	if err := s.validate.Struct(slot); err != nil {
		return nil, domainValidationError(model.ErrCodeInvalidReservation, err)
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, model.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	discountID := s.chosenDiscountID()
	result, err := s.backend.SubmitReservation(ctx, s.cart.Items(), slot, comment, discountID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reservation submission failed")
		return nil, err
	}

	return s.recordSubmission(result, model.OrderReservation, comment, discountID)
}

// Pay settles the active order.
func (s *checkoutService) Pay(ctx context.Context, payOnDelivery bool) error {
	order := s.cart.CurrentOrder()
	if order == nil {
		return model.ErrNoActiveOrder
	}

	discount := s.discounts.Chosen()
	var discountID string
	if discount != nil {
		if s.discounts.Points() < discount.Cost {
			return model.ErrNotEnoughPoints
		}
		discountID = discount.ID
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return model.ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	if err := s.backend.Pay(ctx, order.ID, payOnDelivery, discountID); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("payment failed")
		return err
	}

	// Payment went through: redeem the discount, then drop every piece
	// of checkout state.
	if discount != nil {
		s.discounts.AddPoints(-discount.Cost)
	}
	s.discounts.Choose(nil)
	if err := s.cart.MarkPaid(); err != nil {
		return err
	}
	s.cart.ClearAll()

	s.logger.Info().
		Str("order_id", order.ID).
		Bool("pay_on_delivery", payOnDelivery).
		Msg("order paid")
	return nil
}

func (s *checkoutService) chosenDiscountID() string {
	if discount := s.discounts.Chosen(); discount != nil {
		return discount.ID
	}
	return ""
}

func (s *checkoutService) recordSubmission(result *client.SubmitResult, orderType model.OrderType, comment, discountID string) (*model.OrderInfo, error) {
	price, err := result.Price()
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", result.OrderID, model.ErrInvalidResponse)
	}

	info := model.OrderInfo{
		ID:           result.OrderID,
		User:         s.session.Token(),
		Time:         time.Now(),
		Comment:      comment,
		Price:        price,
		DiscountUsed: discountID,
		Type:         orderType,
	}
	s.cart.SetCurrentOrder(info)

	s.logger.Info().
		Str("order_id", info.ID).
		Str("type", string(orderType)).
		Str("price", price.String()).
		Msg("order submitted")

	return s.cart.CurrentOrder(), nil
}

// domainValidationError folds validator output into a DomainError whose
// message names the offending fields.
func domainValidationError(code string, err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, len(errs))
		for i, fieldErr := range errs {
			fields[i] = fieldErr.Field()
		}
		return model.NewDomainError(code, fmt.Sprintf("Invalid or missing: %s", strings.Join(fields, ", ")))
	}
	return model.NewDomainError(code, err.Error())
}
