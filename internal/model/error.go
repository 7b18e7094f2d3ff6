package model

import "fmt"

// Standard error codes surfaced to the UI layer
const (
	ErrCodeNetworkFailure     = "NETWORK_FAILURE"
	ErrCodeInvalidResponse    = "INVALID_RESPONSE"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidAddress     = "INVALID_ADDRESS"
	ErrCodeInvalidReservation = "INVALID_RESERVATION"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeQuantityLimit      = "QUANTITY_LIMIT"
	ErrCodeInvalidSize        = "INVALID_SIZE"
	ErrCodeNoActiveOrder      = "NO_ACTIVE_ORDER"
	ErrCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	ErrCodeNotEnoughPoints    = "NOT_ENOUGH_POINTS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
)

// DomainError carries a stable code alongside a user-displayable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNetworkFailure     = NewDomainError(ErrCodeNetworkFailure, "Could not reach the server")
	ErrInvalidResponse    = NewDomainError(ErrCodeInvalidResponse, "Server returned invalid data")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Shopping cart is empty")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrQuantityLimit      = NewDomainError(ErrCodeQuantityLimit, "At most 15 portions of a dish per order")
	ErrInvalidSize        = NewDomainError(ErrCodeInvalidSize, "Unknown portion size")
	ErrNoActiveOrder      = NewDomainError(ErrCodeNoActiveOrder, "No order is awaiting payment")
	ErrSubmissionInFlight = NewDomainError(ErrCodeSubmissionInFlight, "A submission is already in progress")
	ErrNotEnoughPoints    = NewDomainError(ErrCodeNotEnoughPoints, "Not enough loyalty points for this discount")
)

// BackendError is a failure the backend reported in its response body.
// The 404/409 favourite cases are inspected by status code before being
// treated as hard errors.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected the request (status %d)", e.StatusCode)
	}
	return e.Message
}
