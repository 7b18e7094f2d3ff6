package model

import "github.com/shopspring/decimal"

// Discount is a named percentage-off offer redeemable for loyalty points.
// Effectiveness is a fraction, e.g. 0.20 for 20% off. The wire field keeps
// the backend's historical spelling.
type Discount struct {
	ID            string          `json:"id"`
	Effectiveness decimal.Decimal `json:"effectivness"`
	Cost          int             `json:"cost"`
}

// AppliedTo returns the amount taken off the given total by this discount.
func (d Discount) AppliedTo(total decimal.Decimal) decimal.Decimal {
	return total.Mul(d.Effectiveness)
}

// UserRole is the role the backend assigned at login.
type UserRole string

const (
	RoleAnonymous  UserRole = "anonymous"
	RoleRegistered UserRole = "registered"
	RoleAdmin      UserRole = "admin"
)
