package model

import "time"

// DeliveryAddress is the address a delivery order ships to. All fields are
// required before submission; the house number must be a positive integer.
type DeliveryAddress struct {
	Street     string `json:"street" validate:"required"`
	Number     int    `json:"number" validate:"required,gt=0"`
	PostalCode string `json:"postal code" validate:"required"`
}

// ReservationSlot is a table reservation request: a day, a time window and
// a guest count. The pub seats at most eight guests per reservation.
type ReservationSlot struct {
	Date   time.Time `validate:"required"`
	From   time.Time `validate:"required"`
	Until  time.Time `validate:"required,gtfield=From"`
	Guests int       `validate:"min=1,max=8"`
}
