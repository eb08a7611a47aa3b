package booking

import "errors"

var (
	// ErrBookingNotFound signals that the booking could not be located.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidBooking indicates the booking input failed validation.
	ErrInvalidBooking = errors.New("invalid booking")
)
