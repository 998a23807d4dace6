package usecase

import (
	"errors"

	"movietix/internal/seating"
)

// Booking error taxonomy. Validation errors are detected before any mutation
// and never retried; ErrSeatConflict sends the user back to seat selection;
// ErrPersistence is the only class a client may retry automatically, and only
// with an idempotency key.
var (
	ErrEmptySelection   = errors.New("no seats selected")
	ErrInvalidSeat      = seating.ErrInvalidSeat
	ErrSeatConflict     = errors.New("one or more seats are no longer available")
	ErrPriceMismatch    = errors.New("price has changed, refresh and try again")
	ErrPersistence      = errors.New("booking could not be saved, please try again")
	ErrNotAuthenticated = errors.New("authentication required")
)
