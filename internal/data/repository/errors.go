package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-level outcomes the booking service has to tell apart. Each one maps
// to a specific unique constraint so a 23505 can be classified.
var (
	ErrSeatTaken               = errors.New("seat already booked for this show")
	ErrDuplicateBookingCode    = errors.New("booking code already exists")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
)

const (
	uniqueViolationCode = "23505"

	seatUniqueConstraint     = "ticket_seats_show_id_seat_label_key"
	bookingCodeConstraint    = "tickets_booking_code_key"
	idempotencyKeyConstraint = "tickets_idempotency_key_key"
)

// classifyUniqueViolation maps a unique-violation to the domain error for the
// constraint that fired, or returns the original error untouched.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	switch pgErr.ConstraintName {
	case seatUniqueConstraint:
		return ErrSeatTaken
	case bookingCodeConstraint:
		return ErrDuplicateBookingCode
	case idempotencyKeyConstraint:
		return ErrDuplicateIdempotencyKey
	default:
		return err
	}
}
