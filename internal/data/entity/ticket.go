package entity

import (
	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// Ticket is the durable record of a committed booking and the sole source
// of truth for seat occupancy. Seats live in ticket_seats rows whose
// (show_id, seat_label) uniqueness keeps confirmed seat sets disjoint.
type Ticket struct {
	BaseSimple
	BookingCode    string       `db:"booking_code"`
	UserID         uuid.UUID    `db:"user_id"`
	ShowID         uuid.UUID    `db:"show_id"`
	Seats          []string     `db:"-"` // loaded from ticket_seats
	TotalPrice     int64        `db:"total_price"`
	Status         TicketStatus `db:"status"`
	IdempotencyKey *string      `db:"idempotency_key"`
}
