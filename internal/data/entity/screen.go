package entity

import "github.com/google/uuid"

// Screen carries its seat geometry; individual seats are never persisted,
// occupancy per show is derived from ticket_seats.
type Screen struct {
	BaseSimple
	TheaterID    uuid.UUID `db:"theater_id"`
	ScreenNumber int       `db:"screen_number"`
	ScreenType   string    `db:"screen_type"` // Standard, IMAX, 4DX, ...
	SeatRows     []string  `db:"seat_rows"`
	SeatsPerRow  int       `db:"seats_per_row"`
	PremiumRows  []string  `db:"premium_rows"`
}

func (s *Screen) Capacity() int {
	return len(s.SeatRows) * s.SeatsPerRow
}
