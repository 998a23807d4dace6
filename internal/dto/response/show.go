package response

import (
	"time"
)

type ShowResponse struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movie_id"`
	MovieTitle   string    `json:"movie_title,omitempty"`
	ScreenNumber int       `json:"screen_number,omitempty"`
	ScreenType   string    `json:"screen_type,omitempty"`
	TheaterName  string    `json:"theater_name,omitempty"`
	TheaterCity  string    `json:"theater_city,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	BasePrice    int64     `json:"base_price"`
}

// ShowtimesByTheater groups a movie's upcoming shows per theater, the shape
// the movie detail page renders.
type ShowtimesByTheater struct {
	Theater TheaterResponse `json:"theater"`
	Shows   []ShowResponse  `json:"shows"`
}

// SeatAvailabilityResponse is the seat-selection payload: layout, pricing
// and current occupancy (confirmed bookings merged with active holds).
type SeatAvailabilityResponse struct {
	ShowID       string   `json:"show_id"`
	SeatRows     []string `json:"seat_rows"`
	SeatsPerRow  int      `json:"seats_per_row"`
	PremiumRows  []string `json:"premium_rows"`
	BasePrice    int64    `json:"base_price"`
	PremiumPrice int64    `json:"premium_price"`
	BookedSeats  []string `json:"booked_seats"`
	HeldSeats    []string `json:"held_seats"`
}

type SeatHoldResponse struct {
	HoldID    string    `json:"hold_id"`
	ShowID    string    `json:"show_id"`
	Seats     []string  `json:"seats"`
	ExpiresAt time.Time `json:"expires_at"`
}
