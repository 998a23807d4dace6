package response

import (
	"time"

	"movietix/internal/data/entity"
)

type TicketResponse struct {
	ID          string              `json:"id"`
	BookingCode string              `json:"booking_code"`
	ShowID      string              `json:"show_id"`
	MovieTitle  string              `json:"movie_title,omitempty"`
	TheaterName string              `json:"theater_name,omitempty"`
	ScreenType  string              `json:"screen_type,omitempty"`
	ShowTime    time.Time           `json:"show_time"`
	Seats       []string            `json:"seats"`
	TotalPrice  int64               `json:"total_price"`
	Status      entity.TicketStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}
