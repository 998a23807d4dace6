package entity

import (
	"time"

	"github.com/google/uuid"
)

// Show is a scheduled screening. Immutable once created; BasePrice is in
// minor units (paise).
type Show struct {
	BaseSimple
	MovieID   uuid.UUID `db:"movie_id"`
	ScreenID  uuid.UUID `db:"screen_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	BasePrice int64     `db:"base_price"`
}
