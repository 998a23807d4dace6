package entity

import (
	"time"
)

type Movie struct {
	Base
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	DurationMin  int       `db:"duration_min"`
	Genres       []string  `db:"genres"`
	PosterURL    string    `db:"poster_url"`
	BackdropURL  string    `db:"backdrop_url"`
	ReleaseDate  time.Time `db:"release_date"`
	Rating       float64   `db:"rating"` // aggregate audience rating, 0-10
	Language     string    `db:"language"`
	IsNowShowing bool      `db:"is_now_showing"`
	IsComingSoon bool      `db:"is_coming_soon"`
	TrailerURL   string    `db:"trailer_url"`
}
