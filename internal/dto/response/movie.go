package response

import (
	"time"

	"movietix/internal/data/entity"
)

type MovieResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DurationMin  int       `json:"duration_min"`
	Genres       []string  `json:"genres"`
	PosterURL    string    `json:"poster_url"`
	BackdropURL  string    `json:"backdrop_url,omitempty"`
	ReleaseDate  string    `json:"release_date"`
	Rating       float64   `json:"rating"`
	Language     string    `json:"language"`
	IsNowShowing bool      `json:"is_now_showing"`
	IsComingSoon bool      `json:"is_coming_soon"`
	TrailerURL   string    `json:"trailer_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:           movie.ID.String(),
		Title:        movie.Title,
		Description:  movie.Description,
		DurationMin:  movie.DurationMin,
		Genres:       movie.Genres,
		PosterURL:    movie.PosterURL,
		BackdropURL:  movie.BackdropURL,
		ReleaseDate:  movie.ReleaseDate.Format("2006-01-02"),
		Rating:       movie.Rating,
		Language:     movie.Language,
		IsNowShowing: movie.IsNowShowing,
		IsComingSoon: movie.IsComingSoon,
		TrailerURL:   movie.TrailerURL,
		CreatedAt:    movie.CreatedAt,
	}
}

// MoodMatchResponse is a mood-search hit with its keyword match score.
type MoodMatchResponse struct {
	MovieResponse
	MatchScore int `json:"match_score"`
}
