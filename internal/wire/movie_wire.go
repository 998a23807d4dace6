package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - Browse catalog with genre/language/status filters
	r.Get("/api/movies", movieHandler.GetMovies)

	// POST /api/movies/mood-search - Keyword match against the now-showing catalog
	r.Post("/api/movies/mood-search", movieHandler.MoodSearch)

	// GET /api/movies/{id} - Movie details
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// GET /api/movies/{id}/showtimes - Upcoming shows grouped by theater
	r.Get("/api/movies/{id}/showtimes", movieHandler.GetShowtimes)
}
