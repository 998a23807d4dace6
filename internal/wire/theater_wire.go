package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTheater(
	r chi.Router,
	theaterHandler *adaptor.TheaterHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/theaters - List theaters, optional ?city= filter
	r.Get("/api/theaters", theaterHandler.GetTheaters)

	// GET /api/theaters/{id} - Theater details
	r.Get("/api/theaters/{id}", theaterHandler.GetTheaterByID)
}
