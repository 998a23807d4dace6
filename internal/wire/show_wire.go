package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/middleware"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShow(
	r chi.Router,
	showHandler *adaptor.ShowHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/shows/{id} - Show details
	r.Get("/api/shows/{id}", showHandler.GetShow)

	// GET /api/shows/{id}/seats - Seat layout with booked and held seats
	r.Get("/api/shows/{id}/seats", showHandler.GetSeats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/shows/{id}/holds - Place a TTL-bound hold on seats
		r.Post("/api/shows/{id}/holds", showHandler.HoldSeats)

		// DELETE /api/holds/{id} - Release an owned hold early
		r.Delete("/api/holds/{id}", showHandler.ReleaseHold)
	})
}
