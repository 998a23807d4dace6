package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/middleware"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES (optional auth) ====================
	// GET /api/movies/{id}/reviews - Reviews with spoiler gating; a valid
	// bearer token upgrades verified watchers to full spoiler bodies
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthSession(repo.Session, log))

		r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/movies/{id}/reviews - Publish a review
		r.Post("/api/movies/{id}/reviews", reviewHandler.CreateReview)
	})
}
