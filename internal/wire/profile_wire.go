package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/middleware"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProfile(
	r chi.Router,
	profileHandler *adaptor.ProfileHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/me - Signed-in user's profile
		r.Get("/api/me", profileHandler.GetProfile)

		// PUT /api/me - Update username, full name, avatar
		r.Put("/api/me", profileHandler.UpdateProfile)
	})
}
