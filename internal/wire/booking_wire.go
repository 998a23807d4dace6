package wire

import (
	"movietix/internal/adaptor"
	"movietix/internal/data/repository"
	"movietix/pkg/middleware"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Commit a booking for selected seats
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/me/tickets - Booking history for the signed-in user
		r.Get("/api/me/tickets", bookingHandler.GetMyTickets)

		// GET /api/tickets/{id} - Single ticket, owner only
		r.Get("/api/tickets/{id}", bookingHandler.GetTicket)
	})
}
