package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"movietix/internal/dto/request"
	"movietix/internal/usecase"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetTicket handles GET /api/tickets/{id} (protected)
func (h *BookingHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), userID.String(), ticketID)
	if err != nil {
		h.handleServiceError(w, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetMyTickets handles GET /api/me/tickets (protected)
func (h *BookingHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.GetUserTickets(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get user tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// handleServiceError maps the booking error kinds to HTTP statuses. The
// distinction matters to clients: conflicts send the user back to seat
// selection, price mismatches ask for a refresh, and only persistence
// failures are safe to retry blindly (with an idempotency key).
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrSeatConflict):
		h.log.Warn(operation+" failed - seat conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, nil)

	case errors.Is(err, usecase.ErrPriceMismatch):
		h.log.Warn(operation+" failed - price mismatch",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg, nil)

	case errors.Is(err, usecase.ErrEmptySelection),
		errors.Is(err, usecase.ErrInvalidSeat):
		h.log.Warn(operation+" failed - bad selection",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrNotAuthenticated):
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrPersistence):
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - bad request",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
