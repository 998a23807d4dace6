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

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log.With(zap.String("handler", "show")),
	}
}

// GetShow handles GET /api/shows/{id} (public)
func (h *ShowHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	show, err := h.service.GetShow(r.Context(), showID)
	if err != nil {
		h.handleServiceError(w, err, "get show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// GetSeats handles GET /api/shows/{id}/seats (public)
func (h *ShowHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	availability, err := h.service.GetSeatAvailability(r.Context(), showID)
	if err != nil {
		h.handleServiceError(w, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// HoldSeats handles POST /api/shows/{id}/holds (protected)
func (h *ShowHandler) HoldSeats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	var req request.HoldSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hold, err := h.service.HoldSeats(r.Context(), userID.String(), showID, &req)
	if err != nil {
		h.handleServiceError(w, err, "hold seats")
		return
	}

	utils.ResponseCreated(w, "success", hold)
}

// ReleaseHold handles DELETE /api/holds/{id} (protected)
func (h *ShowHandler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	holdID := chi.URLParam(r, "id")
	if holdID == "" {
		utils.ResponseBadRequest(w, "Hold ID is required", nil)
		return
	}

	if err := h.service.ReleaseHold(r.Context(), userID.String(), holdID); err != nil {
		h.handleServiceError(w, err, "release hold")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *ShowHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrSeatConflict):
		h.log.Warn(operation+" failed - seat conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInvalidSeat):
		h.log.Warn(operation+" failed - invalid seat",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrNotAuthenticated):
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
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
