package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/usecase"
	"movietix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.CatalogService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies (public)
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.MovieFilter{
		Genre:    query.Get("genre"),
		Language: query.Get("language"),
	}
	switch query.Get("status") {
	case "now_showing":
		yes := true
		filter.IsNowShowing = &yes
	case "coming_soon":
		yes := true
		filter.IsComingSoon = &yes
	}

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	movies, err := h.service.GetMovies(r.Context(), filter, req)
	if err != nil {
		h.handleServiceError(w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id} (public)
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// GetShowtimes handles GET /api/movies/{id}/showtimes (public)
func (h *MovieHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	showtimes, err := h.service.GetMovieShowtimes(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// MoodSearch handles POST /api/movies/mood-search (public)
func (h *MovieHandler) MoodSearch(w http.ResponseWriter, r *http.Request) {
	var req request.MoodSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	matches, err := h.service.MoodSearch(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "mood search")
		return
	}

	utils.ResponseSuccess(w, "success", matches)
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
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
