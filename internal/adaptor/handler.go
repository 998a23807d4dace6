package adaptor

import (
	"movietix/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie   *MovieHandler
	Theater *TheaterHandler
	Show    *ShowHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	Profile *ProfileHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:   NewMovieHandler(service.Catalog, log),
		Theater: NewTheaterHandler(service.Catalog, log),
		Show:    NewShowHandler(service.Show, log),
		Booking: NewBookingHandler(service.Booking, log),
		Review:  NewReviewHandler(service.Review, log),
		Profile: NewProfileHandler(service.Profile, log),
	}
}
