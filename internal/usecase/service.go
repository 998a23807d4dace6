package usecase

import (
	"movietix/internal/data/repository"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

// Service aggregates every use case so wiring can pass one value around.
type Service struct {
	Catalog CatalogService
	Show    ShowService
	Booking BookingService
	Review  ReviewService
	Profile ProfileService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Catalog: NewCatalogService(repo, log),
		Show:    NewShowService(repo, config, log),
		Booking: NewBookingService(repo, log),
		Review:  NewReviewService(repo, log),
		Profile: NewProfileService(repo, log),
	}
}
