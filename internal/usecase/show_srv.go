package usecase

import (
	"context"
	"fmt"
	"time"

	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/dto/response"
	"movietix/internal/seating"
	"movietix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowService interface {
	GetShow(ctx context.Context, showID string) (*response.ShowResponse, error)

	// GetSeatAvailability is the seat-selection read model: layout, prices,
	// booked seats from confirmed tickets and currently held seats. It may
	// be stale by the time the user submits; CreateBooking re-checks.
	GetSeatAvailability(ctx context.Context, showID string) (*response.SeatAvailabilityResponse, error)

	HoldSeats(ctx context.Context, userID, showID string, req *request.HoldSeatsRequest) (*response.SeatHoldResponse, error)
	ReleaseHold(ctx context.Context, userID, holdID string) error
}

type showService struct {
	repo    *repository.Repository
	holdTTL time.Duration
	log     *zap.Logger
}

func NewShowService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ShowService {
	holdTTL := time.Duration(config.Booking.HoldTTLMinutes) * time.Minute
	if holdTTL <= 0 {
		holdTTL = 10 * time.Minute
	}

	return &showService{
		repo:    repo,
		holdTTL: holdTTL,
		log:     log.With(zap.String("service", "show")),
	}
}

func (s *showService) GetShow(ctx context.Context, showID string) (*response.ShowResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil || show == nil {
		return nil, fmt.Errorf("show %s not found", showID)
	}

	resp := &response.ShowResponse{
		ID:        show.ID.String(),
		MovieID:   show.MovieID.String(),
		StartTime: show.StartTime,
		EndTime:   show.EndTime,
		BasePrice: show.BasePrice,
	}

	movie, _ := s.repo.Movie.FindByID(ctx, show.MovieID)
	if movie != nil {
		resp.MovieTitle = movie.Title
	}

	screen, _ := s.repo.Screen.FindByID(ctx, show.ScreenID)
	if screen != nil {
		resp.ScreenNumber = screen.ScreenNumber
		resp.ScreenType = screen.ScreenType

		theater, _ := s.repo.Theater.FindByID(ctx, screen.TheaterID)
		if theater != nil {
			resp.TheaterName = theater.Name
			resp.TheaterCity = theater.City
		}
	}

	return resp, nil
}

func (s *showService) GetSeatAvailability(ctx context.Context, showID string) (*response.SeatAvailabilityResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil || show == nil {
		return nil, fmt.Errorf("show %s not found", showID)
	}

	screen, err := s.repo.Screen.FindByID(ctx, show.ScreenID)
	if err != nil || screen == nil {
		return nil, fmt.Errorf("screen not found for show %s", showID)
	}

	booked, err := s.repo.Ticket.FindBookedSeatsByShow(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booked seats: %w", err)
	}

	held, err := s.repo.SeatHold.HeldSeats(ctx, id)
	if err != nil {
		// availability must still render when the hold cache is down
		s.log.Warn("Failed to list held seats", zap.Error(err))
		held = nil
	}

	if booked == nil {
		booked = []string{}
	}
	if held == nil {
		held = []string{}
	}

	return &response.SeatAvailabilityResponse{
		ShowID:       show.ID.String(),
		SeatRows:     screen.SeatRows,
		SeatsPerRow:  screen.SeatsPerRow,
		PremiumRows:  screen.PremiumRows,
		BasePrice:    show.BasePrice,
		PremiumPrice: seating.SeatPrice(show.BasePrice, seating.TierPremium),
		BookedSeats:  booked,
		HeldSeats:    held,
	}, nil
}

func (s *showService) HoldSeats(ctx context.Context, userID, showID string, req *request.HoldSeatsRequest) (*response.SeatHoldResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil || show == nil {
		return nil, fmt.Errorf("show %s not found", showID)
	}

	screen, err := s.repo.Screen.FindByID(ctx, show.ScreenID)
	if err != nil || screen == nil {
		return nil, fmt.Errorf("screen not found for show %s", showID)
	}

	seatMap := seating.NewSeatMap(screen.SeatRows, screen.SeatsPerRow, screen.PremiumRows)
	seats, err := seatMap.ValidateSelection(req.Seats)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}

	// sold seats can't be held
	booked, err := s.repo.Ticket.FindBookedSeatsByShow(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booked seats: %w", err)
	}
	if conflict := intersect(labels, booked); len(conflict) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrSeatConflict, conflict)
	}

	hold, contended, err := s.repo.SeatHold.HoldSeats(ctx, id, userUUID, labels, s.holdTTL)
	if err != nil {
		return nil, fmt.Errorf("hold seats: %w", err)
	}
	if hold == nil {
		return nil, fmt.Errorf("%w: %s", ErrSeatConflict, contended)
	}

	s.log.Info("Seats held",
		zap.String("hold_id", hold.ID),
		zap.String("show_id", showID),
		zap.String("user_id", userID),
		zap.Strings("seats", labels),
	)

	return &response.SeatHoldResponse{
		HoldID:    hold.ID,
		ShowID:    hold.ShowID.String(),
		Seats:     hold.Seats,
		ExpiresAt: hold.ExpiresAt,
	}, nil
}

func (s *showService) ReleaseHold(ctx context.Context, userID, holdID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ErrNotAuthenticated
	}

	released, err := s.repo.SeatHold.ReleaseHold(ctx, holdID, userUUID)
	if err != nil {
		return fmt.Errorf("release hold: %w", err)
	}
	if !released {
		return fmt.Errorf("hold %s not found", holdID)
	}

	s.log.Info("Hold released",
		zap.String("hold_id", holdID),
		zap.String("user_id", userID),
	)

	return nil
}
