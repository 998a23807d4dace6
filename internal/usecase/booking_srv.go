package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movietix/internal/data/entity"
	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/dto/response"
	"movietix/internal/seating"
	"movietix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookingCodeRetries bounds regeneration when the booking_code unique
// constraint fires.
const bookingCodeRetries = 3

type BookingService interface {
	// CreateBooking validates the selection, recomputes the price and
	// commits the ticket atomically against the shared seat inventory.
	// Concurrent overlapping requests cannot both succeed.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.TicketResponse, error)

	// GetTicket returns one ticket; only its owner may read it.
	GetTicket(ctx context.Context, userID, ticketID string) (*response.TicketResponse, error)

	GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.TicketResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	// Checked before struct validation so the caller gets the distinct
	// empty-selection error instead of a generic validation message.
	if len(req.Seats) == 0 {
		return nil, ErrEmptySelection
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", req.ShowID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s not found", req.ShowID)
	}

	if show.StartTime.Before(time.Now()) {
		return nil, fmt.Errorf("cannot book a show that has already started")
	}

	screen, err := s.repo.Screen.FindByID(ctx, show.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if screen == nil {
		return nil, fmt.Errorf("screen not found for show %s", req.ShowID)
	}

	// Validate the selection against the screen geometry
	seatMap := seating.NewSeatMap(screen.SeatRows, screen.SeatsPerRow, screen.PremiumRows)
	seats, err := seatMap.ValidateSelection(req.Seats)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}

	// The server-side total is authoritative; the client total only guards
	// against stale pricing on screen.
	total := seating.TotalPrice(seatMap, show.BasePrice, seats)
	if total != req.TotalPrice {
		s.log.Warn("Booking price mismatch",
			zap.String("show_id", req.ShowID),
			zap.Int64("client_total", req.TotalPrice),
			zap.Int64("server_total", total),
		)
		return nil, fmt.Errorf("%w: expected %d", ErrPriceMismatch, total)
	}

	// Idempotent retry: the earlier attempt may already have committed
	if req.IdempotencyKey != nil {
		existing, err := s.repo.Ticket.FindByIdempotencyKey(ctx, userUUID, *req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if existing != nil {
			s.log.Info("Booking replayed from idempotency key",
				zap.String("ticket_id", existing.ID.String()),
				zap.String("booking_code", existing.BookingCode),
			)
			return s.buildTicketResponse(ctx, existing), nil
		}
	}

	// Fast-path conflict checks against committed seats and foreign holds.
	// Advisory only: the unique constraint inside CreateWithSeats is what
	// actually serializes concurrent submissions.
	booked, err := s.repo.Ticket.FindBookedSeatsByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conflict := intersect(labels, booked); len(conflict) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrSeatConflict, conflict)
	}

	held, err := s.repo.SeatHold.SeatsHeldByOthers(ctx, showID, userUUID, labels)
	if err != nil {
		// holds are advisory; a cache outage must not block bookings
		s.log.Warn("Seat hold check failed, continuing", zap.Error(err))
	} else if len(held) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrSeatConflict, held)
	}

	now := time.Now()
	ticket := &entity.Ticket{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		BookingCode:    utils.GenerateBookingCode(),
		UserID:         userUUID,
		ShowID:         showID,
		Seats:          labels,
		TotalPrice:     total,
		Status:         entity.TicketStatusConfirmed,
		IdempotencyKey: req.IdempotencyKey,
	}

	for attempt := 0; ; attempt++ {
		err = s.repo.Ticket.CreateWithSeats(ctx, ticket)
		if err == nil {
			break
		}

		switch {
		case errors.Is(err, repository.ErrSeatTaken):
			// lost the race to a concurrent booking
			s.log.Info("Booking lost seat race",
				zap.String("show_id", req.ShowID),
				zap.String("user_id", userID),
				zap.Strings("seats", labels),
			)
			return nil, fmt.Errorf("%w: %v", ErrSeatConflict, labels)

		case errors.Is(err, repository.ErrDuplicateIdempotencyKey):
			existing, findErr := s.repo.Ticket.FindByIdempotencyKey(ctx, userUUID, *req.IdempotencyKey)
			if findErr != nil || existing == nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			return s.buildTicketResponse(ctx, existing), nil

		case errors.Is(err, repository.ErrDuplicateBookingCode):
			if attempt >= bookingCodeRetries {
				return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			ticket.BookingCode = utils.GenerateBookingCode()

		default:
			s.log.Error("Failed to persist booking",
				zap.Error(err),
				zap.String("show_id", req.ShowID),
				zap.String("user_id", userID),
			)
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	// Drop this user's holds on the now-booked seats so availability reads
	// don't double-report them until the TTL lapses.
	if err := s.repo.SeatHold.ReleaseSeats(ctx, showID, userUUID, labels); err != nil {
		s.log.Warn("Failed to release seat holds after booking", zap.Error(err))
	}

	s.log.Info("Booking created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("booking_code", ticket.BookingCode),
		zap.String("user_id", userID),
		zap.Strings("seats", labels),
		zap.Int64("total_price", total),
	)

	return s.buildTicketResponse(ctx, ticket), nil
}

func (s *bookingService) GetTicket(ctx context.Context, userID, ticketID string) (*response.TicketResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, err)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	// ownership is not disclosed: someone else's ticket reads as missing
	if ticket == nil || ticket.UserID != userUUID {
		return nil, fmt.Errorf("ticket %s not found", ticketID)
	}

	return s.buildTicketResponse(ctx, ticket), nil
}

func (s *bookingService) GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	limit := req.Limit()
	offset := req.Offset()

	tickets, err := s.repo.Ticket.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user tickets",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user tickets: %w", err)
	}

	total, err := s.repo.Ticket.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user tickets", zap.Error(err))
		return nil, fmt.Errorf("count user tickets: %w", err)
	}

	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		ticketResponses[i] = *s.buildTicketResponse(ctx, ticket)
	}

	return response.NewPaginatedResponse(ticketResponses, req.Page, req.PerPage, total), nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) buildTicketResponse(ctx context.Context, ticket *entity.Ticket) *response.TicketResponse {
	resp := &response.TicketResponse{
		ID:          ticket.ID.String(),
		BookingCode: ticket.BookingCode,
		ShowID:      ticket.ShowID.String(),
		Seats:       ticket.Seats,
		TotalPrice:  ticket.TotalPrice,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
	}

	show, _ := s.repo.Show.FindByID(ctx, ticket.ShowID)
	if show == nil {
		return resp
	}
	resp.ShowTime = show.StartTime

	movie, _ := s.repo.Movie.FindByID(ctx, show.MovieID)
	if movie != nil {
		resp.MovieTitle = movie.Title
	}

	screen, _ := s.repo.Screen.FindByID(ctx, show.ScreenID)
	if screen != nil {
		resp.ScreenType = screen.ScreenType

		theater, _ := s.repo.Theater.FindByID(ctx, screen.TheaterID)
		if theater != nil {
			resp.TheaterName = theater.Name
		}
	}

	return resp
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}

	var common []string
	for _, v := range a {
		if _, ok := set[v]; ok {
			common = append(common, v)
		}
	}
	return common
}
