package usecase

import (
	"context"
	"fmt"
	"time"

	"movietix/internal/data/entity"
	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/dto/response"
	"movietix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const spoilerPlaceholder = "This review contains spoilers. Watch the movie to read it."

type ReviewService interface {
	// GetMovieReviews lists a movie's reviews. Spoiler review bodies are
	// redacted unless the viewer is a verified watcher of the movie;
	// viewerID may be empty for anonymous requests, which never see
	// spoiler bodies.
	GetMovieReviews(ctx context.Context, viewerID, movieID string, req *request.PaginatedRequest) (*response.ReviewListResponse, error)

	CreateReview(ctx context.Context, userID, movieID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)

	// HasWatched reports whether the user holds a confirmed ticket for any
	// show of the movie.
	HasWatched(ctx context.Context, userID uuid.UUID, movieID uuid.UUID) (bool, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetMovieReviews(ctx context.Context, viewerID, movieID string, req *request.PaginatedRequest) (*response.ReviewListResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil || movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	total, err := s.repo.Review.CountByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count movie reviews: %w", err)
	}

	verified := false
	var viewerUUID uuid.UUID
	if viewerID != "" {
		if viewerUUID, err = uuid.Parse(viewerID); err == nil {
			verified, err = s.HasWatched(ctx, viewerUUID, id)
			if err != nil {
				// fail closed: an unverifiable viewer sees no spoilers
				s.log.Warn("Verified-watcher check failed",
					zap.Error(err),
					zap.String("user_id", viewerID),
				)
				verified = false
			}
		}
	}

	authorIDs := make([]uuid.UUID, 0, len(reviews))
	for _, review := range reviews {
		authorIDs = append(authorIDs, review.UserID)
	}
	profiles, err := s.repo.Profile.FindByIDs(ctx, authorIDs)
	if err != nil {
		s.log.Warn("Failed to load review author profiles", zap.Error(err))
		profiles = map[uuid.UUID]*entity.Profile{}
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp := response.ReviewResponse{
			ID:        review.ID.String(),
			MovieID:   review.MovieID.String(),
			Rating:    review.Rating,
			Comment:   review.Comment,
			IsSpoiler: review.IsSpoiler,
			CreatedAt: review.CreatedAt,
		}

		if profile := profiles[review.UserID]; profile != nil {
			resp.Username = profile.Username
			resp.AvatarURL = profile.AvatarURL
		}

		// Authors always see their own reviews in full.
		ownReview := viewerID != "" && review.UserID == viewerUUID
		if review.IsSpoiler && !verified && !ownReview {
			resp.Comment = spoilerPlaceholder
			resp.SpoilerHidden = true
		}
		resp.VerifiedWatcher = verified

		reviewResponses[i] = resp
	}

	return &response.ReviewListResponse{
		Reviews:         reviewResponses,
		VerifiedWatcher: verified,
		Pagination: response.PaginationMeta{
			Total:      total,
			Page:       req.Page,
			PerPage:    req.PerPage,
			TotalPages: utils.CalculateTotalPages(total, req.PerPage),
		},
	}, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID, movieID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil || movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userUUID,
		MovieID:   id,
		Rating:    req.Rating,
		Comment:   req.Comment,
		IsSpoiler: req.IsSpoiler,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("movie_id", movieID),
		zap.String("user_id", userID),
		zap.Int("rating", req.Rating),
		zap.Bool("is_spoiler", req.IsSpoiler),
	)

	resp := &response.ReviewResponse{
		ID:        review.ID.String(),
		MovieID:   review.MovieID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		IsSpoiler: review.IsSpoiler,
		CreatedAt: review.CreatedAt,
	}
	if profile, _ := s.repo.Profile.FindByID(ctx, userUUID); profile != nil {
		resp.Username = profile.Username
		resp.AvatarURL = profile.AvatarURL
	}

	return resp, nil
}

// HasWatched runs in two steps so a freshly booked ticket counts immediately,
// even before the show has screened: collect the user's confirmed show IDs,
// then count how many of them belong to the movie.
func (s *reviewService) HasWatched(ctx context.Context, userID uuid.UUID, movieID uuid.UUID) (bool, error) {
	showIDs, err := s.repo.Ticket.FindShowIDsWithConfirmedTicket(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get confirmed show IDs: %w", err)
	}
	if len(showIDs) == 0 {
		return false, nil
	}

	count, err := s.repo.Show.CountByMovieAndIDs(ctx, movieID, showIDs)
	if err != nil {
		return false, fmt.Errorf("match shows to movie: %w", err)
	}

	return count > 0, nil
}
