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

type CatalogService interface {
	GetMovies(ctx context.Context, filter repository.MovieFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)

	// GetMovieShowtimes returns a movie's upcoming shows grouped by theater,
	// ordered by start time within each group.
	GetMovieShowtimes(ctx context.Context, movieID string) ([]response.ShowtimesByTheater, error)

	GetTheaters(ctx context.Context, city string) ([]response.TheaterResponse, error)
	GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterDetailResponse, error)

	// MoodSearch matches free-text mood against the now-showing catalog.
	MoodSearch(ctx context.Context, req *request.MoodSearchRequest) ([]response.MoodMatchResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetMovies(ctx context.Context, filter repository.MovieFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *catalogService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogService) GetMovieShowtimes(ctx context.Context, movieID string) ([]response.ShowtimesByTheater, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	shows, err := s.repo.Show.FindUpcomingByMovieID(ctx, movie.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	// Group per theater, resolving the screen -> theater chain once per
	// distinct ID. Grouping preserves the order theaters first appear in,
	// which is start-time order.
	screens := make(map[uuid.UUID]*entity.Screen)
	theaters := make(map[uuid.UUID]*entity.Theater)
	showsByTheater := make(map[uuid.UUID][]response.ShowResponse)
	var theaterOrder []uuid.UUID

	for _, show := range shows {
		screen, ok := screens[show.ScreenID]
		if !ok {
			screen, err = s.repo.Screen.FindByID(ctx, show.ScreenID)
			if err != nil || screen == nil {
				s.log.Warn("Skipping show with missing screen",
					zap.String("show_id", show.ID.String()),
					zap.String("screen_id", show.ScreenID.String()),
				)
				continue
			}
			screens[show.ScreenID] = screen
		}

		theater, ok := theaters[screen.TheaterID]
		if !ok {
			theater, err = s.repo.Theater.FindByID(ctx, screen.TheaterID)
			if err != nil || theater == nil {
				continue
			}
			theaters[screen.TheaterID] = theater
			theaterOrder = append(theaterOrder, screen.TheaterID)
		}

		showsByTheater[theater.ID] = append(showsByTheater[theater.ID], response.ShowResponse{
			ID:           show.ID.String(),
			MovieID:      show.MovieID.String(),
			MovieTitle:   movie.Title,
			ScreenNumber: screen.ScreenNumber,
			ScreenType:   screen.ScreenType,
			StartTime:    show.StartTime,
			EndTime:      show.EndTime,
			BasePrice:    show.BasePrice,
		})
	}

	grouped := make([]response.ShowtimesByTheater, 0, len(theaterOrder))
	for _, theaterID := range theaterOrder {
		grouped = append(grouped, response.ShowtimesByTheater{
			Theater: response.TheaterToResponse(theaters[theaterID]),
			Shows:   showsByTheater[theaterID],
		})
	}

	return grouped, nil
}

func (s *catalogService) GetTheaters(ctx context.Context, city string) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx, city)
	if err != nil {
		s.log.Error("Failed to get theaters", zap.Error(err))
		return nil, fmt.Errorf("get theaters: %w", err)
	}

	theaterResponses := make([]response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		theaterResponses[i] = response.TheaterToResponse(theater)
	}

	return theaterResponses, nil
}

func (s *catalogService) GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterDetailResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil || theater == nil {
		return nil, fmt.Errorf("theater %s not found", theaterID)
	}

	screens, err := s.repo.Screen.FindByTheaterID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get theater screens: %w", err)
	}

	screenResponses := make([]response.ScreenResponse, len(screens))
	for i, screen := range screens {
		screenResponses[i] = response.ScreenToResponse(screen)
	}

	return &response.TheaterDetailResponse{
		TheaterResponse: response.TheaterToResponse(theater),
		Screens:         screenResponses,
	}, nil
}

func (s *catalogService) MoodSearch(ctx context.Context, req *request.MoodSearchRequest) ([]response.MoodMatchResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movies, err := s.repo.Movie.FindNowShowing(ctx)
	if err != nil {
		s.log.Error("Failed to load now-showing movies for mood search", zap.Error(err))
		return nil, fmt.Errorf("mood search: %w", err)
	}

	matches := scoreMoviesByMood(req.Mood, movies)

	results := make([]response.MoodMatchResponse, len(matches))
	for i, match := range matches {
		results[i] = response.MoodMatchResponse{
			MovieResponse: response.MovieToResponse(match.movie),
			MatchScore:    match.score,
		}
	}

	s.log.Info("Mood search completed",
		zap.String("mood", req.Mood),
		zap.Int("candidates", len(movies)),
		zap.Int("matches", len(results)),
	)

	return results, nil
}

// ==================== HELPER METHODS ====================

func (s *catalogService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil || movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	return movie, nil
}
