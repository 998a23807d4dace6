package repository

import (
	"context"
	"fmt"
	"strings"

	"movietix/internal/data/entity"
	"movietix/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieFilter narrows catalog listings; zero values mean "no filter".
type MovieFilter struct {
	Genre        string
	Language     string
	IsNowShowing *bool
	IsComingSoon *bool
}

type MovieRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	FindNowShowing(ctx context.Context) ([]*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, description, duration_min, genres, poster_url, backdrop_url,
	release_date, rating, language, is_now_showing, is_coming_soon, trailer_url, created_at, updated_at`

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	where, args := buildMovieFilter(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s FROM movies
		%s
		ORDER BY release_date DESC
		LIMIT $%d OFFSET $%d
	`, movieColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find movies", zap.Error(err))
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := buildMovieFilter(filter)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM movies %s`, where)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) FindNowShowing(ctx context.Context) ([]*entity.Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM movies
		WHERE is_now_showing = TRUE
		ORDER BY release_date DESC
	`, movieColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find now-showing movies", zap.Error(err))
		return nil, fmt.Errorf("find now-showing movies: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

// ==================== HELPERS ====================

func buildMovieFilter(filter MovieFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(genres)", len(args)))
	}
	if filter.Language != "" {
		args = append(args, filter.Language)
		conditions = append(conditions, fmt.Sprintf("language = $%d", len(args)))
	}
	if filter.IsNowShowing != nil {
		args = append(args, *filter.IsNowShowing)
		conditions = append(conditions, fmt.Sprintf("is_now_showing = $%d", len(args)))
	}
	if filter.IsComingSoon != nil {
		args = append(args, *filter.IsComingSoon)
		conditions = append(conditions, fmt.Sprintf("is_coming_soon = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationMin,
		&movie.Genres,
		&movie.PosterURL,
		&movie.BackdropURL,
		&movie.ReleaseDate,
		&movie.Rating,
		&movie.Language,
		&movie.IsNowShowing,
		&movie.IsComingSoon,
		&movie.TrailerURL,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func collectMovies(rows pgx.Rows) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.DurationMin,
			&movie.Genres,
			&movie.PosterURL,
			&movie.BackdropURL,
			&movie.ReleaseDate,
			&movie.Rating,
			&movie.Language,
			&movie.IsNowShowing,
			&movie.IsComingSoon,
			&movie.TrailerURL,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}
