package repository

import (
	"context"
	"fmt"
	"time"

	"movietix/internal/data/entity"
	"movietix/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindUpcomingByMovieID(ctx context.Context, movieID uuid.UUID, after time.Time) ([]*entity.Show, error)

	// CountByMovieAndIDs is the second leg of the verified-watcher check:
	// how many of the given shows screen the given movie.
	CountByMovieAndIDs(ctx context.Context, movieID uuid.UUID, showIDs []uuid.UUID) (int64, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := `
		SELECT id, movie_id, screen_id, start_time, end_time, base_price, created_at
		FROM shows
		WHERE id = $1
	`

	var show entity.Show
	err := r.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.ScreenID,
		&show.StartTime,
		&show.EndTime,
		&show.BasePrice,
		&show.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return &show, nil
}

func (r *showRepository) FindUpcomingByMovieID(ctx context.Context, movieID uuid.UUID, after time.Time) ([]*entity.Show, error) {
	query := `
		SELECT id, movie_id, screen_id, start_time, end_time, base_price, created_at
		FROM shows
		WHERE movie_id = $1 AND start_time >= $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, movieID, after)
	if err != nil {
		r.log.Error("Failed to find upcoming shows by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find upcoming shows by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var shows []*entity.Show
	for rows.Next() {
		var show entity.Show
		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.ScreenID,
			&show.StartTime,
			&show.EndTime,
			&show.BasePrice,
			&show.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, &show)
	}

	return shows, nil
}

func (r *showRepository) CountByMovieAndIDs(ctx context.Context, movieID uuid.UUID, showIDs []uuid.UUID) (int64, error) {
	if len(showIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM shows WHERE movie_id = $1 AND id = ANY($2)`

	var count int64
	err := r.db.QueryRow(ctx, query, movieID, showIDs).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count shows by movie and IDs",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, fmt.Errorf("count shows by movie %s: %w", movieID.String(), err)
	}

	return count, nil
}
