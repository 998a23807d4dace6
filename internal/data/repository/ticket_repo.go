package repository

import (
	"context"
	"fmt"

	"movietix/internal/data/entity"
	"movietix/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// CreateWithSeats persists the ticket and its seat rows in one
	// transaction. The (show_id, seat_label) unique constraint makes the
	// availability check and the write indivisible: a concurrent booking of
	// an overlapping seat surfaces as ErrSeatTaken and nothing is committed.
	CreateWithSeats(ctx context.Context, ticket *entity.Ticket) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Ticket, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Business queries
	FindBookedSeatsByShow(ctx context.Context, showID uuid.UUID) ([]string, error)
	FindShowIDsWithConfirmedTicket(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) CreateWithSeats(ctx context.Context, ticket *entity.Ticket) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertTicket := `
		INSERT INTO tickets (id, booking_code, user_id, show_id, total_price, status, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertTicket,
		ticket.ID,
		ticket.BookingCode,
		ticket.UserID,
		ticket.ShowID,
		ticket.TotalPrice,
		ticket.Status,
		ticket.IdempotencyKey,
		ticket.CreatedAt,
	)
	if err != nil {
		if classified := classifyUniqueViolation(err); classified != err {
			return classified
		}
		r.log.Error("Failed to insert ticket",
			zap.Error(err),
			zap.String("booking_code", ticket.BookingCode),
			zap.String("user_id", ticket.UserID.String()),
		)
		return fmt.Errorf("insert ticket %s: %w", ticket.BookingCode, err)
	}

	insertSeat := `
		INSERT INTO ticket_seats (id, ticket_id, show_id, seat_label, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, seat := range ticket.Seats {
		_, err = tx.Exec(ctx, insertSeat,
			uuid.New(),
			ticket.ID,
			ticket.ShowID,
			seat,
			ticket.CreatedAt,
		)
		if err != nil {
			if classified := classifyUniqueViolation(err); classified != err {
				return classified
			}
			r.log.Error("Failed to insert ticket seat",
				zap.Error(err),
				zap.String("ticket_id", ticket.ID.String()),
				zap.String("seat", seat),
			)
			return fmt.Errorf("insert seat %s for ticket %s: %w", seat, ticket.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if classified := classifyUniqueViolation(err); classified != err {
			return classified
		}
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT id, booking_code, user_id, show_id, total_price, status, idempotency_key, created_at
		FROM tickets
		WHERE id = $1
	`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}
	if ticket == nil {
		return nil, nil
	}

	if err := r.loadSeats(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *ticketRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Ticket, error) {
	query := `
		SELECT id, booking_code, user_id, show_id, total_price, status, idempotency_key, created_at
		FROM tickets
		WHERE user_id = $1 AND idempotency_key = $2
	`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, userID, key))
	if err != nil {
		r.log.Error("Failed to find ticket by idempotency key",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find ticket by idempotency key: %w", err)
	}
	if ticket == nil {
		return nil, nil
	}

	if err := r.loadSeats(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, booking_code, user_id, show_id, total_price, status, idempotency_key, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tickets by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.BookingCode,
			&ticket.UserID,
			&ticket.ShowID,
			&ticket.TotalPrice,
			&ticket.Status,
			&ticket.IdempotencyKey,
			&ticket.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	for _, ticket := range tickets {
		if err := r.loadSeats(ctx, ticket); err != nil {
			return nil, err
		}
	}

	return tickets, nil
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// FindBookedSeatsByShow derives occupancy by scanning the seat rows of
// confirmed tickets; there is no separate reserved-seats table.
func (r *ticketRepository) FindBookedSeatsByShow(ctx context.Context, showID uuid.UUID) ([]string, error) {
	query := `
		SELECT ts.seat_label
		FROM ticket_seats ts
		INNER JOIN tickets t ON ts.ticket_id = t.id
		WHERE ts.show_id = $1 AND t.status = 'confirmed'
		ORDER BY ts.seat_label
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find booked seats by show",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find booked seats by show %s: %w", showID.String(), err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat label row", zap.Error(err))
			return nil, fmt.Errorf("scan seat label row: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

func (r *ticketRepository) FindShowIDsWithConfirmedTicket(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT show_id
		FROM tickets
		WHERE user_id = $1 AND status = 'confirmed'
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find show IDs with confirmed ticket",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find show IDs with confirmed ticket for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var showIDs []uuid.UUID
	for rows.Next() {
		var showID uuid.UUID
		if err := rows.Scan(&showID); err != nil {
			r.log.Error("Failed to scan show ID row", zap.Error(err))
			return nil, fmt.Errorf("scan show ID row: %w", err)
		}
		showIDs = append(showIDs, showID)
	}

	return showIDs, nil
}

// ==================== HELPERS ====================

func (r *ticketRepository) scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.BookingCode,
		&ticket.UserID,
		&ticket.ShowID,
		&ticket.TotalPrice,
		&ticket.Status,
		&ticket.IdempotencyKey,
		&ticket.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *ticketRepository) loadSeats(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		SELECT seat_label
		FROM ticket_seats
		WHERE ticket_id = $1
		ORDER BY seat_label
	`

	rows, err := r.db.Query(ctx, query, ticket.ID)
	if err != nil {
		r.log.Error("Failed to load ticket seats",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("load seats for ticket %s: %w", ticket.ID.String(), err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return fmt.Errorf("scan ticket seat row: %w", err)
		}
		seats = append(seats, seat)
	}

	ticket.Seats = seats
	return nil
}
