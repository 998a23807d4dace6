package repository

import (
	"movietix/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Session  SessionRepository
	Profile  ProfileRepository
	Movie    MovieRepository
	Theater  TheaterRepository
	Screen   ScreenRepository
	Show     ShowRepository
	Ticket   TicketRepository
	Review   ReviewRepository
	SeatHold SeatHoldRepository
}

func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		Session:  NewSessionRepository(db, log),
		Profile:  NewProfileRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Theater:  NewTheaterRepository(db, log),
		Screen:   NewScreenRepository(db, log),
		Show:     NewShowRepository(db, log),
		Ticket:   NewTicketRepository(db, log),
		Review:   NewReviewRepository(db, log),
		SeatHold: NewSeatHoldRepository(rdb, log),
	}
}
