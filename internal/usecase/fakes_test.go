package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"movietix/internal/data/entity"
	"movietix/internal/data/repository"

	"github.com/google/uuid"
)

const testHoldTTL = 10 * time.Minute

func newUserID() string {
	return uuid.New().String()
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", s, err)
	}
	return id
}

// In-memory repositories for exercising the services without a database.
// fakeTicketRepo mirrors the production uniqueness guarantee: a mutex-guarded
// seat set makes CreateWithSeats all-or-nothing, so concurrent overlapping
// bookings race exactly like they do against the real unique constraint.

type fakeShowRepo struct {
	mu    sync.Mutex
	shows map[uuid.UUID]*entity.Show
}

func (f *fakeShowRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shows[id], nil
}

func (f *fakeShowRepo) FindUpcomingByMovieID(_ context.Context, movieID uuid.UUID, after time.Time) ([]*entity.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Show
	for _, show := range f.shows {
		if show.MovieID == movieID && !show.StartTime.Before(after) {
			out = append(out, show)
		}
	}
	return out, nil
}

func (f *fakeShowRepo) CountByMovieAndIDs(_ context.Context, movieID uuid.UUID, showIDs []uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, id := range showIDs {
		if show, ok := f.shows[id]; ok && show.MovieID == movieID {
			count++
		}
	}
	return count, nil
}

type fakeScreenRepo struct {
	screens map[uuid.UUID]*entity.Screen
}

func (f *fakeScreenRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screen, error) {
	return f.screens[id], nil
}

func (f *fakeScreenRepo) FindByTheaterID(_ context.Context, theaterID uuid.UUID) ([]*entity.Screen, error) {
	var out []*entity.Screen
	for _, screen := range f.screens {
		if screen.TheaterID == theaterID {
			out = append(out, screen)
		}
	}
	return out, nil
}

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, filter repository.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, movie := range f.movies {
		out = append(out, movie)
	}
	return out, nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context, filter repository.MovieFilter) (int64, error) {
	return int64(len(f.movies)), nil
}

func (f *fakeMovieRepo) FindNowShowing(_ context.Context) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, movie := range f.movies {
		if movie.IsNowShowing {
			out = append(out, movie)
		}
	}
	return out, nil
}

type fakeTheaterRepo struct {
	theaters map[uuid.UUID]*entity.Theater
}

func (f *fakeTheaterRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Theater, error) {
	return f.theaters[id], nil
}

func (f *fakeTheaterRepo) FindAll(_ context.Context, city string) ([]*entity.Theater, error) {
	var out []*entity.Theater
	for _, theater := range f.theaters {
		if city == "" || theater.City == city {
			out = append(out, theater)
		}
	}
	return out, nil
}

type fakeTicketRepo struct {
	mu         sync.Mutex
	tickets    map[uuid.UUID]*entity.Ticket
	takenSeats map[string]uuid.UUID // "{show}:{seat}" -> ticket id
	codes      map[string]struct{}
	idemKeys   map[string]uuid.UUID // "{user}:{key}" -> ticket id
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:    make(map[uuid.UUID]*entity.Ticket),
		takenSeats: make(map[string]uuid.UUID),
		codes:      make(map[string]struct{}),
		idemKeys:   make(map[string]uuid.UUID),
	}
}

func seatKey(showID uuid.UUID, seat string) string {
	return showID.String() + ":" + seat
}

func (f *fakeTicketRepo) CreateWithSeats(_ context.Context, ticket *entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.codes[ticket.BookingCode]; ok {
		return fmt.Errorf("insert ticket: %w", repository.ErrDuplicateBookingCode)
	}
	if ticket.IdempotencyKey != nil {
		key := ticket.UserID.String() + ":" + *ticket.IdempotencyKey
		if _, ok := f.idemKeys[key]; ok {
			return fmt.Errorf("insert ticket: %w", repository.ErrDuplicateIdempotencyKey)
		}
	}
	for _, seat := range ticket.Seats {
		if _, ok := f.takenSeats[seatKey(ticket.ShowID, seat)]; ok {
			return fmt.Errorf("insert seat %s: %w", seat, repository.ErrSeatTaken)
		}
	}

	for _, seat := range ticket.Seats {
		f.takenSeats[seatKey(ticket.ShowID, seat)] = ticket.ID
	}
	f.codes[ticket.BookingCode] = struct{}{}
	if ticket.IdempotencyKey != nil {
		f.idemKeys[ticket.UserID.String()+":"+*ticket.IdempotencyKey] = ticket.ID
	}

	stored := *ticket
	stored.Seats = append([]string(nil), ticket.Seats...)
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickets[id], nil
}

func (f *fakeTicketRepo) FindByIdempotencyKey(_ context.Context, userID uuid.UUID, key string) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.idemKeys[userID.String()+":"+key]; ok {
		return f.tickets[id], nil
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) FindBookedSeatsByShow(_ context.Context, showID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []string
	for _, ticket := range f.tickets {
		if ticket.ShowID == showID && ticket.Status == entity.TicketStatusConfirmed {
			seats = append(seats, ticket.Seats...)
		}
	}
	return seats, nil
}

func (f *fakeTicketRepo) FindShowIDsWithConfirmedTicket(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, ticket := range f.tickets {
		if ticket.UserID == userID && ticket.Status == entity.TicketStatusConfirmed {
			if _, ok := seen[ticket.ShowID]; !ok {
				seen[ticket.ShowID] = struct{}{}
				out = append(out, ticket.ShowID)
			}
		}
	}
	return out, nil
}

type heldSeat struct {
	userID    uuid.UUID
	holdID    string
	expiresAt time.Time
}

type fakeHoldRepo struct {
	mu    sync.Mutex
	seats map[string]heldSeat // "{show}:{seat}"
	holds map[string]*repository.SeatHold
}

func newFakeHoldRepo() *fakeHoldRepo {
	return &fakeHoldRepo{
		seats: make(map[string]heldSeat),
		holds: make(map[string]*repository.SeatHold),
	}
}

func (f *fakeHoldRepo) HoldSeats(_ context.Context, showID, userID uuid.UUID, seats []string, ttl time.Duration) (*repository.SeatHold, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for _, seat := range seats {
		if held, ok := f.seats[seatKey(showID, seat)]; ok && held.expiresAt.After(now) {
			return nil, seat, nil
		}
	}

	hold := &repository.SeatHold{
		ID:        uuid.New().String(),
		UserID:    userID,
		ShowID:    showID,
		Seats:     append([]string(nil), seats...),
		ExpiresAt: now.Add(ttl),
	}
	for _, seat := range seats {
		f.seats[seatKey(showID, seat)] = heldSeat{userID: userID, holdID: hold.ID, expiresAt: hold.ExpiresAt}
	}
	f.holds[hold.ID] = hold
	return hold, "", nil
}

func (f *fakeHoldRepo) ReleaseHold(_ context.Context, holdID string, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hold, ok := f.holds[holdID]
	if !ok || hold.UserID != userID {
		return false, nil
	}
	for _, seat := range hold.Seats {
		delete(f.seats, seatKey(hold.ShowID, seat))
	}
	delete(f.holds, holdID)
	return true, nil
}

func (f *fakeHoldRepo) ReleaseSeats(_ context.Context, showID, userID uuid.UUID, seats []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seat := range seats {
		key := seatKey(showID, seat)
		if held, ok := f.seats[key]; ok && held.userID == userID {
			delete(f.seats, key)
		}
	}
	return nil
}

func (f *fakeHoldRepo) HeldSeats(_ context.Context, showID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	var out []string
	prefix := showID.String() + ":"
	for key, held := range f.seats {
		if held.expiresAt.After(now) && len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, key[len(prefix):])
		}
	}
	return out, nil
}

func (f *fakeHoldRepo) SeatsHeldByOthers(_ context.Context, showID, userID uuid.UUID, seats []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	var out []string
	for _, seat := range seats {
		if held, ok := f.seats[seatKey(showID, seat)]; ok && held.expiresAt.After(now) && held.userID != userID {
			out = append(out, seat)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *review
	f.reviews = append(f.reviews, &stored)
	return nil
}

func (f *fakeReviewRepo) FindByMovieID(_ context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, review := range f.reviews {
		if review.MovieID == movieID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByMovieID(_ context.Context, movieID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, review := range f.reviews {
		if review.MovieID == movieID {
			count++
		}
	}
	return count, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Profile, error) {
	out := make(map[uuid.UUID]*entity.Profile, len(ids))
	for _, id := range ids {
		if profile, ok := f.profiles[id]; ok {
			out[id] = profile
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return fmt.Errorf("profile %s not found", profile.ID.String())
	}
	stored := *profile
	f.profiles[profile.ID] = &stored
	return nil
}

// testFixture wires fakes into a Repository with one movie, theater, screen
// (rows A-J, 15 seats per row, premium I and J) and an upcoming show priced
// at 250.00 in minor units.
type testFixture struct {
	repo    *repository.Repository
	tickets *fakeTicketRepo
	holds   *fakeHoldRepo
	reviews *fakeReviewRepo
	shows   *fakeShowRepo

	movieID   uuid.UUID
	theaterID uuid.UUID
	screenID  uuid.UUID
	showID    uuid.UUID
}

func newTestFixture() *testFixture {
	movieID := uuid.New()
	theaterID := uuid.New()
	screenID := uuid.New()
	showID := uuid.New()

	now := time.Now()

	movies := &fakeMovieRepo{movies: map[uuid.UUID]*entity.Movie{
		movieID: {
			Base:         entity.Base{ID: movieID, CreatedAt: now},
			Title:        "Interstellar",
			Description:  "A team travels through a wormhole in search of a new home.",
			DurationMin:  169,
			Genres:       []string{"Sci-Fi", "Adventure"},
			ReleaseDate:  now.AddDate(0, -1, 0),
			Rating:       8.7,
			Language:     "English",
			IsNowShowing: true,
		},
	}}

	theaters := &fakeTheaterRepo{theaters: map[uuid.UUID]*entity.Theater{
		theaterID: {
			BaseSimple: entity.BaseSimple{ID: theaterID, CreatedAt: now},
			Name:       "Galaxy Cinema",
			Location:   "Downtown",
			City:       "Mumbai",
		},
	}}

	screens := &fakeScreenRepo{screens: map[uuid.UUID]*entity.Screen{
		screenID: {
			BaseSimple:   entity.BaseSimple{ID: screenID, CreatedAt: now},
			TheaterID:    theaterID,
			ScreenNumber: 1,
			ScreenType:   "IMAX",
			SeatRows:     []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
			SeatsPerRow:  15,
			PremiumRows:  []string{"I", "J"},
		},
	}}

	shows := &fakeShowRepo{shows: map[uuid.UUID]*entity.Show{
		showID: {
			BaseSimple: entity.BaseSimple{ID: showID, CreatedAt: now},
			MovieID:    movieID,
			ScreenID:   screenID,
			StartTime:  now.Add(4 * time.Hour),
			EndTime:    now.Add(7 * time.Hour),
			BasePrice:  25000,
		},
	}}

	tickets := newFakeTicketRepo()
	holds := newFakeHoldRepo()
	reviews := &fakeReviewRepo{}
	profiles := &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}

	return &testFixture{
		repo: &repository.Repository{
			Profile:  profiles,
			Movie:    movies,
			Theater:  theaters,
			Screen:   screens,
			Show:     shows,
			Ticket:   tickets,
			Review:   reviews,
			SeatHold: holds,
		},
		tickets:   tickets,
		holds:     holds,
		reviews:   reviews,
		shows:     shows,
		movieID:   movieID,
		theaterID: theaterID,
		screenID:  screenID,
		showID:    showID,
	}
}

func (f *testFixture) addProfile(id uuid.UUID, username string) {
	f.repo.Profile.(*fakeProfileRepo).profiles[id] = &entity.Profile{
		Base:     entity.Base{ID: id, CreatedAt: time.Now()},
		Username: username,
		Role:     "user",
	}
}
