package usecase

import (
	"context"
	"testing"
	"time"

	"movietix/internal/data/entity"
	"movietix/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newCatalogFixture() (*testFixture, CatalogService) {
	fx := newTestFixture()
	return fx, NewCatalogService(fx.repo, zap.NewNop())
}

func TestGetMovieByID(t *testing.T) {
	fx, svc := newCatalogFixture()

	movie, err := svc.GetMovieByID(context.Background(), fx.movieID.String())
	if err != nil {
		t.Fatalf("GetMovieByID: %v", err)
	}
	if movie.Title != "Interstellar" {
		t.Errorf("title = %q", movie.Title)
	}

	if _, err := svc.GetMovieByID(context.Background(), uuid.New().String()); err == nil {
		t.Error("expected error for unknown movie")
	}
}

func TestGetMovieShowtimesGrouping(t *testing.T) {
	fx, svc := newCatalogFixture()

	// second show on the same screen; both group under the one theater
	secondShow := uuid.New()
	fx.shows.shows[secondShow] = &entity.Show{
		BaseSimple: entity.BaseSimple{ID: secondShow, CreatedAt: time.Now()},
		MovieID:    fx.movieID,
		ScreenID:   fx.screenID,
		StartTime:  time.Now().Add(8 * time.Hour),
		EndTime:    time.Now().Add(11 * time.Hour),
		BasePrice:  30000,
	}

	grouped, err := svc.GetMovieShowtimes(context.Background(), fx.movieID.String())
	if err != nil {
		t.Fatalf("GetMovieShowtimes: %v", err)
	}
	if len(grouped) != 1 {
		t.Fatalf("theater groups = %d, want 1", len(grouped))
	}
	if grouped[0].Theater.Name != "Galaxy Cinema" {
		t.Errorf("theater = %q", grouped[0].Theater.Name)
	}
	if len(grouped[0].Shows) != 2 {
		t.Errorf("shows = %d, want 2", len(grouped[0].Shows))
	}
}

func TestGetMovieShowtimesExcludesPast(t *testing.T) {
	fx, svc := newCatalogFixture()

	pastShow := uuid.New()
	fx.shows.shows[pastShow] = &entity.Show{
		BaseSimple: entity.BaseSimple{ID: pastShow, CreatedAt: time.Now()},
		MovieID:    fx.movieID,
		ScreenID:   fx.screenID,
		StartTime:  time.Now().Add(-3 * time.Hour),
		EndTime:    time.Now().Add(-1 * time.Hour),
		BasePrice:  25000,
	}

	grouped, err := svc.GetMovieShowtimes(context.Background(), fx.movieID.String())
	if err != nil {
		t.Fatalf("GetMovieShowtimes: %v", err)
	}
	for _, group := range grouped {
		for _, show := range group.Shows {
			if show.ID == pastShow.String() {
				t.Error("past show listed in showtimes")
			}
		}
	}
}

func TestGetTheaters(t *testing.T) {
	_, svc := newCatalogFixture()

	theaters, err := svc.GetTheaters(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("GetTheaters: %v", err)
	}
	if len(theaters) != 1 {
		t.Fatalf("theaters = %d, want 1", len(theaters))
	}

	theaters, err = svc.GetTheaters(context.Background(), "Pune")
	if err != nil {
		t.Fatalf("GetTheaters: %v", err)
	}
	if len(theaters) != 0 {
		t.Errorf("theaters in Pune = %d, want 0", len(theaters))
	}
}

func TestGetTheaterByID(t *testing.T) {
	fx, svc := newCatalogFixture()

	theater, err := svc.GetTheaterByID(context.Background(), fx.theaterID.String())
	if err != nil {
		t.Fatalf("GetTheaterByID: %v", err)
	}
	if theater.Name != "Galaxy Cinema" {
		t.Errorf("name = %q", theater.Name)
	}
	if len(theater.Screens) != 1 {
		t.Fatalf("screens = %d, want 1", len(theater.Screens))
	}
	if theater.Screens[0].Capacity != 150 {
		t.Errorf("capacity = %d, want 150", theater.Screens[0].Capacity)
	}
}

func TestMoodSearch(t *testing.T) {
	_, svc := newCatalogFixture()

	results, err := svc.MoodSearch(context.Background(), &request.MoodSearchRequest{
		Mood: "something about space and adventure",
	})
	if err != nil {
		t.Fatalf("MoodSearch: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Title != "Interstellar" {
		t.Errorf("match = %q", results[0].Title)
	}
	if results[0].MatchScore < 1 {
		t.Errorf("score = %d, want >= 1", results[0].MatchScore)
	}
}

func TestMoodSearchTooShort(t *testing.T) {
	_, svc := newCatalogFixture()

	if _, err := svc.MoodSearch(context.Background(), &request.MoodSearchRequest{Mood: "ok"}); err == nil {
		t.Error("expected validation error for too-short mood")
	}
}
