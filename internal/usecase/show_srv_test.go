package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"movietix/internal/dto/request"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

func newShowFixture() (*testFixture, ShowService) {
	fx := newTestFixture()
	config := &utils.Config{}
	config.Booking.HoldTTLMinutes = 10
	return fx, NewShowService(fx.repo, config, zap.NewNop())
}

func TestGetSeatAvailability(t *testing.T) {
	fx, svc := newShowFixture()
	ctx := context.Background()

	booking := NewBookingService(fx.repo, zap.NewNop())
	if _, err := booking.CreateBooking(ctx, newUserID(), &request.CreateBookingRequest{
		ShowID:     fx.showID.String(),
		Seats:      []string{"B3", "B4"},
		TotalPrice: 50000,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	holder := mustUUID(t, newUserID())
	if _, _, err := fx.holds.HoldSeats(ctx, fx.showID, holder, []string{"C5"}, testHoldTTL); err != nil {
		t.Fatalf("HoldSeats: %v", err)
	}

	avail, err := svc.GetSeatAvailability(ctx, fx.showID.String())
	if err != nil {
		t.Fatalf("GetSeatAvailability: %v", err)
	}

	if avail.SeatsPerRow != 15 || len(avail.SeatRows) != 10 {
		t.Errorf("layout = %d rows x %d, want 10 x 15", len(avail.SeatRows), avail.SeatsPerRow)
	}
	if avail.BasePrice != 25000 || avail.PremiumPrice != 37500 {
		t.Errorf("prices = %d/%d, want 25000/37500", avail.BasePrice, avail.PremiumPrice)
	}

	sort.Strings(avail.BookedSeats)
	if len(avail.BookedSeats) != 2 || avail.BookedSeats[0] != "B3" || avail.BookedSeats[1] != "B4" {
		t.Errorf("booked = %v, want [B3 B4]", avail.BookedSeats)
	}
	if len(avail.HeldSeats) != 1 || avail.HeldSeats[0] != "C5" {
		t.Errorf("held = %v, want [C5]", avail.HeldSeats)
	}
}

func TestGetSeatAvailabilityUnknownShow(t *testing.T) {
	_, svc := newShowFixture()

	if _, err := svc.GetSeatAvailability(context.Background(), newUserID()); err == nil {
		t.Error("expected error for unknown show")
	}
}

func TestHoldSeats(t *testing.T) {
	fx, svc := newShowFixture()
	ctx := context.Background()
	userID := newUserID()

	hold, err := svc.HoldSeats(ctx, userID, fx.showID.String(), &request.HoldSeatsRequest{
		Seats: []string{"D1", "D2"},
	})
	if err != nil {
		t.Fatalf("HoldSeats: %v", err)
	}
	if hold.HoldID == "" {
		t.Error("hold ID is empty")
	}
	if len(hold.Seats) != 2 {
		t.Errorf("held seats = %v, want 2", hold.Seats)
	}

	// second user contends on D2: all-or-nothing, D3 must stay free
	_, err = svc.HoldSeats(ctx, newUserID(), fx.showID.String(), &request.HoldSeatsRequest{
		Seats: []string{"D2", "D3"},
	})
	if !errors.Is(err, ErrSeatConflict) {
		t.Errorf("err = %v, want ErrSeatConflict", err)
	}

	held, _ := fx.holds.HeldSeats(ctx, fx.showID)
	for _, seat := range held {
		if seat == "D3" {
			t.Error("contended hold leaked seat D3")
		}
	}
}

func TestHoldSeatsRejectsBooked(t *testing.T) {
	fx, svc := newShowFixture()
	ctx := context.Background()

	booking := NewBookingService(fx.repo, zap.NewNop())
	if _, err := booking.CreateBooking(ctx, newUserID(), &request.CreateBookingRequest{
		ShowID:     fx.showID.String(),
		Seats:      []string{"E5"},
		TotalPrice: 25000,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	_, err := svc.HoldSeats(ctx, newUserID(), fx.showID.String(), &request.HoldSeatsRequest{
		Seats: []string{"E5"},
	})
	if !errors.Is(err, ErrSeatConflict) {
		t.Errorf("err = %v, want ErrSeatConflict", err)
	}
}

func TestReleaseHold(t *testing.T) {
	fx, svc := newShowFixture()
	ctx := context.Background()
	userID := newUserID()

	hold, err := svc.HoldSeats(ctx, userID, fx.showID.String(), &request.HoldSeatsRequest{
		Seats: []string{"F1"},
	})
	if err != nil {
		t.Fatalf("HoldSeats: %v", err)
	}

	// only the owner may release
	if err := svc.ReleaseHold(ctx, newUserID(), hold.HoldID); err == nil {
		t.Error("expected error releasing another user's hold")
	}

	if err := svc.ReleaseHold(ctx, userID, hold.HoldID); err != nil {
		t.Fatalf("ReleaseHold: %v", err)
	}

	held, _ := fx.holds.HeldSeats(ctx, fx.showID)
	if len(held) != 0 {
		t.Errorf("held = %v after release, want none", held)
	}
}

func TestGetShow(t *testing.T) {
	fx, svc := newShowFixture()

	show, err := svc.GetShow(context.Background(), fx.showID.String())
	if err != nil {
		t.Fatalf("GetShow: %v", err)
	}
	if show.MovieTitle != "Interstellar" {
		t.Errorf("movie title = %q", show.MovieTitle)
	}
	if show.TheaterName != "Galaxy Cinema" {
		t.Errorf("theater name = %q", show.TheaterName)
	}
	if show.BasePrice != 25000 {
		t.Errorf("base price = %d, want 25000", show.BasePrice)
	}
}
