package usecase

import (
	"context"
	"testing"

	"movietix/internal/dto/request"

	"go.uber.org/zap"
)

func newReviewFixture() (*testFixture, ReviewService) {
	fx := newTestFixture()
	return fx, NewReviewService(fx.repo, zap.NewNop())
}

func TestCreateReview(t *testing.T) {
	fx, svc := newReviewFixture()
	userID := newUserID()
	fx.addProfile(mustUUID(t, userID), "moviebuff")

	resp, err := svc.CreateReview(context.Background(), userID, fx.movieID.String(), &request.CreateReviewRequest{
		Rating:  9,
		Comment: "Stunning visuals.",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if resp.Rating != 9 {
		t.Errorf("rating = %d, want 9", resp.Rating)
	}
	if resp.Username != "moviebuff" {
		t.Errorf("username = %q", resp.Username)
	}
}

func TestCreateReviewInvalidRating(t *testing.T) {
	fx, svc := newReviewFixture()

	for _, rating := range []int{0, 11, -1} {
		_, err := svc.CreateReview(context.Background(), newUserID(), fx.movieID.String(), &request.CreateReviewRequest{
			Rating:  rating,
			Comment: "x",
		})
		if err == nil {
			t.Errorf("rating %d accepted, want validation error", rating)
		}
	}
}

func TestSpoilerHiddenForUnverifiedViewer(t *testing.T) {
	fx, svc := newReviewFixture()
	ctx := context.Background()

	author := newUserID()
	fx.addProfile(mustUUID(t, author), "author")
	if _, err := svc.CreateReview(ctx, author, fx.movieID.String(), &request.CreateReviewRequest{
		Rating:    8,
		Comment:   "The ship was the station all along.",
		IsSpoiler: true,
	}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	// anonymous viewer: body redacted
	list, err := svc.GetMovieReviews(ctx, "", fx.movieID.String(), page)
	if err != nil {
		t.Fatalf("GetMovieReviews: %v", err)
	}
	if list.VerifiedWatcher {
		t.Error("anonymous viewer reported as verified watcher")
	}
	if len(list.Reviews) != 1 {
		t.Fatalf("reviews = %d, want 1", len(list.Reviews))
	}
	review := list.Reviews[0]
	if !review.SpoilerHidden {
		t.Error("spoiler not hidden for anonymous viewer")
	}
	if review.Comment == "The ship was the station all along." {
		t.Error("spoiler body leaked to anonymous viewer")
	}

	// signed-in but no ticket: still redacted
	list, err = svc.GetMovieReviews(ctx, newUserID(), fx.movieID.String(), page)
	if err != nil {
		t.Fatalf("GetMovieReviews: %v", err)
	}
	if !list.Reviews[0].SpoilerHidden {
		t.Error("spoiler not hidden for unverified viewer")
	}
}

func TestSpoilerVisibleForVerifiedWatcher(t *testing.T) {
	fx, svc := newReviewFixture()
	ctx := context.Background()

	author := newUserID()
	fx.addProfile(mustUUID(t, author), "author")
	if _, err := svc.CreateReview(ctx, author, fx.movieID.String(), &request.CreateReviewRequest{
		Rating:    8,
		Comment:   "The ship was the station all along.",
		IsSpoiler: true,
	}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	// a booking, even for a future show, verifies the watcher immediately
	viewer := newUserID()
	booking := NewBookingService(fx.repo, zap.NewNop())
	if _, err := booking.CreateBooking(ctx, viewer, &request.CreateBookingRequest{
		ShowID:     fx.showID.String(),
		Seats:      []string{"A1"},
		TotalPrice: 25000,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	list, err := svc.GetMovieReviews(ctx, viewer, fx.movieID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetMovieReviews: %v", err)
	}
	if !list.VerifiedWatcher {
		t.Error("ticket holder not reported as verified watcher")
	}
	if list.Reviews[0].SpoilerHidden {
		t.Error("spoiler hidden from verified watcher")
	}
	if list.Reviews[0].Comment != "The ship was the station all along." {
		t.Errorf("comment = %q, want full body", list.Reviews[0].Comment)
	}
}

func TestAuthorSeesOwnSpoilerReview(t *testing.T) {
	fx, svc := newReviewFixture()
	ctx := context.Background()

	author := newUserID()
	fx.addProfile(mustUUID(t, author), "author")
	if _, err := svc.CreateReview(ctx, author, fx.movieID.String(), &request.CreateReviewRequest{
		Rating:    7,
		Comment:   "Big twist at the end.",
		IsSpoiler: true,
	}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	// author has no ticket, but their own review is never redacted
	list, err := svc.GetMovieReviews(ctx, author, fx.movieID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetMovieReviews: %v", err)
	}
	if list.Reviews[0].SpoilerHidden {
		t.Error("author's own spoiler review was hidden from them")
	}
}

func TestHasWatched(t *testing.T) {
	fx, svc := newReviewFixture()
	ctx := context.Background()
	viewer := mustUUID(t, newUserID())

	watched, err := svc.HasWatched(ctx, viewer, fx.movieID)
	if err != nil {
		t.Fatalf("HasWatched: %v", err)
	}
	if watched {
		t.Error("user with no tickets reported as watcher")
	}

	booking := NewBookingService(fx.repo, zap.NewNop())
	if _, err := booking.CreateBooking(ctx, viewer.String(), &request.CreateBookingRequest{
		ShowID:     fx.showID.String(),
		Seats:      []string{"B1"},
		TotalPrice: 25000,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	watched, err = svc.HasWatched(ctx, viewer, fx.movieID)
	if err != nil {
		t.Fatalf("HasWatched: %v", err)
	}
	if !watched {
		t.Error("confirmed ticket holder not reported as watcher")
	}

	// the ticket verifies only this movie
	otherMovie := mustUUID(t, newUserID())
	watched, err = svc.HasWatched(ctx, viewer, otherMovie)
	if err != nil {
		t.Fatalf("HasWatched: %v", err)
	}
	if watched {
		t.Error("watcher status leaked to an unrelated movie")
	}
}
