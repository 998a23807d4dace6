package usecase

import (
	"testing"
	"time"

	"movietix/internal/data/entity"

	"github.com/google/uuid"
)

func moodMovie(title, description string, genres ...string) *entity.Movie {
	return &entity.Movie{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Title:        title,
		Description:  description,
		Genres:       genres,
		IsNowShowing: true,
	}
}

func TestScoreMoviesByMoodRanking(t *testing.T) {
	movies := []*entity.Movie{
		moodMovie("Quiet Drama", "A slow family story", "Drama"),
		moodMovie("Space Battle", "Epic space action with battle scenes", "Action", "Sci-Fi"),
		moodMovie("Space Walk", "A calm space documentary", "Documentary"),
	}

	matches := scoreMoviesByMood("epic space action", movies)
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].movie.Title != "Space Battle" {
		t.Errorf("top match = %q, want Space Battle", matches[0].movie.Title)
	}
	if matches[0].score != 3 {
		t.Errorf("top score = %d, want 3", matches[0].score)
	}
	if matches[1].movie.Title != "Space Walk" || matches[1].score != 1 {
		t.Errorf("second match = %q score %d, want Space Walk score 1", matches[1].movie.Title, matches[1].score)
	}
}

func TestScoreMoviesByMoodShortWordsIgnored(t *testing.T) {
	movies := []*entity.Movie{
		moodMovie("An Ordinary Day", "It is a day of days", "Drama"),
	}

	// "a", "of", "in" are under three characters and must not match
	if matches := scoreMoviesByMood("a of in", movies); len(matches) != 0 {
		t.Errorf("matches = %d for filler-only mood, want 0", len(matches))
	}
}

func TestScoreMoviesByMoodLimit(t *testing.T) {
	var movies []*entity.Movie
	for i := 0; i < 6; i++ {
		movies = append(movies, moodMovie("Thriller Night", "A tense thriller", "Thriller"))
	}

	if matches := scoreMoviesByMood("tense thriller", movies); len(matches) != moodMatchLimit {
		t.Errorf("matches = %d, want capped at %d", len(matches), moodMatchLimit)
	}
}

func TestScoreMoviesByMoodCaseAndPunctuation(t *testing.T) {
	movies := []*entity.Movie{
		moodMovie("Romance in Paris", "A heartfelt ROMANTIC story", "Romance"),
	}

	matches := scoreMoviesByMood("Romantic, heartfelt!", movies)
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].score != 2 {
		t.Errorf("score = %d, want 2", matches[0].score)
	}
}

func TestScoreMoviesByMoodDuplicateKeywords(t *testing.T) {
	movies := []*entity.Movie{
		moodMovie("Funny Bones", "A funny comedy", "Comedy"),
	}

	// repeating a keyword must not inflate the score
	matches := scoreMoviesByMood("funny funny funny", movies)
	if len(matches) != 1 || matches[0].score != 1 {
		t.Fatalf("matches = %v, want single match with score 1", matches)
	}
}
