package usecase

import (
	"sort"
	"strings"

	"movietix/internal/data/entity"
)

const (
	moodKeywordMinLen = 3
	moodMatchLimit    = 3
)

type moodMatch struct {
	movie *entity.Movie
	score int
}

// scoreMoviesByMood ranks movies by how many mood keywords appear in their
// title, description or genres. Keywords shorter than three characters are
// dropped so fillers like "a" and "of" don't match everything. Returns at
// most three matches, best first; ties keep catalog order.
func scoreMoviesByMood(mood string, movies []*entity.Movie) []moodMatch {
	keywords := extractMoodKeywords(mood)
	if len(keywords) == 0 {
		return nil
	}

	var matches []moodMatch
	for _, movie := range movies {
		haystack := strings.ToLower(
			movie.Title + " " + movie.Description + " " + strings.Join(movie.Genres, " "),
		)

		score := 0
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, moodMatch{movie: movie, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > moodMatchLimit {
		matches = matches[:moodMatchLimit]
	}
	return matches
}

func extractMoodKeywords(mood string) []string {
	fields := strings.Fields(strings.ToLower(mood))

	seen := make(map[string]struct{}, len(fields))
	var keywords []string
	for _, field := range fields {
		word := strings.Trim(field, ".,!?;:'\"()")
		if len(word) < moodKeywordMinLen {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}
