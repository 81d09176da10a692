package library

import (
	"math"
	"sort"

	"github.com/desertthunder/uta/internal/models"
)

// highScoreThreshold marks the cutoff for the high-score listing.
const highScoreThreshold = 85

const (
	topArtistLimit   = 5
	topCategoryLimit = 3
	highScoreLimit   = 3
)

// GroupCount is one entry of a grouped top-N listing.
type GroupCount struct {
	Name  string
	Count int
}

// Stats aggregates the full collection. It is derived on demand and is not
// affected by list-view filters.
type Stats struct {
	Total          int
	FavoriteCount  int
	AverageScore   int
	TagCounts      map[string]int
	TopArtists     []GroupCount
	TopCategories  []GroupCount
	HighScoreSongs []models.Song
}

// TagCount returns the number of songs carrying the named tag.
func (st Stats) TagCount(name string) int {
	return st.TagCounts[name]
}

// topGroups counts songs per key and returns the n largest groups, count
// descending. Ties keep first-encountered order. Songs with an empty key
// are excluded rather than counted under a blank group.
func topGroups(songs []models.Song, n int, keyOf func(models.Song) string) []GroupCount {
	index := make(map[string]int)
	var groups []GroupCount

	for _, s := range songs {
		key := keyOf(s)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GroupCount{Name: key, Count: 1})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// Aggregate computes collection statistics.
//
// The average is the round-half-up arithmetic mean over songs with a
// recorded score, or 0 when none have one.
func Aggregate(songs []models.Song) Stats {
	st := Stats{
		Total:     len(songs),
		TagCounts: make(map[string]int),
	}

	scored := 0
	scoreSum := 0
	for _, s := range songs {
		if s.IsFavorite {
			st.FavoriteCount++
		}
		if s.Score != nil {
			scored++
			scoreSum += *s.Score
		}
		for _, t := range s.Tags {
			st.TagCounts[t.Name]++
		}
	}

	if scored > 0 {
		st.AverageScore = int(math.Floor(float64(scoreSum)/float64(scored) + 0.5))
	}

	st.TopArtists = topGroups(songs, topArtistLimit, func(s models.Song) string { return s.Artist })
	st.TopCategories = topGroups(songs, topCategoryLimit, func(s models.Song) string { return s.Category })

	var high []models.Song
	for _, s := range songs {
		if s.ScoreOrZero() >= highScoreThreshold {
			high = append(high, s)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].ScoreOrZero() > high[j].ScoreOrZero()
	})
	if len(high) > highScoreLimit {
		high = high[:highScoreLimit]
	}
	st.HighScoreSongs = high

	return st
}
