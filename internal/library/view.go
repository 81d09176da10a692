package library

import (
	"sort"
	"strings"

	"github.com/desertthunder/uta/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of the derived list view.
type SortKey string

const (
	SortTitle  SortKey = "title"
	SortArtist SortKey = "artist"
	SortScore  SortKey = "score"
	SortNone   SortKey = ""
)

// FilterAll disables a category or tag filter.
const FilterAll = "all"

// Query holds the user-selected view inputs: free-text term, category and
// tag filters, and sort key.
type Query struct {
	Term     string
	Category string
	Tag      string
	Sort     SortKey
}

// matches reports whether a song passes all three filters: term
// case-insensitively contained in title or artist, category equality, and
// tag-name membership.
func (q Query) matches(s models.Song) bool {
	if q.Term != "" {
		term := strings.ToLower(q.Term)
		if !strings.Contains(strings.ToLower(s.Title), term) &&
			!strings.Contains(strings.ToLower(s.Artist), term) {
			return false
		}
	}
	if q.Category != "" && q.Category != FilterAll && s.Category != q.Category {
		return false
	}
	if q.Tag != "" && q.Tag != FilterAll && !s.HasTag(q.Tag) {
		return false
	}
	return true
}

// Apply derives a filtered, sorted view of the collection.
//
// The sort is stable; title and artist order is locale-aware, score sorts
// descending with an unrecorded score treated as 0, and an unknown sort key
// preserves the incoming order. The input slice is never mutated.
func (q Query) Apply(songs []models.Song) []models.Song {
	out := make([]models.Song, 0, len(songs))
	for _, s := range songs {
		if q.matches(s) {
			out = append(out, s)
		}
	}

	switch q.Sort {
	case SortTitle:
		c := collate.New(language.Japanese)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortArtist:
		c := collate.New(language.Japanese)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Artist, out[j].Artist) < 0
		})
	case SortScore:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ScoreOrZero() > out[j].ScoreOrZero()
		})
	}

	return out
}
