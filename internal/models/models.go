// package models defines the data model for the karaoke repertoire client
package models

import (
	"fmt"
	"net/url"
)

// Tag is a classification label with a stable numeric id drawn from a fixed vocabulary.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Song represents one user-owned repertoire entry as returned by the backend.
//
// Key is a semitone offset from the original recording in [-5, 5].
// Score is nil when no score has been recorded.
type Song struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Key        int    `json:"key"`
	Score      *int   `json:"score"`
	Memo       string `json:"memo"`
	Lyrics     string `json:"lyrics"`
	Jacket     string `json:"jacket"`
	Category   string `json:"category"`
	Machine    string `json:"machine"`
	IsFavorite bool   `json:"isFavorite"`
	Tags       []Tag  `json:"tags"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// HasTag reports whether the song carries a tag with the given display name.
func (s Song) HasTag(name string) bool {
	for _, t := range s.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ScoreOrZero returns the recorded score, or 0 when none exists.
// Sorting and averaging treat an unrecorded score as zero.
func (s Song) ScoreOrZero() int {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// Validate checks the client-enforced constraints before a draft is submitted.
func (s Song) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}
	if s.Artist == "" {
		return fmt.Errorf("artist is required")
	}
	if s.Key < -5 || s.Key > 5 {
		return fmt.Errorf("key offset %d out of range [-5, 5]", s.Key)
	}
	if s.Score != nil && (*s.Score < 0 || *s.Score > 100) {
		return fmt.Errorf("score %d out of range [0, 100]", *s.Score)
	}
	return nil
}

// SongRequest is the wire shape for POST/PUT /api/songs.
//
// All fields are optional so the same type serves full updates and
// partial patches (a favorite toggle sends only IsFavorite). TagIDs is
// a pointer to a slice so that a full update can send an explicit empty
// list, which clears the tag set; an absent field leaves it untouched.
type SongRequest struct {
	Title      *string `json:"title,omitempty"`
	Artist     *string `json:"artist,omitempty"`
	Key        *int    `json:"key,omitempty"`
	Score      *int    `json:"score,omitempty"`
	Memo       *string `json:"memo,omitempty"`
	Lyrics     *string `json:"lyrics,omitempty"`
	Jacket     *string `json:"jacket,omitempty"`
	Category   *string `json:"category,omitempty"`
	Machine    *string `json:"machine,omitempty"`
	IsFavorite *bool   `json:"isFavorite,omitempty"`
	TagIDs     *[]int  `json:"tagIds,omitempty"`
}

// RequestFromSong builds a full SongRequest from a song, deriving tagIds
// from the song's tag set. The tagIds field is always present, so a song
// with no tags produces a request that clears them.
func RequestFromSong(s Song) SongRequest {
	ids := TagIDs(s.Tags)
	return SongRequest{
		Title:      &s.Title,
		Artist:     &s.Artist,
		Key:        &s.Key,
		Score:      s.Score,
		Memo:       &s.Memo,
		Lyrics:     &s.Lyrics,
		Jacket:     &s.Jacket,
		Category:   &s.Category,
		Machine:    &s.Machine,
		IsFavorite: &s.IsFavorite,
		TagIDs:     &ids,
	}
}

// FavoritePatch builds the partial patch used by favorite toggles.
func FavoritePatch(v bool) SongRequest {
	return SongRequest{IsFavorite: &v}
}

// TagIDs extracts the numeric ids from a tag set, preserving order.
// The result is never nil so it marshals as [] rather than disappearing.
func TagIDs(tags []Tag) []int {
	ids := make([]int, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// User represents the authenticated account.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// SearchResult is a transient catalog hit. It is never persisted; a result
// is either discarded on the next search or converted into a song draft.
type SearchResult struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	ReleaseYear int     `json:"releaseYear"`
	Artwork     *string `json:"artwork"`
}

// Draft seeds a not-yet-saved song from a catalog hit ("add from search").
// The jacket falls back to a generated placeholder when the hit has no artwork.
func (r SearchResult) Draft() Song {
	jacket := PlaceholderJacket(r.Title)
	if r.Artwork != nil && *r.Artwork != "" {
		jacket = *r.Artwork
	}
	return Song{
		Title:    r.Title,
		Artist:   r.Artist,
		Jacket:   jacket,
		Category: "J-POP",
		Machine:  "DAM",
	}
}

// PlaceholderJacket returns the generated placeholder art URL keyed by title.
func PlaceholderJacket(title string) string {
	return fmt.Sprintf("/placeholder.svg?height=300&width=300&text=%s", url.QueryEscape(title))
}
