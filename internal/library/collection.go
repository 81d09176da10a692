package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/services"
	"github.com/desertthunder/uta/internal/shared"
)

// Collection owns the authoritative in-memory list of the user's songs.
//
// Every mutation is acknowledged by the backend before it is reflected
// locally: the local id set is always a subset of what the server holds.
// Overlapping updates to the same song are resolved by per-song mutation
// sequence numbers; a response older than the currently applied mutation
// is discarded instead of clobbering newer state.
type Collection struct {
	backend *services.BackendClient
	logger  *log.Logger

	mu      sync.Mutex
	songs   []models.Song
	applied map[int64]uint64 // highest mutation sequence applied per song id
	nextSeq uint64
}

// NewCollection creates a collection manager backed by the given client.
func NewCollection(backend *services.BackendClient, logger *log.Logger) *Collection {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Collection{
		backend: backend,
		logger:  logger,
		applied: make(map[int64]uint64),
	}
}

// SetLogger replaces the collection's logger.
func (c *Collection) SetLogger(l *log.Logger) {
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

// Songs returns a copy of the current song list.
func (c *Collection) Songs() []models.Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Song, len(c.songs))
	copy(out, c.songs)
	return out
}

// Get returns the song with the given id, if the collection holds it.
func (c *Collection) Get(id int64) (models.Song, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.songs {
		if s.ID == id {
			return s, true
		}
	}
	return models.Song{}, false
}

// Len returns the number of songs currently held.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.songs)
}

// Load fetches the full song list and replaces local state wholesale.
// On failure the list stays whatever it was before; the error is logged
// and returned so callers can fall back to cached data.
func (c *Collection) Load(ctx context.Context) error {
	songs, err := c.backend.ListSongs(ctx)
	if err != nil {
		c.logger.Warnf("failed to load songs: %v", err)
		return err
	}

	c.mu.Lock()
	c.songs = songs
	c.mu.Unlock()
	return nil
}

// claim reserves the next mutation sequence number for a song id.
func (c *Collection) claim() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

// apply replaces the local entry for id with the server response, unless a
// newer mutation has already been applied. Reports whether it took effect.
func (c *Collection) apply(id int64, seq uint64, song models.Song) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied[id] {
		c.logger.Debugf("discarding stale response for song %d (seq %d < %d)", id, seq, c.applied[id])
		return false
	}
	c.applied[id] = seq

	for i, s := range c.songs {
		if s.ID == id {
			c.songs[i] = song
			return true
		}
	}
	return false
}

// Add persists a draft and appends the server-assigned record to the list.
//
// The draft must already carry resolved tags; a blank jacket is substituted
// with a generated placeholder keyed by title. Blank required fields fail
// with [shared.ErrValidation] before any request is sent.
func (c *Collection) Add(ctx context.Context, draft models.Song) (*models.Song, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	if draft.Jacket == "" {
		draft.Jacket = models.PlaceholderJacket(draft.Title)
	}

	song, err := c.backend.CreateSong(ctx, models.RequestFromSong(draft))
	if err != nil {
		c.logger.Warnf("failed to add song %q: %v", draft.Title, err)
		return nil, err
	}

	c.mu.Lock()
	c.songs = append(c.songs, *song)
	c.mu.Unlock()

	return song, nil
}

// Update sends a full-song update keyed by id and replaces the matching
// local entry only after the server acknowledges. Local state is untouched
// on failure.
func (c *Collection) Update(ctx context.Context, id int64, song models.Song) (*models.Song, error) {
	seq := c.claim()

	updated, err := c.backend.UpdateSong(ctx, id, models.RequestFromSong(song))
	if err != nil {
		c.logger.Warnf("failed to update song %d: %v", id, err)
		return nil, err
	}

	c.apply(id, seq, *updated)
	return updated, nil
}

// ToggleFavorite flips the favorite flag via a partial patch.
//
// An id the collection does not hold is a silent no-op. The local entry is
// replaced with the server response on acknowledgment.
func (c *Collection) ToggleFavorite(ctx context.Context, id int64) error {
	current, ok := c.Get(id)
	if !ok {
		c.logger.Debugf("toggle favorite: song %d not in collection", id)
		return nil
	}

	seq := c.claim()

	updated, err := c.backend.UpdateSong(ctx, id, models.FavoritePatch(!current.IsFavorite))
	if err != nil {
		c.logger.Warnf("failed to toggle favorite for song %d: %v", id, err)
		return err
	}

	c.apply(id, seq, *updated)
	return nil
}

// Delete removes a song server-side, then drops it from the local list.
// The list is not modified if the request fails.
func (c *Collection) Delete(ctx context.Context, id int64) error {
	if err := c.backend.DeleteSong(ctx, id); err != nil {
		c.logger.Warnf("failed to delete song %d: %v", id, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.songs {
		if s.ID == id {
			c.songs = append(c.songs[:i], c.songs[i+1:]...)
			break
		}
	}
	delete(c.applied, id)
	return nil
}
