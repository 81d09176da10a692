package library

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/services"
	"github.com/desertthunder/uta/internal/shared"
)

// historyLimit bounds the search history length; with exact-match dedup it
// keeps the history list small without needing persistence.
const historyLimit = 5

// HistoryStore optionally persists search history across runs.
// Implementations live in the repositories package; a nil store disables
// persistence entirely.
type HistoryStore interface {
	SaveQuery(query string) error
	LoadHistory(limit int) ([]string, error)
	ClearHistory() error
}

// Search owns the catalog result set and the search history.
//
// Results are replaced wholesale on every query, so the search view is
// stateless between queries. Lookup failures are absorbed: the result set
// resets to empty and the error is only logged.
type Search struct {
	catalog services.Catalog
	logger  *log.Logger
	store   HistoryStore

	mu        sync.Mutex
	results   []models.SearchResult
	history   []string
	searching bool
}

// NewSearch creates a search manager over the given catalog.
func NewSearch(catalog services.Catalog, logger *log.Logger) *Search {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Search{catalog: catalog, logger: logger}
}

// SetLogger replaces the search manager's logger.
func (s *Search) SetLogger(l *log.Logger) {
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// WithHistoryStore attaches persistence and seeds the in-memory history
// from it. Store failures are logged, never propagated.
func (s *Search) WithHistoryStore(store HistoryStore) *Search {
	s.mu.Lock()
	s.store = store
	logger := s.logger
	s.mu.Unlock()

	if store != nil {
		if history, err := store.LoadHistory(historyLimit); err != nil {
			logger.Warnf("failed to load search history: %v", err)
		} else {
			s.mu.Lock()
			s.history = history
			s.mu.Unlock()
		}
	}
	return s
}

// Results returns the current result set.
func (s *Search) Results() []models.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// History returns past queries, most recent first.
func (s *Search) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// IsSearching reports whether a lookup is in flight.
func (s *Search) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching
}

// recordQuery inserts the query at the front of the history unless an
// identical entry already exists anywhere in it (exact, case-sensitive
// match), then truncates to the cap. A repeated query is left in place
// without reordering.
func (s *Search) recordQuery(query string) {
	s.mu.Lock()
	for _, q := range s.history {
		if q == query {
			s.mu.Unlock()
			return
		}
	}
	s.history = append([]string{query}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
	store, logger := s.store, s.logger
	s.mu.Unlock()

	if store != nil {
		if err := store.SaveQuery(query); err != nil {
			logger.Warnf("failed to persist search query: %v", err)
		}
	}
}

// Search queries the catalog and replaces the result set wholesale.
//
// A query that trims to empty is a no-op. Catalog failures are logged and
// reset the results to empty rather than propagating; the searching flag is
// cleared in all cases.
func (s *Search) Search(ctx context.Context, query string) []models.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	s.recordQuery(query)

	s.mu.Lock()
	s.searching = true
	logger := s.logger
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.searching = false
		s.mu.Unlock()
	}()

	results, err := s.catalog.Search(ctx, query)
	if err != nil {
		logger.Warnf("%s search failed for %q: %v", s.catalog.Name(), query, err)
		results = nil
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	return results
}

// ClearHistory empties the search history. Current results are unaffected.
func (s *Search) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	store, logger := s.store, s.logger
	s.mu.Unlock()

	if store != nil {
		if err := store.ClearHistory(); err != nil {
			logger.Warnf("failed to clear persisted history: %v", err)
		}
	}
}
