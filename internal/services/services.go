// package services defines HTTP clients for the repertoire backend and
// the external song catalog
package services

import (
	"context"

	"github.com/desertthunder/uta/internal/models"
)

// Catalog defines the interface for external song-catalog lookup.
//
// The production implementation queries the iTunes Search API; tests use a
// canned mock. The search manager treats the catalog as a pluggable
// collaborator and never depends on a concrete implementation.
type Catalog interface {
	// Search looks up songs by free-text term.
	Search(ctx context.Context, term string) ([]models.SearchResult, error)

	// Name returns the catalog name for logging (e.g. "iTunes")
	Name() string
}
