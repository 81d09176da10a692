package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/uta/internal/repositories"
	"github.com/desertthunder/uta/internal/shared"
	"github.com/urfave/cli/v3"
)

// withHistory attaches persisted search history when the cache database is
// available. Best effort; the in-memory history works without it. The
// database handle lives on the runner and is closed by Runner.Close.
func (r *Runner) withHistory() {
	if r.historyDB != nil {
		return
	}

	db, err := r.openCache()
	if err != nil {
		r.logger.Debugf("cache unavailable, history is in-memory only: %v", err)
		return
	}

	store, err := repositories.NewHistoryRepository(db)
	if err != nil {
		db.Close()
		r.logger.Debugf("cache unavailable, history is in-memory only: %v", err)
		return
	}
	r.historyDB = db
	r.search.WithHistoryStore(store)
}

// SearchRun queries the external catalog and prints the results.
func (r *Runner) SearchRun(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	r.withHistory()
	results := r.search.Search(ctx, query)

	if cmd.Bool("json") {
		return r.writeJSON(results, true)
	}

	if len(results) == 0 {
		r.writePlainln("no results for %q", query)
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("%s results for %q", r.catalog.Name(), query))
	for i, res := range results {
		year := ""
		if res.ReleaseYear > 0 {
			year = fmt.Sprintf(" (%d)", res.ReleaseYear)
		}
		r.writePlainln("%d. %s - %s / %s%s", i+1, res.Artist, res.Title, res.Album, year)
	}
	return nil
}

// SearchHistory prints recent catalog queries, most recent first.
func (r *Runner) SearchHistory(ctx context.Context, cmd *cli.Command) error {
	r.withHistory()

	history := r.search.History()
	if len(history) == 0 {
		r.writePlainln("no search history")
		return nil
	}

	for i, q := range history {
		r.writePlainln("%d. %s", i+1, q)
	}
	return nil
}

// SearchClear empties the search history.
func (r *Runner) SearchClear(ctx context.Context, cmd *cli.Command) error {
	r.withHistory()
	r.search.ClearHistory()
	r.writePlainln("✓ Search history cleared")
	return nil
}
