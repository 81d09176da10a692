package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/uta/internal/shared"
)

// HistoryRepository persists search queries so history survives restarts.
//
// Implements library.HistoryStore. A repeated query is ignored rather than
// re-inserted, preserving its original position in the ordering.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates the repository, creating the table if needed.
func NewHistoryRepository(db *sql.DB) (*HistoryRepository, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id         TEXT PRIMARY KEY,
			query      TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create search_history table: %w", err)
	}

	return &HistoryRepository{db: db}, nil
}

// SaveQuery records a query. Duplicates are silently ignored.
func (r *HistoryRepository) SaveQuery(query string) error {
	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO search_history (id, query) VALUES (?, ?)",
		shared.GenerateID(), query,
	)
	if err != nil {
		return fmt.Errorf("failed to save query: %w", err)
	}
	return nil
}

// LoadHistory returns persisted queries, most recent first, capped at limit.
func (r *HistoryRepository) LoadHistory(limit int) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT query FROM search_history ORDER BY rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		history = append(history, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return history, nil
}

// ClearHistory empties the persisted history.
func (r *HistoryRepository) ClearHistory() error {
	if _, err := r.db.Exec("DELETE FROM search_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
