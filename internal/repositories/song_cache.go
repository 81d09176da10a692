package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/uta/internal/models"
)

// SongCache stores a snapshot of the song collection.
//
// ReplaceAll mirrors the in-memory list wholesale after a successful load;
// List reads the snapshot back for offline listing.
type SongCache struct {
	db *sql.DB
}

// NewSongCache creates the cache over the given database, creating the
// songs table if needed.
func NewSongCache(db *sql.DB) (*SongCache, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id          INTEGER PRIMARY KEY,
			title       TEXT NOT NULL,
			artist      TEXT NOT NULL,
			key_offset  INTEGER NOT NULL DEFAULT 0,
			score       INTEGER,
			memo        TEXT NOT NULL DEFAULT '',
			lyrics      TEXT NOT NULL DEFAULT '',
			jacket      TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			machine     TEXT NOT NULL DEFAULT '',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			tags        TEXT NOT NULL DEFAULT '[]',
			created_at  TEXT NOT NULL DEFAULT '',
			updated_at  TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create songs table: %w", err)
	}

	return &SongCache{db: db}, nil
}

// ReplaceAll overwrites the snapshot with the given song list atomically.
func (r *SongCache) ReplaceAll(songs []models.Song) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM songs"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	query := `
		INSERT INTO songs (id, title, artist, key_offset, score, memo, lyrics, jacket, category, machine, is_favorite, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, song := range songs {
		tags, err := json.Marshal(song.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for song %d: %w", song.ID, err)
		}

		var score any
		if song.Score != nil {
			score = *song.Score
		}

		_, err = tx.Exec(query,
			song.ID,
			song.Title,
			song.Artist,
			song.Key,
			score,
			song.Memo,
			song.Lyrics,
			song.Jacket,
			song.Category,
			song.Machine,
			song.IsFavorite,
			string(tags),
			song.CreatedAt,
			song.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert song %d: %w", song.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// List reads the snapshot back in insertion order.
func (r *SongCache) List() ([]models.Song, error) {
	rows, err := r.db.Query(`
		SELECT id, title, artist, key_offset, score, memo, lyrics, jacket, category, machine, is_favorite, tags, created_at, updated_at
		FROM songs
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		var score sql.NullInt64
		var favorite int
		var tags string

		err := rows.Scan(
			&song.ID,
			&song.Title,
			&song.Artist,
			&song.Key,
			&score,
			&song.Memo,
			&song.Lyrics,
			&song.Jacket,
			&song.Category,
			&song.Machine,
			&favorite,
			&tags,
			&song.CreatedAt,
			&song.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}

		if score.Valid {
			v := int(score.Int64)
			song.Score = &v
		}
		song.IsFavorite = favorite != 0

		if err := json.Unmarshal([]byte(tags), &song.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for song %d: %w", song.ID, err)
		}

		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot: %w", err)
	}

	return songs, nil
}
