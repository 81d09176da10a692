// Package repositories implements SQLite persistence for offline support.
//
// The backend remains the source of truth; this package only mirrors it:
//
//   - [SongCache] : wholesale snapshot of the song list taken after each
//     successful load, read back when the backend is unreachable
//   - [HistoryRepository] : persisted search queries so history survives
//     restarts, implementing library.HistoryStore
//
// Both repositories create their schema on construction and treat the cache
// database as disposable.
package repositories
