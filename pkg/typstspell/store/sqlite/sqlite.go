package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
	"github.com/cognicore/typstspell/pkg/typstspell/store"
)

// timeLayout has a fixed width so checked_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS personal_words (
	word TEXT PRIMARY KEY,
	added_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	path TEXT NOT NULL,
	mode TEXT NOT NULL,
	checked_at TEXT NOT NULL,
	words INTEGER NOT NULL DEFAULT 0,
	misses INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_words (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	word TEXT NOT NULL,
	UNIQUE(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS runs_checked_at ON runs(checked_at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// PersonalWords returns the personal dictionary, sorted
func (s *sqliteStore) PersonalWords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM personal_words ORDER BY word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// AddPersonalWords inserts lowercase words, ignoring ones already present
func (s *sqliteStore) AddPersonalWords(ctx context.Context, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO personal_words (word, added_at) VALUES (?, ?)
ON CONFLICT(word) DO NOTHING;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, w, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RemovePersonalWord deletes a word and reports whether it existed
func (s *sqliteStore) RemovePersonalWord(ctx context.Context, word string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM personal_words WHERE word = ?`,
		strings.ToLower(strings.TrimSpace(word)))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RecordRun inserts or replaces a run and its unknown words
func (s *sqliteStore) RecordRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("record run: %w: empty id", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, path, mode, checked_at, words, misses)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	path=excluded.path,
	mode=excluded.mode,
	checked_at=excluded.checked_at,
	words=excluded.words,
	misses=excluded.misses;
`
	_, err = tx.ExecContext(ctx, stmt,
		r.ID,
		r.Path,
		r.Mode,
		r.CheckedAt.UTC().Format(timeLayout),
		r.Words,
		r.Misses,
	)
	if err != nil {
		return err
	}

	if err := replaceRunWords(ctx, tx, r.ID, r.Unknown); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceRunWords(ctx context.Context, tx *sql.Tx, runID string, words []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_words WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_words (run_id, position, word) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, w := range words {
		if w == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, runID, i, w); err != nil {
			return err
		}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	r, err := s.loadRun(ctx, id)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// RecentRuns returns the newest runs first
func (s *sqliteStore) RecentRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id FROM runs
ORDER BY checked_at DESC, id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	runs := make([]store.Run, 0, len(ids))
	for _, id := range ids {
		r, err := s.loadRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func (s *sqliteStore) loadRun(ctx context.Context, id string) (store.Run, error) {
	var (
		r         store.Run
		checkedAt string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, path, mode, checked_at, words, misses
FROM runs WHERE id = ?;
`, id).Scan(&r.ID, &r.Path, &r.Mode, &checkedAt, &r.Words, &r.Misses)
	if err != nil {
		return store.Run{}, err
	}
	if t, err := time.Parse(timeLayout, checkedAt); err == nil {
		r.CheckedAt = t
	}

	rows, err := s.db.QueryContext(ctx, `SELECT word FROM run_words WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return store.Run{}, err
		}
		r.Unknown = append(r.Unknown, w)
	}
	return r, rows.Err()
}
