package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/acronyms/pkg/acronyms"
	"github.com/cognicore/acronyms/pkg/acronyms/internalerr"
	"github.com/cognicore/acronyms/pkg/acronyms/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	ids *store.IDGenerator
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:  db,
		ids: store.NewIDGenerator(),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	source TEXT,
	sentences INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_pairs (
	run_id TEXT NOT NULL,
	acronym TEXT NOT NULL,
	expansion TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, acronym, expansion),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_pairs_pair ON run_pairs(acronym, expansion);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run and its frequency table
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) (store.Run, error) {
	r = store.Prepare(r, s.ids)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Run{}, err
	}
	defer tx.Rollback()

	const upsertRun = `
INSERT INTO runs (id, created_at, source, sentences)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	source=excluded.source,
	sentences=excluded.sentences;
`
	if _, err := tx.ExecContext(ctx, upsertRun, r.ID, r.CreatedAt.UnixNano(), r.Source, r.Sentences); err != nil {
		return store.Run{}, fmt.Errorf("save run %s: %w", r.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_pairs WHERE run_id = ?`, r.ID); err != nil {
		return store.Run{}, fmt.Errorf("clear pairs for %s: %w", r.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_pairs (run_id, acronym, expansion, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return store.Run{}, err
	}
	defer stmt.Close()

	for c, n := range r.Table {
		if _, err := stmt.ExecContext(ctx, r.ID, c.Acronym, string(c.Expansion), n); err != nil {
			return store.Run{}, fmt.Errorf("save pair %s: %w", c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// GetRun loads a run and its table
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		r       store.Run
		created int64
		source  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, sentences FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &created, &source, &r.Sentences)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	r.Source = source.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT acronym, expansion, count FROM run_pairs WHERE run_id = ?`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer rows.Close()

	r.Table = acronyms.NewTable()
	for rows.Next() {
		var (
			c acronyms.Candidate
			n int64
		)
		if err := rows.Scan(&c.Acronym, &c.Expansion, &n); err != nil {
			return store.Run{}, err
		}
		r.Table.Add(c, n)
	}
	return r, rows.Err()
}

// ListRuns returns run summaries, newest first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, source, sentences
FROM runs
ORDER BY created_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var (
			r       store.Run
			created int64
			source  sql.NullString
		)
		if err := rows.Scan(&r.ID, &created, &source, &r.Sentences); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(0, created).UTC()
		r.Source = source.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TopPairs sums pair counts over every stored run
func (s *sqliteStore) TopPairs(ctx context.Context, k int) ([]acronyms.Entry, error) {
	if k <= 0 {
		k = -1
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT acronym, expansion, SUM(count) AS total
FROM run_pairs
GROUP BY acronym, expansion
ORDER BY total DESC, acronym ASC, expansion ASC
LIMIT ?`, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []acronyms.Entry
	for rows.Next() {
		var e acronyms.Entry
		if err := rows.Scan(&e.Acronym, &e.Expansion, &e.Count); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
