// Package notedb provides the SQLite-backed note store.
package notedb

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/storage"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	content      TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT 'general',
	is_important INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category);
`

// DB wraps a single long-lived sql.DB connection.
type DB struct {
	conn   *sql.DB
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// WithLogger sets the logger used for statement tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

const connParams = "_busy_timeout=5000&_foreign_keys=on"

// Open opens (or creates) the SQLite database and applies the schema.
// dsn is a file path or a "file:" URI that may carry its own query string.
func Open(dsn string, opts ...Option) (*DB, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	conn, err := sql.Open("sqlite3", dsn+sep+connParams)
	if err != nil {
		return nil, &apperr.StorageError{Op: "notedb: open db", Err: err}
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, &apperr.StorageError{Op: "notedb: ping", Err: err}
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, &apperr.StorageError{Op: "notedb: apply schema", Err: err}
	}

	db := &DB{conn: conn, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Count returns the number of stored notes.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM notes`).Scan(&n); err != nil {
		return 0, &apperr.StorageError{Op: "notedb: count", Err: err}
	}
	return n, nil
}

func (db *DB) timestamp() time.Time {
	return db.now().UTC().Truncate(time.Second)
}

// Verify *DB satisfies NoteStore at compile time.
var _ storage.NoteStore = (*DB)(nil)
