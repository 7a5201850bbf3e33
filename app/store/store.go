package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// ErrNotFound returned when the job doesn't exist
var ErrNotFound = errors.New("not found")

// ErrInvalid returned for invalid input, like an empty company or unknown status
var ErrInvalid = errors.New("invalid input")

// Store implements job and event persistence on top of SQLite
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// New opens (or creates) the database file and makes sure the schema is in place.
// busyTimeout is how long sqlite waits for a lock held by another process.
func New(dbFile string, busyTimeout time.Duration) (*Store, error) {
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_txlock=immediate",
		dbFile, busyTimeout.Milliseconds())
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer, pragmas above apply per connection
	db.SetMaxOpenConns(1)

	// enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.Initialize(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Printf("[DEBUG] store ready, %s", dbFile)
	return s, nil
}

// Initialize creates the database schema and applies migrations. Safe to call on every start.
func (s *Store) Initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			title TEXT NOT NULL,
			posting_url TEXT,
			application_url TEXT,
			location TEXT,
			salary TEXT,
			description TEXT,
			status TEXT DEFAULT 'interested',
			source TEXT DEFAULT 'manual',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			event_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			notes TEXT,
			resume_path TEXT,
			cover_letter_path TEXT,
			FOREIGN KEY (job_id) REFERENCES jobs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_job_id ON events(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_date ON events(event_date)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_updated_at ON jobs(updated_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return s.migrate(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// inTx runs fn in a transaction, commits if fn succeeded
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullable converts empty string to NULL
func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
