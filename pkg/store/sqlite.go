package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
)

// SQLStore keeps records in a single SQLite table keyed by (owner, pin).
type SQLStore struct {
	db *sqlx.DB
}

// recordSQL represents a record row for SQL operations
type recordSQL struct {
	Owner    int64   `db:"owner"`
	Pin      int     `db:"pin"`
	URL      string  `db:"url"`
	UniqueBy string  `db:"unique_by"`
	Extract  string  `db:"extract_content"`
	LastPost *string `db:"last_post"`
	SendTo   int64   `db:"send_to"`
}

const recordsSchema = `
	CREATE TABLE IF NOT EXISTS records (
		owner           INTEGER NOT NULL,
		pin             INTEGER NOT NULL,
		url             TEXT NOT NULL,
		unique_by       TEXT NOT NULL,
		extract_content TEXT NOT NULL,
		last_post       TEXT,
		send_to         INTEGER NOT NULL,
		PRIMARY KEY (owner, pin)
	)`

// NewSQLStore opens the database and ensures the schema exists.
func NewSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, recordsSchema); err != nil {
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Load retrieves the record for the key, ErrNotFound if absent.
func (s *SQLStore) Load(ctx context.Context, key domain.Key) (*domain.Record, error) {
	var row recordSQL
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM records WHERE owner = ? AND pin = ?", key.Owner, key.Pin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load record %d-%d: %w", key.Owner, key.Pin, err)
	}

	return &domain.Record{
		URL:      row.URL,
		UniqueBy: domain.UniqueBy(row.UniqueBy),
		Extract:  domain.ExtractPolicy(row.Extract),
		LastPost: row.LastPost,
		SendTo:   row.SendTo,
	}, nil
}

// Save upserts the record for the key. Writes retry with backoff on
// SQLite lock errors since the bot and the scheduler share the database.
func (s *SQLStore) Save(ctx context.Context, key domain.Key, rec *domain.Record) error {
	row := recordSQL{
		Owner:    key.Owner,
		Pin:      key.Pin,
		URL:      rec.URL,
		UniqueBy: string(rec.UniqueBy),
		Extract:  string(rec.Extract),
		LastPost: rec.LastPost,
		SendTo:   rec.SendTo,
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		query := `
			INSERT OR REPLACE INTO records (owner, pin, url, unique_by, extract_content, last_post, send_to)
			VALUES (:owner, :pin, :url, :unique_by, :extract_content, :last_post, :send_to)
		`
		_, err := s.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("save record %d-%d: %w", key.Owner, key.Pin, err)}
		}
		return nil
	})
}

// Delete removes the record for the key. Deleting a missing key is an error.
func (s *SQLStore) Delete(ctx context.Context, key domain.Key) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE owner = ? AND pin = ?", key.Owner, key.Pin)
	if err != nil {
		return fmt.Errorf("delete record %d-%d: %w", key.Owner, key.Pin, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List enumerates all stored keys.
func (s *SQLStore) List(ctx context.Context) ([]domain.Key, error) {
	var rows []struct {
		Owner int64 `db:"owner"`
		Pin   int   `db:"pin"`
	}
	err := s.db.SelectContext(ctx, &rows, "SELECT owner, pin FROM records ORDER BY owner, pin")
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	keys := make([]domain.Key, len(rows))
	for i, r := range rows {
		keys[i] = domain.Key{Owner: r.Owner, Pin: r.Pin}
	}
	return keys, nil
}

// Close releases the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
