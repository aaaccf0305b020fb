// Package sqlite implements the store interfaces on top of a SQLite
// database file using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nightowllabs/taskhub/internal/taskhub/store"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, letting
// the repositories run unchanged inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite-backed implementation of store.Store.
type Store struct {
	db   *sql.DB
	conn dbtx
}

var _ store.Store = (*Store)(nil)

// NewStore opens (or creates) the database at path. Foreign keys are enforced
// and the pool is capped at a single connection, which is how SQLite wants to
// be written to anyway.
func NewStore(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	s.conn = db
	return s, nil
}

func (s *Store) Users() store.UserRepo { return &usersRepo{conn: s.conn} }
func (s *Store) Tasks() store.TaskRepo { return &tasksRepo{conn: s.conn} }

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// timeFormat is the column encoding for timestamps. RFC3339 in UTC at second
// precision compares lexicographically in date order, so range queries work
// on the raw text.
const timeFormat = time.RFC3339

func encodeTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeFormat)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func encodeNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}

func decodeNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := decodeTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// mapWriteError converts driver-level constraint failures into the store's
// sentinel errors.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}
