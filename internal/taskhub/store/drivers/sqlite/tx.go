package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/nightowllabs/taskhub/internal/taskhub/store"
)

// WithTx runs fn against a transaction-scoped view of the store. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore is a store.Store scoped to one open transaction.
type txStore struct {
	tx dbtx
}

var _ store.Store = (*txStore)(nil)

func (t *txStore) Users() store.UserRepo { return &usersRepo{conn: t.tx} }
func (t *txStore) Tasks() store.TaskRepo { return &tasksRepo{conn: t.tx} }

// WithTx inside an open transaction joins it rather than nesting.
func (t *txStore) WithTx(_ context.Context, fn func(tx store.Store) error) error {
	return fn(t)
}

func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: cannot run migrations inside a transaction")
}

func (t *txStore) Close() error { return nil }
