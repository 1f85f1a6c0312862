// Package storage is the typed gateway over the persisted entities. Every
// multi-row mutation runs inside a single transaction; callers receive
// ErrAlreadyExists / ErrNotFound instead of driver-level errors.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store executes relational operations over the bot's entities.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// withTx runs fn inside a transaction, rolling back on any error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
