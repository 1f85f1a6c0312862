package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAlreadyExists reports a uniqueness invariant violation, such as a
	// duplicate group name for the same owner.
	ErrAlreadyExists = errors.New("storage: already exists")
	// ErrNotFound reports that a referenced row does not exist.
	ErrNotFound = errors.New("storage: not found")
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// mapRowErr converts driver-level sentinels into the storage taxonomy.
func mapRowErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrAlreadyExists
	default:
		return err
	}
}
