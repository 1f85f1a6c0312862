package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dardva/Bot-for-remind/bot/models"
)

// CreateUser inserts a new user row. Returns ErrAlreadyExists when the
// Telegram ID is already registered.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (tg_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := s.db.QueryRowxContext(ctx, q, u.TgID, u.Username, u.FirstName, u.LastName).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UserByTgID resolves a Telegram identity to the internal user row.
func (s *Store) UserByTgID(ctx context.Context, tgID int64) (models.User, error) {
	var u models.User
	const q = `SELECT id, tg_id, username, first_name, last_name, created_at
		FROM users WHERE tg_id = $1`
	if err := s.db.GetContext(ctx, &u, q, tgID); err != nil {
		return models.User{}, mapRowErr(err)
	}
	return u, nil
}

// UserByID fetches a user by internal id.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	const q = `SELECT id, tg_id, username, first_name, last_name, created_at
		FROM users WHERE id = $1`
	if err := s.db.GetContext(ctx, &u, q, id); err != nil {
		return models.User{}, mapRowErr(err)
	}
	return u, nil
}

// UserByUsername fetches a user by Telegram username, without the @ prefix.
func (s *Store) UserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	const q = `SELECT id, tg_id, username, first_name, last_name, created_at
		FROM users WHERE username = $1`
	if err := s.db.GetContext(ctx, &u, q, username); err != nil {
		return models.User{}, mapRowErr(err)
	}
	return u, nil
}

// NullString builds a nullable column value from an optional string.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
