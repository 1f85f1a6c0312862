package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dardva/Bot-for-remind/bot/models"
)

// CreateRequest records an owner-initiated invitation. A duplicate pending
// invitation for the same user and group yields ErrAlreadyExists.
func (s *Store) CreateRequest(ctx context.Context, userID, groupID int64) (models.JoinRequest, error) {
	r := models.JoinRequest{UserID: userID, GroupID: groupID}
	const q = `INSERT INTO join_requests (user_id, group_id)
		VALUES ($1, $2)
		RETURNING id, created_at`
	err := s.db.QueryRowxContext(ctx, q, userID, groupID).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.JoinRequest{}, ErrAlreadyExists
		}
		return models.JoinRequest{}, fmt.Errorf("create request: %w", err)
	}
	return r, nil
}

// RequestsForUser lists pending invitations addressed to the user, joined
// with group and owner details, in canonical order.
func (s *Store) RequestsForUser(ctx context.Context, userID int64) ([]models.RequestView, error) {
	var requests []models.RequestView
	const q = `SELECT r.id, r.group_id, g.name AS group_name,
			ou.username AS owner_name, ou.tg_id AS owner_tg_id, r.created_at
		FROM join_requests r
		JOIN groups g ON g.id = r.group_id
		JOIN users ou ON ou.id = g.owner_id
		WHERE r.user_id = $1
		ORDER BY r.id`
	if err := s.db.SelectContext(ctx, &requests, q, userID); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// AcceptRequest consumes the pending invitation and creates the membership
// in one transaction. ErrNotFound when no invitation is pending;
// ErrAlreadyExists when the user is already a member.
func (s *Store) AcceptRequest(ctx context.Context, userID, groupID int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		const del = `DELETE FROM join_requests WHERE user_id = $1 AND group_id = $2`
		res, err := tx.ExecContext(ctx, del, userID, groupID)
		if err != nil {
			return fmt.Errorf("consume request: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		const ins = `INSERT INTO memberships (user_id, group_id, can_add_notes)
			VALUES ($1, $2, FALSE)`
		if _, err := tx.ExecContext(ctx, ins, userID, groupID); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("insert membership: %w", err)
		}
		return nil
	})
}

// PurgeRequestsBefore deletes invitations created before the cutoff and
// reports how many were removed.
func (s *Store) PurgeRequestsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM join_requests WHERE created_at < $1`
	res, err := s.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge requests: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
