package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dardva/Bot-for-remind/bot/models"
)

// CreateGroup inserts the group and the owner's membership row with the
// add-note grant in one transaction. A duplicate name for the same owner
// yields ErrAlreadyExists and leaves the store unchanged.
func (s *Store) CreateGroup(ctx context.Context, name string, ownerID int64) (models.Group, error) {
	g := models.Group{Name: name, OwnerID: ownerID}
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		const insGroup = `INSERT INTO groups (name, owner_id) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRowxContext(ctx, insGroup, name, ownerID).Scan(&g.ID); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("insert group: %w", err)
		}
		const insOwner = `INSERT INTO memberships (user_id, group_id, can_add_notes)
			VALUES ($1, $2, TRUE)`
		if _, err := tx.ExecContext(ctx, insOwner, ownerID, g.ID); err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GroupByID fetches a group row.
func (s *Store) GroupByID(ctx context.Context, id int64) (models.Group, error) {
	var g models.Group
	const q = `SELECT id, name, owner_id FROM groups WHERE id = $1`
	if err := s.db.GetContext(ctx, &g, q, id); err != nil {
		return models.Group{}, mapRowErr(err)
	}
	return g, nil
}

// GroupsForUser lists the groups the user belongs to, in canonical order.
func (s *Store) GroupsForUser(ctx context.Context, userID int64) ([]models.GroupView, error) {
	var groups []models.GroupView
	const q = `SELECT g.id, g.name, g.owner_id, ou.username AS owner_username, m.can_add_notes
		FROM memberships m
		JOIN groups g ON g.id = m.group_id
		JOIN users ou ON ou.id = g.owner_id
		WHERE m.user_id = $1
		ORDER BY g.id`
	if err := s.db.SelectContext(ctx, &groups, q, userID); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// RenameGroup updates the group name. ErrAlreadyExists when the owner
// already has a group with the new name.
func (s *Store) RenameGroup(ctx context.Context, groupID int64, name string) error {
	const q = `UPDATE groups SET name = $1 WHERE id = $2`
	res, err := s.db.ExecContext(ctx, q, name, groupID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("rename group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGroup removes the group; memberships and notes cascade.
func (s *Store) DeleteGroup(ctx context.Context, groupID int64) error {
	const q = `DELETE FROM groups WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, groupID)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TransferOwnership reassigns the group to a member and enables the
// add-note grant on the new owner's membership, atomically.
func (s *Store) TransferOwnership(ctx context.Context, groupID, newOwnerID int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		const upd = `UPDATE groups SET owner_id = $1 WHERE id = $2`
		res, err := tx.ExecContext(ctx, upd, newOwnerID, groupID)
		if err != nil {
			return fmt.Errorf("transfer ownership: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		const grant = `UPDATE memberships SET can_add_notes = TRUE
			WHERE user_id = $1 AND group_id = $2`
		res, err = tx.ExecContext(ctx, grant, newOwnerID, groupID)
		if err != nil {
			return fmt.Errorf("grant new owner: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// New owner must already be a member.
			return ErrNotFound
		}
		return nil
	})
}

// Membership fetches the join row between a user and a group.
func (s *Store) Membership(ctx context.Context, userID, groupID int64) (models.Membership, error) {
	var m models.Membership
	const q = `SELECT user_id, group_id, can_add_notes
		FROM memberships WHERE user_id = $1 AND group_id = $2`
	if err := s.db.GetContext(ctx, &m, q, userID, groupID); err != nil {
		return models.Membership{}, mapRowErr(err)
	}
	return m, nil
}

// Members lists a group's membership rows with user display data.
func (s *Store) Members(ctx context.Context, groupID int64) ([]models.MemberView, error) {
	var members []models.MemberView
	const q = `SELECT m.user_id, u.tg_id, u.username, u.first_name,
			m.group_id, g.name AS group_name, m.can_add_notes
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		JOIN groups g ON g.id = m.group_id
		WHERE m.group_id = $1
		ORDER BY m.user_id`
	if err := s.db.SelectContext(ctx, &members, q, groupID); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// MemberByTgID fetches a single member of the group by Telegram ID.
func (s *Store) MemberByTgID(ctx context.Context, groupID, tgID int64) (models.MemberView, error) {
	var m models.MemberView
	const q = `SELECT m.user_id, u.tg_id, u.username, u.first_name,
			m.group_id, g.name AS group_name, m.can_add_notes
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		JOIN groups g ON g.id = m.group_id
		WHERE m.group_id = $1 AND u.tg_id = $2`
	if err := s.db.GetContext(ctx, &m, q, groupID, tgID); err != nil {
		return models.MemberView{}, mapRowErr(err)
	}
	return m, nil
}

// RemoveMember deletes a membership row. The caller is responsible for
// rejecting removal of the owner before calling this.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID int64) error {
	const q = `DELETE FROM memberships WHERE group_id = $1 AND user_id = $2`
	res, err := s.db.ExecContext(ctx, q, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
