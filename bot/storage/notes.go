package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dardva/Bot-for-remind/bot/models"
)

// CreateNote inserts a note. A nil groupID makes the note personal.
func (s *Store) CreateNote(ctx context.Context, authorID int64, groupID *int64, body string) (models.Note, error) {
	n := models.Note{AuthorID: authorID, Body: body}
	if groupID != nil {
		n.GroupID = sql.NullInt64{Int64: *groupID, Valid: true}
	}
	const q = `INSERT INTO notes (author_id, group_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := s.db.QueryRowxContext(ctx, q, n.AuthorID, n.GroupID, n.Body).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// NoteByID fetches a single note row.
func (s *Store) NoteByID(ctx context.Context, id int64) (models.Note, error) {
	var n models.Note
	const q = `SELECT id, author_id, group_id, body, created_at FROM notes WHERE id = $1`
	if err := s.db.GetContext(ctx, &n, q, id); err != nil {
		return models.Note{}, mapRowErr(err)
	}
	return n, nil
}

// NotesForUser lists the user's personal notes plus every note of groups
// the user belongs to, in canonical order.
func (s *Store) NotesForUser(ctx context.Context, userID int64) ([]models.NoteView, error) {
	var notes []models.NoteView
	const q = `SELECT n.id, n.body, n.author_id, n.group_id,
			g.name AS group_name, COALESCE(m.can_add_notes, FALSE) AS can_add_notes
		FROM notes n
		LEFT JOIN groups g ON g.id = n.group_id
		LEFT JOIN memberships m ON m.group_id = n.group_id AND m.user_id = $1
		WHERE (n.group_id IS NULL AND n.author_id = $1) OR m.user_id IS NOT NULL
		ORDER BY n.id`
	if err := s.db.SelectContext(ctx, &notes, q, userID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// NotesForGroup lists a group's shared notes with the viewer's grant attached.
func (s *Store) NotesForGroup(ctx context.Context, groupID, viewerID int64) ([]models.NoteView, error) {
	var notes []models.NoteView
	const q = `SELECT n.id, n.body, n.author_id, n.group_id,
			g.name AS group_name, COALESCE(m.can_add_notes, FALSE) AS can_add_notes
		FROM notes n
		JOIN groups g ON g.id = n.group_id
		LEFT JOIN memberships m ON m.group_id = n.group_id AND m.user_id = $1
		WHERE n.group_id = $2
		ORDER BY n.id`
	if err := s.db.SelectContext(ctx, &notes, q, viewerID, groupID); err != nil {
		return nil, fmt.Errorf("list group notes: %w", err)
	}
	return notes, nil
}

// UpdateNote replaces a note's text.
func (s *Store) UpdateNote(ctx context.Context, id int64, body string) error {
	const q = `UPDATE notes SET body = $1 WHERE id = $2`
	res, err := s.db.ExecContext(ctx, q, body, id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote removes a note row.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	const q = `DELETE FROM notes WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
