package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/bot/storage"
	"github.com/Dardva/Bot-for-remind/core/logger"
	"log/slog"
)

// NoteService implements note flows with author/grant gating.
type NoteService struct {
	store *storage.Store
}

// List returns the user's personal notes plus member-visible group notes.
func (s *NoteService) List(ctx context.Context, userID int64) ([]models.NoteView, error) {
	return s.store.NotesForUser(ctx, userID)
}

// ListForGroup returns the group's shared notes as seen by the viewer.
// Members only: callback data is client-controlled, so the group id in a
// token cannot be trusted to name a group the viewer belongs to.
func (s *NoteService) ListForGroup(ctx context.Context, groupID, viewerID int64) ([]models.NoteView, error) {
	if _, err := s.store.Membership(ctx, viewerID, groupID); err != nil {
		return nil, err
	}
	return s.store.NotesForGroup(ctx, groupID, viewerID)
}

// Add creates a note. With a group target the author must be the owner or
// hold the add-note grant; without one the note is personal.
func (s *NoteService) Add(ctx context.Context, authorID int64, groupID *int64, body string) (models.Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Note{}, ErrInvalidInput
	}
	if groupID != nil {
		g, err := s.store.GroupByID(ctx, *groupID)
		if err != nil {
			return models.Note{}, err
		}
		membership, err := s.membershipOrNil(ctx, authorID, *groupID)
		if err != nil {
			return models.Note{}, err
		}
		if !CanAddGroupNote(authorID, g, membership) {
			return models.Note{}, ErrPermissionDenied
		}
	}
	n, err := s.store.CreateNote(ctx, authorID, groupID, body)
	if err != nil {
		return models.Note{}, err
	}
	logger.SVCNotes.LogAttrs(ctx, slog.LevelInfo, "note.created",
		slog.String("event", "note.create"),
		slog.Int64("note_id", n.ID),
	)
	return n, nil
}

// Edit replaces a note's text, gated by CanEditNote.
func (s *NoteService) Edit(ctx context.Context, actorID, noteID int64, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrInvalidInput
	}
	n, err := s.store.NoteByID(ctx, noteID)
	if err != nil {
		return err
	}
	membership, err := s.noteMembership(ctx, actorID, n)
	if err != nil {
		return err
	}
	if !CanEditNote(actorID, n, membership) {
		return ErrPermissionDenied
	}
	return s.store.UpdateNote(ctx, noteID, body)
}

// Delete removes a note, gated by CanEditNote.
func (s *NoteService) Delete(ctx context.Context, actorID, noteID int64) error {
	n, err := s.store.NoteByID(ctx, noteID)
	if err != nil {
		return err
	}
	membership, err := s.noteMembership(ctx, actorID, n)
	if err != nil {
		return err
	}
	if !CanEditNote(actorID, n, membership) {
		return ErrPermissionDenied
	}
	if err := s.store.DeleteNote(ctx, noteID); err != nil {
		return err
	}
	logger.SVCNotes.LogAttrs(ctx, slog.LevelInfo, "note.deleted",
		slog.String("event", "note.delete"),
		slog.Int64("note_id", noteID),
	)
	return nil
}

func (s *NoteService) noteMembership(ctx context.Context, userID int64, n models.Note) (*models.Membership, error) {
	if !n.GroupID.Valid {
		return nil, nil
	}
	return s.membershipOrNil(ctx, userID, n.GroupID.Int64)
}

func (s *NoteService) membershipOrNil(ctx context.Context, userID, groupID int64) (*models.Membership, error) {
	m, err := s.store.Membership(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
