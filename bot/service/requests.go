package service

import (
	"context"
	"errors"
	"time"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/bot/storage"
	"github.com/Dardva/Bot-for-remind/core/logger"
	"log/slog"
)

// RequestService implements the invitation flow: owners invite, invitees
// accept, the sweep purges whatever went stale.
type RequestService struct {
	store *storage.Store
}

// List returns pending invitations addressed to the user.
func (s *RequestService) List(ctx context.Context, userID int64) ([]models.RequestView, error) {
	return s.store.RequestsForUser(ctx, userID)
}

// Invite creates a pending invitation from the group owner to the user
// referenced by "@username" or a numeric Telegram ID. Returns the resolved
// invitee so the caller can notify them.
func (s *RequestService) Invite(ctx context.Context, actorID, groupID int64, ref string) (models.User, models.Group, error) {
	g, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return models.User{}, models.Group{}, err
	}
	if !CanManageGroup(actorID, g) {
		return models.User{}, models.Group{}, ErrPermissionDenied
	}
	invitee, err := (&UserService{store: s.store}).Resolve(ctx, ref)
	if err != nil {
		return models.User{}, models.Group{}, err
	}
	if invitee.ID == actorID {
		return models.User{}, models.Group{}, ErrInvalidInput
	}
	if _, err := s.store.Membership(ctx, invitee.ID, groupID); err == nil {
		return models.User{}, models.Group{}, storage.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, models.Group{}, err
	}
	r, err := s.store.CreateRequest(ctx, invitee.ID, groupID)
	if err != nil {
		return models.User{}, models.Group{}, err
	}
	logger.SVCRequests.LogAttrs(ctx, slog.LevelInfo, "request.created",
		slog.String("event", "request.create"),
		slog.Int64("request_id", r.ID),
		slog.Int64("group_id", groupID),
		slog.Int64("user_id", invitee.ID),
	)
	return invitee, g, nil
}

// Accept consumes the user's pending invitation to the group and joins
// them as a regular member.
func (s *RequestService) Accept(ctx context.Context, userID, groupID int64) error {
	if err := s.store.AcceptRequest(ctx, userID, groupID); err != nil {
		return err
	}
	logger.SVCRequests.LogAttrs(ctx, slog.LevelInfo, "request.accepted",
		slog.String("event", "request.accept"),
		slog.Int64("group_id", groupID),
		slog.Int64("user_id", userID),
	)
	return nil
}

// Purge drops invitations older than the retention window and reports how
// many were removed.
func (s *RequestService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	n, err := s.store.PurgeRequestsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.SVCRequests.LogAttrs(ctx, slog.LevelInfo, "requests.purged",
			slog.String("event", "request.purge"),
			slog.Int64("purged", n),
		)
	}
	return n, nil
}
