package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/bot/storage"
	"github.com/Dardva/Bot-for-remind/core/logger"
	"log/slog"
)

// UserService resolves transport identities to internal user rows.
type UserService struct {
	store *storage.Store
}

// Ensure resolves the Telegram identity, creating the user on first
// contact. Display fields are captured once and not re-synced afterwards.
// The second return value reports whether a new row was created.
func (s *UserService) Ensure(ctx context.Context, tgID int64, username, firstName, lastName string) (models.User, bool, error) {
	u, err := s.store.UserByTgID(ctx, tgID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, false, err
	}

	u = models.User{
		TgID:      tgID,
		Username:  storage.NullString(username),
		FirstName: firstName,
		LastName:  storage.NullString(lastName),
	}
	if err := s.store.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Lost a registration race; the existing row wins.
			existing, lookupErr := s.store.UserByTgID(ctx, tgID)
			if lookupErr != nil {
				return models.User{}, false, lookupErr
			}
			return existing, false, nil
		}
		return models.User{}, false, err
	}
	logger.SVCUsers.LogAttrs(ctx, slog.LevelInfo, "user.created",
		slog.String("event", "user.create"),
		slog.Int64("user_id", u.ID),
	)
	return u, true, nil
}

// GetUserByTelegramID satisfies the helpers.CurrentUser contract.
func (s *UserService) GetUserByTelegramID(ctx context.Context, tgID int64) (models.User, error) {
	return s.store.UserByTgID(ctx, tgID)
}

// Resolve finds a user by free-text reference: "@username" or a numeric
// Telegram ID. ErrInvalidInput for anything else.
func (s *UserService) Resolve(ctx context.Context, ref string) (models.User, error) {
	ref = strings.TrimSpace(ref)
	if name, ok := strings.CutPrefix(ref, "@"); ok {
		if name == "" {
			return models.User{}, ErrInvalidInput
		}
		return s.store.UserByUsername(ctx, name)
	}
	tgID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return models.User{}, ErrInvalidInput
	}
	return s.store.UserByTgID(ctx, tgID)
}
