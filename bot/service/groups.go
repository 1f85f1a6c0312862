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

// GroupService implements group lifecycle flows with ownership gating.
type GroupService struct {
	store *storage.Store
}

// List returns the groups the user belongs to.
func (s *GroupService) List(ctx context.Context, userID int64) ([]models.GroupView, error) {
	return s.store.GroupsForUser(ctx, userID)
}

// Get fetches a single group.
func (s *GroupService) Get(ctx context.Context, groupID int64) (models.Group, error) {
	return s.store.GroupByID(ctx, groupID)
}

// Create makes a new group owned by the user. The owner membership row is
// part of the same transaction.
func (s *GroupService) Create(ctx context.Context, ownerID int64, name string) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, ErrInvalidInput
	}
	g, err := s.store.CreateGroup(ctx, name, ownerID)
	if err != nil {
		return models.Group{}, err
	}
	logger.SVCGroups.LogAttrs(ctx, slog.LevelInfo, "group.created",
		slog.String("event", "group.create"),
		slog.Int64("group_id", g.ID),
		slog.Int64("owner_id", ownerID),
	)
	return g, nil
}

// Rename changes the group name. Owner-only.
func (s *GroupService) Rename(ctx context.Context, actorID, groupID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	g, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !CanManageGroup(actorID, g) {
		return ErrPermissionDenied
	}
	return s.store.RenameGroup(ctx, groupID, name)
}

// Delete removes the group with its memberships and notes. Owner-only.
func (s *GroupService) Delete(ctx context.Context, actorID, groupID int64) error {
	g, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !CanManageGroup(actorID, g) {
		return ErrPermissionDenied
	}
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	logger.SVCGroups.LogAttrs(ctx, slog.LevelInfo, "group.deleted",
		slog.String("event", "group.delete"),
		slog.Int64("group_id", groupID),
	)
	return nil
}

// Members lists the group's members. Visible to members only; the group
// id arrives in callback data and may name a group the viewer is not in.
func (s *GroupService) Members(ctx context.Context, viewerID, groupID int64) ([]models.MemberView, error) {
	if _, err := s.store.Membership(ctx, viewerID, groupID); err != nil {
		return nil, err
	}
	return s.store.Members(ctx, groupID)
}

// Member fetches a single member of the group by Telegram ID. Same
// visibility rule as Members.
func (s *GroupService) Member(ctx context.Context, viewerID, groupID, tgID int64) (models.MemberView, error) {
	if _, err := s.store.Membership(ctx, viewerID, groupID); err != nil {
		return models.MemberView{}, err
	}
	return s.store.MemberByTgID(ctx, groupID, tgID)
}

// RemoveMember kicks a member out of the group. The owner may remove any
// non-owner member; a member may remove themselves (leave). The owner row
// is never removable through this path.
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, targetID int64) error {
	g, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if targetID == g.OwnerID {
		return ErrOwnerProtected
	}
	if actorID != targetID && !CanManageGroup(actorID, g) {
		return ErrPermissionDenied
	}
	if actorID == targetID {
		if !CanLeave(actorID, g, true) {
			return ErrPermissionDenied
		}
	}
	if err := s.store.RemoveMember(ctx, groupID, targetID); err != nil {
		return err
	}
	logger.SVCGroups.LogAttrs(ctx, slog.LevelInfo, "member.removed",
		slog.String("event", "member.remove"),
		slog.Int64("group_id", groupID),
		slog.Int64("member_id", targetID),
	)
	return nil
}

// TransferOwnership hands the group to another member. Owner-only; the
// previous owner stays in the group as a regular member.
func (s *GroupService) TransferOwnership(ctx context.Context, actorID, groupID, newOwnerID int64) error {
	g, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !CanManageGroup(actorID, g) {
		return ErrPermissionDenied
	}
	if _, err := s.store.Membership(ctx, newOwnerID, groupID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return err
	}
	if err := s.store.TransferOwnership(ctx, groupID, newOwnerID); err != nil {
		return err
	}
	logger.SVCGroups.LogAttrs(ctx, slog.LevelInfo, "ownership.transferred",
		slog.String("event", "group.transfer"),
		slog.Int64("group_id", groupID),
		slog.Int64("owner_id", newOwnerID),
	)
	return nil
}
