package models

import (
	"database/sql"
	"time"
)

// User is an internal account created lazily on first contact with the bot.
// The Telegram ID is immutable; display fields are captured once and not
// re-synced on later contact.
type User struct {
	ID        int64          `db:"id"`
	TgID      int64          `db:"tg_id"`
	Username  sql.NullString `db:"username"`
	FirstName string         `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	CreatedAt time.Time      `db:"created_at"`
}

// Group is owned by exactly one user; names are unique per owner.
type Group struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	OwnerID int64  `db:"owner_id"`
}

// Membership joins a user to a group. The owner's row is created together
// with the group and always carries the add-note grant.
type Membership struct {
	UserID      int64 `db:"user_id"`
	GroupID     int64 `db:"group_id"`
	CanAddNotes bool  `db:"can_add_notes"`
}

// Note is personal when GroupID is NULL, otherwise visible to every member
// of the referenced group.
type Note struct {
	ID        int64         `db:"id"`
	AuthorID  int64         `db:"author_id"`
	GroupID   sql.NullInt64 `db:"group_id"`
	Body      string        `db:"body"`
	CreatedAt time.Time     `db:"created_at"`
}

// JoinRequest is an owner-initiated invitation pending acceptance.
// Requests older than the retention window are purged by the sweep.
type JoinRequest struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	GroupID   int64     `db:"group_id"`
	CreatedAt time.Time `db:"created_at"`
}

// GroupView is a group row joined with the viewer's membership and the
// owner's display name, as rendered in the groups list.
type GroupView struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	OwnerID       int64          `db:"owner_id"`
	OwnerUsername sql.NullString `db:"owner_username"`
	CanAddNotes   bool           `db:"can_add_notes"`
}

// RequestView is a pending invitation joined with group and owner details.
type RequestView struct {
	ID          int64          `db:"id"`
	GroupID     int64          `db:"group_id"`
	GroupName   string         `db:"group_name"`
	OwnerName   sql.NullString `db:"owner_name"`
	OwnerTgID   int64          `db:"owner_tg_id"`
	RequestedAt time.Time      `db:"created_at"`
}

// NoteView is a note joined with its group (when shared) and the viewer's
// add-note grant for that group.
type NoteView struct {
	ID          int64          `db:"id"`
	Body        string         `db:"body"`
	AuthorID    int64          `db:"author_id"`
	GroupID     sql.NullInt64  `db:"group_id"`
	GroupName   sql.NullString `db:"group_name"`
	CanAddNotes bool           `db:"can_add_notes"`
}

// MemberView is a membership row joined with user display fields.
type MemberView struct {
	UserID      int64          `db:"user_id"`
	TgID        int64          `db:"tg_id"`
	Username    sql.NullString `db:"username"`
	FirstName   string         `db:"first_name"`
	GroupID     int64          `db:"group_id"`
	GroupName   string         `db:"group_name"`
	CanAddNotes bool           `db:"can_add_notes"`
}
