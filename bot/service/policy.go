package service

import "github.com/Dardva/Bot-for-remind/bot/models"

// Access policy predicates. All are pure; handlers evaluate the relevant
// predicate before any mutation and abort with a denial message on failure.

// CanManageGroup reports whether the user owns the group. Rename, delete,
// member management and invitations are owner-only.
func CanManageGroup(userID int64, g models.Group) bool {
	return g.OwnerID == userID
}

// CanAddGroupNote reports whether the user may attach notes to the group:
// the owner always may, other members need the add-note grant.
func CanAddGroupNote(userID int64, g models.Group, m *models.Membership) bool {
	if g.OwnerID == userID {
		return true
	}
	return m != nil && m.UserID == userID && m.GroupID == g.ID && m.CanAddNotes
}

// CanEditNote reports whether the user may change or delete the note: its
// author always may; for a group note, any member holding that group's
// add-note grant may as well.
func CanEditNote(userID int64, n models.Note, m *models.Membership) bool {
	if n.AuthorID == userID {
		return true
	}
	if !n.GroupID.Valid {
		return false
	}
	return m != nil && m.UserID == userID && m.GroupID == n.GroupID.Int64 && m.CanAddNotes
}

// CanLeave reports whether the user may leave the group. The owner cannot
// leave; they must transfer ownership or delete the group instead.
func CanLeave(userID int64, g models.Group, isMember bool) bool {
	return isMember && g.OwnerID != userID
}
