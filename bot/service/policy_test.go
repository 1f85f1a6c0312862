package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dardva/Bot-for-remind/bot/models"
)

const (
	ownerID  = int64(1)
	memberID = int64(2)
	otherID  = int64(3)
)

var testGroup = models.Group{ID: 10, Name: "pack", OwnerID: ownerID}

func membership(userID int64, canAdd bool) *models.Membership {
	return &models.Membership{UserID: userID, GroupID: testGroup.ID, CanAddNotes: canAdd}
}

func TestCanManageGroup(t *testing.T) {
	assert.True(t, CanManageGroup(ownerID, testGroup))
	assert.False(t, CanManageGroup(memberID, testGroup))
}

func TestCanAddGroupNote(t *testing.T) {
	assert.True(t, CanAddGroupNote(ownerID, testGroup, nil), "owner needs no explicit grant")
	assert.True(t, CanAddGroupNote(memberID, testGroup, membership(memberID, true)))
	assert.False(t, CanAddGroupNote(memberID, testGroup, membership(memberID, false)))
	assert.False(t, CanAddGroupNote(otherID, testGroup, nil))

	wrongGroup := &models.Membership{UserID: memberID, GroupID: 99, CanAddNotes: true}
	assert.False(t, CanAddGroupNote(memberID, testGroup, wrongGroup), "grant must match the group")
}

func TestCanEditNote(t *testing.T) {
	personal := models.Note{ID: 1, AuthorID: memberID}
	assert.True(t, CanEditNote(memberID, personal, nil))
	assert.False(t, CanEditNote(otherID, personal, nil), "personal notes are author-only")

	shared := models.Note{
		ID:       2,
		AuthorID: ownerID,
		GroupID:  sql.NullInt64{Int64: testGroup.ID, Valid: true},
	}
	assert.True(t, CanEditNote(ownerID, shared, nil), "author edits their own note")
	assert.True(t, CanEditNote(memberID, shared, membership(memberID, true)))
	assert.False(t, CanEditNote(memberID, shared, membership(memberID, false)))
	assert.False(t, CanEditNote(otherID, shared, nil))
}

func TestCanLeave(t *testing.T) {
	assert.True(t, CanLeave(memberID, testGroup, true))
	assert.False(t, CanLeave(ownerID, testGroup, true), "owner cannot leave their own group")
	assert.False(t, CanLeave(otherID, testGroup, false))
}
