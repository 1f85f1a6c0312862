package view

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dardva/Bot-for-remind/bot/models"
)

func groupViews(n int, ownerID int64) []models.GroupView {
	out := make([]models.GroupView, n)
	for i := range out {
		out[i] = models.GroupView{
			ID:      int64(i + 1),
			Name:    "group",
			OwnerID: ownerID,
		}
	}
	return out
}

func TestGroupsEmptyPlaceholder(t *testing.T) {
	caption, rows := Groups(nil, 1, 1)
	assert.Contains(t, caption, "no groups")
	assert.Nil(t, rows)
}

func TestGroupsOwnerButtons(t *testing.T) {
	_, rows := Groups(groupViews(1, 7), 1, 7)
	require.Len(t, rows, 2, "single page has no nav row")

	assert.Equal(t, "notes", rows[0][0].Unique)
	require.Len(t, rows[1], 3)
	assert.Equal(t, "rename", rows[1][0].Unique)
	assert.Equal(t, "delete", rows[1][1].Unique)
	assert.Equal(t, "groups 1", rows[1][1].Data)
	assert.Equal(t, "members", rows[1][2].Unique)
}

func TestGroupsMemberGetsLeaveButton(t *testing.T) {
	_, rows := Groups(groupViews(1, 7), 1, 99)
	require.Len(t, rows, 2)
	require.Len(t, rows[1], 1)
	assert.Equal(t, "delete_member", rows[1][0].Unique)
	assert.Equal(t, "1 me", rows[1][0].Data)
}

func TestGroupsNavRowOnMultiplePages(t *testing.T) {
	_, rows := Groups(groupViews(3, 7), 2, 7)
	require.GreaterOrEqual(t, len(rows), 3)

	nav := rows[0]
	require.Len(t, nav, 3)
	assert.Equal(t, "to", nav[0].Unique)
	assert.Equal(t, "1 groups", nav[0].Data)
	assert.Equal(t, "_", nav[1].Unique)
	assert.Equal(t, "2/3", nav[1].Text)
	assert.Equal(t, "3 groups", nav[2].Data)
}

func TestRequestsAcceptCarriesOwnerChat(t *testing.T) {
	requests := []models.RequestView{{
		ID:        1,
		GroupID:   5,
		GroupName: "pack",
		OwnerTgID: 4242,
	}}
	caption, rows := Requests(requests, 1)
	assert.Contains(t, caption, "pack")
	require.Len(t, rows, 1)
	assert.Equal(t, "add_request", rows[0][0].Unique)
	assert.Equal(t, "5 4242", rows[0][0].Data)
}

func TestNotesEditButtonsForAuthor(t *testing.T) {
	notes := []models.NoteView{{ID: 3, Body: "water the plants", AuthorID: 7}}
	caption, rows := Notes(notes, 1, 7, 0)
	assert.Equal(t, "water the plants", caption)
	require.Len(t, rows, 2)
	assert.Equal(t, "change_note", rows[0][0].Unique)
	assert.Equal(t, "notes 3", rows[0][1].Data)
	assert.Equal(t, "add_note", rows[1][0].Unique)
	assert.Equal(t, "me", rows[1][0].Data)
}

func TestNotesNoEditButtonsWithoutGrant(t *testing.T) {
	notes := []models.NoteView{{
		ID:        3,
		Body:      "shared",
		AuthorID:  7,
		GroupID:   sql.NullInt64{Int64: 2, Valid: true},
		GroupName: sql.NullString{String: "pack", Valid: true},
	}}
	caption, rows := Notes(notes, 1, 99, 0)
	assert.Contains(t, caption, "From group: pack")
	require.Len(t, rows, 1, "only the create row")
	assert.Equal(t, "add_note", rows[0][0].Unique)
}

func TestNotesGroupGrantAddsGroupCreate(t *testing.T) {
	notes := []models.NoteView{{
		ID:          3,
		Body:        "shared",
		AuthorID:    7,
		GroupID:     sql.NullInt64{Int64: 2, Valid: true},
		GroupName:   sql.NullString{String: "pack", Valid: true},
		CanAddNotes: true,
	}}
	_, rows := Notes(notes, 1, 99, 0)
	require.Len(t, rows, 2)
	create := rows[1]
	require.Len(t, create, 2)
	assert.Equal(t, "2", create[1].Data)
}

func TestMembersRosterLayout(t *testing.T) {
	members := make([]models.MemberView, 12)
	for i := range members {
		members[i] = models.MemberView{
			UserID:    int64(i + 1),
			TgID:      int64(1000 + i),
			FirstName: "m",
			GroupID:   9,
			GroupName: "pack",
		}
	}
	caption, rows := Members(members, 1, false)
	assert.Contains(t, caption, "Members: 12")

	require.Len(t, rows, 3, "nav row plus two detail rows of five")
	assert.Equal(t, "to", rows[0][0].Unique)
	assert.Equal(t, "2 members 9", rows[0][0].Data, "nav carries the group id")
	assert.Len(t, rows[1], 5)
	assert.Len(t, rows[2], 5)
	assert.Equal(t, "member", rows[1][0].Unique)
	assert.Equal(t, "9 1000", rows[1][0].Data)
}

func TestMembersSecondPageRemainder(t *testing.T) {
	members := make([]models.MemberView, 12)
	for i := range members {
		members[i] = models.MemberView{TgID: int64(i), GroupID: 9, FirstName: "m"}
	}
	_, rows := Members(members, 2, false)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], 2, "two members overflow to page two")
}

func TestMembersOwnerSeesInvite(t *testing.T) {
	members := []models.MemberView{{TgID: 1, GroupID: 9, FirstName: "m"}}
	_, rows := Members(members, 1, true)
	last := rows[len(rows)-1]
	assert.Equal(t, "invite", last[0].Unique)
	assert.Equal(t, "9", last[0].Data)
}

func TestMemberDetail(t *testing.T) {
	m := models.MemberView{
		TgID:      77,
		Username:  sql.NullString{String: "alice", Valid: true},
		GroupID:   9,
		GroupName: "pack",
	}
	caption, rows := Member(m)
	assert.Contains(t, caption, "@alice")
	require.Len(t, rows, 1)
	assert.Equal(t, "delete_member", rows[0][0].Unique)
	assert.Equal(t, "9 77", rows[0][0].Data)
	assert.Equal(t, "make_owner", rows[0][1].Unique)
	assert.Equal(t, "9 77", rows[0][1].Data)
}
