package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionVerbs(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		payload string
		want    Action
	}{
		{"page turn", "to", "3 groups", Action{Kind: KindPage, Page: 3, View: "groups"}},
		{"page turn with group", "to", "2 members 9", Action{Kind: KindPage, Page: 2, View: "members", GroupID: 9}},
		{"group notes", "notes", "5", Action{Kind: KindGroupNotes, GroupID: 5}},
		{"rename", "rename", "5", Action{Kind: KindRename, GroupID: 5}},
		{"delete group", "delete", "groups 5", Action{Kind: KindDeleteGroup, GroupID: 5}},
		{"delete note", "delete", "notes 8", Action{Kind: KindDeleteNote, NoteID: 8}},
		{"leave", "delete_member", "5 me", Action{Kind: KindRemoveMember, GroupID: 5, TargetSelf: true}},
		{"kick", "delete_member", "5 42", Action{Kind: KindRemoveMember, GroupID: 5, TargetTgID: 42}},
		{"members", "members", "5", Action{Kind: KindMembers, GroupID: 5}},
		{"member detail", "member", "5 42", Action{Kind: KindMemberInfo, GroupID: 5, TargetTgID: 42}},
		{"make owner", "make_owner", "5 42", Action{Kind: KindMakeOwner, GroupID: 5, TargetTgID: 42}},
		{"change note", "change_note", "8", Action{Kind: KindChangeNote, NoteID: 8}},
		{"personal note", "add_note", "me", Action{Kind: KindAddNote, Personal: true}},
		{"group note", "add_note", "5", Action{Kind: KindAddNote, GroupID: 5}},
		{"accept", "add_request", "5 4242", Action{Kind: KindAcceptRequest, GroupID: 5, OwnerChat: 4242}},
		{"invite", "invite", "5", Action{Kind: KindInvite, GroupID: 5}},
		{"page indicator", "_", "", Action{Kind: KindNoop}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAction(tt.key, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseActionUnknownVerbIsNoop(t *testing.T) {
	got, err := parseAction("teleport", "1 2 3")
	require.NoError(t, err)
	assert.Equal(t, KindNoop, got.Kind)
}

func TestParseActionMalformedArguments(t *testing.T) {
	cases := []struct {
		key     string
		payload string
	}{
		{"to", ""},
		{"to", "abc groups"},
		{"to", "1"},
		{"notes", ""},
		{"notes", "xyz"},
		{"delete", "groups"},
		{"delete", "vehicles 5"},
		{"delete_member", "5"},
		{"member", "5"},
		{"make_owner", "5 nope"},
		{"add_request", "5"},
	}
	for _, tt := range cases {
		_, err := parseAction(tt.key, tt.payload)
		assert.Error(t, err, "key=%s payload=%q", tt.key, tt.payload)
	}
}
