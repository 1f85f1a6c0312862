package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates every inline-button verb the bot understands. The set is
// closed: dispatch is a single exhaustive switch, and anything outside it
// is answered and dropped.
type Kind int

const (
	// KindNoop covers the inert page indicator and any verb this build
	// does not know. Pressing it only answers the callback.
	KindNoop Kind = iota
	KindPage
	KindGroupNotes
	KindRename
	KindDeleteGroup
	KindDeleteNote
	KindRemoveMember
	KindMembers
	KindMemberInfo
	KindMakeOwner
	KindChangeNote
	KindAddNote
	KindAcceptRequest
	KindInvite
)

// Action is a decoded inline-button press. Kind selects the variant; only
// the fields that variant names are meaningful.
type Action struct {
	Kind Kind

	// KindPage: destination page of the named view; GroupID carries the
	// filter for group-scoped views (members, group notes).
	View string
	Page int

	GroupID int64
	NoteID  int64

	// Target member of member-scoped verbs. TargetSelf marks the "leave
	// group" form where the presser targets themselves.
	TargetTgID int64
	TargetSelf bool

	// KindAcceptRequest: chat of the inviting owner, notified on accept.
	OwnerChat int64

	// KindAddNote: true for a personal note with no group attached.
	Personal bool
}

// parseAction decodes a callback verb and its space-separated payload.
// Unknown verbs decode to KindNoop; malformed arguments of known verbs are
// an error.
func parseAction(key, payload string) (Action, error) {
	args := strings.Fields(payload)

	arg := func(i int) (int64, error) {
		if i >= len(args) {
			return 0, fmt.Errorf("callback %q: missing argument %d", key, i)
		}
		n, err := strconv.ParseInt(args[i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("callback %q: bad argument %q", key, args[i])
		}
		return n, nil
	}

	switch key {
	case "to":
		page, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		if len(args) < 2 {
			return Action{}, fmt.Errorf("callback %q: missing view name", key)
		}
		a := Action{Kind: KindPage, Page: int(page), View: args[1]}
		if len(args) > 2 {
			gid, err := arg(2)
			if err != nil {
				return Action{}, err
			}
			a.GroupID = gid
		}
		return a, nil

	case "notes":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindGroupNotes, GroupID: gid}, nil

	case "rename":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindRename, GroupID: gid}, nil

	case "delete":
		if len(args) < 2 {
			return Action{}, fmt.Errorf("callback %q: missing target", key)
		}
		id, err := arg(1)
		if err != nil {
			return Action{}, err
		}
		switch args[0] {
		case "groups":
			return Action{Kind: KindDeleteGroup, GroupID: id}, nil
		case "notes":
			return Action{Kind: KindDeleteNote, NoteID: id}, nil
		}
		return Action{}, fmt.Errorf("callback %q: unknown target %q", key, args[0])

	case "delete_member":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		a := Action{Kind: KindRemoveMember, GroupID: gid}
		if len(args) > 1 && args[1] == "me" {
			a.TargetSelf = true
			return a, nil
		}
		tg, err := arg(1)
		if err != nil {
			return Action{}, err
		}
		a.TargetTgID = tg
		return a, nil

	case "members":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindMembers, GroupID: gid}, nil

	case "member":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		tg, err := arg(1)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindMemberInfo, GroupID: gid, TargetTgID: tg}, nil

	case "make_owner":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		tg, err := arg(1)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindMakeOwner, GroupID: gid, TargetTgID: tg}, nil

	case "change_note":
		nid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindChangeNote, NoteID: nid}, nil

	case "add_note":
		if len(args) > 0 && args[0] == "me" {
			return Action{Kind: KindAddNote, Personal: true}, nil
		}
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindAddNote, GroupID: gid}, nil

	case "add_request":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		chat, err := arg(1)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindAcceptRequest, GroupID: gid, OwnerChat: chat}, nil

	case "invite":
		gid, err := arg(0)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: KindInvite, GroupID: gid}, nil
	}

	return Action{Kind: KindNoop}, nil
}
