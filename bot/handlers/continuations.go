package handlers

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/Dardva/Bot-for-remind/core/telegram/helpers"
	"github.com/Dardva/Bot-for-remind/core/telegram/state"
)

// Continuation states. A chat sits in exactly one of these while the bot
// waits for a free-text reply; everything else is idle.
const (
	stateAwaitGroupName  state.State = "await_group_name"
	stateAwaitRename     state.State = "await_group_rename"
	stateAwaitNoteText   state.State = "await_note_text"
	stateAwaitNoteChange state.State = "await_note_change"
	stateAwaitInvite     state.State = "await_invite"
)

// Session data keys.
const (
	tempGroupID = "group_id"
	tempNoteID  = "note_id"
)

// backSentinel aborts any pending continuation with zero mutation.
const backSentinel = "back"

func (h *Handlers) registerContinuations() {
	state.RegisterHandler(stateAwaitGroupName, h.onGroupName)
	state.RegisterHandler(stateAwaitRename, h.onRename)
	state.RegisterHandler(stateAwaitNoteText, h.onNoteText)
	state.RegisterHandler(stateAwaitNoteChange, h.onNoteChange)
	state.RegisterHandler(stateAwaitInvite, h.onInvite)
}

// consume ends the chat's continuation and returns the trimmed reply plus
// whether the user backed out. The continuation is spent either way: a
// reply is handled at most once.
func (h *Handlers) consume(c tele.Context) (string, bool) {
	h.fsm.End(c.Chat().ID)
	text := strings.TrimSpace(c.Text())
	return text, strings.EqualFold(text, backSentinel)
}

func (h *Handlers) onGroupName(c tele.Context) error {
	text, back := h.consume(c)
	if back {
		return h.renderGroups(c, 1, nil)
	}
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	if _, err := h.svc.Groups.Create(ctx, u.ID, text); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Group created!"); err != nil {
		return err
	}
	return h.renderGroups(c, 1, nil)
}

func (h *Handlers) onRename(c tele.Context) error {
	chatID := c.Chat().ID
	groupID, ok := h.fsm.GetTempInt64(chatID, tempGroupID)
	text, back := h.consume(c)
	if back || !ok {
		return h.renderGroups(c, 1, nil)
	}
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Groups.Rename(ctx, u.ID, groupID, text); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Group renamed!"); err != nil {
		return err
	}
	return h.renderGroups(c, 1, nil)
}

func (h *Handlers) onNoteText(c tele.Context) error {
	chatID := c.Chat().ID
	groupID, hasGroup := h.fsm.GetTempInt64(chatID, tempGroupID)
	text, back := h.consume(c)
	if back {
		return h.renderNotes(c, 1, 0, nil)
	}
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	var target *int64
	if hasGroup {
		target = &groupID
	}
	if _, err := h.svc.Notes.Add(ctx, u.ID, target, text); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Note added!"); err != nil {
		return err
	}
	return h.renderNotes(c, 1, 0, nil)
}

func (h *Handlers) onNoteChange(c tele.Context) error {
	chatID := c.Chat().ID
	noteID, ok := h.fsm.GetTempInt64(chatID, tempNoteID)
	text, back := h.consume(c)
	if back || !ok {
		return h.renderNotes(c, 1, 0, nil)
	}
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Notes.Edit(ctx, u.ID, noteID, text); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Note updated!"); err != nil {
		return err
	}
	return h.renderNotes(c, 1, 0, nil)
}

func (h *Handlers) onInvite(c tele.Context) error {
	chatID := c.Chat().ID
	groupID, ok := h.fsm.GetTempInt64(chatID, tempGroupID)
	text, back := h.consume(c)
	if back || !ok {
		return h.renderGroups(c, 1, nil)
	}
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	invitee, g, err := h.svc.Requests.Invite(ctx, u.ID, groupID, text)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Invitation sent!"); err != nil {
		return err
	}
	h.notify(c, invitee.TgID, fmt.Sprintf(
		"%s invited you to group %s! Open /group_requests to join.",
		senderLabel(c), g.Name,
	))
	return h.renderGroups(c, 1, nil)
}
