package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/bot/view"
	tghelpers "github.com/Dardva/Bot-for-remind/core/telegram/helpers"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

// Dispatch routes a decoded callback token through the closed action set.
// It satisfies router.DispatchFunc.
func (h *Handlers) Dispatch(c tele.Context, key, payload string) error {
	a, err := parseAction(key, payload)
	if err != nil {
		return h.replyErr(c, err)
	}

	switch a.Kind {
	case KindNoop:
		return nil
	case KindPage:
		return h.onPage(c, a)
	case KindGroupNotes:
		return h.renderNotes(c, 1, a.GroupID, previousView(c))
	case KindRename:
		return h.beginRename(c, a.GroupID)
	case KindDeleteGroup:
		return h.onDeleteGroup(c, a.GroupID)
	case KindDeleteNote:
		return h.onDeleteNote(c, a.NoteID)
	case KindRemoveMember:
		return h.onRemoveMember(c, a)
	case KindMembers:
		return h.renderMembers(c, a.GroupID, 1, previousView(c))
	case KindMemberInfo:
		return h.onMemberInfo(c, a)
	case KindMakeOwner:
		return h.onMakeOwner(c, a)
	case KindChangeNote:
		return h.beginChangeNote(c, a.NoteID)
	case KindAddNote:
		return h.beginAddNote(c, a)
	case KindAcceptRequest:
		return h.onAcceptRequest(c, a)
	case KindInvite:
		return h.beginInvite(c, a.GroupID)
	}
	return nil
}

func (h *Handlers) onPage(c tele.Context, a Action) error {
	prev := previousView(c)
	switch a.View {
	case view.ViewGroups:
		return h.renderGroups(c, a.Page, prev)
	case view.ViewRequests:
		return h.renderRequests(c, a.Page, prev)
	case view.ViewNotes:
		return h.renderNotes(c, a.Page, a.GroupID, prev)
	case view.ViewMembers:
		return h.renderMembers(c, a.GroupID, a.Page, prev)
	}
	return nil
}

// Screen renderers. Each queries fresh data, renders the view and replaces
// the previous screen; page positions are resolved against the current
// list, never a cached one.

func (h *Handlers) renderGroups(c tele.Context, page int, prev *tele.Message) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	groups, err := h.svc.Groups.List(ctx, u.ID)
	if err != nil {
		return h.replyErr(c, err)
	}
	caption, rows := view.Groups(groups, page, u.ID)
	return h.sendView(c, caption, rows, prev)
}

func (h *Handlers) renderRequests(c tele.Context, page int, prev *tele.Message) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	requests, err := h.svc.Requests.List(ctx, u.ID)
	if err != nil {
		return h.replyErr(c, err)
	}
	caption, rows := view.Requests(requests, page)
	return h.sendView(c, caption, rows, prev)
}

func (h *Handlers) renderNotes(c tele.Context, page int, groupID int64, prev *tele.Message) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	var notes []models.NoteView
	if groupID != 0 {
		notes, err = h.svc.Notes.ListForGroup(ctx, groupID, u.ID)
	} else {
		notes, err = h.svc.Notes.List(ctx, u.ID)
	}
	if err != nil {
		return h.replyErr(c, err)
	}
	caption, rows := view.Notes(notes, page, u.ID, groupID)
	return h.sendView(c, caption, rows, prev)
}

func (h *Handlers) renderMembers(c tele.Context, groupID int64, page int, prev *tele.Message) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	members, err := h.svc.Groups.Members(ctx, u.ID, groupID)
	if err != nil {
		return h.replyErr(c, err)
	}
	g, err := h.svc.Groups.Get(ctx, groupID)
	if err != nil {
		return h.replyErr(c, err)
	}
	caption, rows := view.Members(members, page, g.OwnerID == u.ID)
	return h.sendView(c, caption, rows, prev)
}

// Mutating callbacks.

func (h *Handlers) onDeleteGroup(c tele.Context, groupID int64) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Groups.Delete(ctx, u.ID, groupID); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Group deleted."); err != nil {
		return err
	}
	return h.renderGroups(c, 1, previousView(c))
}

func (h *Handlers) onDeleteNote(c tele.Context, noteID int64) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Notes.Delete(ctx, u.ID, noteID); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, "Note deleted."); err != nil {
		return err
	}
	return h.renderNotes(c, 1, 0, previousView(c))
}

func (h *Handlers) onRemoveMember(c tele.Context, a Action) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	targetTg := a.TargetTgID
	if a.TargetSelf {
		targetTg = c.Sender().ID
	}
	target, err := h.svc.Users.GetUserByTelegramID(ctx, targetTg)
	if err != nil {
		return h.replyErr(c, err)
	}
	g, err := h.svc.Groups.Get(ctx, a.GroupID)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Groups.RemoveMember(ctx, u.ID, a.GroupID, target.ID); err != nil {
		return h.replyErr(c, err)
	}
	if a.TargetSelf {
		if err := tghelpers.SendText(c, fmt.Sprintf("You left group %s.", g.Name)); err != nil {
			return err
		}
	} else {
		if err := tghelpers.SendText(c, "Member removed."); err != nil {
			return err
		}
		h.notify(c, targetTg, fmt.Sprintf("You were removed from group %s.", g.Name))
	}
	return h.renderGroups(c, 1, previousView(c))
}

func (h *Handlers) onMemberInfo(c tele.Context, a Action) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	m, err := h.svc.Groups.Member(ctx, u.ID, a.GroupID, a.TargetTgID)
	if err != nil {
		return h.replyErr(c, err)
	}
	caption, rows := view.Member(m)
	opts := &tele.SendOptions{ReplyMarkup: keyboard.InlineButtonsRows(rows...)}
	if err := tghelpers.SendText(c, caption, opts); err != nil {
		return err
	}
	if prev := previousView(c); prev != nil {
		_ = c.Bot().Delete(prev)
	}
	return nil
}

func (h *Handlers) onMakeOwner(c tele.Context, a Action) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	target, err := h.svc.Users.GetUserByTelegramID(ctx, a.TargetTgID)
	if err != nil {
		return h.replyErr(c, err)
	}
	g, err := h.svc.Groups.Get(ctx, a.GroupID)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Groups.TransferOwnership(ctx, u.ID, a.GroupID, target.ID); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, fmt.Sprintf("Group %s handed over.", g.Name)); err != nil {
		return err
	}
	h.notify(c, a.TargetTgID, fmt.Sprintf("You now own group %s.", g.Name))
	return h.renderGroups(c, 1, previousView(c))
}

func (h *Handlers) onAcceptRequest(c tele.Context, a Action) error {
	ctx := tghelpers.BuildContext(c)
	u, err := h.currentUser(ctx, c)
	if err != nil {
		return h.replyErr(c, err)
	}
	g, err := h.svc.Groups.Get(ctx, a.GroupID)
	if err != nil {
		return h.replyErr(c, err)
	}
	if err := h.svc.Requests.Accept(ctx, u.ID, a.GroupID); err != nil {
		return h.replyErr(c, err)
	}
	if err := tghelpers.SendText(c, fmt.Sprintf("You joined group %s!", g.Name)); err != nil {
		return err
	}
	h.notify(c, a.OwnerChat, fmt.Sprintf("%s accepted your invitation to %s.", senderLabel(c), g.Name))
	return h.renderRequests(c, 1, previousView(c))
}

// Continuation starters. Each prompt suspends the chat until the next free
// text; a later starter simply replaces the pending one.

func (h *Handlers) beginRename(c tele.Context, groupID int64) error {
	h.fsm.Begin(c.Chat().ID, stateAwaitRename, map[string]interface{}{
		tempGroupID: groupID,
	})
	return tghelpers.SendText(c, "Send the new group name, or 'back'.")
}

func (h *Handlers) beginChangeNote(c tele.Context, noteID int64) error {
	h.fsm.Begin(c.Chat().ID, stateAwaitNoteChange, map[string]interface{}{
		tempNoteID: noteID,
	})
	return tghelpers.SendText(c, "Send the new note text, or 'back'.")
}

func (h *Handlers) beginAddNote(c tele.Context, a Action) error {
	data := map[string]interface{}{}
	if !a.Personal {
		data[tempGroupID] = a.GroupID
	}
	h.fsm.Begin(c.Chat().ID, stateAwaitNoteText, data)
	return tghelpers.SendText(c, "Send the note text, or 'back'.")
}

func (h *Handlers) beginInvite(c tele.Context, groupID int64) error {
	h.fsm.Begin(c.Chat().ID, stateAwaitInvite, map[string]interface{}{
		tempGroupID: groupID,
	})
	return tghelpers.SendText(c, "Send the member's @username or Telegram ID, or 'back'.")
}

func senderLabel(c tele.Context) string {
	s := c.Sender()
	if s == nil {
		return "A user"
	}
	if s.Username != "" {
		return "@" + s.Username
	}
	return s.FirstName
}
