package view

import (
	"fmt"
	"strings"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

// Members renders a roster page of up to ten members: a numbered caption
// plus matching detail buttons chunked five per row. The nav row carries
// the group id so page turns can re-query the roster. Owners additionally
// get an invite button.
func Members(members []models.MemberView, page int, viewerIsOwner bool) (string, [][]keyboard.InlineBtn) {
	if len(members) == 0 {
		return "No members.", nil
	}
	w := Paginate(len(members), page, PageSizeMembers)
	groupID := members[0].GroupID

	var b strings.Builder
	fmt.Fprintf(&b, "Group: %s\nMembers: %d\n", members[0].GroupName, len(members))

	var detail []keyboard.InlineBtn
	for i := w.Start; i < w.End; i++ {
		m := members[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, MemberLabel(m))
		detail = append(detail, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%d", i+1),
			Unique: "member",
			Data:   fmt.Sprintf("%d %d", m.GroupID, m.TgID),
		})
	}
	b.WriteString("Pick a member to remove them or hand over the group.")

	var rows [][]keyboard.InlineBtn
	if w.Pages > 1 {
		rows = append(rows, navRow(w, ViewMembers, fmt.Sprintf("%d", groupID)))
	}
	rows = append(rows, keyboard.ChunkInlineBtns(detail, membersPerRow)...)
	if viewerIsOwner {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "Invite member", Unique: "invite", Data: fmt.Sprintf("%d", groupID)},
		})
	}
	return b.String(), rows
}

// Member renders the single-member detail screen with the owner's
// management buttons.
func Member(m models.MemberView) (string, [][]keyboard.InlineBtn) {
	caption := fmt.Sprintf("Group: %s\nMember: %s", m.GroupName, MemberLabel(m))
	ref := fmt.Sprintf("%d %d", m.GroupID, m.TgID)
	rows := [][]keyboard.InlineBtn{
		{
			{Text: "Remove", Unique: "delete_member", Data: ref},
			{Text: "Make group owner", Unique: "make_owner", Data: ref},
		},
	}
	return caption, rows
}

// MemberLabel prefers the @username and falls back to the first name.
func MemberLabel(m models.MemberView) string {
	if m.Username.Valid && m.Username.String != "" {
		return "@" + m.Username.String
	}
	return m.FirstName
}
