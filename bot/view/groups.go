package view

import (
	"fmt"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

// Groups renders one group per page. Owners get the management row,
// everyone else gets a leave button.
func Groups(groups []models.GroupView, page int, viewerID int64) (string, [][]keyboard.InlineBtn) {
	if len(groups) == 0 {
		return "You have no groups yet. Create one with /newgroup.", nil
	}
	w := Paginate(len(groups), page, PageSizeList)
	g := groups[w.Start]

	caption := fmt.Sprintf("Group: %s\nOwner: %s", g.Name, ownerLabel(g))
	gid := fmt.Sprintf("%d", g.ID)

	var rows [][]keyboard.InlineBtn
	if w.Pages > 1 {
		rows = append(rows, navRow(w, ViewGroups))
	}
	rows = append(rows, []keyboard.InlineBtn{
		{Text: "Notes", Unique: "notes", Data: gid},
	})
	if g.OwnerID == viewerID {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "Rename", Unique: "rename", Data: gid},
			{Text: "Delete", Unique: "delete", Data: "groups " + gid},
			{Text: "Members", Unique: "members", Data: gid},
		})
	} else {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "Leave group", Unique: "delete_member", Data: gid + " me"},
		})
	}
	return caption, rows
}

func ownerLabel(g models.GroupView) string {
	if g.OwnerUsername.Valid && g.OwnerUsername.String != "" {
		return "@" + g.OwnerUsername.String
	}
	return fmt.Sprintf("id %d", g.OwnerID)
}
