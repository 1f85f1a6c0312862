package view

import (
	"fmt"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

// Requests renders one pending invitation per page with an accept button.
// The accept callback carries the owner's chat so they can be notified.
func Requests(requests []models.RequestView, page int) (string, [][]keyboard.InlineBtn) {
	if len(requests) == 0 {
		return "No pending invitations.", nil
	}
	w := Paginate(len(requests), page, PageSizeList)
	r := requests[w.Start]

	owner := "the owner"
	if r.OwnerName.Valid && r.OwnerName.String != "" {
		owner = "@" + r.OwnerName.String
	}
	caption := fmt.Sprintf("Group: %s\nInvited by: %s", r.GroupName, owner)

	var rows [][]keyboard.InlineBtn
	if w.Pages > 1 {
		rows = append(rows, navRow(w, ViewRequests))
	}
	rows = append(rows, []keyboard.InlineBtn{
		{
			Text:   "Accept invitation",
			Unique: "add_request",
			Data:   fmt.Sprintf("%d %d", r.GroupID, r.OwnerTgID),
		},
	})
	return caption, rows
}
