package view

import (
	"fmt"

	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

// Notes renders one note per page. Edit and delete buttons appear for the
// note's author and for members holding the group's add-note grant; the
// create buttons are always present, with a group variant when the current
// note's group grants the viewer add rights. A non-zero groupID marks a
// group-filtered list and is carried in the nav callbacks so page turns
// keep the filter.
func Notes(notes []models.NoteView, page int, viewerID, groupID int64) (string, [][]keyboard.InlineBtn) {
	if len(notes) == 0 {
		return "No notes yet.", nil
	}
	w := Paginate(len(notes), page, PageSizeList)
	n := notes[w.Start]

	caption := n.Body
	if n.GroupName.Valid {
		caption += fmt.Sprintf("\nFrom group: %s", n.GroupName.String)
	}

	var rows [][]keyboard.InlineBtn
	if w.Pages > 1 {
		if groupID != 0 {
			rows = append(rows, navRow(w, ViewNotes, fmt.Sprintf("%d", groupID)))
		} else {
			rows = append(rows, navRow(w, ViewNotes))
		}
	}
	if n.AuthorID == viewerID || (n.GroupID.Valid && n.CanAddNotes) {
		nid := fmt.Sprintf("%d", n.ID)
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "Edit note", Unique: "change_note", Data: nid},
			{Text: "Delete note", Unique: "delete", Data: "notes " + nid},
		})
	}
	create := []keyboard.InlineBtn{
		{Text: "New note", Unique: "add_note", Data: "me"},
	}
	if n.GroupID.Valid && n.CanAddNotes {
		create = append(create, keyboard.InlineBtn{
			Text:   "New group note",
			Unique: "add_note",
			Data:   fmt.Sprintf("%d", n.GroupID.Int64),
		})
	}
	rows = append(rows, create)
	return caption, rows
}
