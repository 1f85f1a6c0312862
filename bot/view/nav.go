package view

import (
	"fmt"
	"strings"

	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

// navRow builds the ← page/pages → triple. The arrows carry a "to"
// callback with the destination page, the view name and any extra
// arguments the view needs to re-render (the members view carries its
// group id). The indicator in the middle is inert.
func navRow(w Window, viewName string, extra ...string) []keyboard.InlineBtn {
	suffix := ""
	if len(extra) > 0 {
		suffix = " " + strings.Join(extra, " ")
	}
	return []keyboard.InlineBtn{
		{Text: "←", Unique: "to", Data: fmt.Sprintf("%d %s%s", w.Left, viewName, suffix)},
		{Text: fmt.Sprintf("%d/%d", w.Page, w.Pages), Unique: "_", Data: ""},
		{Text: "→", Unique: "to", Data: fmt.Sprintf("%d %s%s", w.Right, viewName, suffix)},
	}
}
