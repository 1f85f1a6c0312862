// Package view renders paginated bot screens as caption text plus inline
// button rows. Renderers are pure: they never touch the store or the
// transport, the handlers feed them query results and the acting user.
package view

// Page sizes per screen. Detail-style lists show one item per page,
// member rosters show ten.
const (
	PageSizeList    = 1
	PageSizeMembers = 10

	membersPerRow = 5
)

// Names of the paginated screens, carried in page-turn callbacks.
const (
	ViewGroups   = "groups"
	ViewRequests = "requests"
	ViewNotes    = "notes"
	ViewMembers  = "members"
)

// Window is a resolved position inside a paginated list. Pages are
// 1-indexed; Start/End are the half-open slice bounds of the current page.
// Left and Right wrap circularly, so paging is always possible while more
// than one page exists.
type Window struct {
	Page  int
	Pages int
	Start int
	End   int
	Left  int
	Right int
}

// Paginate resolves a requested page against the current list length.
// Out-of-range requests clamp to the nearest valid page rather than
// failing, so a view refreshed after deletions stays usable. A zero total
// yields a zero Window; callers render their empty placeholder instead.
func Paginate(total, page, size int) Window {
	if total <= 0 || size <= 0 {
		return Window{}
	}
	pages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	w := Window{
		Page:  page,
		Pages: pages,
		Start: (page - 1) * size,
		End:   page * size,
		Left:  page - 1,
		Right: page + 1,
	}
	if w.End > total {
		w.End = total
	}
	if w.Page == 1 {
		w.Left = pages
	}
	if w.Page == pages {
		w.Right = 1
	}
	return w
}
