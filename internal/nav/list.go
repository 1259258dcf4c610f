// Package nav implements the navigation state machine: ordered list
// columns with a cursor and viewport, and the cascade that keeps
// dependent columns consistent with the selections above them.
package nav

import (
	"fmt"
	"strings"

	"github.com/chmouel/lazyscripture/internal/models"
)

// List is a single navigable column: an ordered item sequence, one
// selected item, and the window of items eligible for display. Every
// operation is total; empty lists, out-of-range deltas and absent
// values degrade to a defined no-op or fallback.
type List struct {
	title      string
	items      []models.Item
	cursor     models.Item
	lower      int
	upper      int
	maxVisible int
	active     bool

	searchQuery string
	searchTotal int
	searchPos   int
}

// NewList builds a column from display values. maxVisible is the fixed
// viewport capacity derived from the display height.
func NewList(title string, values []string, maxVisible int) *List {
	l := &List{title: title, maxVisible: max(1, maxVisible)}
	l.SetValues(values)
	return l
}

func enumerate(values []string) []models.Item {
	items := make([]models.Item, 0, len(values))
	for i, v := range values {
		items = append(items, models.Item{Index: i, Value: v})
	}
	return items
}

// SetValues replaces the item sequence. The selection is preserved by
// value when the previous value survives the replacement; otherwise it
// falls back to the first item, or the empty sentinel when the new
// sequence is empty.
func (l *List) SetValues(values []string) {
	prev := l.cursor.Value
	l.items = enumerate(values)
	if len(l.items) == 0 {
		l.cursor = models.Item{}
		l.lower, l.upper = 0, 0
		return
	}
	for _, it := range l.items {
		if it.Value == prev {
			l.cursor = it
			l.snapTo(it.Index)
			return
		}
	}
	l.SelectFirst()
}

// snapTo re-anchors the viewport so index i is visible, clamped so the
// window never starts before 0 or past the last full page.
func (l *List) snapTo(i int) {
	start := min(i, max(0, len(l.items)-l.maxVisible))
	start = max(0, start)
	l.lower, l.upper = start, start+l.maxVisible
}

// SelectFirst jumps the cursor to the first item.
func (l *List) SelectFirst() {
	if len(l.items) == 0 {
		l.cursor = models.Item{}
		l.lower, l.upper = 0, 0
		return
	}
	l.cursor = l.items[0]
	l.lower, l.upper = 0, l.maxVisible
}

// SelectLast jumps the cursor to the last item.
func (l *List) SelectLast() {
	if len(l.items) == 0 {
		l.cursor = models.Item{}
		l.lower, l.upper = 0, 0
		return
	}
	l.cursor = l.items[len(l.items)-1]
	l.snapTo(l.cursor.Index)
}

// SelectValue moves the cursor to the first item whose value equals
// value, falling back to the first item when absent. This is the anchor
// for session restore and search-result navigation: it never fails.
func (l *List) SelectValue(value string) {
	for _, it := range l.items {
		if it.Value == value {
			l.cursor = it
			l.snapTo(it.Index)
			return
		}
	}
	l.SelectFirst()
}

// Move shifts the cursor by delta positions. A delta that would land
// outside the sequence is a no-op. The viewport shifts only when the
// new cursor falls outside it, so movement inside the visible window
// does not scroll.
func (l *List) Move(delta int) {
	if len(l.items) == 0 {
		return
	}
	idx := l.cursor.Index + delta
	if idx < 0 || idx >= len(l.items) {
		return
	}
	l.cursor = l.items[idx]

	if idx >= l.upper || idx < l.lower {
		lower := min(l.lower+delta, max(0, len(l.items)-l.maxVisible))
		lower = max(0, lower)
		l.lower, l.upper = lower, lower+l.maxVisible
	}
}

// Selection returns the current cursor item, the (0, "") sentinel when
// the list is empty.
func (l *List) Selection() models.Item {
	return l.cursor
}

// Items returns the item sequence.
func (l *List) Items() []models.Item {
	return l.items
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Bounds returns the visible window [lower, upper), with upper clamped
// to the sequence length for iteration.
func (l *List) Bounds() (int, int) {
	return l.lower, min(l.upper, len(l.items))
}

// SetActive marks the column as holding input focus.
func (l *List) SetActive(active bool) {
	l.active = active
}

// Active reports whether the column holds input focus.
func (l *List) Active() bool {
	return l.active
}

// SetMaxVisible resizes the viewport capacity and re-anchors it around
// the cursor.
func (l *List) SetMaxVisible(n int) {
	l.maxVisible = max(1, n)
	if len(l.items) == 0 {
		l.lower, l.upper = 0, 0
		return
	}
	l.snapTo(l.cursor.Index)
}

// Title returns the display title, annotated with the pending search
// query and match counters when a search is active.
func (l *List) Title() string {
	if l.searchQuery == "" {
		return l.title
	}
	suffix := "[" + l.searchQuery
	if l.searchTotal > 0 {
		suffix += fmt.Sprintf(" %d/%d", l.searchPos, l.searchTotal)
	}
	suffix += "]"
	return l.title + " " + suffix
}

// SearchQuery returns the pending incremental-search query.
func (l *List) SearchQuery() string {
	return l.searchQuery
}

// refreshSearchMeta recomputes the match counters against the current
// cursor. It runs after every scan, including failed ones, so the title
// can show a zero-match annotation.
func (l *List) refreshSearchMeta(query string) {
	q := strings.ToLower(query)
	l.searchQuery = query
	l.searchTotal = 0
	l.searchPos = 0
	for _, it := range l.items {
		if !strings.Contains(strings.ToLower(it.Value), q) {
			continue
		}
		l.searchTotal++
		if it.Index == l.cursor.Index {
			l.searchPos = l.searchTotal
		}
	}
}

// SearchSelect scans all items in circular order starting at the cursor
// (or at index 0 when startAtCursor is false) and selects the first
// whose value contains query, case-insensitively. After a full wrap
// with no match the cursor is left unchanged and false is returned.
func (l *List) SearchSelect(query string, startAtCursor bool) bool {
	if len(l.items) == 0 || query == "" {
		return false
	}
	start := 0
	if startAtCursor {
		start = l.cursor.Index
	}
	return l.searchFrom(query, start, 0, 1)
}

// SearchNext selects the next match after the cursor, wrapping around.
func (l *List) SearchNext(query string) bool {
	if len(l.items) == 0 || query == "" {
		return false
	}
	return l.searchFrom(query, l.cursor.Index, 1, 1)
}

// SearchPrev selects the previous match before the cursor, wrapping
// around.
func (l *List) SearchPrev(query string) bool {
	if len(l.items) == 0 || query == "" {
		return false
	}
	return l.searchFrom(query, l.cursor.Index, 1, -1)
}

// searchFrom examines at most len(items) positions from start+firstOff,
// stepping by dir, and selects the first match.
func (l *List) searchFrom(query string, start, firstOff, dir int) bool {
	q := strings.ToLower(query)
	n := len(l.items)
	for off := firstOff; off < n+firstOff; off++ {
		i := ((start+dir*off)%n + n) % n
		if strings.Contains(strings.ToLower(l.items[i].Value), q) {
			l.cursor = l.items[i]
			l.snapTo(i)
			l.refreshSearchMeta(query)
			return true
		}
	}
	l.refreshSearchMeta(query)
	return false
}

// ClearSearch resets the search annotations without touching cursor or
// viewport.
func (l *List) ClearSearch() {
	l.searchQuery = ""
	l.searchTotal = 0
	l.searchPos = 0
}
