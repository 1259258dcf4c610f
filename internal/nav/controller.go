package nav

import (
	"fmt"
	"strconv"

	"github.com/chmouel/lazyscripture/internal/corpus"
	"github.com/chmouel/lazyscripture/internal/models"
)

// Column indices in focus order.
const (
	ColTranslations = iota
	ColBooks
	ColChapters
	ColVerses
	columnCount
)

// Controller owns the four navigation columns and the cascade that
// keeps Book, Chapter and Verse consistent with the selections above
// them.
type Controller struct {
	store *corpus.Store
	cols  [columnCount]*List
	focus int

	// lastTranslation tracks the translation the book column was last
	// loaded for, so books reload exactly when the translation changes.
	lastTranslation string
}

// NewController builds the columns, applies the preferred default
// translation and runs the initial cascade. Focus starts on the book
// column.
func NewController(store *corpus.Store, preferred string, maxVisible int) *Controller {
	c := &Controller{store: store}
	c.cols[ColTranslations] = NewList("TR", store.Translations(), maxVisible)
	c.cols[ColBooks] = NewList("BOOK", nil, maxVisible)
	c.cols[ColChapters] = NewList("CH", nil, maxVisible)
	c.cols[ColVerses] = NewList("VS", nil, maxVisible)

	// SelectValue falls back to the first translation when the
	// preferred one is absent.
	c.cols[ColTranslations].SelectValue(preferred)

	c.focus = ColBooks
	c.cols[ColBooks].SetActive(true)
	c.Cascade()
	return c
}

// Translations returns the translation column.
func (c *Controller) Translations() *List { return c.cols[ColTranslations] }

// Books returns the book column.
func (c *Controller) Books() *List { return c.cols[ColBooks] }

// Chapters returns the chapter column.
func (c *Controller) Chapters() *List { return c.cols[ColChapters] }

// Verses returns the verse column.
func (c *Controller) Verses() *List { return c.cols[ColVerses] }

// Columns returns the four columns in focus order.
func (c *Controller) Columns() []*List {
	return c.cols[:]
}

// Focused returns the column holding input focus.
func (c *Controller) Focused() *List {
	return c.cols[c.focus]
}

// FocusDelta moves focus left or right, wrapping at the edges. Focus
// movement does not trigger a cascade; only selection changes do.
func (c *Controller) FocusDelta(delta int) {
	c.cols[c.focus].SetActive(false)
	c.focus = ((c.focus+delta)%columnCount + columnCount) % columnCount
	c.cols[c.focus].SetActive(true)
}

// FocusVerses moves focus directly to the verse column.
func (c *Controller) FocusVerses() {
	c.cols[c.focus].SetActive(false)
	c.focus = ColVerses
	c.cols[c.focus].SetActive(true)
}

// Cascade recomputes every dependent column from the current
// selections: activate the selected translation, reload books when the
// translation changed, then reload chapters from the book selection and
// verses from the chapter selection. It runs unconditionally after any
// action that may have changed a selection.
func (c *Controller) Cascade() {
	id := c.cols[ColTranslations].Selection().Value
	if err := c.store.SetActive(id); err == nil && id != c.lastTranslation {
		c.lastTranslation = id
		c.cols[ColBooks].SetValues(c.store.Books())
	}
	book := c.cols[ColBooks].Selection().Value
	c.cols[ColChapters].SetValues(c.store.Chapters(book))
	chapter := c.cols[ColChapters].Selection().Value
	c.cols[ColVerses].SetValues(c.store.Verses(book, chapter))
}

// Refresh rebuilds all columns from a reloaded store, preserving every
// selection by value.
func (c *Controller) Refresh() {
	c.cols[ColTranslations].SetValues(c.store.Translations())
	c.lastTranslation = ""
	c.Cascade()
}

// SetMaxVisible resizes every column's viewport.
func (c *Controller) SetMaxVisible(n int) {
	for _, col := range c.cols {
		col.SetMaxVisible(n)
	}
}

// Position captures the current selections as a persistable record.
func (c *Controller) Position() models.Position {
	return models.Position{
		Translation: c.cols[ColTranslations].Selection().Value,
		Book:        c.cols[ColBooks].Selection().Value,
		Chapter:     c.cols[ColChapters].Selection().Value,
		Verse:       c.cols[ColVerses].Selection().Value,
	}
}

// Apply restores a saved position through the same select-by-value and
// cascade path as interactive navigation. Absent or stale fields
// degrade to the default selection for that level.
func (c *Controller) Apply(pos models.Position) {
	if pos.Translation != "" {
		c.cols[ColTranslations].SelectValue(pos.Translation)
		c.Cascade()
	}
	if pos.Book != "" {
		c.cols[ColBooks].SelectValue(pos.Book)
		c.Cascade()
	}
	if pos.Chapter != "" {
		c.cols[ColChapters].SelectValue(pos.Chapter)
		c.Cascade()
	}
	if pos.Verse != "" {
		c.cols[ColVerses].SelectValue(pos.Verse)
	}
}

// PassageText resolves the chapter text from the selected verse onward.
func (c *Controller) PassageText() string {
	verseStart := 1
	if n, err := strconv.Atoi(c.cols[ColVerses].Selection().Value); err == nil {
		verseStart = n
	}
	return c.store.ChapterText(
		c.cols[ColBooks].Selection().Value,
		c.cols[ColChapters].Selection().Value,
		verseStart,
	)
}

// PassageTitle renders the current position for the text pane header.
func (c *Controller) PassageTitle() string {
	return fmt.Sprintf(" %s %s:%s [%s]",
		c.cols[ColBooks].Selection().Value,
		c.cols[ColChapters].Selection().Value,
		c.cols[ColVerses].Selection().Value,
		c.cols[ColTranslations].Selection().Value,
	)
}
