// Package models defines the data objects shared across lazyscripture packages.
package models

import "fmt"

// Item pairs a stable ordinal index with a display value. The index is
// the item's position in its parent sequence for the lifetime of the
// list; selections are preserved across list replacement by value, not
// by index.
type Item struct {
	Index int
	Value string
}

// Position identifies a passage in the corpus. It is also the record
// persisted between sessions; every field is optional on load.
type Position struct {
	Translation string `json:"translation"`
	Book        string `json:"book,omitempty"`
	Chapter     string `json:"chapter,omitempty"`
	Verse       string `json:"verse,omitempty"`
}

// ScopeKind enumerates the subsets of the corpus a pattern search can
// be restricted to.
type ScopeKind int

// Scope kinds, from widest to narrowest.
const (
	ScopeCorpus ScopeKind = iota
	ScopeTranslation
	ScopeBook
	ScopeChapter
)

// Scope restricts a pattern search. Book and Chapter scopes carry the
// translation they were captured from.
type Scope struct {
	Kind        ScopeKind
	Translation string
	Book        string
	Chapter     string
}

// String renders the scope for titles and history display.
func (s Scope) String() string {
	switch s.Kind {
	case ScopeTranslation:
		return s.Translation
	case ScopeBook:
		return fmt.Sprintf("%s/%s", s.Translation, s.Book)
	case ScopeChapter:
		return fmt.Sprintf("%s/%s %s", s.Translation, s.Book, s.Chapter)
	default:
		return "all"
	}
}

// Match records one navigable pattern-search hit in file-scan order.
type Match struct {
	Translation string
	Book        string
	Chapter     string
	Verse       string
	Snippet     string
}

// Ref renders the match location as a human reference.
func (m Match) Ref() string {
	return fmt.Sprintf("%s %s:%s [%s]", m.Book, m.Chapter, m.Verse, m.Translation)
}

// StateFilename stores the last reading position between sessions.
const StateFilename = "last-position.json"
