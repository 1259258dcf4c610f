// Package search implements corpus-wide pattern search with scopes and
// a replayable query history.
package search

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/chmouel/lazyscripture/internal/corpus"
	"github.com/chmouel/lazyscripture/internal/models"
	"github.com/chmouel/lazyscripture/internal/nav"
)

// DefaultSnippetLength bounds the cleaned snippet shown per match.
const DefaultSnippetLength = 80

// Markers for the running book/chapter/verse context. Translation files
// are scanned line by line in a single forward pass; the context
// updates whenever a book- or chapter-opening marker is seen.
var (
	numBookRe    = regexp.MustCompile(`<book\s+number="(\d+)"`)
	numChapterRe = regexp.MustCompile(`<chapter\s+number="(\d+)"`)
	numVerseRe   = regexp.MustCompile(`<verse\s+number="(\d+)"[^>]*>(.*)`)

	namedBookRe    = regexp.MustCompile(`<b\s+n="([^"]+)"`)
	namedChapterRe = regexp.MustCompile(`<c\s+n="([^"]+)"`)
	namedVerseRe   = regexp.MustCompile(`<v\s+n="([^"]+)"[^>]*>(.*)`)

	markupRe = regexp.MustCompile(`<[^>]*>`)
)

// HistoryEntry is one past query with its original scope.
type HistoryEntry struct {
	Pattern string
	Scope   models.Scope
}

// Engine runs scoped pattern searches over the raw corpus files and
// keeps the resulting match list, diagnostics and query history.
type Engine struct {
	store      *corpus.Store
	snippetLen int

	pattern     string
	scope       models.Scope
	matches     []models.Match
	diagnostics []string
	current     int

	history []HistoryEntry
	histPos int
}

// NewEngine builds a search engine over the store's corpus files.
func NewEngine(store *corpus.Store, snippetLen int) *Engine {
	if snippetLen <= 0 {
		snippetLen = DefaultSnippetLength
	}
	return &Engine{store: store, snippetLen: snippetLen}
}

// Search compiles pattern case-insensitively and scans every file in
// scope, replacing the previous results. Scoped searches produce
// navigable matches; the whole-corpus scope produces diagnostic lines
// only. Zero matches is not an error. When record is set the query is
// appended to the history.
func (e *Engine) Search(pattern string, scope models.Scope, record bool) (int, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return 0, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	e.pattern = pattern
	e.scope = scope
	e.matches = nil
	e.diagnostics = nil
	e.current = 0

	if scope.Kind == models.ScopeCorpus {
		e.scanAllFiles(re)
	} else {
		e.scanScoped(re, scope)
	}

	if record {
		e.recordHistory(pattern, scope)
	}

	if scope.Kind == models.ScopeCorpus {
		return len(e.diagnostics), nil
	}
	return len(e.matches), nil
}

// scanAllFiles is the diagnostic whole-corpus mode: raw lines from
// every file, including ones outside the recognized schemas, with no
// book/chapter resolution. Its results are not navigable.
func (e *Engine) scanAllFiles(re *regexp.Regexp) {
	for _, file := range e.store.Files() {
		e.scanFile(file, func(line string) {
			if re.MatchString(line) {
				e.diagnostics = append(e.diagnostics,
					fmt.Sprintf("%s: %s", trimExt(file), e.truncate(stripMarkup(line))))
			}
		})
	}
}

// scanScoped streams each in-scope translation file, tracking the
// enclosing book and chapter markers, and records a navigable match for
// every verse line that matches the pattern inside the scope.
func (e *Engine) scanScoped(re *regexp.Regexp, scope models.Scope) {
	ids := e.store.Translations()
	if scope.Translation != "" {
		ids = []string{scope.Translation}
	}

	for _, id := range ids {
		path, ok := e.store.Path(id)
		if !ok {
			continue
		}
		var book, chapter string
		e.scanFile(path, func(line string) {
			if m := numBookRe.FindStringSubmatch(line); m != nil {
				book = bookNameFromNumber(m[1])
			} else if m := namedBookRe.FindStringSubmatch(line); m != nil {
				book = m[1]
			}
			if m := numChapterRe.FindStringSubmatch(line); m != nil {
				chapter = m[1]
			} else if m := namedChapterRe.FindStringSubmatch(line); m != nil {
				chapter = m[1]
			}

			if scope.Kind >= models.ScopeBook && book != scope.Book {
				return
			}
			if scope.Kind >= models.ScopeChapter && chapter != scope.Chapter {
				return
			}

			verse, text := verseLine(line)
			if verse == "" {
				return
			}
			// Inline markup would split matches across tags, so the
			// pattern runs against the stripped text.
			clean := stripMarkup(text)
			if !re.MatchString(clean) {
				return
			}
			if book == "" {
				// Numeric book context out of canonical range: visible
				// in diagnostics, not navigable.
				e.diagnostics = append(e.diagnostics,
					fmt.Sprintf("%s: %s", id, e.truncate(clean)))
				return
			}
			e.matches = append(e.matches, models.Match{
				Translation: id,
				Book:        book,
				Chapter:     chapter,
				Verse:       verse,
				Snippet:     e.truncate(clean),
			})
		})
	}
}

func (e *Engine) scanFile(path string, visit func(line string)) {
	f, err := os.Open(path) // #nosec G304 -- paths come from the store's corpus dir
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		visit(scanner.Text())
	}
}

// verseLine extracts the verse label and raw text when line opens a
// verse in either schema.
func verseLine(line string) (verse, text string) {
	if m := numVerseRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	if m := namedVerseRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	return "", ""
}

// bookNameFromNumber maps a numeric book marker onto the canonical
// order, empty when out of range.
func bookNameFromNumber(number string) string {
	n, err := strconv.Atoi(number)
	if err != nil {
		return ""
	}
	name, _ := corpus.BookByNumber(n)
	return name
}

// stripMarkup removes tags and collapses whitespace.
func stripMarkup(text string) string {
	clean := markupRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(clean), " ")
}

// truncate bounds a cleaned line to the snippet display length.
func (e *Engine) truncate(clean string) string {
	if len(clean) > e.snippetLen {
		return clean[:e.snippetLen]
	}
	return clean
}

func trimExt(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// Matches returns the navigable matches of the last search in
// file-scan order.
func (e *Engine) Matches() []models.Match {
	return e.matches
}

// Diagnostics returns the non-navigable result lines of the last
// search.
func (e *Engine) Diagnostics() []string {
	return e.diagnostics
}

// Pattern returns the last search pattern.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Scope returns the last search scope.
func (e *Engine) Scope() models.Scope {
	return e.scope
}

// Current returns the index of the current match.
func (e *Engine) Current() int {
	return e.current
}

// Reset drops the result state, keeping the history.
func (e *Engine) Reset() {
	e.pattern = ""
	e.matches = nil
	e.diagnostics = nil
	e.current = 0
}

// JumpToMatch drives the controller to the match's translation, book,
// chapter and verse in that order, cascading after each step. The walk
// is deliberately best-effort: a stale value falls back at its level
// and the later steps still run.
func (e *Engine) JumpToMatch(i int, ctrl *nav.Controller) bool {
	if i < 0 || i >= len(e.matches) {
		return false
	}
	m := e.matches[i]
	ctrl.Translations().SelectValue(m.Translation)
	ctrl.Cascade()
	ctrl.Books().SelectValue(m.Book)
	ctrl.Cascade()
	ctrl.Chapters().SelectValue(m.Chapter)
	ctrl.Cascade()
	ctrl.Verses().SelectValue(m.Verse)
	e.current = i
	return true
}

// recordHistory appends a query, deduplicated by exact equality and
// moved to the most-recent position on repeat. The replay pointer
// resets past the end.
func (e *Engine) recordHistory(pattern string, scope models.Scope) {
	entry := HistoryEntry{Pattern: pattern, Scope: scope}
	for i, h := range e.history {
		if h == entry {
			e.history = append(e.history[:i], e.history[i+1:]...)
			break
		}
	}
	e.history = append(e.history, entry)
	e.histPos = len(e.history)
}

// History returns the recorded queries, oldest first.
func (e *Engine) History() []HistoryEntry {
	return e.history
}

// HistoryPrev steps the replay pointer backward.
func (e *Engine) HistoryPrev() (HistoryEntry, bool) {
	if e.histPos <= 0 || len(e.history) == 0 {
		return HistoryEntry{}, false
	}
	e.histPos--
	return e.history[e.histPos], true
}

// HistoryNext steps the replay pointer forward.
func (e *Engine) HistoryNext() (HistoryEntry, bool) {
	if e.histPos >= len(e.history)-1 {
		return HistoryEntry{}, false
	}
	e.histPos++
	return e.history[e.histPos], true
}
