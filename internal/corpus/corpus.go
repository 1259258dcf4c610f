// Package corpus exposes a uniform translation→book→chapter→verse tree
// over the two on-disk translation schemas, without normalizing them.
package corpus

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownTranslation is returned by SetActive for an id that was not
// in Translations().
var ErrUnknownTranslation = errors.New("unknown translation")

// ErrNoTranslations is returned by Load when no file in the corpus
// directory parses into a recognized schema. There is nothing to
// browse, so this is fatal at startup.
var ErrNoTranslations = errors.New("no supported translations found")

// Verse is one verse record: its label and raw markup text.
type Verse struct {
	Number string
	Text   string
}

// The decode target covers both schemas at once; detection happens on
// the populated shape, not the filename.
//
// Named:   <bible><b n="Genesis"><c n="1"><v n="1">text
// Numeric: <bible><testament name="Old"><book number="1"><chapter number="1"><verse number="1">text
type xmlRoot struct {
	XMLName    xml.Name
	Testaments []xmlTestament `xml:"testament"`
	Books      []xmlNamedBook `xml:"b"`
}

type xmlTestament struct {
	Name  string            `xml:"name,attr"`
	Books []xmlNumberedBook `xml:"book"`
}

type xmlNumberedBook struct {
	Number   string               `xml:"number,attr"`
	Chapters []xmlNumberedChapter `xml:"chapter"`
}

type xmlNumberedChapter struct {
	Number string     `xml:"number,attr"`
	Verses []xmlVerse `xml:"verse"`
}

type xmlVerse struct {
	Number string `xml:"number,attr"`
	Text   string `xml:",innerxml"`
}

type xmlNamedBook struct {
	Name     string            `xml:"n,attr"`
	Chapters []xmlNamedChapter `xml:"c"`
}

type xmlNamedChapter struct {
	Number string          `xml:"n,attr"`
	Verses []xmlNamedVerse `xml:"v"`
}

type xmlNamedVerse struct {
	Number string `xml:"n,attr"`
	Text   string `xml:",innerxml"`
}

// accessor is the per-schema strategy chosen once per translation at
// load time.
type accessor interface {
	books() []string
	chapters(book string) []string
	verses(book, chapter string) []Verse
}

type numberedAccessor struct {
	root *xmlRoot
}

// books returns the canonical 66-book order: the numeric schema stores
// books by number only, regardless of file content.
func (a *numberedAccessor) books() []string {
	return CanonicalBooks
}

func (a *numberedAccessor) findBook(book string) *xmlNumberedBook {
	n := CanonicalIndex(book)
	if n == 0 {
		return nil
	}
	want := strconv.Itoa(n)
	for ti := range a.root.Testaments {
		for bi := range a.root.Testaments[ti].Books {
			if a.root.Testaments[ti].Books[bi].Number == want {
				return &a.root.Testaments[ti].Books[bi]
			}
		}
	}
	return nil
}

func (a *numberedAccessor) chapters(book string) []string {
	bel := a.findBook(book)
	if bel == nil {
		return nil
	}
	labels := make([]string, 0, len(bel.Chapters))
	for _, ch := range bel.Chapters {
		labels = append(labels, ch.Number)
	}
	return labels
}

func (a *numberedAccessor) verses(book, chapter string) []Verse {
	bel := a.findBook(book)
	if bel == nil {
		return nil
	}
	for _, ch := range bel.Chapters {
		if ch.Number != chapter {
			continue
		}
		verses := make([]Verse, 0, len(ch.Verses))
		for _, v := range ch.Verses {
			verses = append(verses, Verse{Number: v.Number, Text: v.Text})
		}
		return verses
	}
	return nil
}

type namedAccessor struct {
	root *xmlRoot
}

func (a *namedAccessor) books() []string {
	names := make([]string, 0, len(a.root.Books))
	for _, b := range a.root.Books {
		names = append(names, b.Name)
	}
	return names
}

func (a *namedAccessor) findBook(book string) *xmlNamedBook {
	for i := range a.root.Books {
		if a.root.Books[i].Name == book {
			return &a.root.Books[i]
		}
	}
	return nil
}

func (a *namedAccessor) chapters(book string) []string {
	bel := a.findBook(book)
	if bel == nil {
		return nil
	}
	labels := make([]string, 0, len(bel.Chapters))
	for _, ch := range bel.Chapters {
		labels = append(labels, ch.Number)
	}
	return labels
}

func (a *namedAccessor) verses(book, chapter string) []Verse {
	bel := a.findBook(book)
	if bel == nil {
		return nil
	}
	for _, ch := range bel.Chapters {
		if ch.Number != chapter {
			continue
		}
		verses := make([]Verse, 0, len(ch.Verses))
		for _, v := range ch.Verses {
			verses = append(verses, Verse{Number: v.Number, Text: v.Text})
		}
		return verses
	}
	return nil
}

// Store parses the corpus directory once and answers tree queries for
// the active translation. Files that match neither schema are excluded
// from the translation list; that is discovered at load time, not
// re-checked per query.
type Store struct {
	dir    string
	ids    []string
	roots  map[string]accessor
	paths  map[string]string
	active string
	acc    accessor
}

// Load scans dir for translation files and parses every recognized one.
func Load(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.scan(); err != nil {
		return nil, err
	}
	if len(s.ids) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTranslations, dir)
	}
	return s, nil
}

func (s *Store) scan() error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.xml"))
	if err != nil {
		return err
	}

	roots := make(map[string]accessor, len(files))
	paths := make(map[string]string, len(files))
	ids := make([]string, 0, len(files))
	for _, file := range files {
		id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		acc, ok := parseFile(file)
		if !ok {
			continue
		}
		roots[id] = acc
		paths[id] = file
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return strings.ToUpper(ids[i]) < strings.ToUpper(ids[j])
	})

	s.roots = roots
	s.paths = paths
	s.ids = ids
	return nil
}

// parseFile decodes one translation file and picks the schema strategy
// from the resulting shape. Unparseable or unrecognized files report
// ok=false and are skipped, not failed.
func parseFile(path string) (accessor, bool) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from globbing the configured corpus dir
	if err != nil {
		return nil, false
	}
	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, false
	}
	switch {
	case strings.EqualFold(root.XMLName.Local, "bible") && len(root.Testaments) > 0:
		return &numberedAccessor{root: &root}, true
	case len(root.Books) > 0:
		return &namedAccessor{root: &root}, true
	}
	return nil, false
}

// Reload re-scans the corpus directory, keeping the current data when
// the rescan finds nothing usable. The active translation is re-pointed
// at its re-parsed tree, or cleared when its file disappeared.
func (s *Store) Reload() error {
	prev := *s
	if err := s.scan(); err != nil {
		*s = prev
		return err
	}
	if len(s.ids) == 0 {
		*s = prev
		return ErrNoTranslations
	}
	if acc, ok := s.roots[s.active]; ok {
		s.acc = acc
	} else {
		s.active = ""
		s.acc = nil
	}
	return nil
}

// Dir returns the corpus directory the store was loaded from.
func (s *Store) Dir() string {
	return s.dir
}

// Translations returns the recognized translation ids, sorted
// case-insensitively.
func (s *Store) Translations() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Active returns the currently active translation id.
func (s *Store) Active() string {
	return s.active
}

// Path returns the on-disk file for a translation id, for raw scans.
func (s *Store) Path(id string) (string, bool) {
	p, ok := s.paths[id]
	return p, ok
}

// Files returns every corpus file, including ones excluded from the
// translation list. Used by the diagnostic whole-corpus search mode.
func (s *Store) Files() []string {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.xml"))
	if err != nil {
		return nil
	}
	sort.Strings(files)
	return files
}

// SetActive switches the active translation. Switching to the already
// active id is a no-op; the parsed tree is never rebuilt redundantly.
func (s *Store) SetActive(id string) error {
	if id == s.active {
		return nil
	}
	acc, ok := s.roots[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTranslation, id)
	}
	s.active = id
	s.acc = acc
	return nil
}

// Books returns the book names of the active translation: canonical
// order for the numeric schema, file order for the named schema.
func (s *Store) Books() []string {
	if s.acc == nil {
		return nil
	}
	return s.acc.books()
}

// Chapters returns the chapter labels of a book, empty when the book
// does not exist in the active translation.
func (s *Store) Chapters(book string) []string {
	if s.acc == nil {
		return nil
	}
	return s.acc.chapters(book)
}

// Verses returns the verse labels of a chapter, empty on any miss.
func (s *Store) Verses(book, chapter string) []string {
	if s.acc == nil {
		return nil
	}
	verses := s.acc.verses(book, chapter)
	labels := make([]string, 0, len(verses))
	for _, v := range verses {
		labels = append(labels, v.Number)
	}
	return labels
}

// ChapterText concatenates the verses of a chapter from verseStart
// onward, each prefixed with its marker: "(1) text (2) text". Verse
// labels are compared as integers, so "10" filters correctly against
// "9". Returns the empty string when nothing matches.
func (s *Store) ChapterText(book, chapter string, verseStart int) string {
	if s.acc == nil {
		return ""
	}
	var parts []string
	for _, v := range s.acc.verses(book, chapter) {
		n, err := strconv.Atoi(v.Number)
		if err != nil || n < verseStart {
			continue
		}
		parts = append(parts, fmt.Sprintf("(%s) %s", v.Number, strings.TrimSpace(v.Text)))
	}
	return strings.Join(parts, " ")
}
