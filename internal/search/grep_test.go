package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chmouel/lazyscripture/internal/corpus"
	"github.com/chmouel/lazyscripture/internal/models"
	"github.com/chmouel/lazyscripture/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bsbFixture = `<?xml version="1.0" encoding="utf-8"?>
<bible translation="BSB">
  <testament name="Old">
    <book number="1">
      <chapter number="1">
        <verse number="3">And God said, Let there be light, and there was light.</verse>
        <verse number="4">And God saw that the light was good.</verse>
      </chapter>
      <chapter number="2">
        <verse number="1">Thus the heavens and the earth were completed.</verse>
      </chapter>
    </book>
  </testament>
</bible>
`

const kjvFixture = `<?xml version="1.0" encoding="utf-8"?>
<bible>
  <b n="John">
    <c n="8">
      <v n="12">I am the <i>light</i> of the world.</v>
    </c>
  </b>
</bible>
`

func testEngine(t *testing.T) (*Engine, *corpus.Store) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BSB.xml"), []byte(bsbFixture), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "KJV.xml"), []byte(kjvFixture), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.xml"),
		[]byte("<notes><entry>a light in the margin</entry></notes>"), 0o600))
	store, err := corpus.Load(dir)
	require.NoError(t, err)
	return NewEngine(store, 0), store
}

func TestScopedSearchAllTranslations(t *testing.T) {
	e, _ := testEngine(t)

	count, err := e.Search("light", models.Scope{Kind: models.ScopeTranslation}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	matches := e.Matches()
	require.Len(t, matches, 3)
	// Translations scan in sorted id order, verses in file order.
	assert.Equal(t, "Genesis 1:3 [BSB]", matches[0].Ref())
	assert.Equal(t, "Genesis 1:4 [BSB]", matches[1].Ref())
	assert.Equal(t, "John 8:12 [KJV]", matches[2].Ref())

	// Markup inside the verse is stripped from the snippet.
	assert.Equal(t, "I am the light of the world.", matches[2].Snippet)
}

func TestScopedSearchSingleTranslation(t *testing.T) {
	e, _ := testEngine(t)

	count, err := e.Search("light", models.Scope{
		Kind: models.ScopeTranslation, Translation: "KJV",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "John 8:12 [KJV]", e.Matches()[0].Ref())
}

func TestChapterScopeFilters(t *testing.T) {
	e, _ := testEngine(t)

	scope := models.Scope{
		Kind:        models.ScopeChapter,
		Translation: "BSB",
		Book:        "Genesis",
		Chapter:     "2",
	}
	count, err := e.Search("the", scope, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Genesis 2:1 [BSB]", e.Matches()[0].Ref())
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	e, _ := testEngine(t)

	count, err := e.Search("LIGHT", models.Scope{Kind: models.ScopeTranslation, Translation: "BSB"}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestZeroMatchesIsNotAnError(t *testing.T) {
	e, _ := testEngine(t)

	count, err := e.Search("xyzzy", models.Scope{Kind: models.ScopeTranslation}, true)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, e.Matches())
}

func TestBadPatternIsAnError(t *testing.T) {
	e, _ := testEngine(t)

	_, err := e.Search("[unclosed", models.Scope{Kind: models.ScopeTranslation}, true)
	require.Error(t, err)
	// A rejected pattern is not recorded.
	assert.Empty(t, e.History())
}

func TestCorpusScopeIsDiagnosticOnly(t *testing.T) {
	e, _ := testEngine(t)

	count, err := e.Search("light", models.Scope{Kind: models.ScopeCorpus}, true)
	require.NoError(t, err)
	assert.Positive(t, count)
	assert.Empty(t, e.Matches(), "whole-corpus results are not navigable")

	// Files outside the recognized schemas are included.
	found := false
	for _, d := range e.Diagnostics() {
		if d == "notes: a light in the margin" {
			found = true
		}
	}
	assert.True(t, found, "expected a diagnostic from notes.xml, got %v", e.Diagnostics())
}

func TestJumpToMatch(t *testing.T) {
	e, store := testEngine(t)
	ctrl := nav.NewController(store, "BSB", 10)

	_, err := e.Search("light of the world", models.Scope{Kind: models.ScopeTranslation}, true)
	require.NoError(t, err)
	require.Len(t, e.Matches(), 1)

	require.True(t, e.JumpToMatch(0, ctrl))
	assert.Equal(t, "KJV", ctrl.Translations().Selection().Value)
	assert.Equal(t, "John", ctrl.Books().Selection().Value)
	assert.Equal(t, "8", ctrl.Chapters().Selection().Value)
	assert.Equal(t, "12", ctrl.Verses().Selection().Value)

	assert.False(t, e.JumpToMatch(5, ctrl))
}

func TestHistoryDedupMovesToFront(t *testing.T) {
	e, _ := testEngine(t)
	scope := models.Scope{Kind: models.ScopeTranslation}

	_, err := e.Search("light", scope, true)
	require.NoError(t, err)
	_, err = e.Search("earth", scope, true)
	require.NoError(t, err)
	_, err = e.Search("light", scope, true)
	require.NoError(t, err)

	hist := e.History()
	require.Len(t, hist, 2)
	assert.Equal(t, "earth", hist[0].Pattern)
	assert.Equal(t, "light", hist[1].Pattern)
}

func TestHistoryReplayPointer(t *testing.T) {
	e, _ := testEngine(t)
	scope := models.Scope{Kind: models.ScopeTranslation}

	_, err := e.Search("light", scope, true)
	require.NoError(t, err)
	_, err = e.Search("earth", scope, true)
	require.NoError(t, err)

	entry, ok := e.HistoryPrev()
	require.True(t, ok)
	assert.Equal(t, "earth", entry.Pattern)

	entry, ok = e.HistoryPrev()
	require.True(t, ok)
	assert.Equal(t, "light", entry.Pattern)

	_, ok = e.HistoryPrev()
	assert.False(t, ok)

	entry, ok = e.HistoryNext()
	require.True(t, ok)
	assert.Equal(t, "earth", entry.Pattern)

	_, ok = e.HistoryNext()
	assert.False(t, ok)
}

func TestReplayWithoutRecordKeepsHistory(t *testing.T) {
	e, _ := testEngine(t)
	scope := models.Scope{Kind: models.ScopeTranslation}

	_, err := e.Search("light", scope, true)
	require.NoError(t, err)
	_, err = e.Search("light", scope, false)
	require.NoError(t, err)

	assert.Len(t, e.History(), 1)
}

func TestSnippetTruncation(t *testing.T) {
	e, _ := testEngine(t)
	e.snippetLen = 10

	_, err := e.Search("light", models.Scope{Kind: models.ScopeTranslation, Translation: "KJV"}, false)
	require.NoError(t, err)
	require.Len(t, e.Matches(), 1)
	assert.Equal(t, "I am the l", e.Matches()[0].Snippet)
}
