package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chmouel/lazyscripture/internal/corpus"
	"github.com/chmouel/lazyscripture/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bsbFixture = `<?xml version="1.0" encoding="utf-8"?>
<bible translation="BSB">
  <testament name="Old">
    <book number="1">
      <chapter number="1">
        <verse number="1">In the beginning God created the heavens and the earth.</verse>
        <verse number="2">Now the earth was formless and void.</verse>
      </chapter>
      <chapter number="2">
        <verse number="1">Thus the heavens and the earth were completed.</verse>
      </chapter>
    </book>
    <book number="2">
      <chapter number="1">
        <verse number="1">These are the names of the sons of Israel.</verse>
      </chapter>
    </book>
  </testament>
</bible>
`

const kjvFixture = `<?xml version="1.0" encoding="utf-8"?>
<bible>
  <b n="John">
    <c n="3">
      <v n="16">For God so loved the world.</v>
    </c>
  </b>
  <b n="Genesis">
    <c n="1">
      <v n="1">In the beginning God created the heaven and the earth.</v>
    </c>
  </b>
</bible>
`

func testStore(t *testing.T) *corpus.Store {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BSB.xml"), []byte(bsbFixture), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "KJV.xml"), []byte(kjvFixture), 0o600))
	store, err := corpus.Load(dir)
	require.NoError(t, err)
	return store
}

func TestNewControllerSelectsPreferredTranslation(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)

	assert.Equal(t, "BSB", c.Translations().Selection().Value)
	assert.Equal(t, "Genesis", c.Books().Selection().Value)
	assert.Equal(t, "1", c.Chapters().Selection().Value)
	assert.Equal(t, "1", c.Verses().Selection().Value)
}

func TestNewControllerUnknownPreferredFallsBack(t *testing.T) {
	c := NewController(testStore(t), "NIV", 10)
	assert.Equal(t, "BSB", c.Translations().Selection().Value)
}

func TestCascadeKeepsColumnsConsistent(t *testing.T) {
	store := testStore(t)
	c := NewController(store, "BSB", 10)

	// Move the book cursor to Exodus and cascade.
	c.Books().SelectValue("Exodus")
	c.Cascade()

	assert.Equal(t, store.Chapters("Exodus"), valuesOf(c.Chapters()))
	assert.Equal(t, store.Verses("Exodus", "1"), valuesOf(c.Verses()))
}

func TestTranslationChangeReloadsBooks(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)
	require.Len(t, c.Books().Items(), 66)

	c.Translations().SelectValue("KJV")
	c.Cascade()

	// Named schema lists books in file order. The book cursor is
	// preserved by value across the reload: Genesis survives.
	assert.Equal(t, []string{"John", "Genesis"}, valuesOf(c.Books()))
	assert.Equal(t, "Genesis", c.Books().Selection().Value)
}

func TestCascadeWithoutTranslationChangeKeepsBookCursor(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)
	c.Books().SelectValue("Exodus")
	c.Cascade()
	c.Cascade()

	assert.Equal(t, "Exodus", c.Books().Selection().Value)
}

func TestFocusWrapsAndSkipsCascade(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)
	assert.True(t, c.Books().Active())

	c.FocusDelta(-1)
	assert.True(t, c.Translations().Active())
	assert.False(t, c.Books().Active())

	c.FocusDelta(-1)
	assert.True(t, c.Verses().Active())

	c.FocusDelta(1)
	assert.True(t, c.Translations().Active())

	c.FocusVerses()
	assert.True(t, c.Verses().Active())
}

func TestApplyPositionRestoresSelections(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)

	c.Apply(models.Position{Translation: "BSB", Book: "Genesis", Chapter: "2", Verse: "1"})

	assert.Equal(t, "2", c.Chapters().Selection().Value)
	assert.Equal(t, "1", c.Verses().Selection().Value)
}

func TestApplyPositionStaleFieldsDegrade(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)

	c.Apply(models.Position{Translation: "BSB", Book: "Genesis", Chapter: "99", Verse: "7"})

	// Stale chapter falls back to the first; the verse then resolves
	// against that chapter.
	assert.Equal(t, "1", c.Chapters().Selection().Value)
	assert.Equal(t, "1", c.Verses().Selection().Value)
}

func TestPassageTextStartsAtSelectedVerse(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)
	c.Verses().SelectValue("2")

	assert.Equal(t, "(2) Now the earth was formless and void.", c.PassageText())
	assert.Equal(t, " Genesis 1:2 [BSB]", c.PassageTitle())
}

func TestRefreshPreservesSelectionsByValue(t *testing.T) {
	store := testStore(t)
	c := NewController(store, "BSB", 10)
	c.Books().SelectValue("Exodus")
	c.Cascade()

	c.Refresh()

	assert.Equal(t, "BSB", c.Translations().Selection().Value)
	assert.Equal(t, "Exodus", c.Books().Selection().Value)
}

func TestJumpToReference(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)

	require.NoError(t, c.JumpToReference("gen 1:2"))
	assert.Equal(t, "Genesis", c.Books().Selection().Value)
	assert.Equal(t, "1", c.Chapters().Selection().Value)
	assert.Equal(t, "2", c.Verses().Selection().Value)
}

func TestJumpToReferenceUnknownBook(t *testing.T) {
	c := NewController(testStore(t), "BSB", 10)
	c.Books().SelectValue("Exodus")
	c.Cascade()

	err := c.JumpToReference("atlantis 3:16")
	require.Error(t, err)
	// Nothing moved.
	assert.Equal(t, "Exodus", c.Books().Selection().Value)
}

func valuesOf(l *List) []string {
	out := make([]string, 0, l.Len())
	for _, it := range l.Items() {
		out = append(out, it.Value)
	}
	return out
}
