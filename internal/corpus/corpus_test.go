package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const numericFixture = `<?xml version="1.0" encoding="utf-8"?>
<bible translation="BSB">
  <testament name="Old">
    <book number="1">
      <chapter number="1">
        <verse number="1">In the beginning God created the heavens and the earth.</verse>
        <verse number="2">Now the earth was formless and void.</verse>
        <verse number="3">And God said, Let there be light.</verse>
      </chapter>
      <chapter number="2">
        <verse number="1">Thus the heavens and the earth were completed.</verse>
      </chapter>
    </book>
  </testament>
  <testament name="New">
    <book number="43">
      <chapter number="1">
        <verse number="1">In the beginning was the Word.</verse>
      </chapter>
    </book>
  </testament>
</bible>
`

const namedFixture = `<?xml version="1.0" encoding="utf-8"?>
<bible>
  <b n="Matthew">
    <c n="1">
      <v n="1">The book of the generation of Jesus Christ.</v>
    </c>
  </b>
  <b n="Genesis">
    <c n="1">
      <v n="1">In the beginning God created the heaven and the earth.</v>
      <v n="2">And the earth was without form, and void.</v>
    </c>
    <c n="2">
      <v n="9">Verse nine.</v>
      <v n="10">Verse ten.</v>
    </c>
  </b>
</bible>
`

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"BSB.xml":    numericFixture,
		"KJV.xml":    namedFixture,
		"broken.xml": "<bible><b",
		"notes.xml":  "<notes><entry>let there be light here too</entry></notes>",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoadRecognizesBothSchemas(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)

	// broken.xml and notes.xml are excluded, ids sorted case-insensitively.
	assert.Equal(t, []string{"BSB", "KJV"}, store.Translations())
}

func TestLoadEmptyDirFails(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTranslations)
}

func TestSetActiveUnknown(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)

	err = store.SetActive("NIV")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTranslation)
	assert.Empty(t, store.Active())
}

func TestNumericSchemaUsesCanonicalBooks(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)
	require.NoError(t, store.SetActive("BSB"))

	books := store.Books()
	require.Len(t, books, 66)
	assert.Equal(t, "Genesis", books[0])
	assert.Equal(t, "Revelation", books[65])
}

func TestNamedSchemaUsesFileOrder(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)
	require.NoError(t, store.SetActive("KJV"))

	assert.Equal(t, []string{"Matthew", "Genesis"}, store.Books())
}

func TestChaptersAndVerses(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)
	require.NoError(t, store.SetActive("BSB"))

	assert.Equal(t, []string{"1", "2"}, store.Chapters("Genesis"))
	assert.Equal(t, []string{"1", "2", "3"}, store.Verses("Genesis", "1"))

	// Book number 43 resolves through the canonical order.
	assert.Equal(t, []string{"1"}, store.Chapters("John"))
}

func TestMissingLookupsAreEmpty(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)
	require.NoError(t, store.SetActive("BSB"))

	assert.Empty(t, store.Chapters("Atlantis"))
	assert.Empty(t, store.Verses("Genesis", "99"))
	// Exodus is in the canonical list but absent from the fixture file.
	assert.Empty(t, store.Chapters("Exodus"))
}

func TestChapterTextFromVerse(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)
	require.NoError(t, store.SetActive("BSB"))

	got := store.ChapterText("Genesis", "1", 2)
	want := "(2) Now the earth was formless and void. (3) And God said, Let there be light."
	assert.Equal(t, want, got)
}

func TestChapterTextComparesVersesNumerically(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)
	require.NoError(t, store.SetActive("KJV"))

	// "10" must survive a start of 10 even though "10" < "9" as strings.
	assert.Equal(t, "(10) Verse ten.", store.ChapterText("Genesis", "2", 10))
	assert.Empty(t, store.ChapterText("Genesis", "2", 11))
}

func TestReloadPicksUpNewFiles(t *testing.T) {
	dir := writeCorpus(t)
	store, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetActive("BSB"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ASV.xml"), []byte(namedFixture), 0o600))
	require.NoError(t, store.Reload())

	assert.Equal(t, []string{"ASV", "BSB", "KJV"}, store.Translations())
	assert.Equal(t, "BSB", store.Active(), "active translation survives reload")
}

func TestReloadClearsVanishedActive(t *testing.T) {
	dir := writeCorpus(t)
	store, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetActive("BSB"))

	require.NoError(t, os.Remove(filepath.Join(dir, "BSB.xml")))
	require.NoError(t, store.Reload())

	assert.Empty(t, store.Active())
	assert.Nil(t, store.Books())
}

func TestFilesIncludesUnrecognized(t *testing.T) {
	store, err := Load(writeCorpus(t))
	require.NoError(t, err)

	files := store.Files()
	assert.Len(t, files, 4)
}

func TestCanonicalIndex(t *testing.T) {
	assert.Equal(t, 1, CanonicalIndex("Genesis"))
	assert.Equal(t, 66, CanonicalIndex("Revelation"))
	assert.Zero(t, CanonicalIndex("Atlantis"))

	name, ok := BookByNumber(43)
	require.True(t, ok)
	assert.Equal(t, "John", name)

	_, ok = BookByNumber(67)
	assert.False(t, ok)
}
