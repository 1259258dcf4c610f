package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref     string
		book    string
		chapter string
		verse   string
	}{
		{"Gen 1:3", "Gen", "1", "3"},
		{"gen 1", "gen", "1", ""},
		{"Psalms", "Psalms", "", ""},
		{"1 John 4", "1 John", "4", ""},
		{"1 John 3:16", "1 John", "3", "16"},
		{"Song of Solomon 2:1", "Song of Solomon", "2", "1"},
	}
	for _, tt := range tests {
		book, chapter, verse, err := parseReference(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.book, book, tt.ref)
		assert.Equal(t, tt.chapter, chapter, tt.ref)
		assert.Equal(t, tt.verse, verse, tt.ref)
	}
}

func TestParseReferenceEmpty(t *testing.T) {
	_, _, _, err := parseReference("   ")
	assert.Error(t, err)
}

func TestResolveBook(t *testing.T) {
	tests := map[string]string{
		"gen":             "Genesis",
		"Gen.":            "Genesis",
		"GENESIS":         "Genesis",
		"sos":             "Song of Solomon",
		"song of solomon": "Song of Solomon",
		"1jn":             "1 John",
		"1 john":          "1 John",
		"rev":             "Revelation",
	}
	for token, want := range tests {
		got, ok := resolveBook(token)
		require.True(t, ok, token)
		assert.Equal(t, want, got, token)
	}

	_, ok := resolveBook("atlantis")
	assert.False(t, ok)
}

func TestIsChapterVerse(t *testing.T) {
	assert.True(t, isChapterVerse("3"))
	assert.True(t, isChapterVerse("3:16"))
	assert.False(t, isChapterVerse("three"))
	assert.False(t, isChapterVerse("3:"))
	assert.False(t, isChapterVerse(":16"))
}
