package corpus

// CanonicalBooks is the standard 66-book order used to map numeric-only
// schemas onto book names.
var CanonicalBooks = []string{
	"Genesis",
	"Exodus",
	"Leviticus",
	"Numbers",
	"Deuteronomy",
	"Joshua",
	"Judges",
	"Ruth",
	"1 Samuel",
	"2 Samuel",
	"1 Kings",
	"2 Kings",
	"1 Chronicles",
	"2 Chronicles",
	"Ezra",
	"Nehemiah",
	"Esther",
	"Job",
	"Psalms",
	"Proverbs",
	"Ecclesiastes",
	"Song of Solomon",
	"Isaiah",
	"Jeremiah",
	"Lamentations",
	"Ezekiel",
	"Daniel",
	"Hosea",
	"Joel",
	"Amos",
	"Obadiah",
	"Jonah",
	"Micah",
	"Nahum",
	"Habakkuk",
	"Zephaniah",
	"Haggai",
	"Zechariah",
	"Malachi",
	"Matthew",
	"Mark",
	"Luke",
	"John",
	"Acts",
	"Romans",
	"1 Corinthians",
	"2 Corinthians",
	"Galatians",
	"Ephesians",
	"Philippians",
	"Colossians",
	"1 Thessalonians",
	"2 Thessalonians",
	"1 Timothy",
	"2 Timothy",
	"Titus",
	"Philemon",
	"Hebrews",
	"James",
	"1 Peter",
	"2 Peter",
	"1 John",
	"2 John",
	"3 John",
	"Jude",
	"Revelation",
}

// CanonicalIndex returns the 1-based position of a book in the
// canonical order, or 0 when the name is not canonical.
func CanonicalIndex(book string) int {
	for i, name := range CanonicalBooks {
		if name == book {
			return i + 1
		}
	}
	return 0
}

// BookByNumber resolves a 1-based canonical book number to its name.
func BookByNumber(n int) (string, bool) {
	if n < 1 || n > len(CanonicalBooks) {
		return "", false
	}
	return CanonicalBooks[n-1], true
}
