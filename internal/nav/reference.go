package nav

import (
	"fmt"
	"strings"
)

// bookAbbreviations maps lowercase abbreviations to canonical book
// names. Full names resolve through the same table, lowercased, so
// "song of solomon 2" and "sos 2" land in the same place.
var bookAbbreviations = map[string]string{
	"gen": "Genesis", "ex": "Exodus", "exo": "Exodus", "lev": "Leviticus",
	"num": "Numbers", "deut": "Deuteronomy", "dt": "Deuteronomy",
	"josh": "Joshua", "judg": "Judges", "jdg": "Judges", "ruth": "Ruth",
	"1sam": "1 Samuel", "2sam": "2 Samuel", "1kgs": "1 Kings", "2kgs": "2 Kings",
	"1chr": "1 Chronicles", "2chr": "2 Chronicles", "ezra": "Ezra",
	"neh": "Nehemiah", "esth": "Esther", "job": "Job",
	"ps": "Psalms", "psa": "Psalms", "prov": "Proverbs", "eccl": "Ecclesiastes",
	"song": "Song of Solomon", "sos": "Song of Solomon",
	"isa": "Isaiah", "jer": "Jeremiah", "lam": "Lamentations",
	"ezek": "Ezekiel", "dan": "Daniel", "hos": "Hosea", "joel": "Joel",
	"amos": "Amos", "obad": "Obadiah", "jonah": "Jonah", "mic": "Micah",
	"nah": "Nahum", "hab": "Habakkuk", "zeph": "Zephaniah", "hag": "Haggai",
	"zech": "Zechariah", "mal": "Malachi",
	"matt": "Matthew", "mt": "Matthew", "mark": "Mark", "mk": "Mark",
	"luke": "Luke", "lk": "Luke", "john": "John", "jn": "John",
	"acts": "Acts", "rom": "Romans",
	"1cor": "1 Corinthians", "2cor": "2 Corinthians", "gal": "Galatians",
	"eph": "Ephesians", "phil": "Philippians", "col": "Colossians",
	"1thess": "1 Thessalonians", "2thess": "2 Thessalonians",
	"1tim": "1 Timothy", "2tim": "2 Timothy", "titus": "Titus",
	"phlm": "Philemon", "heb": "Hebrews", "jas": "James",
	"1pet": "1 Peter", "2pet": "2 Peter",
	"1jn": "1 John", "2jn": "2 John", "3jn": "3 John",
	"jude": "Jude", "rev": "Revelation",
	"genesis": "Genesis", "exodus": "Exodus", "leviticus": "Leviticus",
	"numbers": "Numbers", "deuteronomy": "Deuteronomy", "joshua": "Joshua",
	"judges": "Judges", "1 samuel": "1 Samuel", "2 samuel": "2 Samuel",
	"1 kings": "1 Kings", "2 kings": "2 Kings",
	"1 chronicles": "1 Chronicles", "2 chronicles": "2 Chronicles",
	"nehemiah": "Nehemiah", "esther": "Esther", "psalms": "Psalms",
	"proverbs": "Proverbs", "ecclesiastes": "Ecclesiastes",
	"song of solomon": "Song of Solomon", "isaiah": "Isaiah",
	"jeremiah": "Jeremiah", "lamentations": "Lamentations",
	"ezekiel": "Ezekiel", "daniel": "Daniel", "hosea": "Hosea",
	"obadiah": "Obadiah", "micah": "Micah", "nahum": "Nahum",
	"habakkuk": "Habakkuk", "zephaniah": "Zephaniah", "haggai": "Haggai",
	"zechariah": "Zechariah", "malachi": "Malachi", "matthew": "Matthew",
	"romans": "Romans", "1 corinthians": "1 Corinthians",
	"2 corinthians": "2 Corinthians", "galatians": "Galatians",
	"ephesians": "Ephesians", "philippians": "Philippians",
	"colossians": "Colossians", "1 thessalonians": "1 Thessalonians",
	"2 thessalonians": "2 Thessalonians", "1 timothy": "1 Timothy",
	"2 timothy": "2 Timothy", "philemon": "Philemon", "hebrews": "Hebrews",
	"james": "James", "1 peter": "1 Peter", "2 peter": "2 Peter",
	"1 john": "1 John", "2 john": "2 John", "3 john": "3 John",
	"revelation": "Revelation",
}

// resolveBook maps a reference token to a canonical book name.
func resolveBook(token string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	key = strings.ReplaceAll(key, ".", "")
	name, ok := bookAbbreviations[key]
	return name, ok
}

// parseReference splits a human reference like "Gen 1:3", "1 John 4" or
// "Psalms" into book, chapter and verse parts. Chapter and verse are
// empty when not given.
func parseReference(ref string) (book, chapter, verse string, err error) {
	fields := strings.Fields(strings.TrimSpace(ref))
	if len(fields) == 0 {
		return "", "", "", fmt.Errorf("empty reference")
	}

	last := fields[len(fields)-1]
	if isChapterVerse(last) && len(fields) > 1 {
		chapter, verse, _ = strings.Cut(last, ":")
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " "), chapter, verse, nil
}

// isChapterVerse reports whether a token has the shape "3" or "3:16".
func isChapterVerse(token string) bool {
	ch, vs, found := strings.Cut(token, ":")
	if !isDigits(ch) {
		return false
	}
	return !found || isDigits(vs)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// JumpToReference resolves a human reference through the abbreviation
// table and drives the same select-by-value cascade as interactive
// navigation. An unresolvable reference is a reported, non-fatal
// failure; nothing is selected in that case.
func (c *Controller) JumpToReference(ref string) error {
	book, chapter, verse, err := parseReference(ref)
	if err != nil {
		return err
	}
	name, ok := resolveBook(book)
	if !ok {
		return fmt.Errorf("unknown book %q", book)
	}

	c.cols[ColBooks].SelectValue(name)
	c.Cascade()
	if chapter != "" {
		c.cols[ColChapters].SelectValue(chapter)
		c.Cascade()
	}
	if verse != "" {
		c.cols[ColVerses].SelectValue(verse)
	}
	return nil
}
