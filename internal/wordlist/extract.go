package wordlist

import (
	"strings"
	"unicode"

	"github.com/petebuffon/scuwl/internal/model"
)

// excludedParents are the elements whose text is never rendered to a reader:
// styling, scripting, and document metadata. Text nodes directly under one of
// these contribute nothing to a wordlist of visible site language.
var excludedParents = map[string]struct{}{
	"style":  {},
	"script": {},
	"head":   {},
	"title":  {},
	"meta":   {},
}

// asciiPunct is the ASCII punctuation stripped from page text when
// punctuation stripping is enabled.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// isASCIIPunct is a lookup table over the ASCII range for asciiPunct.
var isASCIIPunct [128]bool

func init() {
	for _, r := range asciiPunct {
		isASCIIPunct[r] = true
	}
}

// Options controls word selection and filtering.
type Options struct {
	// MinLength and MaxLength bound kept word lengths, inclusive.
	MinLength int
	MaxLength int

	// StripPunctuation removes ASCII punctuation before splitting,
	// so "Hello, World!" yields "hello" and "world".
	StripPunctuation bool

	// AlphaOnly keeps only words composed entirely of letters.
	// When false, words composed entirely of ASCII characters are kept.
	AlphaOnly bool

	// TablesOnly extracts from <table> text instead of visible text nodes.
	TablesOnly bool
}

// Extractor feeds filtered words from parsed pages into a shared Set.
// It is stateless apart from the Set, so one Extractor may be used by many
// goroutines at once.
type Extractor struct {
	opts Options
	set  *Set
}

// NewExtractor creates an Extractor writing into set.
func NewExtractor(opts Options, set *Set) *Extractor {
	return &Extractor{opts: opts, set: set}
}

// Extract pulls words from a parsed page into the set.
//
// In the default mode every text node is considered unless its enclosing
// element is one of the excluded tags. In table-only mode the full text of
// each <table> is used and the tag exclusion does not apply.
func (e *Extractor) Extract(page *model.Page) {
	if e.opts.TablesOnly {
		for _, table := range page.Tables {
			e.extractText(table)
		}
		return
	}

	for _, node := range page.TextNodes {
		if _, excluded := excludedParents[node.Parent]; excluded {
			continue
		}
		e.extractText(node.Text)
	}
}

// extractText lower-cases, optionally strips punctuation, splits on
// whitespace, and adds every word that passes the filters.
func (e *Extractor) extractText(text string) {
	text = strings.ToLower(text)
	if e.opts.StripPunctuation {
		text = stripPunctuation(text)
	}

	for _, word := range strings.Fields(text) {
		if e.keep(word) {
			e.set.Add(word)
		}
	}
}

// keep applies the word filters: length bounds first, then the character
// class check (letters only in alpha mode, ASCII only otherwise).
func (e *Extractor) keep(word string) bool {
	n := len([]rune(word))
	if n < e.opts.MinLength || n > e.opts.MaxLength {
		return false
	}
	if e.opts.AlphaOnly {
		return isAlpha(word)
	}
	return isASCII(word)
}

// stripPunctuation removes all ASCII punctuation characters.
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 128 && isASCIIPunct[r] {
			return -1
		}
		return r
	}, s)
}

// isAlpha reports whether every rune in s is a letter.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isASCII reports whether every rune in s is in the ASCII range.
func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
