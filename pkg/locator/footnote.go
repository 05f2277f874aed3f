package locator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// An inline reference looks like `\2\` followed by BEL "N".
	footnoteRefPattern = regexp.MustCompile(`\\(\d+)\\\x07N`)

	// A definition line starts with BEL "N" and the bracketed number.
	footnoteDefPattern = regexp.MustCompile(`^\x07N\\(\d+)\\\s+`)
)

// FootnoteRef is an inline footnote reference. Offset counts runes in the
// text with all markers removed.
type FootnoteRef struct {
	Number string
	Offset int
}

// FootnoteRefs lists the footnote references in text in order.
func FootnoteRefs(text string) []FootnoteRef {
	matches := footnoteRefPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]FootnoteRef, 0, len(matches))
	offset, last := 0, 0
	for _, m := range matches {
		offset += utf8.RuneCountInString(text[last:m[0]])
		refs = append(refs, FootnoteRef{Number: text[m[2]:m[3]], Offset: offset})
		last = m[1]
	}
	return refs
}

// StripFootnoteMarkers removes inline footnote references from text.
func StripFootnoteMarkers(text string) string {
	if !strings.Contains(text, "\\") {
		return text
	}
	return footnoteRefPattern.ReplaceAllString(text, "")
}

// ParseFootnote splits a footnote definition into its number and text.
func ParseFootnote(text string) (number, body string, ok bool) {
	m := footnoteDefPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return "", "", false
	}
	return text[m[2]:m[3]], text[m[1]:], true
}

// IsFootnoteDefinition reports whether text opens with a definition marker.
func IsFootnoteDefinition(text string) bool {
	return footnoteDefPattern.MatchString(text)
}
