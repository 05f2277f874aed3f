package scheme

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPatterns extract sub-tokens from stripped label text, in priority
// order. Matches are ordered by position, not by pattern.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[A-Z]+`),
	regexp.MustCompile(`[\d.]+`),
	regexp.MustCompile(`-+`),
	regexp.MustCompile(`^\(.+\)$`),
	regexp.MustCompile(`\.$`),
}

// Enum is a possibly compound enumeration label such as "(a)", "viii" or
// "4-a". Equality is textual; ordering is relative to shared schemes.
type Enum struct {
	original string
	text     string
	left     string
	right    string
	tokens   []*Token
	nested   bool

	ordinality map[Scheme][]int
}

// NewEnum parses label text. Surrounding parentheses and trailing periods are
// recorded so the label can be formatted again. Text containing characters
// outside the enumeration alphabet, or a token no scheme can classify,
// returns a *ClassificationError.
func NewEnum(text string) (*Enum, error) {
	trimmed := strings.TrimSpace(text)
	if bad := unrecognizedChars(trimmed); bad != "" {
		return nil, &ClassificationError{Text: text, Chars: bad, Err: ErrUnrecognizedToken}
	}

	e := &Enum{original: text}

	core := trimmed
	for strings.HasPrefix(core, "(") {
		e.left += "("
		core = core[1:]
	}
	for len(core) > 0 && (core[len(core)-1] == '.' || core[len(core)-1] == ')') {
		e.right = core[len(core)-1:] + e.right
		core = core[:len(core)-1]
	}
	e.text = core
	e.tokens = extractTokens(core)

	for _, token := range e.tokens {
		if token.IsConnector() {
			continue
		}
		if _, err := token.Schemes(); err != nil {
			return nil, &ClassificationError{Text: text, Err: ErrUnrecognizedScheme}
		}
	}
	return e, nil
}

// MustEnum is NewEnum for labels known to be valid. It panics on error.
func MustEnum(text string) *Enum {
	e, err := NewEnum(text)
	if err != nil {
		panic(err)
	}
	return e
}

func unrecognizedChars(text string) string {
	var bad []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		case r == '-', r == '.', r == '(', r == ')':
		default:
			if !seen[r] {
				seen[r] = true
				bad = append(bad, r)
			}
		}
	}
	return string(bad)
}

func extractTokens(text string) []*Token {
	type match struct {
		start int
		text  string
	}
	var matches []match
	for _, pattern := range tokenPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			matches = append(matches, match{start: loc[0], text: text[loc[0]:loc[1]]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	tokens := make([]*Token, len(matches))
	for i, m := range matches {
		tokens[i] = NewToken(m.text)
	}
	return tokens
}

// Text returns the label with its surrounding punctuation removed.
func (e *Enum) Text() string {
	return e.text
}

// Original returns the text the label was parsed from.
func (e *Enum) Original() string {
	return e.original
}

// String formats the label with its original punctuation, e.g. "(a)".
func (e *Enum) String() string {
	return e.left + e.text + e.right
}

// Tokens returns the label's tokens, connectors included.
func (e *Enum) Tokens() []*Token {
	return e.tokens
}

// Nested reports whether the label was split out of a compound label such as
// "(B)(i)(1)" and was not the first part of it.
func (e *Enum) Nested() bool {
	return e.nested
}

// AsNested returns a copy of e flagged as nested.
func (e *Enum) AsNested() *Enum {
	nested := *e
	nested.nested = true
	return &nested
}

// Equal reports whether both labels have the same text.
func (e *Enum) Equal(other *Enum) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.text == other.text
}

// IsFirstInScheme reports whether the label opens some scheme ("a", "I",
// "1", "aa", ...).
func (e *Enum) IsFirstInScheme() bool {
	_, ok := firstTokens[e.text]
	return ok
}

// Schemes returns the schemes of the label's leading token. Compound labels
// are not inspected beyond it.
func (e *Enum) Schemes() Set {
	for _, token := range e.tokens {
		if token.IsConnector() {
			continue
		}
		schemes, _ := token.Schemes()
		return schemes
	}
	return 0
}

// Ordinality returns, per scheme of the label, its position(s) within that
// scheme. A compound label that is not itself a scheme member ("4-a") gets
// the positions of its tokens instead.
func (e *Enum) Ordinality() map[Scheme][]int {
	if e.ordinality != nil {
		return e.ordinality
	}

	ordinality := make(map[Scheme][]int)
	tokens := e.significantTokens()
	for _, s := range e.Schemes().List() {
		if i, ok := position(s, e.text); ok {
			ordinality[s] = append(ordinality[s], i)
			continue
		}
		if len(tokens) == 1 {
			continue
		}
		for _, token := range tokens {
			schemes, _ := token.Schemes()
			for _, ts := range schemes.List() {
				if i, ok := position(ts, token.text); ok {
					ordinality[s] = append(ordinality[s], i)
				}
			}
		}
	}
	e.ordinality = ordinality
	return ordinality
}

func (e *Enum) significantTokens() []*Token {
	tokens := make([]*Token, 0, len(e.tokens))
	for _, token := range e.tokens {
		if !token.IsConnector() {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Less reports whether e could precede other under any scheme they share.
func (e *Enum) Less(other *Enum) bool {
	return e.compareShared(other, func(c int) bool { return c < 0 })
}

// Greater reports whether e could follow other under any scheme they share.
func (e *Enum) Greater(other *Enum) bool {
	return e.compareShared(other, func(c int) bool { return c > 0 })
}

func (e *Enum) compareShared(other *Enum, accept func(int) bool) bool {
	mine, theirs := e.Ordinality(), other.Ordinality()
	for s, a := range mine {
		if b, ok := theirs[s]; ok && accept(compareInts(a, b)) {
			return true
		}
	}
	return false
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// CouldBeNextAfter reports whether e is a valid successor of other. Labels
// are compared token by token: every position must be equal or consecutive,
// at most one position may advance, and tokens beyond the length of other
// must each open a scheme.
func (e *Enum) CouldBeNextAfter(other *Enum) Succession {
	if e.text == other.text {
		return Equal
	}

	if len(e.tokens) > len(other.tokens) {
		for _, token := range e.tokens[len(other.tokens):] {
			if token.IsConnector() {
				continue
			}
			if !token.IsFirstInScheme() {
				return NotNext
			}
		}
	}

	n := min(len(e.tokens), len(other.tokens))
	if n == 0 {
		return NotNext
	}

	advanced := false
	for i := 0; i < n; i++ {
		step, err := e.tokens[i].CouldBeNextAfter(other.tokens[i])
		if err != nil || step == NotNext {
			return NotNext
		}
		if step == Equal {
			continue
		}
		if advanced {
			return NotNext
		}
		advanced = true
	}
	return Consecutive
}
