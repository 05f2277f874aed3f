package scheme

// Token is one indivisible enumeration unit: a run of letters, a run of
// digits, or a connector. Its classification is computed on first use and
// kept for the life of the token.
type Token struct {
	text string

	classified bool
	schemes    Set
	err        error
	ordinality map[Scheme]int
}

// NewToken returns a token for text.
func NewToken(text string) *Token {
	return &Token{text: text}
}

// Text returns the token text.
func (t *Token) Text() string {
	return t.text
}

func (t *Token) String() string {
	return t.text
}

// IsConnector reports whether the token is a run of dashes.
func (t *Token) IsConnector() bool {
	if t.text == "" {
		return false
	}
	for i := 0; i < len(t.text); i++ {
		if t.text[i] != '-' {
			return false
		}
	}
	return true
}

// Schemes returns every scheme the token could belong to.
func (t *Token) Schemes() (Set, error) {
	if !t.classified {
		t.schemes, t.err = classify(t.text)
		t.classified = true
	}
	return t.schemes, t.err
}

func classify(text string) (Set, error) {
	switch {
	case text == "":
	case isLetters(text):
		upper := isUpper(text)
		plain, multiples, roman := Lower, multipleSchemes[0], LowerRoman
		if upper {
			plain, multiples, roman = Upper, multipleSchemes[1], UpperRoman
		}

		var set Set
		if len(text) == 1 {
			set = set.With(plain)
		} else if sameLetter(text) {
			if s, ok := multiples[len(text)]; ok {
				set = set.With(s)
			}
		}
		if _, ok := position(roman, text); ok {
			set = set.With(roman)
		}
		return set, nil
	case isDigits(text):
		return SetOf(Digits), nil
	}

	return 0, &ClassificationError{Text: text, Err: ErrUnrecognizedScheme}
}

// multipleSchemes maps a run length to the doubled, tripled or quadrupled
// scheme, lowercase first.
var multipleSchemes = [2]map[int]Scheme{
	{2: LowerDoubles, 3: LowerTriples, 4: LowerQuads},
	{2: UpperDoubles, 3: UpperTriples, 4: UpperQuads},
}

// IsFirstInScheme reports whether the token opens some scheme.
func (t *Token) IsFirstInScheme() bool {
	_, ok := firstTokens[t.text]
	return ok
}

// Ordinality returns the token's position within each of its schemes.
func (t *Token) Ordinality() (map[Scheme]int, error) {
	if t.ordinality != nil {
		return t.ordinality, nil
	}
	schemes, err := t.Schemes()
	if err != nil {
		return nil, err
	}
	ordinality := make(map[Scheme]int)
	for _, s := range schemes.List() {
		if i, ok := position(s, t.text); ok {
			ordinality[s] = i
		}
	}
	t.ordinality = ordinality
	return ordinality, nil
}

// CouldBeNextAfter reports whether t equals other or directly follows it in
// a scheme they share.
func (t *Token) CouldBeNextAfter(other *Token) (Succession, error) {
	if t.text == other.text {
		return Equal, nil
	}

	mine, err := t.Ordinality()
	if err != nil {
		return NotNext, err
	}
	theirs, err := other.Ordinality()
	if err != nil {
		return NotNext, err
	}

	for _, s := range All() {
		a, ok := mine[s]
		if !ok {
			continue
		}
		if b, ok := theirs[s]; ok && a-b == 1 {
			return Consecutive, nil
		}
	}
	return NotNext, nil
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

func isUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func sameLetter(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
