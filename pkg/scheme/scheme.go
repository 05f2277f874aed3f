// Package scheme models the enumeration labels that open statute paragraphs
// ("(a)", "(ii)", "(3)", "4-a"). It classifies label tokens into ordered
// numbering schemes and decides whether one label can follow another.
//
//	a, _ := scheme.NewEnum("a")
//	b, _ := scheme.NewEnum("b")
//	a.Less(b) // true
package scheme

import (
	"strconv"
	"strings"
)

// Scheme is a named, totally ordered numbering alphabet.
type Scheme int

const (
	Lower Scheme = iota
	Upper
	LowerDoubles
	UpperDoubles
	LowerTriples
	UpperTriples
	LowerQuads
	UpperQuads
	LowerRoman
	UpperRoman
	Digits

	numSchemes
)

var schemeNames = [numSchemes]string{
	Lower:        "lower",
	Upper:        "upper",
	LowerDoubles: "lower_doubles",
	UpperDoubles: "upper_doubles",
	LowerTriples: "lower_triples",
	UpperTriples: "upper_triples",
	LowerQuads:   "lower_quads",
	UpperQuads:   "upper_quads",
	LowerRoman:   "lower_roman",
	UpperRoman:   "upper_roman",
	Digits:       "digits",
}

func (s Scheme) String() string {
	if s < 0 || s >= numSchemes {
		return "scheme(" + strconv.Itoa(int(s)) + ")"
	}
	return schemeNames[s]
}

// All returns every scheme in declaration order.
func All() []Scheme {
	all := make([]Scheme, numSchemes)
	for i := range all {
		all[i] = Scheme(i)
	}
	return all
}

// Sequence returns the ordered members of s.
func Sequence(s Scheme) []string {
	return append([]string(nil), sequences[s]...)
}

const maxDigit = 199

var (
	sequences   [numSchemes][]string
	positions   [numSchemes]map[string]int
	firstTokens = make(map[string]Set)
)

func init() {
	lower := strings.Split("abcdefghijklmnopqrstuvwxyz", "")
	upper := strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "")

	sequences[Lower] = lower
	sequences[Upper] = upper
	sequences[LowerDoubles] = repeatEach(lower, 2)
	sequences[UpperDoubles] = repeatEach(upper, 2)
	sequences[LowerTriples] = repeatEach(lower, 3)
	sequences[UpperTriples] = repeatEach(upper, 3)
	sequences[LowerQuads] = repeatEach(lower, 4)
	sequences[UpperQuads] = repeatEach(upper, 4)
	sequences[LowerRoman] = romans()
	sequences[UpperRoman] = mapStrings(sequences[LowerRoman], strings.ToUpper)

	digits := make([]string, 0, maxDigit)
	for i := 1; i <= maxDigit; i++ {
		digits = append(digits, strconv.Itoa(i))
	}
	sequences[Digits] = digits

	for s := Scheme(0); s < numSchemes; s++ {
		positions[s] = make(map[string]int, len(sequences[s]))
		for i, member := range sequences[s] {
			positions[s][member] = i
		}
		first := sequences[s][0]
		firstTokens[first] = firstTokens[first].With(s)
	}
}

// romans builds i..xlix from a fixed ones/tens table.
func romans() []string {
	ones := []string{"", "i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix"}
	tens := []string{"", "x", "xx", "xxx", "xl"}

	var numerals []string
	for _, ten := range tens {
		for _, one := range ones {
			if ten+one != "" {
				numerals = append(numerals, ten+one)
			}
		}
	}
	return numerals
}

func repeatEach(letters []string, n int) []string {
	return mapStrings(letters, func(s string) string { return strings.Repeat(s, n) })
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

// position returns the index of member within s.
func position(s Scheme, member string) (int, bool) {
	i, ok := positions[s][member]
	return i, ok
}

// Set is a set of schemes.
type Set uint16

// SetOf returns the set holding schemes.
func SetOf(schemes ...Scheme) Set {
	var set Set
	for _, s := range schemes {
		set = set.With(s)
	}
	return set
}

// With returns the set plus s.
func (set Set) With(s Scheme) Set {
	return set | 1<<uint(s)
}

// Has reports whether s is in the set.
func (set Set) Has(s Scheme) bool {
	return set&(1<<uint(s)) != 0
}

// Intersect returns the schemes present in both sets.
func (set Set) Intersect(other Set) Set {
	return set & other
}

// Contains reports whether every scheme of other is in the set.
func (set Set) Contains(other Set) bool {
	return set&other == other
}

// Empty reports whether the set has no schemes.
func (set Set) Empty() bool {
	return set == 0
}

// List returns the schemes of the set in declaration order.
func (set Set) List() []Scheme {
	var list []Scheme
	for s := Scheme(0); s < numSchemes; s++ {
		if set.Has(s) {
			list = append(list, s)
		}
	}
	return list
}

func (set Set) String() string {
	names := make([]string, 0, numSchemes)
	for _, s := range set.List() {
		names = append(names, s.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
