package locator

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Escape maps one locator escape sequence to its Unicode text.
type Escape struct {
	Seq  string
	Text string
}

// DefaultEscapes is the substitution table for US Code locator text.
var DefaultEscapes = []Escape{
	{"\x06", "§"},
	{"\x0A", "\n"},
	{"\x0B", "¢"},
	{"\x0C", "¶"},
	{"\x10", "'"},
	{"\x13", "["},
	{"\x14", "]"},
	{"\x18", "\u2003"},
	{"\x19", "\u2002"},
	{"\x1B", "±"},
	{"\x1C", ""},
	{"\x1E", "†"},
	{"\x27", "“"},
	{"\x3C", "<"},
	{"\x3E", ">"},
	{"\x5E", "-"},
	{"\x5F", "–"},
	{"\x60", "”"},
	{"\xAB", "º"},
	{"\xBD", "‡"},
	{"\xBE", "n"},
	{"\xBF", "□"},
	{"\xff1A", " "},
	{"\xff09", "–"},
	{"\xff0A", "×"},
	{"\xff08", "\u2009"},
	{"\xffAF", "©"},
	{"\xffAE0", "˘"},
	{"\xffAE1", "΄"},
	{"\xffAE2", "`"},
	{"\xffAE3", "^"},
	{"\xffAE4", "¨"},
	{"\xffAE5", "ˇ"},
	{"\xffAE6", "~"},
	{"\xffAE7", "˚"},
	{"\xffAE8", "ˉ"},
	{"\xffAE9", "¸"},
}

// escapeTable indexes escapes by leading byte, longest sequence first.
type escapeTable map[byte][]Escape

func compileEscapes(escapes []Escape) (escapeTable, error) {
	table := make(escapeTable)
	seen := make(map[string]bool, len(escapes))
	for _, e := range escapes {
		if e.Seq == "" {
			return nil, fmt.Errorf("escape for %q has an empty sequence", e.Text)
		}
		if seen[e.Seq] {
			return nil, fmt.Errorf("duplicate escape sequence %q", e.Seq)
		}
		seen[e.Seq] = true
		table[e.Seq[0]] = append(table[e.Seq[0]], e)
	}
	for lead := range table {
		candidates := table[lead]
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].Seq) > len(candidates[j].Seq)
		})
	}
	return table, nil
}

// unescape substitutes escape sequences greedily and decodes every other
// byte as ISO-8859-1.
func (t escapeTable) unescape(b []byte) string {
	var builder strings.Builder
	builder.Grow(len(b))

	for i := 0; i < len(b); {
		if text, n := t.lookup(b[i:]); n > 0 {
			builder.WriteString(text)
			i += n
			continue
		}
		builder.WriteRune(charmap.ISO8859_1.DecodeByte(b[i]))
		i++
	}
	return builder.String()
}

func (t escapeTable) lookup(b []byte) (string, int) {
	for _, e := range t[b[0]] {
		if len(b) >= len(e.Seq) && string(b[:len(e.Seq)]) == e.Seq {
			return e.Text, len(e.Seq)
		}
	}
	return "", 0
}
