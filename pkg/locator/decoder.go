package locator

import (
	"bytes"
	"fmt"
)

// Decoder turns raw locator lines into Line values using a code catalog and
// an escape table. A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	codes   *codeTable
	escapes escapeTable
}

// NewDecoder compiles a decoder from a code catalog and an escape table.
func NewDecoder(codes []CodeSpec, escapes []Escape) (*Decoder, error) {
	codeTable, err := compileCodes(codes)
	if err != nil {
		return nil, fmt.Errorf("compiling codes: %w", err)
	}
	escapeTable, err := compileEscapes(escapes)
	if err != nil {
		return nil, fmt.Errorf("compiling escapes: %w", err)
	}
	return &Decoder{codes: codeTable, escapes: escapeTable}, nil
}

var defaultDecoder = mustDecoder(DefaultCodes, DefaultEscapes)

func mustDecoder(codes []CodeSpec, escapes []Escape) *Decoder {
	d, err := NewDecoder(codes, escapes)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultDecoder returns the decoder for the default US Code tables.
func DefaultDecoder() *Decoder {
	return defaultDecoder
}

// Decode decodes one physical line (without its terminator). It reports
// false for blank lines and for lines whose control code or argument is not
// recognized; such lines are dropped rather than treated as errors.
func (d *Decoder) Decode(raw []byte) (*Line, bool) {
	if isBlank(raw) || len(raw) < 2 {
		return nil, false
	}

	// Offset 0 holds the bell byte.
	rest := raw[1:]
	code, spec, ok := d.codes.match(rest)
	if !ok {
		return nil, false
	}
	rest = rest[len(code):]

	var arg string
	if argPattern := d.codes.args[spec]; argPattern != nil {
		loc := argPattern.FindIndex(rest)
		if loc == nil {
			return nil, false
		}
		arg = string(rest[:loc[1]])
		rest = rest[loc[1]:]
	}

	return &Line{Code: code, Arg: arg, Text: d.escapes.unescape(rest)}, true
}

// DecodeString is Decode for string input.
func (d *Decoder) DecodeString(raw string) (*Line, bool) {
	return d.Decode([]byte(raw))
}

// Unescape applies the escape table to text that carries no control code.
func (d *Decoder) Unescape(raw []byte) string {
	return d.escapes.unescape(raw)
}

func isBlank(b []byte) bool {
	return len(bytes.Trim(b, " \t\r\n\v\f")) == 0
}
