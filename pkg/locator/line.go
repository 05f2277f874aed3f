package locator

import "fmt"

// CodeArg identifies the structural role of a line: its control code plus
// its numeric argument ("I" + "80" for a section heading).
type CodeArg struct {
	Code string `yaml:"code" json:"code"`
	Arg  string `yaml:"arg,omitempty" json:"arg,omitempty"`
}

// String returns the code and argument concatenated, e.g. "I32".
func (c CodeArg) String() string {
	return c.Code + c.Arg
}

// IsZero reports whether c names no code.
func (c CodeArg) IsZero() bool {
	return c.Code == "" && c.Arg == ""
}

// Line is one decoded locator line. Lines are created once by a Decoder and
// shared by pointer afterwards; nothing modifies them.
type Line struct {
	Code string `json:"code"`
	Arg  string `json:"arg,omitempty"`
	Text string `json:"text"`
}

// CodeArg returns the grouping identity of the line.
func (l *Line) CodeArg() CodeArg {
	return CodeArg{Code: l.Code, Arg: l.Arg}
}

func (l *Line) String() string {
	return fmt.Sprintf("%s %q", l.CodeArg(), l.Text)
}
