// Package locator decodes GPO locator files: line-oriented statute text where
// every physical line starts with a bell byte, a control code, an optional
// numeric argument and escaped text.
package locator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// CodeSpec pairs a control-code spelling with the pattern of its numeric
// argument. Code is a regular expression fragment; most spellings are
// literal letters, but a bare two-digit code exists. An empty Arg means the
// code never carries an argument.
type CodeSpec struct {
	Code string `yaml:"code" json:"code"`
	Arg  string `yaml:"arg,omitempty" json:"arg,omitempty"`
}

// DefaultCodes is the control-code catalog used by the US Code files.
var DefaultCodes = []CodeSpec{
	{Code: "G", Arg: `\d`},
	{Code: "I", Arg: `\d{2}`},
	{Code: "Q", Arg: `\d{2}`},
	{Code: "R", Arg: `\d{2}`},
	{Code: "T", Arg: `\d`},
	{Code: "U", Arg: `\d`},
	{Code: "Y", Arg: `\d`},
	{Code: "a", Arg: `\d{3}`},
	{Code: "g", Arg: `\d{3}`},
	{Code: "h", Arg: `\d`},
	{Code: "q", Arg: `\d{2}`},
	{Code: "F", Arg: `\d{4,5}`},
	{Code: "S", Arg: `\d{4,5}`},

	{Code: "K"},
	{Code: "gs"},
	{Code: `\d{2}`},
	{Code: "j"},
	{Code: "e"},

	// Complex table data: the whole line is the argument.
	{Code: "c", Arg: `.+`},
}

// codeTable is the compiled form of a code catalog. Alternatives are tried
// longest spelling first so that a short code never matches the prefix of a
// longer one.
type codeTable struct {
	pattern *regexp.Regexp
	specs   []CodeSpec
	args    []*regexp.Regexp
}

func compileCodes(specs []CodeSpec) (*codeTable, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("code table is empty")
	}

	ordered := make([]CodeSpec, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Code) > len(ordered[j].Code)
	})

	table := &codeTable{
		specs: ordered,
		args:  make([]*regexp.Regexp, len(ordered)),
	}

	alternatives := make([]string, len(ordered))
	for i, spec := range ordered {
		if spec.Code == "" {
			return nil, fmt.Errorf("code %d: spelling is required", i)
		}
		if _, err := regexp.Compile(spec.Code); err != nil {
			return nil, fmt.Errorf("code %q: %w", spec.Code, err)
		}
		alternatives[i] = "(" + spec.Code + ")"

		if spec.Arg != "" {
			argPattern, err := regexp.Compile(`^(?:` + spec.Arg + `)`)
			if err != nil {
				return nil, fmt.Errorf("code %q argument: %w", spec.Code, err)
			}
			table.args[i] = argPattern
		}
	}

	pattern, err := regexp.Compile(`^(?:` + strings.Join(alternatives, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compiling code table: %w", err)
	}
	table.pattern = pattern
	return table, nil
}

// match finds the control code at the start of b and returns the matched
// spelling, the index of its spec and the number of bytes consumed.
func (t *codeTable) match(b []byte) (code string, spec int, ok bool) {
	loc := t.pattern.FindSubmatchIndex(b)
	if loc == nil {
		return "", -1, false
	}
	for i := range t.specs {
		if loc[2+2*i] >= 0 {
			return string(b[:loc[1]]), i, true
		}
	}
	return "", -1, false
}
