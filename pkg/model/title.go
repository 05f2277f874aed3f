package model

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
)

// headingPattern matches "Title 8.Aliens and Nationality" style headings.
var headingPattern = regexp.MustCompile(`\w+ (\d+).(.+)`)

func parseHeading(kind Kind, line *locator.Line, prefix string) (number, name string, err error) {
	if line == nil {
		return "", "", &FormatError{Kind: kind}
	}
	text := strings.TrimPrefix(strings.TrimSpace(line.Text), prefix)
	m := headingPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", &FormatError{Kind: kind, Text: line.Text}
	}
	return m[1], m[2], nil
}

func firstLine(doc *group.Document, code, arg string) *locator.Line {
	lines := doc.CodeLines(code, arg)
	if len(lines) == 0 {
		return nil
	}
	return lines[0]
}

// Title is the header document of a title file.
type Title struct {
	doc *group.Document
}

func (t *Title) Kind() Kind                { return KindTitle }
func (t *Title) Document() *group.Document { return t.doc }

// Heading returns the title number and name from the I06 line.
func (t *Title) Heading() (number, name string, err error) {
	return parseHeading(KindTitle, firstLine(t.doc, "I", "06"), "")
}

// JSON encodes the title header.
func (t *Title) JSON() ([]byte, error) {
	number, name, err := t.Heading()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Number string `json:"number"`
		Name   string `json:"name"`
	}{KindTitle.String(), number, name})
}
