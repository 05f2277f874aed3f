package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
	"github.com/unitedstates/uscode/pkg/scheme"
	"github.com/unitedstates/uscode/pkg/tree"
)

var (
	leadingJunk  = regexp.MustCompile(`^[\s.]+`)
	labelSplit   = regexp.MustCompile(`\s+`)
	labelPattern = regexp.MustCompile(`\((\S+?)\)`)
)

var historyCode = locator.CodeArg{Code: "I", Arg: "53"}

// Named note headings of a section. Other headings are reported by Notes.
var sectionNoteHeadings = []string{"Amendments", "Derivation", "References In Text", "Codification"}

// Section is one statutory section.
type Section struct {
	doc *group.Document
}

// NewSection wraps doc without checking its kind.
func NewSection(doc *group.Document) *Section {
	return &Section{doc: doc}
}

func (s *Section) Kind() Kind                { return KindSection }
func (s *Section) Document() *group.Document { return s.doc }

// Number returns the section number from the I80 line ("§ 1" gives "1").
func (s *Section) Number() (string, error) {
	line := firstLine(s.doc, "I", "80")
	if line == nil {
		return "", &FormatError{Kind: KindSection}
	}
	_, number, ok := strings.Cut(strings.TrimSpace(line.Text), " ")
	if !ok {
		return "", &FormatError{Kind: KindSection, Text: line.Text}
	}
	return strings.TrimSpace(number), nil
}

func (s *Section) body() (*group.Document, error) {
	bodies := s.doc.Sub("I", "89")
	switch len(bodies) {
	case 0:
		return nil, nil
	case 1:
		return bodies[0], nil
	default:
		first := ""
		if line := s.doc.First(); line != nil {
			first = line.Text
		}
		return nil, &FormatError{Kind: KindSection, Text: fmt.Sprintf("%s: %d I89 bodies", first, len(bodies))}
	}
}

// Name returns the section catchline, the first line of its body.
func (s *Section) Name() (string, error) {
	body, err := s.body()
	if err != nil || body == nil {
		return "", err
	}
	return strings.TrimSpace(leadingJunk.ReplaceAllString(body.First().Text, "")), nil
}

// Items returns the labelled body stream. A compound label such as
// "(B)(i)(1) text" yields one item per part; only the last carries the text
// and the line, and every part after the first is marked nested.
func (s *Section) Items() ([]tree.Item, error) {
	body, err := s.body()
	if err != nil || body == nil {
		return nil, err
	}

	var items []tree.Item
	for _, line := range rest(body) {
		if line.Code != "I" {
			continue
		}
		text := strings.TrimSpace(line.Text)
		if !strings.HasPrefix(text, "(") {
			items = append(items, tree.Item{Text: text, Line: line})
			continue
		}

		label, remainder := text, ""
		if parts := labelSplit.Split(text, 2); len(parts) == 2 {
			label, remainder = parts[0], parts[1]
		}
		matches := labelPattern.FindAllStringSubmatch(label, -1)
		if len(matches) == 0 {
			items = append(items, tree.Item{Text: text, Line: line})
			continue
		}

		for i, m := range matches {
			enum, err := scheme.NewEnum(m[1])
			if err != nil {
				return nil, fmt.Errorf("failed to classify label on %s line: %w", line.CodeArg(), err)
			}
			if i > 0 {
				enum = enum.AsNested()
			}
			if i < len(matches)-1 {
				items = append(items, tree.Item{Enum: enum})
				continue
			}
			items = append(items, tree.Item{Enum: enum, Text: remainder, Line: line})
		}
	}
	return items, nil
}

// Tree builds the section's paragraph tree.
func (s *Section) Tree(opts ...tree.BuilderOption) (*tree.Tree, error) {
	items, err := s.Items()
	if err != nil {
		return nil, err
	}
	return tree.Build(items, opts...)
}

// History returns the source credit lines.
func (s *Section) History() []string {
	return subdocLines(s.doc.Sub("I", "53"), historyCode)
}

func (s *Section) Amendments() []string   { return headingNotes(s.doc, "Amendments") }
func (s *Section) Derivation() []string   { return headingNotes(s.doc, "Derivation") }
func (s *Section) References() []string   { return headingNotes(s.doc, "References In Text") }
func (s *Section) Codification() []string { return headingNotes(s.doc, "Codification") }

// Notes returns the heading notes not covered by the named accessors.
func (s *Section) Notes() []Note {
	return otherNotes(s.doc, sectionNoteHeadings)
}

type sectionJSON struct {
	Kind         string     `json:"kind"`
	Number       string     `json:"number"`
	Name         string     `json:"name"`
	Tree         *tree.Tree `json:"tree"`
	History      []string   `json:"history,omitempty"`
	Amendments   []string   `json:"amendments,omitempty"`
	Derivation   []string   `json:"derivation,omitempty"`
	References   []string   `json:"references,omitempty"`
	Codification []string   `json:"codification,omitempty"`
	Notes        []Note     `json:"notes,omitempty"`
}

// JSON encodes the section with its tree and notes.
func (s *Section) JSON() ([]byte, error) {
	return s.JSONWith()
}

// JSONWith is JSON with options for the tree builder.
func (s *Section) JSONWith(opts ...tree.BuilderOption) ([]byte, error) {
	number, err := s.Number()
	if err != nil {
		return nil, err
	}
	name, err := s.Name()
	if err != nil {
		return nil, err
	}
	t, err := s.Tree(opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionJSON{
		Kind:         KindSection.String(),
		Number:       number,
		Name:         name,
		Tree:         t,
		History:      s.History(),
		Amendments:   s.Amendments(),
		Derivation:   s.Derivation(),
		References:   s.References(),
		Codification: s.Codification(),
		Notes:        s.Notes(),
	})
}
