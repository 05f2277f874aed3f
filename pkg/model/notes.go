package model

import (
	"strings"

	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
)

var noteCode = locator.CodeArg{Code: "I", Arg: "21"}

// Note is a named editorial note, such as "Amendments" or "Codification".
type Note struct {
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// headingNotes returns the note lines of every heading sub-document named
// heading.
func headingNotes(doc *group.Document, heading string) []string {
	return subdocLines(doc.Heading(heading), noteCode)
}

func subdocLines(docs []*group.Document, code locator.CodeArg) []string {
	var lines []string
	for _, sub := range docs {
		for _, line := range sub.Codemap[code] {
			lines = append(lines, strings.TrimSpace(line.Text))
		}
	}
	return lines
}

// otherNotes collects heading sub-documents whose names are not in known.
func otherNotes(doc *group.Document, known []string) []Note {
	skip := make(map[string]bool, len(known))
	for _, name := range known {
		skip[strings.ToLower(name)] = true
	}

	var notes []Note
	for _, key := range doc.Keys() {
		if !key.IsHeading() || skip[strings.ToLower(key.Heading)] {
			continue
		}
		notes = append(notes, Note{
			Heading: key.Heading,
			Lines:   subdocLines(doc.Docs[key], noteCode),
		})
	}
	return notes
}

// rest returns the lines of doc after its opening line.
func rest(doc *group.Document) []*locator.Line {
	if len(doc.Lines) == 0 {
		return nil
	}
	return doc.Lines[1:]
}
