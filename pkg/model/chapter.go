package model

import (
	"encoding/json"
	"strings"

	"github.com/unitedstates/uscode/pkg/group"
)

// ChapterTOCEntry is one (section, name) row of a chapter's contents.
type ChapterTOCEntry struct {
	Section string `json:"section"`
	Name    string `json:"name"`
}

// Chapter is a chapter heading with its table of contents.
type Chapter struct {
	doc *group.Document
}

func (c *Chapter) Kind() Kind                { return KindChapter }
func (c *Chapter) Document() *group.Document { return c.doc }

// Heading returns the chapter number and name from the I81 line.
func (c *Chapter) Heading() (number, name string, err error) {
	return parseHeading(KindChapter, firstLine(c.doc, "I", "81"), "\x07T2")
}

// TOC reads the two-line (section, name) rows of the I70 sub-document.
func (c *Chapter) TOC() []ChapterTOCEntry {
	subs := c.doc.Sub("I", "70")
	if len(subs) == 0 {
		return nil
	}
	lines := rest(subs[0])

	var entries []ChapterTOCEntry
	for i := 0; i+1 < len(lines); i += 2 {
		entries = append(entries, ChapterTOCEntry{
			Section: tocNumberJunk.ReplaceAllString(lines[i].Text, ""),
			Name:    strings.TrimSpace(lines[i+1].Text),
		})
	}
	return entries
}

func (c *Chapter) Amendments() []string { return headingNotes(c.doc, "Amendments") }

// JSON encodes the chapter heading and contents.
func (c *Chapter) JSON() ([]byte, error) {
	number, name, err := c.Heading()
	if err != nil {
		return nil, err
	}
	toc := c.TOC()
	if toc == nil {
		toc = []ChapterTOCEntry{}
	}
	return json.Marshal(struct {
		Kind   string            `json:"kind"`
		Number string            `json:"number"`
		Name   string            `json:"name"`
		TOC    []ChapterTOCEntry `json:"toc"`
	}{KindChapter.String(), number, name, toc})
}
