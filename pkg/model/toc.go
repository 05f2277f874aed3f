package model

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
)

var tocNumberJunk = regexp.MustCompile(`[.\s]+`)

// TOCEntry is one row of a title's table of contents.
type TOCEntry struct {
	Chapter string   `json:"chapter"`
	Name    string   `json:"name"`
	Section string   `json:"section"`
	Notes   []string `json:"notes,omitempty"`
}

// TitleTOC is a title's table of contents with its general notes.
type TitleTOC struct {
	doc *group.Document
}

func (t *TitleTOC) Kind() Kind                { return KindTitleTOC }
func (t *TitleTOC) Document() *group.Document { return t.doc }

// tocHeaderLines are the column captions opening the I93 sub-document.
const tocHeaderLines = 3

// Items reads the three-line (chapter, name, section) rows of the table.
// Footnote markers in a row are resolved against the table's footnote
// definitions. A trailing partial row is ignored.
func (t *TitleTOC) Items() []TOCEntry {
	subs := t.doc.Sub("I", "93")
	if len(subs) == 0 {
		return nil
	}
	table := subs[0]

	notes := make(map[string]string)
	var rows []*locator.Line
	for i, line := range table.Lines {
		if number, text, ok := locator.ParseFootnote(line.Text); ok {
			notes[number] = strings.TrimSpace(text)
			continue
		}
		if i >= tocHeaderLines {
			rows = append(rows, line)
		}
	}

	var entries []TOCEntry
	for i := 0; i+2 < len(rows); i += 3 {
		chapter, name, section := rows[i], rows[i+1], rows[i+2]
		entry := TOCEntry{
			Chapter: tocNumberJunk.ReplaceAllString(chapter.Text, ""),
			Name:    strings.TrimSpace(locator.StripFootnoteMarkers(name.Text)),
			Section: strings.TrimSpace(section.Text),
		}
		for _, line := range []*locator.Line{chapter, name, section} {
			for _, ref := range locator.FootnoteRefs(line.Text) {
				if note, ok := notes[ref.Number]; ok {
					entry.Notes = append(entry.Notes, note)
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func (t *TitleTOC) Repeals() []string      { return headingNotes(t.doc, "Repeals") }
func (t *TitleTOC) PositiveLaw() []string  { return headingNotes(t.doc, "Positive Law; Citation") }
func (t *TitleTOC) Census() []string       { return headingNotes(t.doc, "References To Census Office") }
func (t *TitleTOC) Separability() []string { return headingNotes(t.doc, "Separability") }
func (t *TitleTOC) Construction() []string { return headingNotes(t.doc, "Legislative Construction") }
func (t *TitleTOC) EffectiveDate() []string {
	return headingNotes(t.doc, "Effective Date")
}

// JSON encodes the table rows.
func (t *TitleTOC) JSON() ([]byte, error) {
	items := t.Items()
	if items == nil {
		items = []TOCEntry{}
	}
	return json.Marshal(struct {
		Kind  string     `json:"kind"`
		Items []TOCEntry `json:"items"`
	}{KindTitleTOC.String(), items})
}
