// Package group partitions a stream of locator lines into documents (titles,
// chapters, sections) and the named sub-documents inside them.
package group

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/unitedstates/uscode/pkg/locator"
)

// Key names a sub-document: either the codearg that opened it or, for
// generic heading sub-documents, the heading text.
type Key struct {
	CodeArg locator.CodeArg
	Heading string
}

// CodeArgKey returns the key of a sub-document opened by a codearg.
func CodeArgKey(code, arg string) Key {
	return Key{CodeArg: locator.CodeArg{Code: code, Arg: arg}}
}

// HeadingKey returns the key of a heading sub-document.
func HeadingKey(heading string) Key {
	return Key{Heading: heading}
}

// IsHeading reports whether the key is a heading string.
func (k Key) IsHeading() bool {
	return k.CodeArg.IsZero()
}

func (k Key) String() string {
	if k.IsHeading() {
		return k.Heading
	}
	return k.CodeArg.String()
}

// Document is a group of lines. Top-level documents own sub-documents;
// sub-documents never nest further.
type Document struct {
	// ID is the boundary codearg that opened the document; it is zero for
	// the leading document of a file.
	ID Key

	// Lines holds the lines that belong directly to this document.
	Lines []*locator.Line

	// Codemap indexes Lines by codearg, in source order.
	Codemap map[locator.CodeArg][]*locator.Line

	// Docs indexes sub-documents by key, in source order.
	Docs map[Key][]*Document

	// Subdocs lists every sub-document in creation order.
	Subdocs []*Document
}

func newDocument(id Key) *Document {
	return &Document{
		ID:      id,
		Codemap: make(map[locator.CodeArg][]*locator.Line),
		Docs:    make(map[Key][]*Document),
	}
}

func (d *Document) add(line *locator.Line) {
	d.Lines = append(d.Lines, line)
	codeArg := line.CodeArg()
	d.Codemap[codeArg] = append(d.Codemap[codeArg], line)
}

func (d *Document) attach(sub *Document) {
	d.Docs[sub.ID] = append(d.Docs[sub.ID], sub)
	d.Subdocs = append(d.Subdocs, sub)
}

// First returns the first line of the document, or nil.
func (d *Document) First() *locator.Line {
	if len(d.Lines) == 0 {
		return nil
	}
	return d.Lines[0]
}

// CodeLines returns the lines carrying code and arg.
func (d *Document) CodeLines(code, arg string) []*locator.Line {
	return d.Codemap[locator.CodeArg{Code: code, Arg: arg}]
}

// Sub returns the sub-documents opened by code and arg.
func (d *Document) Sub(code, arg string) []*Document {
	return d.Docs[CodeArgKey(code, arg)]
}

// Heading returns the heading sub-documents whose title matches name,
// ignoring case and surrounding space.
func (d *Document) Heading(name string) []*Document {
	if docs, ok := d.Docs[HeadingKey(name)]; ok {
		return docs
	}

	// A Caser keeps state, so each lookup gets its own.
	folder := cases.Fold()
	want := folder.String(strings.TrimSpace(name))
	var found []*Document
	for _, sub := range d.Subdocs {
		if sub.ID.IsHeading() && folder.String(sub.ID.Heading) == want {
			found = append(found, sub)
		}
	}
	return found
}

// Keys returns the distinct sub-document keys in order of first appearance.
func (d *Document) Keys() []Key {
	seen := make(map[Key]bool, len(d.Docs))
	var keys []Key
	for _, sub := range d.Subdocs {
		if !seen[sub.ID] {
			seen[sub.ID] = true
			keys = append(keys, sub.ID)
		}
	}
	return keys
}

// All returns the document's lines followed by those of its sub-documents,
// which is their order in the source.
func (d *Document) All() []*locator.Line {
	all := make([]*locator.Line, 0, d.Len())
	all = append(all, d.Lines...)
	for _, sub := range d.Subdocs {
		all = append(all, sub.All()...)
	}
	return all
}

// Len counts the lines of the document and its sub-documents.
func (d *Document) Len() int {
	n := len(d.Lines)
	for _, sub := range d.Subdocs {
		n += sub.Len()
	}
	return n
}
