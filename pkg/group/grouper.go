package group

import (
	"strings"

	"github.com/unitedstates/uscode/pkg/locator"
)

// Boundaries configures where documents start. Each Top key opens a new
// top-level document, and its value lists the codeargs that open
// sub-documents inside it. Heading always opens a sub-document named by the
// line's text.
type Boundaries struct {
	Top     map[locator.CodeArg][]locator.CodeArg
	Heading locator.CodeArg
}

// DefaultBoundaries returns the boundary table of the US Code files:
// titles (R01), chapters (R10) and sections (I80).
func DefaultBoundaries() Boundaries {
	return Boundaries{
		Top: map[locator.CodeArg][]locator.CodeArg{
			{Code: "R", Arg: "01"}: {{Code: "I", Arg: "93"}},
			{Code: "R", Arg: "10"}: {{Code: "I", Arg: "70"}},
			{Code: "I", Arg: "80"}: {{Code: "I", Arg: "89"}, {Code: "I", Arg: "53"}},
		},
		Heading: locator.CodeArg{Code: "I", Arg: "74"},
	}
}

// grouper carries the state of one grouping pass.
type grouper struct {
	boundaries Boundaries
	docs       []*Document
	doc        *Document
	sub        *Document
	opens      map[locator.CodeArg]bool
}

// Group partitions lines into top-level documents in a single pass. Every
// line lands in exactly one document: the sub-document open when it was
// seen, or else the current top-level document.
func Group(lines []*locator.Line, boundaries Boundaries) []*Document {
	g := &grouper{
		boundaries: boundaries,
		doc:        newDocument(Key{}),
	}
	g.narrow(nil)

	for _, line := range lines {
		g.feed(line)
	}
	g.closeSub()
	g.closeDoc()
	return g.docs
}

func (g *grouper) feed(line *locator.Line) {
	codeArg := line.CodeArg()

	if children, ok := g.boundaries.Top[codeArg]; ok {
		g.closeSub()
		g.closeDoc()
		g.doc = newDocument(Key{CodeArg: codeArg})
		g.doc.add(line)
		g.narrow(children)
		return
	}

	if g.opens[codeArg] {
		g.closeSub()
		id := Key{CodeArg: codeArg}
		if codeArg == g.boundaries.Heading {
			id = HeadingKey(strings.TrimSpace(line.Text))
		}
		g.sub = newDocument(id)
		g.sub.add(line)
		return
	}

	if g.sub != nil {
		g.sub.add(line)
		return
	}
	g.doc.add(line)
}

// narrow replaces the active sub-boundary set.
func (g *grouper) narrow(children []locator.CodeArg) {
	g.opens = make(map[locator.CodeArg]bool, len(children)+1)
	for _, child := range children {
		g.opens[child] = true
	}
	if !g.boundaries.Heading.IsZero() {
		g.opens[g.boundaries.Heading] = true
	}
}

func (g *grouper) closeSub() {
	if g.sub == nil {
		return
	}
	g.doc.attach(g.sub)
	g.sub = nil
}

func (g *grouper) closeDoc() {
	// The leading document is only kept when something precedes the first
	// boundary.
	if g.doc.ID == (Key{}) && g.doc.Len() == 0 {
		return
	}
	g.docs = append(g.docs, g.doc)
}
