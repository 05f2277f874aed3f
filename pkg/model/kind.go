// Package model gives meaning to grouped locator documents: title headers,
// title and chapter tables of contents, and sections with their paragraph
// trees and notes.
package model

import (
	"github.com/unitedstates/uscode/pkg/group"
	"github.com/unitedstates/uscode/pkg/locator"
)

// Kind identifies what a top-level document holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindTitle
	KindTitleTOC
	KindChapter
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindTitleTOC:
		return "title_toc"
	case KindChapter:
		return "chapter"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// kindCodes maps the codearg of a document's first line to its kind.
var kindCodes = map[locator.CodeArg]Kind{
	{Code: "F", Arg: "5800"}: KindTitle,
	{Code: "R", Arg: "01"}:   KindTitleTOC,
	{Code: "R", Arg: "10"}:   KindChapter,
	{Code: "I", Arg: "80"}:   KindSection,
}

// KindOf classifies doc by its first line.
func KindOf(doc *group.Document) Kind {
	first := doc.First()
	if first == nil {
		return KindUnknown
	}
	return kindCodes[first.CodeArg()]
}

// Model is the typed view of a top-level document.
type Model interface {
	Kind() Kind
	Document() *group.Document
	JSON() ([]byte, error)
}

// Instance returns the typed view of doc, or nil when its kind is unknown.
func Instance(doc *group.Document) Model {
	switch KindOf(doc) {
	case KindTitle:
		return &Title{doc: doc}
	case KindTitleTOC:
		return &TitleTOC{doc: doc}
	case KindChapter:
		return &Chapter{doc: doc}
	case KindSection:
		return &Section{doc: doc}
	default:
		return nil
	}
}
