package group

import (
	"reflect"
	"testing"

	"github.com/unitedstates/uscode/pkg/locator"
)

func line(code, arg, text string) *locator.Line {
	return &locator.Line{Code: code, Arg: arg, Text: text}
}

func sampleLines() []*locator.Line {
	return []*locator.Line{
		line("F", "5800", ""),
		line("I", "06", "TITLE 8–ALIENS AND NATIONALITY"),
		line("R", "01", ""),
		line("I", "93", " "),
		line("I", "21", "chapter row"),
		line("I", "74", " Amendments "),
		line("I", "21", "1990—Pub. L. 101–649"),
		line("R", "10", ""),
		line("I", "81", "\x07T2CHAPTER 1—GENERAL PROVISIONS"),
		line("I", "70", "Sec."),
		line("I", "20", "1101."),
		line("I", "46", "Definitions."),
		line("I", "80", "§ 1101"),
		line("I", "89", ". Definitions"),
		line("I", "11", "(a) As used in this chapter—"),
		line("I", "12", "(1) The term “administrator” means"),
		line("I", "53", "(June 27, 1952, ch. 477)"),
		line("I", "74", "References in Text"),
		line("I", "21", "The Act, referred to in subsec. (a)"),
		line("I", "74", "Amendments"),
		line("I", "21", "2008—Subsec. (a)"),
		line("I", "74", "Amendments"),
		line("I", "21", "2006—Subsec. (b)"),
	}
}

func TestGroupIsLosslessPartition(t *testing.T) {
	lines := sampleLines()
	docs := Group(lines, DefaultBoundaries())

	var rebuilt []*locator.Line
	for _, doc := range docs {
		rebuilt = append(rebuilt, doc.All()...)
	}

	if len(rebuilt) != len(lines) {
		t.Fatalf("rebuilt %d lines, want %d", len(rebuilt), len(lines))
	}
	for i := range lines {
		if rebuilt[i] != lines[i] {
			t.Errorf("line %d = %v, want %v", i, rebuilt[i], lines[i])
		}
	}
}

func TestGroupBoundaries(t *testing.T) {
	docs := Group(sampleLines(), DefaultBoundaries())

	if len(docs) != 4 {
		t.Fatalf("Group() returned %d documents, want 4", len(docs))
	}

	wantIDs := []Key{{}, CodeArgKey("R", "01"), CodeArgKey("R", "10"), CodeArgKey("I", "80")}
	for i, want := range wantIDs {
		if docs[i].ID != want {
			t.Errorf("docs[%d].ID = %v, want %v", i, docs[i].ID, want)
		}
	}

	leading := docs[0]
	if len(leading.Lines) != 2 || len(leading.Subdocs) != 0 {
		t.Errorf("leading document has %d lines and %d subdocs", len(leading.Lines), len(leading.Subdocs))
	}

	title := docs[1]
	if got := len(title.Sub("I", "93")); got != 1 {
		t.Errorf("title I93 sub-documents = %d, want 1", got)
	}
	if got := title.Heading("Amendments"); len(got) != 1 || len(got[0].CodeLines("I", "21")) != 1 {
		t.Errorf("title Amendments heading = %v", got)
	}

	chapter := docs[2]
	if got := len(chapter.Sub("I", "70")); got != 1 {
		t.Errorf("chapter I70 sub-documents = %d, want 1", got)
	}
	if got := len(chapter.Sub("I", "70")[0].Lines); got != 3 {
		t.Errorf("chapter TOC lines = %d, want 3", got)
	}
	if lines := chapter.CodeLines("I", "81"); len(lines) != 1 {
		t.Errorf("chapter I81 lines = %d, want 1", len(lines))
	}
}

func TestGroupSectionSubdocuments(t *testing.T) {
	docs := Group(sampleLines(), DefaultBoundaries())
	section := docs[3]

	body := section.Sub("I", "89")
	if len(body) != 1 {
		t.Fatalf("I89 sub-documents = %d, want 1", len(body))
	}
	if got := len(body[0].Lines); got != 3 {
		t.Errorf("body lines = %d, want 3", got)
	}
	if got := len(body[0].CodeLines("I", "12")); got != 1 {
		t.Errorf("body I12 lines = %d, want 1", got)
	}

	amendments := section.Heading("Amendments")
	if len(amendments) != 2 {
		t.Errorf("Amendments sub-documents = %d, want 2", len(amendments))
	}

	refs := section.Heading("References In Text")
	if len(refs) != 1 {
		t.Errorf("case-folded heading lookup found %d documents, want 1", len(refs))
	}

	wantKeys := []Key{
		CodeArgKey("I", "89"),
		CodeArgKey("I", "53"),
		HeadingKey("References in Text"),
		HeadingKey("Amendments"),
	}
	if got := section.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
}

func TestGroupSubBoundariesNarrowPerDocument(t *testing.T) {
	// I93 opens a sub-document under a title but not under a chapter.
	lines := []*locator.Line{
		line("R", "10", ""),
		line("I", "93", "not a boundary here"),
		line("I", "70", "Sec."),
	}
	docs := Group(lines, DefaultBoundaries())
	if len(docs) != 1 {
		t.Fatalf("Group() returned %d documents, want 1", len(docs))
	}
	if len(docs[0].Lines) != 2 {
		t.Errorf("chapter lines = %d, want 2", len(docs[0].Lines))
	}
	if len(docs[0].Subdocs) != 1 {
		t.Errorf("chapter subdocs = %d, want 1", len(docs[0].Subdocs))
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if docs := Group(nil, DefaultBoundaries()); len(docs) != 0 {
		t.Errorf("Group(nil) returned %d documents, want 0", len(docs))
	}
}

func TestKeyString(t *testing.T) {
	if got := CodeArgKey("I", "89").String(); got != "I89" {
		t.Errorf("String() = %q, want %q", got, "I89")
	}
	if got := HeadingKey("Derivation").String(); got != "Derivation" {
		t.Errorf("String() = %q, want %q", got, "Derivation")
	}
}
