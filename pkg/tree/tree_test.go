package tree

import (
	"bytes"
	"testing"

	"github.com/unitedstates/uscode/pkg/scheme"
)

func TestTreeJSON(t *testing.T) {
	tr := build(t, []Item{
		labelled("1", "One"),
		{Enum: scheme.MustEnum("a")},
	})

	got, err := tr.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"footnotes":[],"children":[{"label":"1","footnotes":[],"children":["One",{"label":"a","footnotes":[],"children":[]}]}]}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}

	indented, err := tr.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !bytes.Contains(indented, []byte("\n  \"children\"")) {
		t.Errorf("JSON() is not indented: %s", indented)
	}
}

func TestTreeRender(t *testing.T) {
	tr := build(t, []Item{
		labelled("1", "One\\4\\\x07N"),
		labelled("a", "Alpha"),
		{Text: "\x07N\\4\\ Fn.", Line: line("I28", "\x07N\\4\\ Fn.")},
	})

	var buf bytes.Buffer
	if err := tr.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "1\n  [note 4 @3] Fn.\n  One\n  a\n    Alpha\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestTreeAccessors(t *testing.T) {
	tr := build(t, []Item{
		labelled("1", "One"),
		labelled("a", "Alpha"),
	})

	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
	if got := tr.Node(Root).Parent; got != NoNode {
		t.Errorf("root parent = %d, want %d", got, NoNode)
	}
	a := find(t, tr, "1", "a")
	if got := tr.Node(a).Label(); got != "a" {
		t.Errorf("Label() = %q, want %q", got, "a")
	}
	if c := tr.Node(a).Children[0]; !c.IsText() {
		t.Error("first child of (a) should be its text")
	}
}
