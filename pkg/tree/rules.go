package tree

import "github.com/unitedstates/uscode/pkg/locator"

// Rules hold the format quirks the builder corrects for.
type Rules struct {
	// Continuations maps a tail-fragment code to the code of the node it
	// extends. The fragment is placed under that node's parent.
	Continuations map[locator.CodeArg]locator.CodeArg

	// FootnoteDefinition is the code of footnote definition lines. Those
	// lines are linked to the node holding the marker and never placed.
	FootnoteDefinition locator.CodeArg
}

// DefaultRules returns the US Code rules: I32 extends I13, I17 extends I12,
// footnotes are defined on I28.
func DefaultRules() Rules {
	return Rules{
		Continuations: map[locator.CodeArg]locator.CodeArg{
			{Code: "I", Arg: "32"}: {Code: "I", Arg: "13"},
			{Code: "I", Arg: "17"}: {Code: "I", Arg: "12"},
		},
		FootnoteDefinition: locator.CodeArg{Code: "I", Arg: "28"},
	}
}
