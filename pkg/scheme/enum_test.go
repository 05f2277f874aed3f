package scheme

import (
	"errors"
	"testing"
)

func TestNewEnumFormat(t *testing.T) {
	tests := []struct {
		input  string
		text   string
		str    string
		tokens []string
	}{
		{input: "a", text: "a", str: "a", tokens: []string{"a"}},
		{input: "(a)", text: "a", str: "(a)", tokens: []string{"a"}},
		{input: "(a).", text: "a", str: "(a).", tokens: []string{"a"}},
		{input: " 12. ", text: "12", str: "12.", tokens: []string{"12"}},
		{input: "4-a", text: "4-a", str: "4-a", tokens: []string{"4", "-", "a"}},
		{input: "(B)(i)(1)", text: "B)(i)(1", str: "(B)(i)(1)", tokens: []string{"B", "i", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := NewEnum(tt.input)
			if err != nil {
				t.Fatalf("NewEnum(%q) error = %v", tt.input, err)
			}
			if e.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", e.Text(), tt.text)
			}
			if e.String() != tt.str {
				t.Errorf("String() = %q, want %q", e.String(), tt.str)
			}
			if e.Original() != tt.input {
				t.Errorf("Original() = %q, want %q", e.Original(), tt.input)
			}
			tokens := e.Tokens()
			if len(tokens) != len(tt.tokens) {
				t.Fatalf("len(Tokens()) = %d, want %d", len(tokens), len(tt.tokens))
			}
			for i, token := range tokens {
				if token.Text() != tt.tokens[i] {
					t.Errorf("Tokens()[%d] = %q, want %q", i, token.Text(), tt.tokens[i])
				}
			}
		})
	}
}

func TestNewEnumErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
		chars   string
	}{
		{input: "$", wantErr: ErrUnrecognizedToken, chars: "$"},
		{input: "a\\2\\", wantErr: ErrUnrecognizedToken, chars: "\\"},
		{input: "1.2", wantErr: ErrUnrecognizedScheme},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := NewEnum(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewEnum(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			var ce *ClassificationError
			if !errors.As(err, &ce) {
				t.Fatalf("NewEnum(%q) error type = %T, want *ClassificationError", tt.input, err)
			}
			if ce.Text != tt.input {
				t.Errorf("ClassificationError.Text = %q, want %q", ce.Text, tt.input)
			}
			if ce.Chars != tt.chars {
				t.Errorf("ClassificationError.Chars = %q, want %q", ce.Chars, tt.chars)
			}
		})
	}
}

func TestEnumOrdering(t *testing.T) {
	tests := []struct {
		lesser, greater string
	}{
		{"a", "b"},
		{"3-a", "3-b"},
		{"ii", "iv"},
		{"9", "10"},
		{"A", "C"},
	}

	for _, tt := range tests {
		a, b := MustEnum(tt.lesser), MustEnum(tt.greater)
		if !a.Less(b) {
			t.Errorf("Enum(%q) < Enum(%q) = false, want true", tt.lesser, tt.greater)
		}
		if !b.Greater(a) {
			t.Errorf("Enum(%q) > Enum(%q) = false, want true", tt.greater, tt.lesser)
		}
		if b.Less(a) {
			t.Errorf("Enum(%q) < Enum(%q) = true, want false", tt.greater, tt.lesser)
		}
	}

	if MustEnum("a").Less(MustEnum("B")) {
		t.Error("Enum(a) < Enum(B) = true, want false without a shared scheme")
	}
}

func TestEnumCouldBeNextAfter(t *testing.T) {
	tests := []struct {
		next, prev string
		want       Succession
	}{
		{"b", "a", Consecutive},
		{"a", "a", Equal},
		{"c", "a", NotNext},
		{"ii", "i", Consecutive},
		{"b", "A", NotNext},
		{"4-b", "4-a", Consecutive},
		{"5-b", "4-a", NotNext},
		{"4-a", "4", Consecutive},
		{"4-b", "4", NotNext},
		{"5", "4-a", Consecutive},
	}

	for _, tt := range tests {
		got := MustEnum(tt.next).CouldBeNextAfter(MustEnum(tt.prev))
		if got != tt.want {
			t.Errorf("CouldBeNextAfter(%q, %q) = %s, want %s", tt.next, tt.prev, got, tt.want)
		}
	}
}

func TestEnumFirstInScheme(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"(a)", true},
		{"(I)", true},
		{"(1)", true},
		{"(aa)", true},
		{"(b)", false},
		{"(4-a)", false},
	}

	for _, tt := range tests {
		if got := MustEnum(tt.input).IsFirstInScheme(); got != tt.want {
			t.Errorf("Enum(%q).IsFirstInScheme() = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEnumNested(t *testing.T) {
	e := MustEnum("(1)")
	nested := e.AsNested()
	if e.Nested() {
		t.Error("Nested() = true on the original, want false")
	}
	if !nested.Nested() {
		t.Error("AsNested().Nested() = false, want true")
	}
	if !nested.Equal(e) {
		t.Error("AsNested() changed equality")
	}
}

func TestEnumOrdinalityMemoized(t *testing.T) {
	e := MustEnum("4-a")
	first := e.Ordinality()
	got := first[Digits]
	if len(got) != 2 || got[0] != 3 || got[1] != 0 {
		t.Errorf("Ordinality()[digits] = %v, want [3 0]", got)
	}
	first[Digits] = nil
	if e.Ordinality()[Digits] != nil {
		t.Error("Ordinality() recomputed after the first call")
	}
}
