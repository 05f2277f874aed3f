package tree

import (
	"log/slog"
	"sort"

	"github.com/unitedstates/uscode/pkg/locator"
	"github.com/unitedstates/uscode/pkg/scheme"
)

// Builder places a stream of items into a Tree.
type Builder struct {
	items  []Item
	rules  Rules
	logger *slog.Logger

	tree    *Tree
	pos     int
	current NodeID
	last    map[locator.CodeArg]NodeID
	markers map[string]marker
}

type marker struct {
	node   NodeID
	offset int
}

// BuilderOption configures a builder.
type BuilderOption func(*Builder)

// WithRules replaces the default continuation and footnote rules.
func WithRules(rules Rules) BuilderOption {
	return func(b *Builder) {
		b.rules = rules
	}
}

// WithLogger sets the logger placement decisions are reported to.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a builder over items.
func NewBuilder(items []Item, opts ...BuilderOption) *Builder {
	b := &Builder{
		items:  items,
		rules:  DefaultRules(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build consumes the items in order and returns the tree. Every call starts
// from a fresh tree.
func (b *Builder) Build() (*Tree, error) {
	b.tree = newTree()
	b.current = Root
	b.last = make(map[locator.CodeArg]NodeID)
	b.markers = make(map[string]marker)

	for b.pos = 0; b.pos < len(b.items); b.pos++ {
		item := b.items[b.pos]

		var codearg locator.CodeArg
		if item.Line != nil {
			codearg = item.Line.CodeArg()
		}
		if item.Line != nil && codearg == b.rules.FootnoteDefinition {
			b.linkFootnote(item)
			continue
		}

		id, err := b.append(item, codearg)
		if err != nil {
			return nil, err
		}

		for _, ref := range locator.FootnoteRefs(item.Text) {
			b.markers[ref.Number] = marker{node: id, offset: ref.Offset}
		}
		if item.Line != nil {
			b.last[codearg] = id
		}
		if item.Enum != nil {
			b.current = id
		}
	}
	return b.tree, nil
}

// PendingFootnotes lists footnote numbers whose markers were seen but whose
// definitions were not.
func (b *Builder) PendingFootnotes() []string {
	pending := make([]string, 0, len(b.markers))
	for number := range b.markers {
		pending = append(pending, number)
	}
	sort.Slice(pending, func(i, j int) bool {
		if len(pending[i]) != len(pending[j]) {
			return len(pending[i]) < len(pending[j])
		}
		return pending[i] < pending[j]
	})
	return pending
}

func (b *Builder) append(item Item, codearg locator.CodeArg) (NodeID, error) {
	if item.Line != nil {
		if target, ok := b.rules.Continuations[codearg]; ok {
			if owner, seen := b.last[target]; seen {
				parent := b.tree.nodes[owner].Parent
				b.logger.Debug("continuation placed", "code", codearg.String(), "extends", target.String(), "parent", int(parent))
				return b.attach(parent, item), nil
			}
		}
	}
	return b.place(b.current, item)
}

// place walks up from at until some node accepts item.
func (b *Builder) place(at NodeID, item Item) (NodeID, error) {
	enum := item.Enum
	for {
		node := &b.tree.nodes[at]

		switch {
		case at == Root && enum != nil:
			return b.attach(at, item), nil

		case enum == nil:
			return b.attach(at, item), nil

		case enum.IsFirstInScheme():
			if b.resolvesToParent(node, enum) {
				b.logger.Debug("lookahead moved label to parent", "label", enum.Text())
				return b.attach(node.Parent, item), nil
			}
			return b.attach(at, item), nil

		case enum.Nested():
			return b.attach(at, item), nil

		case node.Enum == nil:
			return b.attach(node.Parent, item), nil

		case enum.CouldBeNextAfter(node.Enum) != scheme.NotNext:
			return b.attach(node.Parent, item), nil
		}

		if node.Parent == NoNode {
			return NoNode, &PlacementError{Label: enum.String(), Line: item.Line}
		}
		at = node.Parent
	}
}

// resolvesToParent decides an "i" following "h" (or "I" following "H") by
// looking exactly one item ahead. Either signal makes the label a sibling of
// the cursor; without one it nests below it.
func (b *Builder) resolvesToParent(node *Node, enum *scheme.Enum) bool {
	if node.Enum == nil {
		return false
	}

	var letter string
	switch {
	case enum.Text() == "i" && node.Enum.Text() == "h":
		letter = "j"
	case enum.Text() == "I" && node.Enum.Text() == "H":
		letter = "J"
	default:
		return false
	}

	if b.pos+1 >= len(b.items) {
		return false
	}
	next := b.items[b.pos+1].Enum
	if next == nil {
		return false
	}
	if next.CouldBeNextAfter(enum) != scheme.NotNext {
		return true
	}
	return next.Text() == letter
}

func (b *Builder) attach(parent NodeID, item Item) NodeID {
	id := b.tree.add(parent, item, locator.StripFootnoteMarkers(item.Text))
	b.logger.Debug("placed", "label", item.label(), "node", int(id), "parent", int(parent))
	return id
}

func (b *Builder) linkFootnote(item Item) {
	number, text, ok := locator.ParseFootnote(item.Text)
	if !ok {
		b.logger.Warn("malformed footnote definition", "text", item.Text)
		return
	}
	m, ok := b.markers[number]
	if !ok {
		b.logger.Warn("footnote without marker", "number", number)
		return
	}
	delete(b.markers, number)

	node := &b.tree.nodes[m.node]
	node.Footnotes = append(node.Footnotes, Footnote{Number: number, Offset: m.offset, Text: text})
}

// Build is a shortcut for NewBuilder(items, opts...).Build().
func Build(items []Item, opts ...BuilderOption) (*Tree, error) {
	return NewBuilder(items, opts...).Build()
}
