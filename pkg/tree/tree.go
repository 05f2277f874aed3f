// Package tree rebuilds the paragraph hierarchy of a statute body from a flat
// stream of labelled text items. Nodes live in an arena and refer to their
// parent by index.
package tree

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/unitedstates/uscode/pkg/locator"
	"github.com/unitedstates/uscode/pkg/scheme"
)

// NodeID indexes a node in its tree.
type NodeID int

const (
	// Root is the synthetic root of every tree.
	Root NodeID = 0
	// NoNode is the parent of the root.
	NoNode NodeID = -1
)

// Item is one element of the builder input: an optional label, an optional
// text fragment and the source line. Synthetic labels split out of a compound
// label carry neither text nor line.
type Item struct {
	Enum *scheme.Enum
	Text string
	Line *locator.Line
}

func (it Item) label() string {
	if it.Enum == nil {
		return ""
	}
	return it.Enum.Text()
}

// Footnote is an annotation linked to the node holding its inline marker.
type Footnote struct {
	Number string `json:"number"`
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// Child is either a nested node or a text fragment.
type Child struct {
	Node NodeID
	Text string
}

// IsText reports whether the child is a text fragment.
func (c Child) IsText() bool {
	return c.Node == NoNode
}

// Node is a labelled paragraph. A node without an Enum holds continuation
// text only.
type Node struct {
	Enum      *scheme.Enum
	Line      *locator.Line
	Parent    NodeID
	Children  []Child
	Footnotes []Footnote
}

// Label returns the node's label text, or "" for unlabelled nodes.
func (n *Node) Label() string {
	if n.Enum == nil {
		return ""
	}
	return n.Enum.Text()
}

// Tree is a built paragraph tree.
type Tree struct {
	nodes []Node
}

func newTree() *Tree {
	return &Tree{nodes: []Node{{Parent: NoNode}}}
}

// Len returns the number of nodes, the root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Nodes returns the labelled direct children of id.
func (t *Tree) Nodes(id NodeID) []NodeID {
	var ids []NodeID
	for _, c := range t.nodes[id].Children {
		if !c.IsText() {
			ids = append(ids, c.Node)
		}
	}
	return ids
}

// Text returns the text fragments directly held by id, joined by newlines.
func (t *Tree) Text(id NodeID) string {
	var parts []string
	for _, c := range t.nodes[id].Children {
		if c.IsText() {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Path returns the labels from the root down to id.
func (t *Tree) Path(id NodeID) []string {
	var path []string
	for ; id > Root; id = t.nodes[id].Parent {
		path = append(path, t.nodes[id].Label())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (t *Tree) add(parent NodeID, item Item, text string) NodeID {
	id := NodeID(len(t.nodes))
	n := Node{Enum: item.Enum, Line: item.Line, Parent: parent}
	if text != "" {
		n.Children = append(n.Children, Child{Node: NoNode, Text: text})
	}
	t.nodes = append(t.nodes, n)
	t.nodes[parent].Children = append(t.nodes[parent].Children, Child{Node: id})
	return id
}

type jsonNode struct {
	Label     string     `json:"label,omitempty"`
	Footnotes []Footnote `json:"footnotes"`
	Children  []any      `json:"children"`
}

func (t *Tree) value(id NodeID) *jsonNode {
	n := &t.nodes[id]
	v := &jsonNode{
		Label:     n.Label(),
		Footnotes: n.Footnotes,
		Children:  make([]any, 0, len(n.Children)),
	}
	if v.Footnotes == nil {
		v.Footnotes = []Footnote{}
	}
	for _, c := range n.Children {
		if c.IsText() {
			v.Children = append(v.Children, c.Text)
		} else {
			v.Children = append(v.Children, t.value(c.Node))
		}
	}
	return v
}

// MarshalJSON encodes the tree as nested {label, footnotes, children}
// objects, text fragments appearing as strings among the children.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value(Root))
}

// JSON returns the indented JSON form of the tree.
func (t *Tree) JSON() ([]byte, error) {
	return json.MarshalIndent(t.value(Root), "", "  ")
}

// Fingerprint returns the hex BLAKE3 digest of the compact JSON form. Equal
// trees have equal fingerprints.
func (t *Tree) Fingerprint() (string, error) {
	data, err := t.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode tree: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Render writes an indented outline of the tree to w.
func (t *Tree) Render(w io.Writer) error {
	var buf bytes.Buffer
	t.render(&buf, Root, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

func (t *Tree) render(buf *bytes.Buffer, id NodeID, depth int) {
	n := &t.nodes[id]
	indent := strings.Repeat("  ", depth)
	childDepth := depth
	if id != Root {
		label := n.Label()
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(buf, "%s%s\n", indent, label)
		childDepth++
	}
	childIndent := strings.Repeat("  ", childDepth)
	for _, note := range n.Footnotes {
		fmt.Fprintf(buf, "%s[note %s @%d] %s\n", childIndent, note.Number, note.Offset, note.Text)
	}
	for _, c := range n.Children {
		if c.IsText() {
			fmt.Fprintf(buf, "%s%s\n", childIndent, c.Text)
			continue
		}
		t.render(buf, c.Node, childDepth)
	}
}
