package miniml

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-miniml/internal/token"
)

// Node is a named entry in a MiniML document. It holds an optional
// identifier, an ordered list of values and an ordered list of children.
//
// The read accessors never expose internal state; all changes go through
// the mutation methods, each of which rewrites the backing file before
// returning.
type Node struct {
	name     string
	id       string
	values   []string
	children []*Node
	parent   *Node
	doc      *Document
	line     int
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// ID returns the node's identifier, or "" if it has none.
func (n *Node) ID() string { return n.id }

// HasID reports whether the node carries an identifier.
func (n *Node) HasID() bool { return n.id != "" }

// Parent returns the node's parent, or nil for the root and for removed nodes.
func (n *Node) Parent() *Node { return n.parent }

// Document returns the document the node belongs to, or nil once the
// node has been removed.
func (n *Node) Document() *Document { return n.doc }

// Line returns the source line the node was opened on. Nodes created
// after loading report 0.
func (n *Node) Line() int { return n.line }

// Values returns a copy of the node's values in insertion order.
func (n *Node) Values() []string {
	return slices.Clone(n.values)
}

// Children returns a copy of the node's children in insertion order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildrenByName returns the children named name, in order.
func (n *Node) ChildrenByName(name string) []*Node {
	var same []*Node
	for _, child := range n.children {
		if child.name == name {
			same = append(same, child)
		}
	}
	return same
}

// FirstChild returns the first child named name, or nil.
func (n *Node) FirstChild(name string) *Node {
	for _, child := range n.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// CreateChild appends a new child named name and resyncs the document.
func (n *Node) CreateChild(name string) (*Node, error) {
	if n.doc == nil {
		return nil, fmt.Errorf("miniml: create node %q: %w", name, ErrDetached)
	}
	return n.doc.CreateNode(name, n)
}

// AddValue appends v to the node's values and resyncs the document.
func (n *Node) AddValue(v string) error {
	if n.doc == nil {
		return fmt.Errorf("miniml: add value %q: %w", v, ErrDetached)
	}
	if err := ValidateValue(v); err != nil {
		return fmt.Errorf("miniml: add value: %w", err)
	}
	n.values = append(n.values, v)
	return n.doc.Sync()
}

// RemoveValue removes the first value equal to v and resyncs the
// document. If no value matches, nothing is written and the error wraps
// ErrValueNotFound.
func (n *Node) RemoveValue(v string) error {
	if n.doc == nil {
		return fmt.Errorf("miniml: remove value %q: %w", v, ErrDetached)
	}
	i := slices.Index(n.values, v)
	if i < 0 {
		return fmt.Errorf("miniml: remove value %q from node %q: %w", v, n.name, ErrValueNotFound)
	}
	n.values = slices.Delete(n.values, i, i+1)
	return n.doc.Sync()
}

// RemoveChild removes child from the node and resyncs the document. The
// removed subtree stays readable but can no longer be mutated. If child
// is not a direct child of n, the error wraps ErrChildNotFound.
func (n *Node) RemoveChild(child *Node) error {
	if n.doc == nil {
		return fmt.Errorf("miniml: remove child: %w", ErrDetached)
	}
	i := -1
	if child != nil {
		i = slices.Index(n.children, child)
	}
	if i < 0 {
		name := "<nil>"
		if child != nil {
			name = child.name
		}
		return fmt.Errorf("miniml: remove child %q from node %q: %w", name, n.name, ErrChildNotFound)
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.detach()
	return n.doc.Sync()
}

// RemoveChildrenByName removes every child named name and resyncs the
// document, even when nothing matched. It returns the number of removed
// children.
func (n *Node) RemoveChildrenByName(name string) (int, error) {
	if n.doc == nil {
		return 0, fmt.Errorf("miniml: remove children %q: %w", name, ErrDetached)
	}
	removed := 0
	n.children = slices.DeleteFunc(n.children, func(child *Node) bool {
		if child.name != name {
			return false
		}
		child.detach()
		removed++
		return true
	})
	return removed, n.doc.Sync()
}

// SetID assigns id to the node, replacing any previous identifier, and
// resyncs the document. An empty id removes the identifier. The error
// wraps ErrRepeatingID if another node of the document already holds id.
func (n *Node) SetID(id string) error {
	if n.doc == nil {
		return fmt.Errorf("miniml: set id %q: %w", id, ErrDetached)
	}
	if err := ValidateID(id); err != nil {
		return fmt.Errorf("miniml: set id: %w", err)
	}
	if other := n.doc.NodeByID(id); other != nil && other != n {
		return fmt.Errorf("miniml: set id %q on node %q: %w", id, n.name, ErrRepeatingID)
	}
	n.id = id
	return n.doc.Sync()
}

// String returns the node's name and identifier, for debugging.
func (n *Node) String() string {
	if n.id == "" {
		return n.name
	}
	return n.name + " '" + n.id + "'"
}

// depth returns the nesting level of n, the root being 1.
func (n *Node) depth() int {
	d := 0
	for p := n; p != nil; p = p.parent {
		d++
	}
	return d
}

// detach cuts n out of its document. Descendants keep their parent
// links so the removed subtree can still be inspected.
func (n *Node) detach() {
	n.parent = nil
	n.clearDocument()
}

func (n *Node) clearDocument() {
	n.doc = nil
	for _, child := range n.children {
		child.clearDocument()
	}
}

// ValidateName reports whether name can be used as a node name. The
// error wraps ErrInvalidName for names that would not read back as the
// same node opening line.
func ValidateName(name string) error {
	if !utf8.ValidString(name) || strings.ContainsAny(name, "\r\n") || token.IsDirective(name) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateValue reports whether v can be stored as a value. The error
// wraps ErrInvalidValue.
func ValidateValue(v string) error {
	if !utf8.ValidString(v) || strings.ContainsAny(v, "\r\n") || strings.TrimRightFunc(v, token.IsSpace) != v {
		return fmt.Errorf("%w %q", ErrInvalidValue, v)
	}
	return nil
}

// ValidateID reports whether id can be stored as an identifier. It does
// not check uniqueness. The error wraps ErrInvalidID.
func ValidateID(id string) error {
	if !utf8.ValidString(id) || strings.ContainsAny(id, "\r\n") {
		return fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return nil
}
