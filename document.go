package miniml

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/KimNorgaard/go-miniml/internal/writer"
)

// Document is a MiniML tree together with the file it was loaded from.
//
// Every mutation, whether made through the Document or through one of
// its nodes, re-renders the whole tree and replaces the backing file
// before it returns. A Document is not safe for concurrent use.
type Document struct {
	root *Node
	path string
	opts *options
	w    *writer.FileWriter // nil for in-memory documents
}

// Root returns the document's root node, or nil if the document is empty.
func (d *Document) Root() *Node { return d.root }

// Path returns the absolute path of the backing file, or "" for a
// document that only lives in memory.
func (d *Document) Path() string { return d.path }

// CreateNode creates a node named name as the last child of parent and
// resyncs the document. A nil parent creates the root, which fails with
// ErrRootExists if the document already has one.
func (d *Document) CreateNode(name string, parent *Node) (*Node, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("miniml: create node: %w", err)
	}

	n := &Node{name: name, doc: d}
	if parent == nil {
		if d.root != nil {
			return nil, fmt.Errorf("miniml: create node %q: %w", name, ErrRootExists)
		}
		d.root = n
		return n, d.Sync()
	}

	switch {
	case parent.doc == nil:
		return nil, fmt.Errorf("miniml: create node %q under %q: %w", name, parent.name, ErrDetached)
	case parent.doc != d:
		return nil, fmt.Errorf("miniml: create node %q under %q: %w", name, parent.name, ErrForeignNode)
	case parent.depth() >= d.opts.maxDepth:
		return nil, fmt.Errorf("miniml: create node %q under %q: %w", name, parent.name, ErrMaxDepth)
	}

	n.parent = parent
	parent.children = append(parent.children, n)
	return n, d.Sync()
}

// NodeByID returns the node whose identifier is id, or nil if there is
// none. The tree is searched depth-first in document order.
func (d *Document) NodeByID(id string) *Node {
	if id == "" {
		return nil
	}
	var found *Node
	d.Walk(func(n *Node) bool {
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk calls fn for every node of the document in document order
// (depth-first, parents before children). Walking stops as soon as fn
// returns false.
func (d *Document) Walk(fn func(*Node) bool) {
	if d.root != nil {
		walk(d.root, fn)
	}
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

// Sync renders the whole tree and atomically replaces the backing file
// with it. Mutations call Sync themselves; calling it directly is only
// needed to retry after an UpdateError. Sync is a no-op for in-memory
// documents.
func (d *Document) Sync() error {
	if d.w == nil {
		return nil
	}
	buf := d.Bytes()
	if err := d.w.WriteFile(buf); err != nil {
		d.opts.logger.Error("resync failed", zap.String("path", d.path), zap.Error(err))
		return &UpdateError{Path: d.path, Err: err}
	}
	d.opts.logger.Debug("document resynced", zap.String("path", d.path), zap.Int("bytes", len(buf)))
	return nil
}

// WriteTo writes the canonical text of the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	buf := d.Bytes()
	n, err := w.Write(buf)
	return int64(n), err
}

// Bytes returns the canonical text of the document. An empty document
// renders to no bytes at all.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = newFormatter(&buf, d.opts).format(d.root)
	return buf.Bytes()
}

func (d *Document) count() int {
	n := 0
	d.Walk(func(*Node) bool {
		n++
		return true
	})
	return n
}
