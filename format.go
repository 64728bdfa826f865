package miniml

import (
	"io"
	"strings"

	"github.com/KimNorgaard/go-miniml/internal/token"
)

// formatter writes a MiniML tree to an output stream.
type formatter struct {
	w      io.Writer
	indent string
	depth  int
	opts   *options
}

const defaultIndent = "\t"

// newFormatter returns a new formatter that writes to w.
func newFormatter(w io.Writer, opts *options) *formatter {
	indentStr := defaultIndent
	if opts.indent != nil {
		indentStr = strings.Repeat(" ", *opts.indent)
	}
	return &formatter{w: w, indent: indentStr, opts: opts}
}

// format writes the canonical text of the tree rooted at n. A nil root
// produces no output.
func (f *formatter) format(n *Node) error {
	if n == nil {
		return nil
	}
	return f.writeNode(n)
}

func (f *formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *formatter) writeIndent() error {
	if f.indent == "" {
		return nil
	}
	for i := 0; i < f.depth; i++ {
		if err := f.write(f.indent); err != nil {
			return err
		}
	}
	return nil
}

func (f *formatter) writeLine(s string) error {
	if err := f.writeIndent(); err != nil {
		return err
	}
	return f.write(s + "\n")
}

func (f *formatter) writeNode(n *Node) error {
	if err := f.writeLine(n.name); err != nil {
		return err
	}

	f.depth++
	if n.id != "" || f.opts.emptyIDLines {
		if err := f.writeLine(token.IDQuote + n.id + token.IDQuote); err != nil {
			return err
		}
	}
	for _, v := range n.values {
		if err := f.writeLine(token.ValuePrefix + v); err != nil {
			return err
		}
	}
	for _, child := range n.children {
		if err := f.writeNode(child); err != nil {
			return err
		}
	}
	f.depth--

	return f.writeLine(token.EndMarker)
}
