package miniml

import (
	"fmt"

	"github.com/KimNorgaard/go-miniml/internal/lexer"
	"github.com/KimNorgaard/go-miniml/internal/token"
)

// parser builds a document tree from a stream of line tokens.
type parser struct {
	l   *lexer.Lexer
	doc *Document

	curToken token.Token

	// open nodes, innermost last
	stack []*Node
	// identifiers seen so far, mapped to the line that assigned them
	ids map[string]int
}

func newParser(l *lexer.Lexer, doc *Document) *parser {
	return &parser{
		l:   l,
		doc: doc,
		ids: make(map[string]int),
	}
}

// parse consumes the whole input and links the resulting tree into
// p.doc. The first grammar or identifier violation aborts parsing.
func (p *parser) parse() error {
	for {
		p.curToken = p.l.NextToken()
		if p.curTokenIs(token.EOF) {
			break
		}
		if err := p.parseLine(); err != nil {
			return err
		}
	}

	if err := p.l.Err(); err != nil {
		return fmt.Errorf("miniml: reading line %d: %w", p.curToken.Line+1, err)
	}

	if len(p.stack) > 0 {
		top := p.top()
		return &ParseError{
			Line:    top.line,
			Message: fmt.Sprintf("node %q is not closed", top.name),
			Err:     ErrUnclosedNode,
		}
	}
	return nil
}

func (p *parser) parseLine() error {
	switch p.curToken.Type {
	case token.BLANK, token.COMMENT:
		return nil
	case token.VALUE:
		// Values outside any node are dropped.
		if len(p.stack) == 0 {
			return nil
		}
	}

	if len(p.stack) == 0 && p.doc.root != nil && !p.curTokenIs(token.END) {
		return p.errorf(ErrSecondRoot, "second root %q found", p.curToken.Literal)
	}

	switch p.curToken.Type {
	case token.END:
		return p.parseEnd()
	case token.VALUE:
		top := p.top()
		top.values = append(top.values, p.curToken.Literal)
		return nil
	case token.ID, token.ILLEGAL:
		return p.parseID()
	default:
		return p.parseNode()
	}
}

func (p *parser) parseEnd() error {
	if len(p.stack) == 0 {
		return p.errorf(ErrUnmatchedEnd, "")
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *parser) parseID() error {
	if len(p.stack) == 0 {
		return p.errorf(ErrIDOutsideNode, "")
	}
	if p.curTokenIs(token.ILLEGAL) {
		return p.errorf(ErrMalformedID, "unterminated id %s", p.curToken.Literal)
	}

	id := p.curToken.Literal
	// An empty id is how older writers spell "no id".
	if id == "" {
		return nil
	}

	if first, ok := p.ids[id]; ok {
		return p.errorf(ErrRepeatingID, "repeating id %q, first assigned at line %d", id, first)
	}
	top := p.top()
	if top.id != "" {
		return p.errorf(ErrSecondID, "node %q already has id %q, second id %q", top.name, top.id, id)
	}
	top.id = id
	p.ids[id] = p.curToken.Line
	return nil
}

func (p *parser) parseNode() error {
	if len(p.stack) >= p.doc.opts.maxDepth {
		return p.errorf(ErrMaxDepth, "node %q exceeds maximum depth %d", p.curToken.Literal, p.doc.opts.maxDepth)
	}

	n := &Node{name: p.curToken.Literal, doc: p.doc, line: p.curToken.Line}
	if len(p.stack) == 0 {
		p.doc.root = n
	} else {
		parent := p.top()
		n.parent = parent
		parent.children = append(parent.children, n)
	}
	p.stack = append(p.stack, n)
	return nil
}

func (p *parser) top() *Node {
	return p.stack[len(p.stack)-1]
}

func (p *parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *parser) errorf(sentinel error, format string, args ...any) *ParseError {
	e := &ParseError{Line: p.curToken.Line, Err: sentinel}
	if format != "" {
		e.Message = fmt.Sprintf(format, args...)
	}
	return e
}
