package lexer

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/KimNorgaard/go-miniml/internal/token"
)

const (
	initialBufferSize = 64 * 1024
	// MaxLineSize is the longest line the lexer accepts.
	MaxLineSize = 16 * 1024 * 1024
)

// Lexer splits MiniML source into classified line tokens.
type Lexer struct {
	s    *bufio.Scanner
	line int
	err  error
	done bool
}

// New creates and returns a new Lexer reading from r.
//
// The input is expected to be UTF-8. A leading byte-order mark is
// stripped, and a UTF-16 BOM switches decoding to UTF-16.
func New(r io.Reader) *Lexer {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	s := bufio.NewScanner(transform.NewReader(r, decoder))
	s.Buffer(make([]byte, 0, initialBufferSize), MaxLineSize)
	return &Lexer{s: s}
}

// NextToken returns the token for the next source line. Once the input
// is exhausted, or reading failed, it keeps returning an EOF token.
func (l *Lexer) NextToken() token.Token {
	if l.done {
		return token.Token{Type: token.EOF, Line: l.line}
	}
	if !l.s.Scan() {
		l.done = true
		l.err = l.s.Err()
		return token.Token{Type: token.EOF, Line: l.line}
	}
	l.line++
	typ, lit := token.Lookup(l.s.Text())
	return token.Token{Type: typ, Literal: lit, Line: l.line}
}

// Err returns the first non-EOF error encountered while reading.
func (l *Lexer) Err() error {
	return l.err
}
