package token

import (
	"strings"
	"unicode"
)

// Type is the kind of a MiniML line.
type Type string

// Token represents one classified line of MiniML source.
type Token struct {
	Type    Type
	Literal string // payload: node name, value text or identifier text
	Line    int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // a malformed identifier line
	EOF     Type = "EOF"     // end of input

	// Ignored lines
	BLANK   Type = "BLANK"   // empty or whitespace-only
	COMMENT Type = "COMMENT" // // a comment

	// Directives
	NAME  Type = "NAME"  // root, child
	ID    Type = "ID"    // 'r1'
	VALUE Type = "VALUE" // =hello
	END   Type = "END"   // __end__
)

// Line prefixes and markers of the format.
const (
	CommentPrefix = "//"
	ValuePrefix   = "="
	IDQuote       = "'"
	EndMarker     = "__end__"
)

// IsSpace reports whether r is trimmed from the ends of a line. Besides
// Unicode white space this includes a stray byte-order mark.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Lookup classifies a single source line. Leading and trailing
// whitespace is ignored. The returned literal is the line's payload.
func Lookup(line string) (Type, string) {
	line = strings.TrimFunc(line, IsSpace)
	switch {
	case line == "":
		return BLANK, ""
	case strings.HasPrefix(line, CommentPrefix):
		return COMMENT, strings.TrimPrefix(line, CommentPrefix)
	case line == EndMarker:
		return END, line
	case strings.HasPrefix(line, ValuePrefix):
		return VALUE, strings.TrimPrefix(line, ValuePrefix)
	case strings.HasPrefix(line, IDQuote):
		// The identifier runs up to the last quote on the line.
		end := strings.LastIndex(line, IDQuote)
		if end == 0 {
			return ILLEGAL, line
		}
		return ID, line[len(IDQuote):end]
	default:
		return NAME, line
	}
}

// IsDirective reports whether a plain node name would be read back as
// something other than a node opening line.
func IsDirective(name string) bool {
	typ, lit := Lookup(name)
	return typ != NAME || lit != name
}
