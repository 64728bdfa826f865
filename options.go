package miniml

import (
	"fmt"

	"go.uber.org/zap"
)

const defaultMaxDepth = 1000

// Option configures how a document is loaded and written back.
type Option func(*options) error

type options struct {
	indent       *int
	emptyIDLines bool
	maxDepth     int
	logger       *zap.Logger
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth: defaultMaxDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Indent returns an Option that indents each nesting level with n
// spaces instead of a tab. Zero writes every line flush left.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("miniml: indent must not be negative")
		}
		o.indent = &n
		return nil
	}
}

// EmptyIDLines returns an Option that writes an empty '' identifier line
// for nodes without an identifier, matching files produced by older
// MiniML writers byte for byte.
func EmptyIDLines() Option {
	return func(o *options) error {
		o.emptyIDLines = true
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum nesting depth of a
// document, both when parsing and when creating nodes. The root is at
// depth 1.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("miniml: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// WithLogger returns an Option that sets the logger used for load and
// resync events. Documents log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("miniml: logger must not be nil")
		}
		o.logger = l
		return nil
	}
}
