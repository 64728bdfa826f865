package miniml

import (
	"errors"
	"fmt"
)

// Structural grammar errors.
var (
	ErrSecondRoot   = errors.New("second root found")
	ErrUnmatchedEnd = errors.New("end marker without matching node")
	ErrUnclosedNode = errors.New("node is not closed")
	ErrMaxDepth     = errors.New("maximum nesting depth exceeded")
)

// Identifier errors.
var (
	ErrRepeatingID   = errors.New("repeating id")
	ErrSecondID      = errors.New("node already has an id")
	ErrMalformedID   = errors.New("malformed id")
	ErrIDOutsideNode = errors.New("id outside any node")
)

// Mutation precondition errors.
var (
	ErrValueNotFound = errors.New("value not found")
	ErrChildNotFound = errors.New("child not found")
	ErrRootExists    = errors.New("document already has a root")
	ErrForeignNode   = errors.New("node belongs to another document")
	ErrDetached      = errors.New("node has been removed from its document")
	ErrInvalidName   = errors.New("invalid node name")
	ErrInvalidValue  = errors.New("invalid value")
	ErrInvalidID     = errors.New("invalid id")
)

// File errors reported by Open and Create before any parsing happens.
var (
	ErrExtension  = errors.New("file does not have the ." + Extension + " extension")
	ErrNotRegular = errors.New("not a regular file")
)

// ParseError describes why a document could not be loaded.
// Err is one of the grammar or identifier sentinels and can be
// matched with errors.Is.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("miniml: parsing error at line %d: %s", e.Line, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// An UpdateError reports a failed whole-document rewrite. The in-memory
// tree keeps the mutation that triggered it.
type UpdateError struct {
	Path string
	Err  error
}

func (e *UpdateError) Error() string {
	return "miniml: updating " + e.Path + ": " + e.Err.Error()
}

func (e *UpdateError) Unwrap() error { return e.Err }
