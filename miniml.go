package miniml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/KimNorgaard/go-miniml/internal/lexer"
	"github.com/KimNorgaard/go-miniml/internal/writer"
)

// Extension is the file extension of MiniML documents, without the dot.
const Extension = "mnml"

// Parse reads a MiniML document from r. The returned document is not
// bound to a file: mutations are validated and applied in memory only.
//
// If the input violates the grammar, Parse returns a *ParseError and no
// document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(r, o)
}

// Open loads the MiniML document stored at path and binds it to that
// file, so that every later mutation rewrites it.
//
// path must name an existing regular file ending in ".mnml"; anything
// else is rejected before the file is read.
func Open(path string, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	abs, err := checkPath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("miniml: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("miniml: open %s: %w", abs, ErrNotRegular)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("miniml: %w", err)
	}
	defer f.Close()

	doc, err := parse(f, o)
	if err != nil {
		return nil, err
	}
	doc.path = abs
	doc.w = &writer.FileWriter{Path: abs}
	o.logger.Debug("document loaded", zap.String("path", abs), zap.Int("nodes", doc.count()))
	return doc, nil
}

// Create creates an empty MiniML file at path and returns its (empty)
// document. It fails if the file already exists.
func Create(path string, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	abs, err := checkPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(abs, os.O_RDWR|os.O_CREATE|os.O_EXCL, writer.DefaultPerm)
	if err != nil {
		return nil, fmt.Errorf("miniml: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("miniml: %w", err)
	}

	o.logger.Debug("document created", zap.String("path", abs))
	return &Document{
		path: abs,
		opts: o,
		w:    &writer.FileWriter{Path: abs},
	}, nil
}

func parse(r io.Reader, o *options) (*Document, error) {
	doc := &Document{opts: o}
	p := newParser(lexer.New(r), doc)
	if err := p.parse(); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			o.logger.Debug("parse failed", zap.Int("line", perr.Line), zap.Error(perr.Err))
		}
		return nil, err
	}
	return doc, nil
}

// checkPath returns the absolute form of path after checking its extension.
func checkPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("miniml: empty path: %w", fs.ErrInvalid)
	}
	if filepath.Ext(path) != "."+Extension {
		return "", fmt.Errorf("miniml: %s: %w", path, ErrExtension)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("miniml: %w", err)
	}
	return abs, nil
}
