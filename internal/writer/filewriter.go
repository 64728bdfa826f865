// Package writer exposes sinks for document emission.
package writer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPerm is the mode of files created by WriteFile when the target
// does not exist yet.
const DefaultPerm fs.FileMode = 0o644

// FileWriter writes document bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
}

// WriteFile writes buf to the configured path atomically via temp file + rename.
// The mode of an existing target is carried over to the replacement. If
// the path is a symlink, the file it points to is replaced and the link
// is kept.
func (w *FileWriter) WriteFile(buf []byte) error {
	target := w.Path
	if resolved, err := filepath.EvalSymlinks(w.Path); err == nil {
		target = resolved
	}

	perm := DefaultPerm
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(target)
	tmpFile, err := os.CreateTemp(dir, ".miniml-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	// Close before rename
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, target); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}
