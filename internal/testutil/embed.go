package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// TestdataFS holds the embedded MiniML fixtures.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded fixture.
func ReadTestData(name string) ([]byte, error) {
	p := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Fixtures returns the names of all embedded .mnml fixtures, sorted.
// Fixtures whose name starts with "error-" are expected not to parse.
func Fixtures() ([]string, error) {
	matches, err := fs.Glob(TestdataFS, "testdata/*.mnml")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, path.Base(m))
	}
	return names, nil
}

// IsErrorFixture reports whether the fixture is expected to fail parsing.
func IsErrorFixture(name string) bool {
	return strings.HasPrefix(name, "error-")
}

// CopyFixture writes the named fixture into dir and returns the new path.
func CopyFixture(dir, name string) (string, error) {
	data, err := ReadTestData(name)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to copy test data file '%s': %w", name, err)
	}
	return dst, nil
}
