package main

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KimNorgaard/go-miniml/internal/testutil"
)

// resetGlobals restores every package-level flag and setting, so that
// tests calling run functions directly do not see each other's state.
func resetGlobals(t *testing.T) {
	t.Helper()

	restore := func() {
		verbose, quiet, noColor = false, false, false
		configPath, indentSpaces, emptyIDLines = "", 0, false
		cfg = &Config{}
		logger = zap.NewNop()

		fmtWrite, fmtDiff = false, false
		treeShowLines, getJSON = false, false
		addNodeID, addNodeAutoID = "", false
	}
	restore()
	t.Cleanup(restore)

	noColorBefore := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColorBefore })
}

// fixture copies the named fixture into a fresh temporary directory.
func fixture(t *testing.T, name string) string {
	t.Helper()
	path, err := testutil.CopyFixture(t.TempDir(), name)
	require.NoError(t, err)
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
