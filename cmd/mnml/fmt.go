package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var (
	fmtWrite bool
	fmtDiff  bool
)

func init() {
	cmd := newFmtCmd()
	cmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "Show a line diff against the current file")
	rootCmd.AddCommand(cmd)
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a document in canonical form",
		Long: `The fmt command loads a document and prints its canonical
form: one directive per line, indented by nesting depth, with comments
and blank lines dropped.

Example:
  mnml fmt settings.mnml
  mnml fmt settings.mnml --diff
  mnml fmt -w --indent 2 settings.mnml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.OutOrStdout(), args[0])
		},
	}
}

func runFmt(out io.Writer, path string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	original, err := os.ReadFile(doc.Path())
	if err != nil {
		return err
	}
	formatted := doc.Bytes()

	if fmtDiff {
		writeLineDiff(out, string(original), string(formatted))
	} else if !fmtWrite {
		if _, err := out.Write(formatted); err != nil {
			return err
		}
	}

	if fmtWrite {
		if string(original) == string(formatted) {
			printVerbose("%s is already formatted\n", path)
			return nil
		}
		if err := doc.Sync(); err != nil {
			return err
		}
		printVerbose("Formatted %s\n", path)
	}
	return nil
}

// writeLineDiff prints a unified-style line diff from a to b.
func writeLineDiff(out io.Writer, a, b string) {
	dmp := diffpatch.New()
	aChars, bChars, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(aChars, bChars, false), lines)

	for _, d := range diffs {
		var prefix string
		paint := fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", color.New(color.FgRed).Sprint
		case diffpatch.DiffInsert:
			prefix, paint = "+", color.New(color.FgGreen).Sprint
		case diffpatch.DiffEqual:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintln(out, paint(prefix+strings.TrimSuffix(line, "\n")))
		}
	}
}
