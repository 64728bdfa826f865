package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-miniml"
)

func init() {
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCheckCmd())
}

func newInitCmd() *cobra.Command {
	var rootName string
	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Create a new, empty MiniML document",
		Long: `The init command creates a new MiniML file. It refuses to
overwrite an existing file.

Example:
  mnml init settings.mnml
  mnml init settings.mnml --root settings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args[0], rootName)
		},
	}
	cmd.Flags().StringVar(&rootName, "root", "", "Also create a root node with this name")
	return cmd
}

func runInit(out io.Writer, path, rootName string) error {
	if rootName != "" {
		if err := miniml.ValidateName(rootName); err != nil {
			return err
		}
	}
	doc, err := miniml.Create(path, documentOptions()...)
	if err != nil {
		return err
	}
	if rootName != "" {
		if _, err := doc.CreateNode(rootName, nil); err != nil {
			return err
		}
	}
	printInfo(out, "Created %s\n", doc.Path())
	return nil
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check that MiniML documents are well formed",
		Long: `The check command loads each file and reports the first
problem found in it, with its line number.

Example:
  mnml check settings.mnml
  mnml check *.mnml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args)
		},
	}
}

func runCheck(out io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		if err := checkFile(out, path); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed the check", failed, len(paths))
	}
	return nil
}

// checkFile loads path and reports the outcome on out.
func checkFile(out io.Writer, path string) error {
	doc, err := openDocument(path)
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), path, err)
		return err
	}
	nodes := 0
	doc.Walk(func(*miniml.Node) bool {
		nodes++
		return true
	})
	printInfo(out, "%s   %s (%d nodes)\n", color.GreenString("ok"), path, nodes)
	return nil
}
