package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-miniml"
)

var (
	nameColor  = color.New(color.FgBlue, color.Bold).SprintFunc()
	idColor    = color.New(color.FgYellow).SprintFunc()
	valueColor = color.New(color.FgGreen).SprintFunc()
	lineColor  = color.New(color.FgHiBlack).SprintFunc()
)

var (
	treeShowLines bool
	getJSON       bool
)

func init() {
	tree := newTreeCmd()
	tree.Flags().BoolVar(&treeShowLines, "lines", false, "Show the source line of each node")
	rootCmd.AddCommand(tree)

	get := newGetCmd()
	get.Flags().BoolVar(&getJSON, "json", false, "Output the node and its subtree as JSON")
	rootCmd.AddCommand(get)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file> [selector]",
		Short: "Display a document as an indented tree",
		Long: `The tree command prints the document, or the subtree under
the selected node, with identifiers and values.

Example:
  mnml tree settings.mnml
  mnml tree settings.mnml server --lines`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := "."
			if len(args) == 2 {
				selector = args[1]
			}
			return runTree(cmd.OutOrStdout(), args[0], selector)
		},
	}
}

func runTree(out io.Writer, path, selector string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	if doc.Root() == nil && selector == "." {
		printInfo(out, "(empty document)\n")
		return nil
	}
	n, err := resolveNode(doc, selector)
	if err != nil {
		return err
	}
	printTree(out, n, 0)
	return nil
}

func printTree(out io.Writer, n *miniml.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	line := indent + nameColor(n.Name())
	if n.HasID() {
		line += " " + idColor("#"+n.ID())
	}
	if treeShowLines && n.Line() > 0 {
		line += " " + lineColor(fmt.Sprintf("(line %d)", n.Line()))
	}
	fmt.Fprintln(out, line)

	for _, v := range n.Values() {
		fmt.Fprintf(out, "%s  = %s\n", indent, valueColor(v))
	}
	for _, child := range n.Children() {
		printTree(out, child, depth+1)
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <selector>",
		Short: "Print the values of a node",
		Long: `The get command prints the values of the selected node, one
per line, in document order.

Example:
  mnml get settings.mnml server
  mnml get settings.mnml . --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

// nodeJSON is the JSON form of a node.
type nodeJSON struct {
	Name     string     `json:"name"`
	ID       string     `json:"id,omitempty"`
	Line     int        `json:"line,omitempty"`
	Values   []string   `json:"values"`
	Children []nodeJSON `json:"children,omitempty"`
}

func toJSON(n *miniml.Node) nodeJSON {
	j := nodeJSON{Name: n.Name(), ID: n.ID(), Line: n.Line(), Values: n.Values()}
	if j.Values == nil {
		j.Values = []string{}
	}
	for _, child := range n.Children() {
		j.Children = append(j.Children, toJSON(child))
	}
	return j
}

func runGet(out io.Writer, path, selector string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	n, err := resolveNode(doc, selector)
	if err != nil {
		return err
	}

	if getJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(toJSON(n))
	}
	for _, v := range n.Values() {
		fmt.Fprintln(out, v)
	}
	return nil
}
