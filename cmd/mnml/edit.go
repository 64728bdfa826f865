package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KimNorgaard/go-miniml"
)

var (
	addNodeID     string
	addNodeAutoID bool
)

func init() {
	addNode := newAddNodeCmd()
	addNode.Flags().StringVar(&addNodeID, "id", "", "Identifier for the new node")
	addNode.Flags().BoolVar(&addNodeAutoID, "auto-id", false, "Give the new node a random UUID identifier")
	addNode.MarkFlagsMutuallyExclusive("id", "auto-id")
	rootCmd.AddCommand(addNode)

	rootCmd.AddCommand(newAddValueCmd())
	rootCmd.AddCommand(newRemoveValueCmd())
	rootCmd.AddCommand(newRemoveNodeCmd())
	rootCmd.AddCommand(newRemoveChildrenCmd())
	rootCmd.AddCommand(newSetIDCmd())
}

func newAddNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-node <file> <parent-selector> <name>",
		Short: "Append a new node",
		Long: `The add-node command appends a node named <name> to the
children of the selected parent. Use "." as the parent of an empty
document to create its root.

Example:
  mnml add-node settings.mnml . server --id server
  mnml add-node settings.mnml server upstream --auto-id`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddNode(cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}
}

func runAddNode(out io.Writer, path, parentSelector, name string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}

	var parent *miniml.Node
	if parentSelector != "." || doc.Root() != nil {
		if parent, err = resolveNode(doc, parentSelector); err != nil {
			return err
		}
	}

	id := addNodeID
	if addNodeAutoID {
		id = uuid.NewString()
	}
	// Check the id before anything is written.
	if err := miniml.ValidateID(id); err != nil {
		return err
	}
	if id != "" && doc.NodeByID(id) != nil {
		return fmt.Errorf("id %q is already in use", id)
	}

	n, err := doc.CreateNode(name, parent)
	if err != nil {
		return err
	}
	if id != "" {
		if err := n.SetID(id); err != nil {
			return err
		}
	}
	logger.Info("node added", zap.String("path", doc.Path()), zap.String("name", name), zap.String("id", id))
	printInfo(out, "Added %s\n", n)
	return nil
}

func newAddValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-value <file> <selector> <value>...",
		Short: "Append values to a node",
		Long: `Example:
  mnml add-value settings.mnml server "port 8080" "host example.org"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddValue(cmd.OutOrStdout(), args[0], args[1], args[2:])
		},
	}
}

func runAddValue(out io.Writer, path, selector string, values []string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	n, err := resolveNode(doc, selector)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := miniml.ValidateValue(v); err != nil {
			return err
		}
	}
	for _, v := range values {
		if err := n.AddValue(v); err != nil {
			return err
		}
	}
	printInfo(out, "Added %d value(s) to %s\n", len(values), n)
	return nil
}

func newRemoveValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-value <file> <selector> <value>",
		Short: "Remove the first matching value from a node",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveValue(cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}
}

func runRemoveValue(out io.Writer, path, selector, value string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	n, err := resolveNode(doc, selector)
	if err != nil {
		return err
	}
	if err := n.RemoveValue(value); err != nil {
		return err
	}
	printInfo(out, "Removed %q from %s\n", value, n)
	return nil
}

func newRemoveNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-node <file> <id>",
		Short: "Remove a node and its subtree",
		Long: `The rm-node command removes the node with the given
identifier, together with all of its children. The root cannot be removed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveNode(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runRemoveNode(out io.Writer, path, id string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	n, err := resolveNode(doc, id)
	if err != nil {
		return err
	}
	if n.Parent() == nil {
		return fmt.Errorf("cannot remove the root node")
	}
	if err := n.Parent().RemoveChild(n); err != nil {
		return err
	}
	printInfo(out, "Removed %s\n", n)
	return nil
}

func newRemoveChildrenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-children <file> <selector> <name>",
		Short: "Remove all children with the given name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveChildren(cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}
}

func runRemoveChildren(out io.Writer, path, selector, name string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	n, err := resolveNode(doc, selector)
	if err != nil {
		return err
	}
	removed, err := n.RemoveChildrenByName(name)
	if err != nil {
		return err
	}
	printInfo(out, "Removed %d child(ren) named %q from %s\n", removed, name, n)
	return nil
}

func newSetIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-id <file> <selector> <id>",
		Short: "Set or clear the identifier of a node",
		Long: `Example:
  mnml set-id settings.mnml . settings
  mnml set-id settings.mnml old-id ""`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetID(cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}
}

func runSetID(out io.Writer, path, selector, id string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	n, err := resolveNode(doc, selector)
	if err != nil {
		return err
	}
	if err := n.SetID(id); err != nil {
		return err
	}
	printInfo(out, "Updated %s\n", n)
	return nil
}
