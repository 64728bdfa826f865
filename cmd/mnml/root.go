package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KimNorgaard/go-miniml"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	noColor      bool
	configPath   string
	indentSpaces int
	emptyIDLines bool

	cfg    = &Config{}
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mnml",
	Short: "Inspect and edit MiniML documents",
	Long: `mnml reads, checks, formats and edits MiniML (.mnml) documents.

Commands that take a node selector accept "." for the document root and
any other string as a node identifier.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlagOverrides(cmd)

		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		color.NoColor = !colorEnabled()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/mnml/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&indentSpaces, "indent", 0, "Indent written files with this many spaces instead of tabs")
	rootCmd.PersistentFlags().BoolVar(&emptyIDLines, "empty-id-lines", false, "Write '' for nodes without an identifier")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("indent") {
		n := indentSpaces
		cfg.Indent = &n
	}
	if flags.Changed("empty-id-lines") {
		cfg.EmptyIDLines = emptyIDLines
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}

func newLogger(lc LoggingConfig) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if lc.Format == "console" {
		config = zap.NewDevelopmentConfig()
	}
	level := zapcore.WarnLevel
	if lc.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(lc.Level); err != nil {
			return nil, err
		}
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}

func colorEnabled() bool {
	if noColor {
		return false
	}
	if cfg.Color != nil {
		return *cfg.Color
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// documentOptions turns the effective configuration into library options.
func documentOptions() []miniml.Option {
	opts := []miniml.Option{miniml.WithLogger(logger)}
	if cfg.Indent != nil {
		opts = append(opts, miniml.Indent(*cfg.Indent))
	}
	if cfg.EmptyIDLines {
		opts = append(opts, miniml.EmptyIDLines())
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, miniml.MaxDepth(cfg.MaxDepth))
	}
	return opts
}

func openDocument(path string) (*miniml.Document, error) {
	printVerbose("Opening document: %s\n", path)
	doc, err := miniml.Open(path, documentOptions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened document", zap.String("path", doc.Path()))
	return doc, nil
}

// resolveNode returns the node addressed by selector: "." is the root,
// anything else an identifier.
func resolveNode(doc *miniml.Document, selector string) (*miniml.Node, error) {
	if selector == "." {
		if doc.Root() == nil {
			return nil, fmt.Errorf("document %s is empty", doc.Path())
		}
		return doc.Root(), nil
	}
	n := doc.NodeByID(selector)
	if n == nil {
		return nil, fmt.Errorf("no node with id %q", selector)
	}
	return n, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(w io.Writer, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("Error: ")+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
