package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce = 100 * time.Millisecond

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-check a document every time it changes",
		Long: `The watch command checks the document once, then again after
every change to it, until interrupted.

Example:
  mnml watch settings.mnml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchFile(ctx, cmd.OutOrStdout(), args[0], nil)
		},
	}
}

// watchFile checks path and then re-checks it whenever it is written,
// created or renamed into place. onCheck, if set, receives the result of
// every check. It returns when ctx is done.
func watchFile(ctx context.Context, out io.Writer, path string, onCheck func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Documents are rewritten through a rename, so the directory is watched
	// rather than the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching document", zap.String("path", abs))

	check := func() {
		err := checkFile(out, path)
		if onCheck != nil {
			onCheck(err)
		}
	}
	check()

	// Editors tend to emit several events per save; coalesce them.
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("document changed", zap.String("path", abs), zap.String("op", event.Op.String()))
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-debounce:
			debounce = nil
			check()
		}
	}
}
