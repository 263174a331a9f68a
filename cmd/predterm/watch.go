package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settle is how long to wait after a change so that a burst of writes is
// handled once.
const settle = 100 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <files...>",
	Short: "Re-run the consistency check whenever a program document changes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// watch checks every file once and then again on each write until ctx is
// done. The parent directories are watched so that editors replacing the
// file by rename are noticed too.
func watch(ctx context.Context, paths []string, stdout, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
		dirs[dir] = true
	}

	for _, p := range paths {
		checkOnce(ctx, p, stdout, stderr)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			time.Sleep(settle)
			checkOnce(ctx, event.Name, stdout, stderr)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

func checkOnce(ctx context.Context, path string, stdout, stderr io.Writer) {
	results, err := transformAll(ctx, logger, cfg, []string{path}, stderr)
	switch {
	case errors.Is(err, errFailed):
		fmt.Fprintf(stdout, "%s: errors found\n", path)
	case err != nil:
		fmt.Fprintf(stderr, "%s: %v\n", path, err)
	default:
		fmt.Fprintf(stdout, "%s: ok (%d instance functions)\n", path, len(results[0].Synthesized))
	}
}
