package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lhaig/predterm/internal/config"
	"github.com/lhaig/predterm/internal/diagnostic"
	"github.com/lhaig/predterm/internal/formatter"
	"github.com/lhaig/predterm/internal/ir"
	"github.com/lhaig/predterm/internal/loader"
	"github.com/lhaig/predterm/internal/termination"
)

// errFailed is returned when diagnostics containing errors were printed.
var errFailed = errors.New("errors found")

// loadAll loads and validates every program document. Validation problems
// are printed to stderr and turn into errFailed.
func loadAll(ctx context.Context, logger *zap.Logger, paths []string, stderr io.Writer) ([]*ir.Program, error) {
	progs := make([]*ir.Program, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			prog, err := loader.Load(path)
			if err != nil {
				return err
			}
			progs[i] = prog
			logger.Debug("loaded program", zap.String("path", path),
				zap.Int("predicates", len(prog.Predicates)),
				zap.Int("methods", len(prog.Methods)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := false
	for i, prog := range progs {
		problems := ir.Validate(prog)
		if len(problems) == 0 {
			continue
		}
		diag := diagnostic.New()
		for _, p := range problems {
			diag.Errorf(diagnostic.Validation, ir.Position{}, "%s", p)
		}
		fmt.Fprintln(stderr, diag.Format(paths[i]))
		failed = true
	}
	if failed {
		return nil, errFailed
	}
	return progs, nil
}

// transformAll runs the termination pass over every program and prints the
// consistency diagnostics of each.
func transformAll(ctx context.Context, logger *zap.Logger, cfg *config.Config, paths []string, stderr io.Writer) ([]*termination.Result, error) {
	progs, err := loadAll(ctx, logger, paths, stderr)
	if err != nil {
		return nil, err
	}

	results, err := termination.TransformAll(ctx, progs,
		termination.WithConfig(cfg.Termination),
		termination.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	failed := false
	for i, res := range results {
		if res.Diagnostics.Count() > 0 {
			fmt.Fprintln(stderr, res.Diagnostics.Format(paths[i]))
		}
		if res.Diagnostics.HasErrors() {
			failed = true
		}
	}
	if failed {
		return results, errFailed
	}
	return results, nil
}

// writeResults prints each transformed program to stdout, or writes it to
// outDir as <name>.vpr when outDir is set.
func writeResults(paths []string, results []*termination.Result, outDir string, stdout io.Writer) error {
	for i, res := range results {
		text := formatter.Format(res.Program)
		if outDir == "" {
			fmt.Fprintf(stdout, "// %s\n%s", paths[i], text)
			continue
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i]))
		out := filepath.Join(outDir, base+".vpr")
		if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(stdout, "Wrote %s\n", out)
	}
	return nil
}
