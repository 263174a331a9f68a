package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lhaig/predterm/internal/linter"
)

var lintCmd = &cobra.Command{
	Use:   "lint <files...>",
	Short: "Warn about predicates whose unfoldings record nothing useful",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		progs, err := loadAll(ctx, logger, args, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		total := 0
		for i, prog := range progs {
			diag := linter.Lint(prog)
			if diag.Count() == 0 {
				continue
			}
			total += diag.Count()
			fmt.Fprintln(cmd.OutOrStdout(), diag.Format(args[i]))
		}
		logger.Debug("lint finished")
		if total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no issues found")
		}
		return nil
	},
}
