package main

import (
	"context"

	"github.com/spf13/cobra"
)

var outDir string

var transformCmd = &cobra.Command{
	Use:   "transform <files...>",
	Short: "Record nested predicate instances at every unfold",
	Long: `Transform loads each program document, rewrites every unfold statement and
prints the resulting programs. With -o each program is written to
<dir>/<name>.vpr instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		results, err := transformAll(ctx, logger, cfg, args, cmd.ErrOrStderr())
		if err != nil && results == nil {
			return err
		}
		if werr := writeResults(args, results, outDir, cmd.OutOrStdout()); werr != nil {
			return werr
		}
		return err
	},
}

func init() {
	transformCmd.Flags().StringVarP(&outDir, "output", "o", "", "Directory for the transformed programs")
}
