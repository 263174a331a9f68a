package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lhaig/predterm/internal/config"
	"github.com/lhaig/predterm/internal/logging"
)

const defaultTimeout = 2 * time.Minute

var (
	cfgFile  string
	logLevel string
	timeout  time.Duration

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "predterm",
	Short: "predterm - records nested predicate instances for termination checks",
	Long: `predterm rewrites every unfold statement of a verification program so that
it also assumes which predicate instances were unfolded from which. The
assumed nestedPredicates facts feed decreases checks on recursive predicates.

Programs are read from YAML documents.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Abort after this long")

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads the configuration and builds the logger.
func setup() error {
	loaded := config.Default()
	if cfgFile != "" {
		var err error
		if loaded, err = config.Load(cfgFile); err != nil {
			return err
		}
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logging.New(loaded.Logging)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	return nil
}
