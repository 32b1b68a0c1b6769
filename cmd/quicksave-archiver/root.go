package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raoulx24/quicksave-archiver/internal/config"
	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

var (
	cfgFile  string
	logLevel string
	rootCmd  = &cobra.Command{
		Use:   "quicksave-archiver",
		Short: "Keep rolling snapshots of a game save directory",
		Long: `quicksave-archiver watches a save file and, after a trigger and a short
delay, copies the save directory to a timestamped sibling when the save
changed. Only the newest snapshots are kept.

Examples:
  quicksave-archiver                       # run with ./config.yaml
  quicksave-archiver run --config ~/qsa.yaml
  quicksave-archiver snapshot              # copy now, then prune
  quicksave-archiver prune --dry-run       # show what retention would delete`,
		SilenceUsage: true,
		RunE:         runDaemon,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file and applies flag overrides. Failure is
// fatal for every command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		printError("failed to load config: %v", err)
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			printError("%v", err)
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logging.Logger, func() error, error) {
	lg, closeFn, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	if err != nil {
		printError("failed to open log: %v", err)
		return nil, nil, err
	}
	return lg, closeFn, nil
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
