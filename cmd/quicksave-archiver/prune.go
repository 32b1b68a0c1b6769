package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raoulx24/quicksave-archiver/internal/fs"
	"github.com/raoulx24/quicksave-archiver/internal/retention"
	"github.com/raoulx24/quicksave-archiver/internal/snapshot"
	"github.com/raoulx24/quicksave-archiver/internal/watcher"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply retention once",
	Long:  `Delete the oldest snapshots so that at most backup.maxCount remain.`,
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().BoolP("dry-run", "d", false, "list snapshots that would be deleted")
}

func runPrune(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	filesystem := fs.New()
	target := watcher.NewTarget(cfg.FilePath, filesystem)
	mgr := retention.New(filesystem, log.With("component", "retention")).DryRun(dryRun)

	res, err := mgr.Prune(target.Parent(), snapshot.MarkerFor(target.Base()), cfg.Backup.MaxCount)
	if err != nil {
		return err
	}

	verb := "deleted"
	if dryRun {
		verb = "would delete"
	}
	for _, e := range res.Deleted {
		fmt.Printf("%s %s\n", verb, e.Path)
	}
	for path, ferr := range res.Failed {
		printError("cannot delete %s: %v", path, ferr)
	}
	fmt.Printf("%d snapshot(s) kept\n", len(res.Kept))
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d snapshot(s) could not be deleted", len(res.Failed))
	}
	return nil
}
