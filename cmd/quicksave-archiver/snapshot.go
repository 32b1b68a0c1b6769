package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take a snapshot now",
	Long:  `Copy the save directory immediately, whether or not the save changed, then apply retention.`,
	Args:  cobra.NoArgs,
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	out := newApp(cfg, log).pipeline.Snapshot(context.Background())
	if out.DetectErr != nil {
		return out.DetectErr
	}
	if out.Snapshot == "" {
		return out.CopyErr
	}

	fmt.Printf("%s: %d/%d files, %s\n", out.Snapshot, out.Copy.Files, out.Copy.Total, humanize.IBytes(uint64(out.Copy.Bytes)))
	if len(out.Prune.Deleted) > 0 {
		fmt.Printf("pruned %d old snapshot(s)\n", len(out.Prune.Deleted))
	}
	return out.CopyErr
}
