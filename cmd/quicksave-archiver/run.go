package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/quicksave-archiver/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the save file and take snapshots on trigger",
	Long: `Start the trigger sources and the backup worker. This is the default
command. SIGINT or SIGTERM stops it; a snapshot in progress finishes first.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, log)

	if cfg.Backup.PrimeBaseline {
		if err := a.target.Prime(); err != nil {
			if !errors.Is(err, watcher.ErrNotFound) {
				return err
			}
			log.Warn("watched file not found, first save will be snapshotted", "file", cfg.FilePath)
		}
	}
	log.Info("watching", "file", cfg.FilePath, "snapshots", a.target.Parent(), "maxCount", cfg.Backup.MaxCount)

	var wg sync.WaitGroup
	for _, src := range a.sources {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := src.Run(ctx, a.mailbox); err != nil {
				log.Error("trigger source failed", "source", src.Name(), "error", err)
			}
		}()
	}

	a.worker.Start(ctx)
	wg.Wait()
	log.Info("exit complete")
	return nil
}
