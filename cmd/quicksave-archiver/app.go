package main

import (
	"os"

	"github.com/raoulx24/quicksave-archiver/internal/config"
	"github.com/raoulx24/quicksave-archiver/internal/fs"
	"github.com/raoulx24/quicksave-archiver/internal/logging"
	"github.com/raoulx24/quicksave-archiver/internal/mailbox"
	"github.com/raoulx24/quicksave-archiver/internal/retention"
	"github.com/raoulx24/quicksave-archiver/internal/snapshot"
	"github.com/raoulx24/quicksave-archiver/internal/trigger"
	"github.com/raoulx24/quicksave-archiver/internal/watcher"
	"github.com/raoulx24/quicksave-archiver/internal/worker"
)

// app holds every component, built once from the config.
type app struct {
	cfg      *config.Config
	log      logging.Logger
	target   *watcher.Target
	pipeline *worker.Pipeline
	mailbox  *mailbox.Mailbox[trigger.Event]
	worker   *worker.Worker
	sources  []trigger.Source
}

func newApp(cfg *config.Config, log logging.Logger) *app {
	filesystem := fs.New()

	target := watcher.NewTarget(cfg.FilePath, filesystem)
	pipeline := worker.NewPipeline(
		target,
		snapshot.NewCopier(filesystem, log.With("component", "snapshot")),
		retention.New(filesystem, log.With("component", "retention")),
		cfg.Backup.MaxCount,
		log.With("component", "pipeline"),
	)

	mb := mailbox.New[trigger.Event]()
	w := worker.New(mb, pipeline, worker.Options{
		Delay:            cfg.Backup.Debounce,
		RestartOnTrigger: cfg.Backup.DebounceMode == config.DebounceRestart,
	}, log.With("component", "worker"))

	return &app{
		cfg:      cfg,
		log:      log,
		target:   target,
		pipeline: pipeline,
		mailbox:  mb,
		worker:   w,
		sources:  buildSources(cfg, log.With("component", "trigger")),
	}
}

func buildSources(cfg *config.Config, log logging.Logger) []trigger.Source {
	var sources []trigger.Source
	t := cfg.Triggers

	if t.Schedule != "" {
		sources = append(sources, trigger.NewSchedule(t.Schedule, config.ScheduleParser, log))
	}
	if t.Signal {
		sources = append(sources, trigger.NewSignals(log, trigger.BackupSignals()...))
	}
	if t.Stdin {
		sources = append(sources, trigger.NewLines(os.Stdin, log))
	}
	if t.FileEvents.Enabled {
		sources = append(sources, trigger.NewFileEvents(cfg.FilePath, t.FileEvents, log))
	}
	return sources
}
