package trigger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raoulx24/quicksave-archiver/internal/config"
	"github.com/raoulx24/quicksave-archiver/internal/fsprobe"
	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

// FileEvents fires when the watched file is written. It uses fsnotify when
// the directory delivers events and polls the modification time otherwise.
type FileEvents struct {
	path     string
	mode     string
	interval time.Duration
	log      logging.Logger
}

func NewFileEvents(path string, cfg config.FileEventsConfig, log logging.Logger) *FileEvents {
	return &FileEvents{
		path:     filepath.Clean(path),
		mode:     cfg.Mode,
		interval: cfg.PollInterval,
		log:      log,
	}
}

func (f *FileEvents) Name() string { return "file" }

// Run chooses the watching strategy from the configured mode.
func (f *FileEvents) Run(ctx context.Context, sink Sink) error {
	switch f.mode {
	case config.WatchFsnotify:
		return f.runFsnotify(ctx, sink)

	case config.WatchPoll:
		f.runPolling(ctx, sink)
		return nil

	case config.WatchAuto:
		res := fsprobe.Probe(f.probeDir())
		if res.FsnotifySupported {
			f.log.Debug("fsnotify probe succeeded", "latency", res.Latency.String())
			return f.runFsnotify(ctx, sink)
		}
		f.log.Warn("fsnotify disabled, polling instead", "reason", res.Reason)
		f.runPolling(ctx, sink)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", f.mode)
	}
}

// probeDir is the parent of the save directory. It sits on the same mount,
// and a probe file there cannot end up in a snapshot.
func (f *FileEvents) probeDir() string {
	return filepath.Dir(filepath.Dir(f.path))
}

// runFsnotify emits for writes and creates of the watched file only. Saves
// written to a temp file and renamed into place show up as a create.
func (f *FileEvents) runFsnotify(ctx context.Context, sink Sink) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	f.log.Info("file trigger started", "mode", config.WatchFsnotify, "dir", dir)

	name := filepath.Base(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				f.log.Error("events channel closed")
				return nil
			}
			if filepath.Base(ev.Name) != name || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			f.log.Debug("event", "name", ev.Name, "op", ev.Op.String())
			emit(sink, f.Name())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.log.Error("fsnotify error", "error", err)
		}
	}
}

// runPolling emits when the file's modification time moves between ticks.
func (f *FileEvents) runPolling(ctx context.Context, sink Sink) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	f.log.Info("file trigger started", "mode", config.WatchPoll, "interval", f.interval.String())

	last, _ := f.modTime()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mod, err := f.modTime()
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					f.log.Warn("stat failed", "file", f.path, "error", err)
				}
				continue
			}
			if !mod.Equal(last) {
				last = mod
				emit(sink, f.Name())
			}
		}
	}
}

func (f *FileEvents) modTime() (time.Time, error) {
	st, err := os.Stat(f.path)
	if err != nil {
		return time.Time{}, err
	}
	return st.ModTime(), nil
}
