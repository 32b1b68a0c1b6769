// Package fsprobe checks whether fsnotify works reliably for a directory.
// Network shares and some container mounts accept a watch but never report
// anything, so the check writes a real file and waits for its event.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const probeName = ".qsa-probe"

// Timeout bounds how long Probe waits for the write to be reported.
var Timeout = 200 * time.Millisecond

// Result reports whether fsnotify is usable and why.
type Result struct {
	FsnotifySupported bool          // true if events are delivered
	Reason            string        // explanation when unsupported
	Latency           time.Duration // time until the write was reported
}

func unsupported(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Probe creates a file in dir, starts watching, then rewrites the file in
// place the way games update a save slot. Only a write or create event for
// that file counts. No file is left behind.
func Probe(dir string) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return unsupported("stat failed: %v", err)
	}
	if !st.IsDir() {
		return unsupported("not a directory")
	}

	probe := filepath.Join(dir, probeName)
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return unsupported("cannot create probe file: %v", err)
	}
	defer os.Remove(probe)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return unsupported("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return unsupported("cannot watch directory: %v", err)
	}

	start := time.Now()
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		return unsupported("cannot write probe file: %v", err)
	}

	timeout := time.After(Timeout)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return unsupported("watcher closed")
			}
			if filepath.Base(ev.Name) != probeName {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				return Result{FsnotifySupported: true, Latency: time.Since(start)}
			}
		case err := <-w.Errors:
			return unsupported("watch error: %v", err)
		case <-timeout:
			return unsupported("no events received within %s", Timeout)
		}
	}
}
