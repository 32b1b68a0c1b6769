// Package retention keeps the number of snapshot directories under a cap,
// deleting the oldest first.
package retention

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/raoulx24/quicksave-archiver/internal/fs"
	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

// ErrEnumeration means the parent directory could not be listed. No
// snapshot is deleted in that case.
var ErrEnumeration = errors.New("cannot enumerate snapshots")

// Entry is one snapshot directory found under the parent.
type Entry struct {
	Path    string
	ModTime time.Time
}

// Result reports a prune pass. Kept is ordered oldest first.
type Result struct {
	Kept    []Entry
	Deleted []Entry
	Failed  map[string]error
}

type Manager struct {
	fs     fs.FS
	log    logging.Logger
	dryRun bool
}

// New creates a retention manager. A nil fs uses the OS.
func New(filesystem fs.FS, log logging.Logger) *Manager {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Manager{fs: filesystem, log: log}
}

// DryRun makes Prune report what it would delete without deleting.
func (m *Manager) DryRun(on bool) *Manager {
	m.dryRun = on
	return m
}

// Prune keeps the maxCount most recently modified subdirectories of parent
// whose name contains marker (case-insensitive) and deletes the rest.
// A failed deletion is logged and recorded in Result.Failed; the pass goes on.
func (m *Manager) Prune(parent, marker string, maxCount int) (Result, error) {
	res := Result{Failed: map[string]error{}}

	entries, err := m.scan(parent, marker)
	if err != nil {
		return res, err
	}

	if len(entries) <= maxCount {
		res.Kept = entries
		return res, nil
	}

	if maxCount < 0 {
		maxCount = 0
	}
	cut := len(entries) - maxCount
	res.Kept = entries[cut:]

	for _, e := range entries[:cut] {
		if m.dryRun {
			m.log.Info("would delete snapshot", "dir", e.Path)
			res.Deleted = append(res.Deleted, e)
			continue
		}
		if err := m.fs.RemoveAll(e.Path); err != nil {
			m.log.Warn("cannot delete snapshot", "dir", e.Path, "error", err)
			res.Failed[e.Path] = err
			continue
		}
		m.log.Info("deleted snapshot", "dir", e.Path)
		res.Deleted = append(res.Deleted, e)
	}

	return res, nil
}

// scan lists the matching snapshot directories, oldest first.
func (m *Manager) scan(parent, marker string) ([]Entry, error) {
	dirents, err := m.fs.ReadDir(parent)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrEnumeration, parent, err)
	}

	needle := strings.ToLower(marker)
	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() || !strings.Contains(strings.ToLower(d.Name()), needle) {
			continue
		}

		full := filepath.Join(parent, d.Name())
		info, err := d.Info()
		if err != nil {
			// vanished between ReadDir and now
			m.log.Debug("skipping snapshot", "dir", full, "error", err)
			continue
		}
		entries = append(entries, Entry{Path: full, ModTime: info.ModTime()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ModTime.Equal(entries[j].ModTime) {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].ModTime.Before(entries[j].ModTime)
	})

	return entries, nil
}
