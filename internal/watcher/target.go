// Package watcher tracks the watched save file and decides whether it
// changed since the last snapshot.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raoulx24/quicksave-archiver/internal/fs"
)

// ErrNotFound means the watched file (or its directory) does not exist.
var ErrNotFound = errors.New("watched file not found")

// Target is the watched file plus the modification time of the last save
// that was snapshotted. It is owned by the worker goroutine; nothing else
// reads or writes the baseline, so there is no lock.
type Target struct {
	path     string
	baseline time.Time
	fs       fs.FS
}

// NewTarget creates a target with an unset baseline. A nil fs uses the OS.
func NewTarget(path string, filesystem fs.FS) *Target {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Target{
		path: filepath.Clean(path),
		fs:   filesystem,
	}
}

func (t *Target) Path() string { return t.path }

// Dir is the directory that gets snapshotted.
func (t *Target) Dir() string { return filepath.Dir(t.path) }

// Base is the name of Dir, the prefix of every snapshot name.
func (t *Target) Base() string { return filepath.Base(t.Dir()) }

// Parent is where snapshots are written, next to Dir.
func (t *Target) Parent() string { return filepath.Dir(t.Dir()) }

func (t *Target) Baseline() time.Time { return t.baseline }

// UpdateBaseline records ts as the last snapshotted save.
func (t *Target) UpdateBaseline(ts time.Time) {
	t.baseline = ts
}

// Prime sets the baseline to the file's current modification time so a
// trigger without a new save does not produce a snapshot. When the file is
// missing the baseline is left unset and ErrNotFound is returned.
func (t *Target) Prime() error {
	mod, err := t.modTime()
	if err != nil {
		return err
	}
	t.baseline = mod
	return nil
}

// HasChanged reports whether the file's modification time differs from the
// baseline, along with the observed time. The baseline is not modified.
func (t *Target) HasChanged() (bool, time.Time, error) {
	mod, err := t.modTime()
	if err != nil {
		return false, time.Time{}, err
	}
	return !mod.Equal(t.baseline), mod, nil
}

func (t *Target) modTime() (time.Time, error) {
	info, err := t.fs.Stat(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, t.path)
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", t.path, err)
	}
	return info.MTime, nil
}
