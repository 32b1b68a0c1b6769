// Package fstest provides an fs.FS that fails chosen operations, for tests
// that need copy or delete errors without relying on permissions.
package fstest

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/raoulx24/quicksave-archiver/internal/fs"
)

// Faulty wraps an fs.FS. Operations on a registered path return the
// registered error instead of touching the disk.
type Faulty struct {
	fs.FS

	mu        sync.Mutex
	copyErr   map[string]error
	removeErr map[string]error
	readErr   map[string]error
	copies    int
	removes   []string
}

// NewFaulty wraps inner. A nil inner uses the OS.
func NewFaulty(inner fs.FS) *Faulty {
	if inner == nil {
		inner = fs.New()
	}
	return &Faulty{
		FS:        inner,
		copyErr:   map[string]error{},
		removeErr: map[string]error{},
		readErr:   map[string]error{},
	}
}

// FailCopy makes CopyFile fail for the given source path.
func (f *Faulty) FailCopy(src string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copyErr[filepath.Clean(src)] = err
}

// FailRemove makes RemoveAll fail for path.
func (f *Faulty) FailRemove(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeErr[filepath.Clean(path)] = err
}

// FailReadDir makes ReadDir fail for path.
func (f *Faulty) FailReadDir(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr[filepath.Clean(path)] = err
}

func (f *Faulty) CopyFile(ctx context.Context, src, dst string) error {
	f.mu.Lock()
	err := f.copyErr[filepath.Clean(src)]
	f.copies++
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.FS.CopyFile(ctx, src, dst)
}

func (f *Faulty) RemoveAll(path string) error {
	f.mu.Lock()
	err := f.removeErr[filepath.Clean(path)]
	f.removes = append(f.removes, path)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	f.mu.Lock()
	err := f.readErr[filepath.Clean(path)]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.FS.ReadDir(path)
}

// Copies is the number of CopyFile calls, failed ones included.
func (f *Faulty) Copies() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copies
}

// Removed lists every path passed to RemoveAll, in call order.
func (f *Faulty) Removed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removes...)
}
