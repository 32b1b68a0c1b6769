// Package fs defines the filesystem abstraction used by quicksave-archiver.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"os"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Mode  os.FileMode
	IsDir bool
	Inode uint64
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	CopyFile(ctx context.Context, src, dst string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}
