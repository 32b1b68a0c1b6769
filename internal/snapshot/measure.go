package snapshot

import (
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// Tree summarizes a directory tree. The root itself is not counted in Dirs.
type Tree struct {
	Files int
	Dirs  int
	Bytes int64
}

// Measure walks root concurrently and counts regular files, subdirectories
// and bytes. Symlinks are not followed. Unreadable subtrees are skipped;
// only a failure on root itself is returned.
//
// Measure reads the OS filesystem directly, not an fs.FS. A copy through a
// wrapping FS that refuses some entries is therefore measured against what
// is on disk, which is what makes the shortfall visible.
func Measure(root string) (Tree, error) {
	root = filepath.Clean(root)

	var files, dirs, size atomic.Int64
	conf := fastwalk.Config{
		Follow: false,
	}

	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if filepath.Clean(path) == root {
				return walkErr
			}
			return nil //nolint:nilerr // skip unreadable entries, copy reports them
		}
		if filepath.Clean(path) == root {
			return nil
		}

		switch {
		case d.IsDir():
			dirs.Add(1)
		case d.Type().IsRegular():
			files.Add(1)
			if info, err := d.Info(); err == nil {
				size.Add(info.Size())
			}
		}
		return nil
	})
	if err != nil {
		return Tree{}, err
	}

	return Tree{
		Files: int(files.Load()),
		Dirs:  int(dirs.Load()),
		Bytes: size.Load(),
	}, nil
}
