package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/raoulx24/quicksave-archiver/internal/fs"
	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

var (
	// ErrDestinationExists is returned when the snapshot directory is already
	// present. Nothing is written in that case.
	ErrDestinationExists = errors.New("snapshot destination already exists")

	// ErrPartialCopy matches every *PartialCopyError.
	ErrPartialCopy = errors.New("partial copy")
)

// Failure is one entry that could not be copied.
type Failure struct {
	Path string
	Err  error
}

// Result describes a finished copy. Dirs excludes the destination root.
type Result struct {
	Source      string
	Destination string
	Files       int
	Total       int
	Dirs        int
	Bytes       int64
	Failures    []Failure
}

// PartialCopyError reports that some files were not copied. Files already
// copied are left in place.
type PartialCopyError struct {
	Copied   int
	Total    int
	Failures []Failure
}

func (e *PartialCopyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "partial copy: %d/%d files copied", e.Copied, e.Total)
	if len(e.Failures) > 0 {
		fmt.Fprintf(&b, ", first failure %s: %v", e.Failures[0].Path, e.Failures[0].Err)
	}
	return b.String()
}

func (e *PartialCopyError) Is(target error) bool {
	return target == ErrPartialCopy
}

// Copier copies a directory tree through an fs.FS.
type Copier struct {
	fs  fs.FS
	log logging.Logger
}

// NewCopier creates a copier. A nil fs uses the OS.
func NewCopier(filesystem fs.FS, log logging.Logger) *Copier {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Copier{fs: filesystem, log: log}
}

// CopyTree recursively copies src into dst, creating dst. In every directory
// the files are copied before descending into subdirectories. A failing
// entry does not stop the copy; the result then comes with a
// *PartialCopyError.
func (c *Copier) CopyTree(ctx context.Context, src, dst string) (Result, error) {
	res := Result{Source: src, Destination: dst}

	if _, err := c.fs.Stat(dst); err == nil {
		return res, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	} else if !errors.Is(err, os.ErrNotExist) {
		return res, fmt.Errorf("checking destination: %w", err)
	}

	tree, err := Measure(src)
	if err != nil {
		return res, fmt.Errorf("scanning source: %w", err)
	}
	res.Total = tree.Files
	c.log.Debug("copying tree", "src", src, "dst", dst,
		"files", tree.Files, "dirs", tree.Dirs, "size", humanize.IBytes(uint64(tree.Bytes)))

	if err := c.fs.MkdirAll(dst); err != nil {
		return res, fmt.Errorf("creating destination: %w", err)
	}
	c.copyDir(ctx, src, dst, &res)

	if len(res.Failures) > 0 || res.Files < res.Total {
		return res, &PartialCopyError{
			Copied:   res.Files,
			Total:    res.Total,
			Failures: res.Failures,
		}
	}
	return res, nil
}

// copyDir copies the contents of src into the existing directory dst.
func (c *Copier) copyDir(ctx context.Context, src, dst string, res *Result) {
	entries, err := c.fs.ReadDir(src)
	if err != nil {
		res.Failures = append(res.Failures, Failure{Path: src, Err: err})
		c.log.Warn("cannot list directory", "dir", src, "error", err)
		return
	}

	var subdirs []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			subdirs = append(subdirs, name)
		case e.Type().IsRegular():
			c.copyFile(ctx, filepath.Join(src, name), filepath.Join(dst, name), e, res)
		default:
			c.log.Debug("skipping irregular entry", "path", filepath.Join(src, name), "type", e.Type().String())
		}
	}

	for _, name := range subdirs {
		from, to := filepath.Join(src, name), filepath.Join(dst, name)
		if err := c.fs.MkdirAll(to); err != nil {
			res.Failures = append(res.Failures, Failure{Path: from, Err: err})
			c.log.Warn("cannot create directory", "dir", to, "error", err)
			continue
		}
		res.Dirs++
		c.copyDir(ctx, from, to, res)
	}
}

func (c *Copier) copyFile(ctx context.Context, src, dst string, e os.DirEntry, res *Result) {
	if err := c.fs.CopyFile(ctx, src, dst); err != nil {
		res.Failures = append(res.Failures, Failure{Path: src, Err: err})
		c.log.Warn("cannot copy file", "file", src, "error", err)
		return
	}
	res.Files++
	if info, err := e.Info(); err == nil {
		res.Bytes += info.Size()
	}
}
