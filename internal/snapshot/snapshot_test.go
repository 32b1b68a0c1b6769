package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/quicksave-archiver/internal/fs/fstest"
	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// buildSave lays out a save directory with 4 files in 2 subdirectories.
func buildSave(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "save", "quicksave")
	writeFile(t, filepath.Join(src, "quick.save"), "header")
	writeFile(t, filepath.Join(src, "platoon", "squad1.platoon"), "beep")
	writeFile(t, filepath.Join(src, "platoon", "squad2.platoon"), "ruka")
	writeFile(t, filepath.Join(src, "zone", "zone.12.34.zone"), strings.Repeat("z", 4096))
	return src
}

// readTree maps relative file paths to content; directories map to "/".
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			out[rel] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestName(t *testing.T) {
	ts := time.Date(2024, 7, 9, 8, 5, 3, 0, time.Local)
	assert.Equal(t, "quicksave_backup_08_05_03-09_07_24", Name("quicksave", ts))
	assert.True(t, strings.Contains(Name("quicksave", ts), MarkerFor("quicksave")))
	assert.Equal(t, "quicksave_backup_", MarkerFor("quicksave"))
}

func TestMeasure(t *testing.T) {
	src := buildSave(t)

	tree, err := Measure(src)
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Files)
	assert.Equal(t, 2, tree.Dirs)
	assert.Equal(t, int64(len("header")+4+4+4096), tree.Bytes)
}

func TestMeasure_MissingRoot(t *testing.T) {
	_, err := Measure(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCopyTree_IdenticalTree(t *testing.T) {
	src := buildSave(t)
	writeFile(t, filepath.Join(src, "empty", ".keep"), "")
	require.NoError(t, os.Remove(filepath.Join(src, "empty", ".keep")))
	dst := filepath.Join(filepath.Dir(src), "quicksave_backup_x")

	res, err := NewCopier(nil, logging.Nop()).CopyTree(context.Background(), src, dst)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Files)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 3, res.Dirs)
	assert.Empty(t, res.Failures)
	assert.Equal(t, readTree(t, src), readTree(t, dst))
}

func TestCopyTree_PartialCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "save", "quicksave")
	for _, name := range []string{"a.save", "b.save", "c.save", "d.save", "e.save"} {
		writeFile(t, filepath.Join(src, name), name)
	}
	dst := filepath.Join(filepath.Dir(src), "quicksave_backup_x")

	faulty := fstest.NewFaulty(nil)
	locked := errors.New("file locked by game")
	faulty.FailCopy(filepath.Join(src, "c.save"), locked)

	res, err := NewCopier(faulty, logging.Nop()).CopyTree(context.Background(), src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialCopy)

	var pce *PartialCopyError
	require.True(t, errors.As(err, &pce))
	assert.Equal(t, 4, pce.Copied)
	assert.Equal(t, 5, pce.Total)
	require.Len(t, pce.Failures, 1)
	assert.ErrorIs(t, pce.Failures[0].Err, locked)
	assert.Contains(t, err.Error(), "4/5")

	assert.Equal(t, 4, res.Files)
	got := readTree(t, dst)
	assert.Len(t, got, 4)
	assert.NotContains(t, got, "c.save")
	assert.Equal(t, "a.save", got["a.save"])
}

func TestCopyTree_UnreadableSubdirIsPartial(t *testing.T) {
	src := buildSave(t)
	dst := filepath.Join(filepath.Dir(src), "quicksave_backup_x")

	faulty := fstest.NewFaulty(nil)
	faulty.FailReadDir(filepath.Join(src, "platoon"), os.ErrPermission)

	res, err := NewCopier(faulty, logging.Nop()).CopyTree(context.Background(), src, dst)
	var pce *PartialCopyError
	require.True(t, errors.As(err, &pce))
	assert.Equal(t, 2, pce.Copied)
	assert.Equal(t, 4, pce.Total)
	assert.Equal(t, 2, res.Dirs)
}

func TestCopyTree_DestinationExists(t *testing.T) {
	src := buildSave(t)
	dst := filepath.Join(filepath.Dir(src), "quicksave_backup_x")
	writeFile(t, filepath.Join(dst, "quick.save"), "older snapshot")

	faulty := fstest.NewFaulty(nil)
	_, err := NewCopier(faulty, logging.Nop()).CopyTree(context.Background(), src, dst)
	assert.ErrorIs(t, err, ErrDestinationExists)
	assert.Zero(t, faulty.Copies())

	data, err := os.ReadFile(filepath.Join(dst, "quick.save"))
	require.NoError(t, err)
	assert.Equal(t, "older snapshot", string(data))
}

func TestCopyTree_MissingSource(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "quicksave_backup_x")

	_, err := NewCopier(nil, logging.Nop()).CopyTree(context.Background(), filepath.Join(root, "quicksave"), dst)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "nothing should be created for a missing source")
}

func TestCopyTree_SkipsSymlinks(t *testing.T) {
	src := buildSave(t)
	if err := os.Symlink(filepath.Join(src, "quick.save"), filepath.Join(src, "link.save")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	dst := filepath.Join(filepath.Dir(src), "quicksave_backup_x")

	res, err := NewCopier(nil, logging.Nop()).CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Files)

	_, statErr := os.Lstat(filepath.Join(dst, "link.save"))
	assert.True(t, os.IsNotExist(statErr))
}
