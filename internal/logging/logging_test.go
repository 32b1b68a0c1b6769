package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lg, err := NewWriter(&buf, Config{Level: "warn"})
	require.NoError(t, err)

	lg.Info("hidden")
	lg.Warn("shown", "dir", "quicksave")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "quicksave")
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg, err := NewWriter(&buf, Config{Level: "debug", Format: "json"})
	require.NoError(t, err)

	lg.With("component", "worker").Debug("cycle", "changed", true)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "cycle", entry["msg"])
	assert.Equal(t, "worker", entry["component"])
	assert.Contains(t, entry, "changed")
}

func TestNewWriter_InvalidConfig(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Config{Level: "loud"})
	assert.Error(t, err)

	_, err = NewWriter(&bytes.Buffer{}, Config{Format: "xml"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "archiver.log")

	lg, closeFn, err := New(Config{Level: "info", Path: path})
	require.NoError(t, err)
	lg.Info("snapshot written")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "snapshot written"))
}

func TestDefaultLogPath(t *testing.T) {
	assert.Equal(t, "quicksave-archiver.log", filepath.Base(DefaultLogPath()))
}
