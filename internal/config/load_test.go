package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MinimalUsesDefaults(t *testing.T) {
	path := writeConfig(t, "filePath: /games/save/quicksave/quick.save\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/games/save/quicksave/quick.save", cfg.FilePath)
	assert.Equal(t, DefaultMaxCount, cfg.Backup.MaxCount)
	assert.Equal(t, DefaultDebounce, cfg.Backup.Debounce)
	assert.Equal(t, DebounceAbsorb, cfg.Backup.DebounceMode)
	assert.True(t, cfg.Backup.PrimeBaseline)
	assert.Equal(t, signalAvailable, cfg.Triggers.Signal)
	assert.Equal(t, !signalAvailable, cfg.Triggers.Stdin)
	assert.Equal(t, WatchAuto, cfg.Triggers.FileEvents.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FullDocument(t *testing.T) {
	path := writeConfig(t, `
filePath: /games/save/quicksave/quick.save
backup:
  maxCount: 3
  debounce: 2500ms
  debounceMode: restart
  primeBaseline: false
triggers:
  schedule: "@every 15m"
  signal: false
  stdin: true
  fileEvents:
    enabled: true
    mode: poll
    pollInterval: 1s
logging:
  level: debug
  format: json
  path: default
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Backup.MaxCount)
	assert.Equal(t, 2500*time.Millisecond, cfg.Backup.Debounce)
	assert.Equal(t, DebounceRestart, cfg.Backup.DebounceMode)
	assert.False(t, cfg.Backup.PrimeBaseline)
	assert.Equal(t, "@every 15m", cfg.Triggers.Schedule)
	assert.False(t, cfg.Triggers.Signal)
	assert.True(t, cfg.Triggers.Stdin)
	assert.True(t, cfg.Triggers.FileEvents.Enabled)
	assert.Equal(t, WatchPoll, cfg.Triggers.FileEvents.Mode)
	assert.Equal(t, time.Second, cfg.Triggers.FileEvents.PollInterval)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "default", cfg.Logging.Path)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("QSA_SAVE_ROOT", "/srv/kenshi/save")
	path := writeConfig(t, "filePath: $(QSA_SAVE_ROOT)/quicksave/quick.save\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/kenshi/save/quicksave/quick.save", cfg.FilePath)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigMissing)
	assert.NotErrorIs(t, err, ErrConfigInvalid)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty document", "", "filePath"},
		{"relative path", "filePath: save/quick.save\n", "filePath"},
		{"root file", "filePath: /quick.save\n", "filePath"},
		{"malformed yaml", "filePath: [unterminated\n", "yaml"},
		{"unknown key", "filePath: /a/b/c\nfilepathh: x\n", "yaml"},
		{"bad duration", "filePath: /a/b/c\nbackup:\n  debounce: soon\n", "yaml"},
		{"zero max", "filePath: /a/b/c\nbackup:\n  maxCount: 0\n", "backup.maxCount"},
		{"negative debounce", "filePath: /a/b/c\nbackup:\n  debounce: -1s\n", "backup.debounce"},
		{"bad debounce mode", "filePath: /a/b/c\nbackup:\n  debounceMode: sometimes\n", "backup.debounceMode"},
		{"bad cron", "filePath: /a/b/c\ntriggers:\n  schedule: \"every tuesday\"\n", "triggers.schedule"},
		{"bad watch mode", "filePath: /a/b/c\ntriggers:\n  fileEvents:\n    mode: inotify\n", "triggers.fileEvents.mode"},
		{"no sources", "filePath: /a/b/c\ntriggers:\n  signal: false\n", "triggers"},
		{"bad level", "filePath: /a/b/c\nlogging:\n  level: chatty\n", "logging.level"},
		{"bad format", "filePath: /a/b/c\nlogging:\n  format: xml\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigInvalid)
			assert.NotErrorIs(t, err, ErrConfigMissing)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func withoutSignals(t *testing.T) {
	t.Helper()
	prev := signalAvailable
	signalAvailable = false
	t.Cleanup(func() { signalAvailable = prev })
}

func TestValidate_SignalOnlyRejectedWithoutSignals(t *testing.T) {
	withoutSignals(t)

	_, err := Load(writeConfig(t, "filePath: /a/b/c\ntriggers:\n  signal: true\n  stdin: false\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Contains(t, err.Error(), "triggers.signal")
}

func TestValidate_SignalWithOtherSourceAcceptedWithoutSignals(t *testing.T) {
	withoutSignals(t)

	_, err := Load(writeConfig(t, "filePath: /a/b/c\ntriggers:\n  signal: true\n  schedule: \"@every 1h\"\n"))
	assert.NoError(t, err)
}

func TestDefault_WithoutSignalsFallsBackToStdin(t *testing.T) {
	withoutSignals(t)

	cfg := Default()
	cfg.FilePath = "/a/b/c"
	assert.False(t, cfg.Triggers.Signal)
	assert.True(t, cfg.Triggers.Stdin)
	assert.NoError(t, cfg.Validate())
}
