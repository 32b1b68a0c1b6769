// Package logging provides the structured logger shared by every component.
// It wraps charmbracelet/log behind a small interface so components and tests
// never depend on the backend directly.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

// ErrInvalidFormat is returned for a formatter name other than text, json or logfmt.
var ErrInvalidFormat = errors.New("invalid log format")

// DefaultPathKeyword selects DefaultLogPath when used as Config.Path.
const DefaultPathKeyword = "default"

// Config selects level, output format and destination.
type Config struct {
	Level  string
	Format string
	// Path is the log file. Empty writes to stderr.
	Path string
}

type charmLogger struct {
	l *log.Logger
}

func (c charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

func (c charmLogger) With(keyvals ...any) Logger {
	return charmLogger{l: c.l.With(keyvals...)}
}

// ParseFormat maps a config value to a charmbracelet formatter.
func ParseFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(strings.ToLower(s))
}

// NewWriter builds a logger writing to w.
func NewWriter(w io.Writer, cfg Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return charmLogger{l: l}, nil
}

// New builds a logger from cfg. The returned close func releases the log
// file, if one was opened.
func New(cfg Config) (Logger, func() error, error) {
	path := cfg.Path
	if path == "" {
		lg, err := NewWriter(os.Stderr, cfg)
		return lg, func() error { return nil }, err
	}
	if path == DefaultPathKeyword {
		path = DefaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	lg, err := NewWriter(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return lg, f.Close, nil
}

// Nop discards everything.
func Nop() Logger {
	return charmLogger{l: log.New(io.Discard)}
}

// DefaultLogPath returns $XDG_STATE_HOME/quicksave-archiver/quicksave-archiver.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "quicksave-archiver", "quicksave-archiver.log")
}
