package config

import (
	"fmt"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/quicksave-archiver/internal/logging"
)

// ScheduleParser is the cron dialect accepted by triggers.schedule: five
// standard fields or a descriptor such as "@every 10m".
var ScheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate checks every field. The returned error wraps ErrConfigInvalid and
// names the offending field.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return invalid("filePath", "is required")
	}
	if !filepath.IsAbs(c.FilePath) {
		return invalid("filePath", fmt.Sprintf("must be absolute, got %q", c.FilePath))
	}
	if filepath.Dir(filepath.Dir(c.FilePath)) == filepath.Dir(c.FilePath) {
		return invalid("filePath", "must sit inside a directory that has a parent")
	}

	if c.Backup.MaxCount < 1 {
		return invalid("backup.maxCount", fmt.Sprintf("must be at least 1, got %d", c.Backup.MaxCount))
	}
	if c.Backup.Debounce < 0 {
		return invalid("backup.debounce", "must not be negative")
	}
	switch c.Backup.DebounceMode {
	case DebounceAbsorb, DebounceRestart:
	default:
		return invalid("backup.debounceMode", fmt.Sprintf("unknown mode %q", c.Backup.DebounceMode))
	}

	if c.Triggers.Schedule != "" {
		if _, err := ScheduleParser.Parse(c.Triggers.Schedule); err != nil {
			return invalid("triggers.schedule", err.Error())
		}
	}
	fe := c.Triggers.FileEvents
	switch fe.Mode {
	case WatchAuto, WatchPoll, WatchFsnotify:
	default:
		return invalid("triggers.fileEvents.mode", fmt.Sprintf("unknown mode %q", fe.Mode))
	}
	if fe.Enabled && fe.Mode != WatchFsnotify && fe.PollInterval <= 0 {
		return invalid("triggers.fileEvents.pollInterval", "must be positive")
	}
	signal := c.Triggers.Signal && signalAvailable
	if c.Triggers.Schedule == "" && !signal && !c.Triggers.Stdin && !fe.Enabled {
		if c.Triggers.Signal {
			return invalid("triggers.signal", "is not supported on this platform; enable stdin, schedule or fileEvents")
		}
		return invalid("triggers", "at least one trigger source must be enabled")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level", err.Error())
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return invalid("logging.format", err.Error())
	}

	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrConfigInvalid, field, reason)
}
