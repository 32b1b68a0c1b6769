package config

import "time"

const (
	// DefaultMaxCount is how many snapshots are kept.
	DefaultMaxCount = 10

	// DefaultDebounce lets the game finish writing before the copy starts.
	DefaultDebounce = 10 * time.Second

	DefaultPollInterval = 5 * time.Second
)

const (
	DebounceAbsorb  = "absorb"
	DebounceRestart = "restart"
)

const (
	WatchAuto     = "auto"
	WatchPoll     = "poll"
	WatchFsnotify = "fsnotify"
)

// Default returns a configuration with every optional field set. FilePath
// has no default. The signal trigger is on where signals exist, stdin
// otherwise.
func Default() Config {
	return Config{
		Backup: BackupConfig{
			MaxCount:      DefaultMaxCount,
			Debounce:      DefaultDebounce,
			DebounceMode:  DebounceAbsorb,
			PrimeBaseline: true,
		},
		Triggers: TriggersConfig{
			Signal: signalAvailable,
			Stdin:  !signalAvailable,
			FileEvents: FileEventsConfig{
				Mode:         WatchAuto,
				PollInterval: DefaultPollInterval,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
