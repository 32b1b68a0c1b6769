package config

import "time"

// Config is the whole application configuration. It is read once at
// startup and is read-only afterwards.
type Config struct {
	FilePath string         `yaml:"filePath"`
	Backup   BackupConfig   `yaml:"backup"`
	Triggers TriggersConfig `yaml:"triggers"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type BackupConfig struct {
	MaxCount      int           `yaml:"maxCount"`
	Debounce      time.Duration `yaml:"debounce"`
	DebounceMode  string        `yaml:"debounceMode"` // "absorb", "restart"
	PrimeBaseline bool          `yaml:"primeBaseline"`
}

type TriggersConfig struct {
	Schedule   string           `yaml:"schedule"` // cron spec, e.g. "@every 15m"
	Signal     bool             `yaml:"signal"`
	Stdin      bool             `yaml:"stdin"`
	FileEvents FileEventsConfig `yaml:"fileEvents"`
}

type FileEventsConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Mode         string        `yaml:"mode"`         // "auto", "poll", "fsnotify"
	PollInterval time.Duration `yaml:"pollInterval"` // e.g. 5s
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "text", "logfmt"
	Path   string `yaml:"path"`
}
