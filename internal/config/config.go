package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/bckpcln/internal/cleaner"
	"github.com/raoulx24/bckpcln/internal/size"
)

type Config struct {
	Directory   string        `yaml:"directory"`
	MaxSize     string        `yaml:"maxSize"` // e.g. "6G"
	Action      string        `yaml:"action"`  // "explain", "delete", "move"
	MoveTarget  string        `yaml:"moveTarget"`
	Force       bool          `yaml:"force"`
	List        bool          `yaml:"list"`
	Verbose     bool          `yaml:"verbose"`
	Schedule    string        `yaml:"schedule"` // standard cron expression
	Watch       WatchConfig   `yaml:"watch"`
	Logging     LoggingConfig `yaml:"logging"`
	MetricsFile string        `yaml:"metricsFile"`
}

type WatchConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Mode           string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 1m
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 10s
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "text"
}

// Default returns the settings used when neither a file nor a flag says otherwise.
func Default() *Config {
	return &Config{
		Directory: ".",
		Action:    cleaner.Explain.String(),
		Watch: WatchConfig{
			Mode:           "auto",
			PollInterval:   time.Minute,
			DebounceWindow: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// ConfigError reports an invalid or conflicting setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// Daemon reports whether the configuration keeps the process running.
func (c *Config) Daemon() bool {
	return c.Schedule != "" || c.Watch.Enabled
}

// Options validates c and converts it into cleanup options.
func (c *Config) Options() (cleaner.Options, error) {
	if c.MaxSize == "" {
		return cleaner.Options{}, &ConfigError{Field: "maxSize", Message: "a maximum size is required"}
	}
	maxSize, err := size.Parse(c.MaxSize)
	if err != nil {
		return cleaner.Options{}, &ConfigError{Field: "maxSize", Message: err.Error()}
	}

	action, err := cleaner.ParseAction(c.Action)
	if err != nil {
		return cleaner.Options{}, &ConfigError{Field: "action", Message: err.Error()}
	}
	if action == cleaner.Move && c.MoveTarget == "" {
		return cleaner.Options{}, &ConfigError{Field: "moveTarget", Message: "move requires a target folder"}
	}

	dir := c.Directory
	if dir == "" {
		dir = "."
	}

	return cleaner.Options{
		Directory:  dir,
		MaxSize:    maxSize,
		Action:     action,
		MoveTarget: c.MoveTarget,
		Force:      c.Force || c.Daemon(),
		List:       c.List,
		Verbose:    c.Verbose,
	}, nil
}

// Validate checks the settings that Options does not cover.
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}

	switch c.Watch.Mode {
	case "", "auto", "poll", "fsnotify":
	default:
		return &ConfigError{Field: "watch.mode", Message: fmt.Sprintf("unknown mode %q", c.Watch.Mode)}
	}
	if c.Watch.Enabled && c.Watch.PollInterval <= 0 && c.Watch.Mode != "fsnotify" {
		return &ConfigError{Field: "watch.pollInterval", Message: "must be positive"}
	}

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return &ConfigError{Field: "schedule", Message: err.Error()}
		}
	}
	return nil
}
