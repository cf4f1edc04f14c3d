// Package config provides YAML-based engine configuration loading for
// pushcore.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Config contains all configuration for the engine and the CLI around it.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	History    HistoryConfig    `yaml:"history"`
	Journal    JournalConfig    `yaml:"journal"`
	Log        LogConfig        `yaml:"log"`
}

// ControllerConfig defines the two-phase move controller.
type ControllerConfig struct {
	PhaseTicks int `yaml:"phase_ticks"` // ticks spent in each move phase, minimum 1
}

// HistoryConfig defines undo/redo tracking.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"` // track every entity spawned from a scenario
}

// JournalConfig defines the SQLite journal of resolved ticks.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // "~" is expanded
}

// LogConfig defines logger output.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	Timestamps bool   `yaml:"timestamps"`
}

// Normalize clamps out-of-range values and fills empty fields from the
// defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Controller.PhaseTicks < 1 {
		c.Controller.PhaseTicks = 1
	}
	if c.Journal.Path == "" {
		c.Journal.Path = def.Journal.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate reports values Normalize cannot repair.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
