package config

import (
	_ "embed"

	"github.com/vovakirdan/pushcore/internal/controller"
)

//go:embed defaults/pushcore.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded engine configuration.
func DefaultConfig() Config {
	return Config{
		Controller: ControllerConfig{
			PhaseTicks: controller.DefaultPhaseTicks,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "~/.pushcore/journal.db",
		},
		Log: LogConfig{
			Level:      "info",
			Timestamps: false,
		},
	}
}
