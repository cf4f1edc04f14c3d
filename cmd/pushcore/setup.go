package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/pushcore/internal/config"
	"github.com/vovakirdan/pushcore/internal/inspect"
	"github.com/vovakirdan/pushcore/internal/storage"
)

// loadConfig loads the config and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	if flagDBPath != "" {
		cfg.Journal.Path = flagDBPath
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cfg.Log.Timestamps,
		Prefix:          "pushcore",
		Level:           cfg.LogLevel(),
	})
}

func newRenderer() *inspect.Renderer {
	color := !flagNoColor && term.IsTerminal(int(os.Stdout.Fd()))
	return inspect.New(color)
}

func openJournal(cfg config.Config) (*storage.Store, error) {
	path, err := config.ExpandPath(cfg.Journal.Path)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return store, nil
}

// openConfiguredJournal loads the config and opens its journal.
func openConfiguredJournal() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openJournal(cfg)
}
