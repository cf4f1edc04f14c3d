package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestParseKeepsOmittedDefaults(t *testing.T) {
	cfg, err := Parse([]byte("controller:\n  phase_ticks: 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Controller.PhaseTicks != 3 {
		t.Errorf("PhaseTicks = %d, want 3", cfg.Controller.PhaseTicks)
	}
	if !cfg.History.Enabled || cfg.Log.Level != "info" {
		t.Errorf("omitted keys lost their defaults: %+v", cfg)
	}
}

func TestParseNormalizes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ticks int
		level string
	}{
		{"zero ticks", "controller:\n  phase_ticks: 0\n", 1, "info"},
		{"negative ticks", "controller:\n  phase_ticks: -4\n", 1, "info"},
		{"empty level", "log:\n  level: \"\"\n", 8, "info"},
		{"debug level", "log:\n  level: debug\n", 8, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if cfg.Controller.PhaseTicks != tt.ticks {
				t.Errorf("PhaseTicks = %d, want %d", cfg.Controller.PhaseTicks, tt.ticks)
			}
			if cfg.Log.Level != tt.level {
				t.Errorf("Level = %q, want %q", cfg.Log.Level, tt.level)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("log:\n  level: loud\n")); err == nil {
		t.Error("expected error for unknown log level")
	}
	if _, err := Parse([]byte("controller: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "journal:\n  enabled: true\n  path: /tmp/j.db\nlog:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/tmp/j.db" {
		t.Errorf("journal = %+v", cfg.Journal)
	}
	if cfg.LogLevel() != log.WarnLevel {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel())
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.HasPrefix(err.Error(), "config: read") {
		t.Errorf("Load error = %v, want config: read ...", err)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", FileName), []byte("controller:\n  phase_ticks: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Controller.PhaseTicks != 2 {
		t.Errorf("PhaseTicks = %d, want 2", cfg.Controller.PhaseTicks)
	}
}

func TestLoadUserDirWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, ".pushcore"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".pushcore", "config.yaml"), []byte("controller:\n  phase_ticks: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Controller.PhaseTicks != 5 {
		t.Errorf("PhaseTicks = %d, want 5", cfg.Controller.PhaseTicks)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/a/b.db", filepath.Join(home, "a/b.db")},
		{"/abs/path.db", "/abs/path.db"},
		{"rel.db", "rel.db"},
		{"~user/x", "~user/x"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
