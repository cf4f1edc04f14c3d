package main

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pushcore/internal/storage"
)

// execute runs the root command in an isolated home and working directory.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	flagConfig, flagLogLevel, flagDBPath, flagNoColor = "", "", "", true
	flagTrace, flagShow, flagJournal = false, false, false

	rootCmd.SetArgs(append(args, "--no-color"))
	return rootCmd.Execute()
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const failingScenario = `name: off_by_one
bounds: { w: 4, h: 1 }
entities:
  - { id: 1, x: 0, y: 0, kind: dynamic }
ticks:
  - moves: [{ entity: 1, dir: right }]
  - history: rewind
expect:
  - { entity: 1, at: [3, 0] }
`

func TestRunFailedExpectationsReturnsError(t *testing.T) {
	path := writeScenario(t, failingScenario)
	db := filepath.Join(t.TempDir(), "journal.db")

	err := execute(t, "run", path, "--journal", "--db", db)
	if !errors.Is(err, errExpectations) {
		t.Fatalf("run error = %v, want errExpectations", err)
	}

	// The journal was written and closed before the command returned
	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	defer store.Close()

	sessions, err := store.Sessions(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].Ticks != 2 {
		t.Fatalf("sessions = %+v, want one session with 2 ticks", sessions)
	}
	ticks, err := store.Ticks(sessions[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ticks) != 2 || ticks[1].History != "rewind" {
		t.Errorf("ticks = %+v, want a rewind on tick 2", ticks)
	}
}

func TestRunPassingScenario(t *testing.T) {
	path := writeScenario(t, `name: ok
bounds: { w: 4, h: 1 }
entities:
  - { id: 1, x: 0, y: 0, kind: dynamic }
ticks:
  - moves: [{ entity: 1, dir: right }]
expect:
  - { entity: 1, at: [1, 0] }
`)
	if err := execute(t, "run", path); err != nil {
		t.Errorf("run error = %v, want nil", err)
	}
}

func TestRunMissingFile(t *testing.T) {
	if err := execute(t, "run", filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing scenario file")
	}
}

func TestJournalShowUnknownSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	err := execute(t, "journal", "show", "no-such-session", "--db", db)
	if !errors.Is(err, storage.ErrNoSession) {
		t.Errorf("journal show error = %v, want ErrNoSession", err)
	}
}

func TestValidateReportsInvalid(t *testing.T) {
	path := writeScenario(t, "name: broken\nbounds: { w: 0, h: 1 }\n")
	if err := execute(t, "validate", path); err == nil {
		t.Error("expected validate to fail on an invalid scenario")
	}
}

var examplePath = regexp.MustCompile(`scenarios/[\w./]+\.ya?ml`)

func TestHelpExamplesExist(t *testing.T) {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, p := range examplePath.FindAllString(c.Long, -1) {
			if _, err := os.Stat(filepath.Join("..", "..", p)); err != nil {
				t.Errorf("%s help names %s: %v", c.CommandPath(), p, err)
			}
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}
