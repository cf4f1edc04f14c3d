// pushcore runs grid push-puzzle scenarios against the puzzle core and
// inspects the results.
//
// Usage:
//
//	pushcore run <scenario>          - Run a scenario script and check its expectations
//	pushcore validate <path>...      - Validate scenario files or directories
//	pushcore table <scenario>        - Show the action table of a scenario's start state
//	pushcore schema                  - Print the scenario JSON schema
//	pushcore journal list            - List journaled sessions
//	pushcore journal show <id>       - Show the moves of a session
//	pushcore journal export <id> <f> - Export a session as zstd JSONL
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.pushcore, ./configs)
//	--log-level <level> - Override log.level from the config
//	--db <path>         - Override journal.path from the config
//	--no-color          - Disable styled output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagDBPath   string
	flagNoColor  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pushcore",
	Short: "pushcore - grid push-puzzle core runner",
	Long: `pushcore drives the push-puzzle core with scripted scenarios: push
resolution, undo/redo history and the indirect action table.

Available commands:
  run       - Run a scenario and check its expectations
  validate  - Validate scenario files
  table     - Show a scenario's action table
  schema    - Print the scenario JSON schema
  journal   - Inspect journaled sessions

Examples:
  pushcore run scenarios/push_chain.yaml --trace
  pushcore validate scenarios/
  pushcore journal list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable styled output")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(journalCmd)
}
