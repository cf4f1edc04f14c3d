package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pushcore/internal/scenario"
)

var tableCmd = &cobra.Command{
	Use:   "table <scenario>",
	Short: "Show a scenario's action table",
	Long: `Build a scenario's start state and print its action table and the
move sequence each marker key selects.

Examples:
  pushcore table scenarios/controller.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runTable,
}

func runTable(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}
	eng, err := sc.Build(scenario.Options{})
	if err != nil {
		return err
	}

	table := eng.Table()
	if sc.Anchor == 0 {
		fmt.Println("Scenario has no anchor; the table is empty.")
		return nil
	}

	fmt.Println(newRenderer().Table(table))
	fmt.Println()

	if table.Empty() {
		fmt.Println("No markers inside the table.")
		return nil
	}
	for _, b := range table.Bindings() {
		fmt.Printf("  %-8s rank %v  file %v\n", b.Key, b.Rank, b.File)
	}
	return nil
}
