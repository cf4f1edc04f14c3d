package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pushcore/internal/scenario"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the scenario JSON schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(scenario.Schema())
		return err
	},
}
