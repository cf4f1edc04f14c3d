package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pushcore/internal/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate scenario files",
	Long: `Check scenario files against the schema and their entity references.
Directories are searched recursively for .yaml and .yml files.

Examples:
  pushcore validate scenarios/push_chain.yaml
  pushcore validate scenarios/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ok, bad := 0, 0
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			if _, err := scenario.LoadFile(path); err != nil {
				fmt.Printf("  FAIL  %v\n", err)
				bad++
				continue
			}
			fmt.Printf("  ok    %s\n", path)
			ok++
			continue
		}

		scenarios, failed, err := scenario.LoadDir(path)
		if err != nil {
			return err
		}
		for _, sc := range scenarios {
			fmt.Printf("  ok    %s\n", sc.FilePath)
		}
		paths := make([]string, 0, len(failed))
		for p := range failed {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("  FAIL  %v\n", failed[p])
		}
		ok += len(scenarios)
		bad += len(failed)
	}

	fmt.Println()
	fmt.Printf("%d valid, %d invalid\n", ok, bad)
	if bad > 0 {
		return fmt.Errorf("%d invalid scenario(s)", bad)
	}
	return nil
}
