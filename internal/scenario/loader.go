package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile loads and validates a single script.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	sc.FilePath = path
	return sc, nil
}

// LoadDir recursively loads every script under root, sorted by name.
// Invalid files are reported in the second return value instead of
// aborting the walk.
func LoadDir(root string) ([]Scenario, map[string]error, error) {
	var scenarios []Scenario
	failed := make(map[string]error)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		sc, err := LoadFile(path)
		if err != nil {
			failed[path] = err
			return nil
		}
		scenarios = append(scenarios, sc)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", root, err)
	}

	// Sort by name for determinism
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].Name < scenarios[j].Name
	})
	return scenarios, failed, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
