package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cloudstub/cloudstub/pkg/config"
	"github.com/cloudstub/cloudstub/pkg/fixture"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate [fixture...]",
	Short: "Check config and fixture files without serving",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "", "path to cloudstub.yaml")
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if validateConfigPath != "" {
		cfg, err := config.Load(validateConfigPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config OK: %s\n", validateConfigPath)
		if len(paths) == 0 {
			paths = cfg.Fixtures
		}
	}

	var failed bool
	for _, path := range paths {
		for _, file := range fixtureFiles(path) {
			if _, err := fixture.LoadFile(file); err != nil {
				failed = true
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s: %v\n", file, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", file)
		}
	}
	if failed {
		return fmt.Errorf("one or more fixtures failed validation")
	}
	return nil
}

// fixtureFiles expands a path into the fixture files it covers. A
// plain file is returned as-is; a directory yields its .yaml, .yml and
// .json entries in name order. Unreadable paths are returned unchanged
// so LoadFile reports the error.
func fixtureFiles(path string) []string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return []string{path}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{path}
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files
}
