package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/config"
)

var flagConfigWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in tiles.yaml.

With --write the file is saved to ~/.tiles/configs/tiles.yaml, where it is
picked up by every command. An existing file is never overwritten.

Examples:
  tiles config > my-tiles.yaml
  tiles config --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Save to ~/.tiles/configs/tiles.yaml")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if !flagConfigWrite {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	path := filepath.Join(home, ".tiles", "configs", "tiles.yaml")

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
