package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/games/tiles"
	"github.com/vovakirdan/tui-tiles/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty and browse scores",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to play.
After a run ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit

Examples:
  tiles menu
  tiles menu --fps 60
  tiles menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer closeLog()

	tiles.SetConfigPath(flagConfig)
	tiles.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, tiles.ID, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}
