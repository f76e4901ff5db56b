package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and difficulty presets",
	Long:  `Shows the registered games and the speed settings of every difficulty preset.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	base, err := config.LoadTiles(flagConfig)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Difficulty presets:")
	fmt.Println()
	fmt.Printf("  %-8s  %-10s  %s\n", "Preset", "Speed", "Speed-up per container")
	fmt.Printf("  %-8s  %-10s  %s\n", "------", "-----", "----------------------")
	for _, p := range config.Presets {
		cfg := base
		config.ApplyTilesPreset(&cfg, p)
		fmt.Printf("  %-8s  %-10.2f  +%.2f\n", p, cfg.Scroll.BaseSpeed, cfg.Scroll.SpeedStep)
	}

	fmt.Println()
	fmt.Println("Run 'tiles play --difficulty <preset>' to play.")
	return nil
}
