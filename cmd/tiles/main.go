// tiles is a piano tiles reflex game for the terminal.
//
// Usage:
//
//	tiles play               - Play a run right away
//	tiles menu               - Pick a difficulty and browse scores interactively
//	tiles serve              - Start SSH server for remote play
//	tiles scores             - Show high scores
//	tiles list               - List games and difficulty presets
//	tiles config             - Print or install the default tiles.yaml
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 100)
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set database path (default: ~/.tiles/scores.db)
//	--config <path>    - Use a custom tiles.yaml
//	--log <path>       - Write a log file while playing
//	--log-level <lvl>  - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/tui-tiles/internal/games/tiles"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Piano Tiles - tap the dark tiles before they cross the line",
	Long: `Piano Tiles is a terminal reflex game. Rows of four tiles scroll down
the screen; tap the one dark tile of every row before it crosses the line.
The strip speeds up as you go and your best score is kept between runs.

Available commands:
  play     - Play a run right away
  menu     - Difficulty picker and scoreboard
  serve    - Start SSH server for remote play
  scores   - View high scores
  list     - Show games and difficulty presets

Examples:
  tiles play
  tiles play --difficulty hard
  tiles menu
  tiles serve --ssh :2222
  tiles scores --difficulty easy`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tiles/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tiles config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file (play and menu)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
