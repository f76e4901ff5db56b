package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/games/tiles"
	"github.com/vovakirdan/tui-tiles/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top runs, optionally for one difficulty.

Examples:
  tiles scores
  tiles scores --difficulty hard
  tiles scores --limit 25
  tiles scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show runs of this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the best score is kept)")
}

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	headerColor = color.New(color.Bold)
	dimColor    = color.New(color.FgHiBlack)
	rankColors  = []*color.Color{
		color.New(color.FgYellow, color.Bold), // Gold
		color.New(color.FgWhite, color.Bold),  // Silver
		color.New(color.FgRed),                // Bronze
	}
)

func runScores(_ *cobra.Command, _ []string) error {
	if flagScoresDifficulty != "" {
		if _, ok := config.ParsePreset(flagScoresDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagScoresDifficulty)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(tiles.ID); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	scores, err := store.TopScores(tiles.ID, flagScoresDifficulty, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	title := "High Scores - Piano Tiles"
	if flagScoresDifficulty != "" {
		title += " (" + flagScoresDifficulty + ")"
	}
	titleColor.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		dimColor.Println("Play 'tiles play' to set the first high score!")
		return nil
	}

	headerColor.Printf("  %-4s  %-8s  %-10s  %s\n", "Rank", "Score", "Difficulty", "Date")
	dimColor.Printf("  %-4s  %-8s  %-10s  %s\n", "----", "-----", "----------", "----")

	for i, entry := range scores {
		line := fmt.Sprintf("  %-4d  %-8d  %-10s  %s", i+1, entry.Score, entry.Difficulty,
			entry.CreatedAt.Format("2006-01-02 15:04"))
		if i < len(rankColors) {
			rankColors[i].Println(line)
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	if best, ok, err := store.Get(tiles.BestScoreKey); err == nil && ok {
		fmt.Printf("Best: %s\n", rankColors[0].Sprint(best))
	}
	if stats, err := store.GetGameStats(tiles.ID); err == nil && stats.GamesCount > 0 {
		dimColor.Printf("%d runs, average %.1f, last played %s\n",
			stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
