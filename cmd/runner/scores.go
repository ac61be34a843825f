package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/php-runner/internal/registry"
	"github.com/vovakirdan/php-runner/internal/storage"
)

var (
	flagLimit int
	flagJSON  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

Examples:
  runner scores runner
  runner scores runner --limit 20
  runner scores runner --json`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagJSON, "json", false, "Print scores as JSON")
}

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	game, err := registry.Create(args[0])
	if err != nil {
		return fmt.Errorf("%w\nRun 'runner list' to see available games", err)
	}
	gameID := game.ID()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if scores == nil {
			scores = []storage.ScoreEntry{}
		}
		return enc.Encode(scores)
	}

	fmt.Fprintf(out, "High Scores - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'runner play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-8s  %s\n", "Rank", "Player", "Score", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-8s  %s\n", "----", "------", "-----", "----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-12s  %-8d  %-8s  %s\n",
			i+1, entry.Player, entry.Score,
			fmt.Sprintf("%.1fs", entry.Duration.Seconds()),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Runs: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
