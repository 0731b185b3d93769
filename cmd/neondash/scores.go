package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-dash/internal/registry"
	"github.com/vovakirdan/neon-dash/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and recent matches",
	Long: `Display the top scores, best score and recent matches for a variant.
Without a variant, prints a summary for every variant that has been played.

Examples:
  neondash scores
  neondash scores neondash
  neondash scores neondash_classic --limit 20
  neondash scores neondash --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores and matches to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and matches for the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'neondash list' to see available variants.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	if err := printScores(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printSummary prints one line of stats per played variant.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %6s  %8s  %8s  %s\n", "Variant", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-18s  %6s  %8s  %8s  %s\n", "-------", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-18s  %6d  %8d  %8.0f  %s\n", id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printScores prints the leaderboard and recent matches of one variant.
func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'neondash play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Games: %d  Average: %.0f\n", stats.GamesCount, stats.AvgScore)
	}

	matches, err := store.RecentMatches(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent Matches")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-5s  %-8s  %s\n", "Date", "Score", "Phase", "Time", "Match")
	fmt.Printf("  %-16s  %-8s  %-5s  %-8s  %s\n", "----", "-----", "-----", "----", "-----")
	for _, r := range matches {
		mark := ""
		if r.NewBest {
			mark = " *"
		}
		fmt.Printf("  %-16s  %-8d  %-5d  %-8s  %s%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Phase,
			r.Duration.Round(time.Second), shortID(r.MatchID), mark)
	}
	return nil
}

// shortID trims a match UUID to its first block.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
