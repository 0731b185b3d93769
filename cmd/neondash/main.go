// neondash is a top-down arcade survival game for the terminal.
//
// Usage:
//
//	neondash                    - Play Neon Dash
//	neondash play [variant]     - Play a variant (neondash, neondash_classic)
//	neondash menu               - Pick a variant interactively
//	neondash list               - List available variants
//	neondash scores [variant]   - Show high scores and recent matches
//	neondash serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.neondash/scores.db)
//	--log <path>    - Write a debug log to the given file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-dash/internal/games/neondash"
	"github.com/vovakirdan/neon-dash/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string

	logFile io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neondash",
	Short: "Neon Dash - survive the neon arena in your terminal",
	Long: `Neon Dash is a top-down arcade survival game. Steer your ship around
the arena, dash out of danger, collect orbs and power-ups, and outlast
the hostiles streaming in from the edges.

Available commands:
  play     - Play a variant directly (default)
  menu     - Interactive variant picker
  list     - Show all variants
  scores   - View high scores and recent matches
  serve    - Start SSH server for remote play

Examples:
  neondash
  neondash play --difficulty hard
  neondash play neondash_classic
  neondash scores
  neondash serve --ssh :2222`,
	PersistentPreRunE: setupLogging,
	Args:              cobra.MaximumNArgs(1),
	Run:               runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neondash/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a debug log to this file")

	addGameFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging routes the game and platform logs. The terminal belongs to
// the UI, so without --log everything is discarded.
func setupLogging(_ *cobra.Command, _ []string) error {
	if flagLogPath == "" {
		log.SetDefault(log.New(io.Discard))
		return nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "neondash",
	})
	log.SetDefault(logger)
	neondash.SetLogger(logger)
	return nil
}

// openStore opens the scores database and hands it to the game for best
// score tracking. A nil store means play continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		log.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	neondash.SetBestScoreStore(store)
	return store
}
