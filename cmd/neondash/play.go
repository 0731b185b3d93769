package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/games/neondash"
	"github.com/vovakirdan/neon-dash/internal/platform/tui"
	"github.com/vovakirdan/neon-dash/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Neon Dash",
	Long: `Start playing. The variant defaults to neondash.

Controls:
  Arrows/WASD      - Steer
  Space            - Dash
  X/Shift+Arrow    - Brake
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Debug controls (--debug):
  1-7              - Spawn a power-up next to the ship
  B                - Bonus score
  G                - God mode

Difficulty options:
  easy   - Slower hostiles, longer spawn interval, shorter dash cooldown
  normal - The configured values
  hard   - Faster hostiles, shorter spawn interval
  fixed  - No difficulty ramp

Examples:
  neondash play
  neondash play --difficulty hard
  neondash play neondash_classic
  neondash play --config ./my-neondash.yaml
  neondash play --seed 42 --debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that shape a match.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug keys")
}

// applyGameFlags validates the game flags and hands them to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	if flagConfig != "" {
		if _, err := config.LoadNeonDash(flagConfig); err != nil {
			return err
		}
	}
	neondash.SetConfigPath(flagConfig)
	neondash.SetDifficultyPreset(flagDifficulty)
	neondash.SetDebug(flagDebug)
	return nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := neondash.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'neondash list' to see available variants.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
