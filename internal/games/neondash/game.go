// Package neondash implements Neon Dash, a top-down arcade survival game:
// steer a ship around an arena, dash out of danger, collect orbs and
// power-ups while hostiles stream in from the edges and seekers hunt you.
//
// The simulation is organized around a Match, which owns a scheduler, a
// physics world and the three components that act on them: the Player,
// the Spawner and the Items director. Game adapts a Match to the arcade
// platform's fixed-tick interface.
package neondash

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/registry"
)

// Game IDs.
const (
	GameID        = "neondash"
	ClassicGameID = "neondash_classic"
)

// ScoreStore reads and records best scores.
type ScoreStore interface {
	BestScore(gameID string) (int, error)
	BestScoreStore
}

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	debugEnabled     bool
	logger           = log.New(io.Discard)
	scoreStore       ScoreStore
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetDebug enables the debug key surface regardless of config.
func SetDebug(on bool) {
	debugEnabled = on
}

// SetLogger sets the logger matches report to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetBestScoreStore sets where best scores are read and recorded.
func SetBestScoreStore(s ScoreStore) {
	scoreStore = s
}

func init() {
	registry.Register(GameID, func() registry.Game { return New() })
	registry.Register(ClassicGameID, func() registry.Game { return NewClassic() })
}

// Game adapts a Match to the platform's fixed-tick game interface.
type Game struct {
	classic bool

	runtime core.RuntimeConfig
	cfg     config.NeonDashConfig
	match   *Match
	debug   bool

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a Neon Dash game.
func New() *Game {
	return &Game{}
}

// NewClassic creates the variant where timed statuses share one slot.
func NewClassic() *Game {
	return &Game{classic: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.classic {
		return ClassicGameID
	}
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.classic {
		return "Neon Dash (Classic)"
	}
	return "Neon Dash"
}

// Reset starts a fresh match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadNeonDash(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}
	if difficultyPreset != "" {
		config.ApplyNeonDashPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.debug = debugEnabled || cfg.Debug.Enabled

	g.minScreenW = 40
	g.minScreenH = 16
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	best := 0
	var store BestScoreStore
	if scoreStore != nil {
		store = scoreStore
		if best, err = scoreStore.BestScore(g.ID()); err != nil {
			logger.Warn("failed to read best score", "game", g.ID(), "err", err)
			best = 0
		}
	}

	if g.match != nil {
		g.match.Teardown()
	}
	g.match = NewMatch(Options{
		GameID:           g.ID(),
		Config:           cfg,
		Seed:             runtime.Seed,
		Best:             best,
		Store:            store,
		Logger:           logger.With("game", g.ID()),
		SharedStatusSlot: g.classic,
	})
}

// Resize adapts to a new terminal size without restarting the match.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	m := g.match
	if in.Has(core.ActionRestart) && m.State.GameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		m.TogglePause()
	}

	if g.debug {
		g.handleDebug(in)
	}

	m.Tick(Controls{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Dash:  in.Has(core.ActionDash),
		Brake: in.Has(core.ActionBrake),
	}, g.runtime.TickDuration())

	return core.StepResult{State: g.State()}
}

func (g *Game) handleDebug(in core.InputFrame) {
	m := g.match
	if in.Has(core.ActionDebugGodMode) {
		m.ToggleGodMode()
	}
	if in.Has(core.ActionDebugBonus) {
		m.GrantBonus()
	}
	for i, slot := range core.DebugSlots {
		if in.Has(slot) {
			m.ForceSpawnPowerUp(i)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.match.State.Score,
		GameOver: g.match.State.GameOver,
		Paused:   g.match.State.Paused,
	}
}

// Report returns the finished match for persistence.
func (g *Game) Report() (core.MatchReport, bool) {
	if g.match == nil {
		return core.MatchReport{}, false
	}
	s, ok := g.match.Summary()
	if !ok {
		return core.MatchReport{}, false
	}
	return core.MatchReport{
		MatchID:  s.MatchID,
		GameID:   g.ID(),
		Score:    s.Score,
		Best:     s.Best,
		NewBest:  s.NewBest,
		Phase:    s.Phase,
		Duration: s.Elapsed,
	}, true
}

// Match returns the running match.
func (g *Game) Match() *Match {
	return g.match
}

// Debug reports whether debug keys are honored.
func (g *Game) Debug() bool {
	return g.debug
}
