package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/registry"
	"github.com/vovakirdan/neon-dash/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      *KeyMapper
	held      *HeldKeys
	palette   *Palette
	gameState core.GameState
	now       func() time.Time
	loop      int64

	// inSession is set when the model runs inside a menu session;
	// back then returns to the menu instead of quitting.
	inSession  bool
	backToMenu bool
	quitting   bool
	saved      bool // Whether the result has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		config:  cfg,
		keys:    NewKeyMapper(false),
		held:    NewHeldKeys(HoldWindow),
		palette: defaultPalette,
		now:     time.Now,
		loop:    nextLoop(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.reset()
	return tickCmd(m.config.TickRate, m.loop)
}

// reset starts a new match and syncs the debug bindings with the game.
// Only pointer fields are touched so it is safe from value receivers.
func (m *Model) reset() {
	m.game.Reset(m.config)
	m.held.Release()
	if d, ok := m.game.(registry.Debugger); ok {
		m.keys.Debug = d.Debug()
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack || (action == core.ActionPause && m.gameState.GameOver) {
		if m.inSession && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	}

	m.held.Press(action, m.now())
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without in-place resize restart at the new size.
	if !m.gameState.GameOver {
		m.reset()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.held.Frame(m.now())

	// Restart with a fresh seed so consecutive runs differ.
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.reset()
		m.gameState = m.game.State()
		m.saved = false
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		saveResult(m.store, m.game, m.gameState)
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveResult persists a finished game: the score row and, for games
// that report matches, the match summary. Failures are logged and
// never interrupt play.
func saveResult(store *storage.Store, game registry.Game, state core.GameState) {
	if store == nil {
		return
	}
	if state.Score > 0 {
		if _, err := store.SaveScore(game.ID(), state.Score); err != nil {
			log.Warn("failed to save score", "game", game.ID(), "err", err)
		}
	}
	r, ok := game.(registry.Reporter)
	if !ok {
		return
	}
	report, ok := r.Report()
	if !ok {
		return
	}
	if _, err := store.SaveMatch(report); err != nil {
		log.Warn("failed to save match", "game", game.ID(), "match", report.MatchID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".neondash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("failed to save screenshot", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
