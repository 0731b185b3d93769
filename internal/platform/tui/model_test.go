package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/games/neondash"
	"github.com/vovakirdan/neon-dash/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) (Model, *neondash.Game, *time.Time) {
	t.Helper()
	g := neondash.New()
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11})
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }
	m.Init()
	return m, g, &clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model) Model {
	return update(t, m, TickMsg{Time: time.Now(), Loop: m.loop})
}

func TestModelHoldsMovementBetweenRepeats(t *testing.T) {
	m, g, clock := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for range 10 {
		*clock = clock.Add(16 * time.Millisecond)
		m = tick(t, m)
	}
	if vx := g.Match().Player.Body.Vel.X; vx <= 0 {
		t.Fatalf("held right should accelerate, vel.x = %v", vx)
	}

	// No repeats: the key is released once the window passes.
	*clock = clock.Add(HoldWindow + time.Millisecond)
	m = tick(t, m)
	if m.held.Frame(*clock).Has(core.ActionRight) {
		t.Error("right still held after the window")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m, g, _ := newTestModel(t, nil)
	before := g.Match().Elapsed()

	m = update(t, m, TickMsg{Time: time.Now(), Loop: m.loop + 1000})
	if g.Match().Elapsed() != before {
		t.Error("tick from another loop advanced the game")
	}
	tick(t, m)
	if g.Match().Elapsed() == before {
		t.Error("own tick should advance the game")
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m, g, _ := newTestModel(t, store)
	g.Match().State.Score = 300
	g.Match().EndGame()

	for range 3 {
		m = tick(t, m)
	}

	scores, err := store.TopScores(neondash.GameID, 10)
	if err != nil || len(scores) != 1 || scores[0].Score != 300 {
		t.Errorf("scores = %v, %v", scores, err)
	}
	matches, err := store.RecentMatches(neondash.GameID, 10)
	if err != nil || len(matches) != 1 {
		t.Fatalf("matches = %v, %v", matches, err)
	}
	if matches[0].MatchID != g.Match().ID {
		t.Errorf("stored match %s, want %s", matches[0].MatchID, g.Match().ID)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	m, g, _ := newTestModel(t, nil)
	first := g.Match()
	first.EndGame()
	m = tick(t, m)

	m = update(t, m, runes("r"))
	m = tick(t, m)
	if g.Match() == first {
		t.Fatal("restart should start a new match")
	}
	if m.saved || m.gameState.GameOver {
		t.Error("restart should clear game over bookkeeping")
	}
}

func TestModelBackToMenu(t *testing.T) {
	tests := []struct {
		name      string
		inSession bool
		gameOver  bool
		want      bool
	}{
		{"standalone", false, true, false},
		{"session while playing", true, false, false},
		{"session after game over", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, g, _ := newTestModel(t, nil)
			m.inSession = tt.inSession
			if tt.gameOver {
				g.Match().EndGame()
			}
			m = tick(t, m)
			m = update(t, m, runes("b"))
			if m.BackToMenu() != tt.want {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tt.want)
			}
		})
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	m, g, _ := newTestModel(t, nil)
	first := g.Match()
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.Match() != first {
		t.Error("resize restarted the match")
	}
	if m.screen.Width() != 120 {
		t.Errorf("screen width = %d", m.screen.Width())
	}
}

func TestModelDebugBindingsFollowGame(t *testing.T) {
	neondash.SetDebug(true)
	t.Cleanup(func() { neondash.SetDebug(false) })

	m, g, _ := newTestModel(t, nil)
	m = update(t, m, runes("b"))
	tick(t, m)
	if g.Match().State.Score == 0 {
		t.Error("debug bonus key ignored")
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || m.View() != "" {
		t.Error("ctrl+c should quit")
	}
}
