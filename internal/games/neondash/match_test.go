package neondash

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/core"
)

type fakeStore struct {
	calls []int
	err   error
}

func (f *fakeStore) RecordBest(_ string, score int) (bool, error) {
	f.calls = append(f.calls, score)
	return f.err == nil, f.err
}

// hostileOnPlayer drops a stationary hostile onto the player.
func hostileOnPlayer(m *Match) *Hostile {
	return m.Spawner.spawn(m.Player.Pos(), core.Vec2{}, Normal)
}

func TestLethalHitEndsMatch(t *testing.T) {
	m := newTestMatch(t, nil)
	hostileOnPlayer(m)

	run(m, Controls{}, 2)
	if !m.State.GameOver {
		t.Fatal("unprotected hit should end the match")
	}
	if m.Player.Alive() {
		t.Error("player should be dead")
	}
	if m.ctx.Sched.Len() != 0 {
		t.Errorf("timers left after game over: %d", m.ctx.Sched.Len())
	}
	if _, ok := m.Summary(); !ok {
		t.Error("summary should be available after game over")
	}

	// Game over is terminal.
	elapsed := m.Elapsed()
	run(m, Controls{Dash: true}, 10)
	if m.Elapsed() != elapsed {
		t.Error("ticks after game over should not advance time")
	}
}

func TestShieldBlocksOneHostile(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Player.ActivateShield()
	h := hostileOnPlayer(m)

	run(m, Controls{}, 2)
	if m.State.GameOver {
		t.Fatal("shielded hit should not end the match")
	}
	if h.Alive() {
		t.Error("blocked hostile should be destroyed")
	}
	if m.Player.Shielded() {
		t.Error("shield should be consumed")
	}
	if !hasText(m.FX(), "BLOCKED!") {
		t.Error("missing blocked text")
	}

	hostileOnPlayer(m)
	run(m, Controls{}, 2)
	if !m.State.GameOver {
		t.Error("second hit should end the match")
	}
}

func TestPhantomSurvivesManyHostiles(t *testing.T) {
	m := newTestMatch(t, nil)
	m.Player.ActivatePhantom(time.Second)

	for range 5 {
		hostileOnPlayer(m)
		run(m, Controls{}, 2)
	}
	if m.State.GameOver {
		t.Error("phantom player died")
	}
	if !m.Player.Phantom() {
		t.Error("phantom should still be active")
	}
}

func TestGodModeIgnoresHits(t *testing.T) {
	m := newTestMatch(t, nil)
	m.ToggleGodMode()
	h := hostileOnPlayer(m)

	run(m, Controls{}, 5)
	if m.State.GameOver {
		t.Error("god mode player died")
	}
	if !h.Alive() {
		t.Error("god mode should leave the hostile untouched")
	}

	m.ToggleGodMode()
	run(m, Controls{}, 2)
	if !m.State.GameOver {
		t.Error("hit after god mode ends should be lethal")
	}
}

func TestEndGameIdempotent(t *testing.T) {
	store := &fakeStore{}
	m := NewMatch(Options{GameID: GameID, Config: quietConfig(), Best: 100, Store: store})
	m.State.Score = 250

	m.EndGame()
	m.EndGame()

	if len(store.calls) != 1 || store.calls[0] != 250 {
		t.Errorf("RecordBest calls = %v, want [250]", store.calls)
	}
	if !m.State.NewBest || m.State.Best != 250 {
		t.Errorf("best = %d newBest = %v", m.State.Best, m.State.NewBest)
	}
	s, ok := m.Summary()
	if !ok || s.Score != 250 || !s.NewBest || s.MatchID != m.ID {
		t.Errorf("summary = %+v", s)
	}
}

func TestBestScoreNotRecordedWhenLower(t *testing.T) {
	store := &fakeStore{}
	m := NewMatch(Options{GameID: GameID, Config: quietConfig(), Best: 1000, Store: store})
	m.State.Score = 400
	m.EndGame()

	if len(store.calls) != 0 {
		t.Errorf("RecordBest called for a lower score: %v", store.calls)
	}
	if m.State.NewBest || m.State.Best != 1000 {
		t.Errorf("best = %d newBest = %v", m.State.Best, m.State.NewBest)
	}
}

func TestStoreFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := NewMatch(Options{GameID: GameID, Config: quietConfig(), Store: store})
	m.State.Score = 10
	m.EndGame()

	if !m.State.GameOver || m.State.Best != 10 {
		t.Errorf("game over = %v best = %d", m.State.GameOver, m.State.Best)
	}
}

func TestTrickleIgnoresMultiplier(t *testing.T) {
	m := newTestMatch(t, func(c *config.NeonDashConfig) {
		c.Scoring.TricklePeriodMS = 1000
	})
	m.ActivateMultiplier(time.Minute)

	run(m, Controls{}, ticksFor(3*time.Second))
	if want := 3 * m.Config().Scoring.TrickleAmount; m.State.Score != want {
		t.Errorf("score = %d, want %d", m.State.Score, want)
	}
}

func TestScoreMonotonic(t *testing.T) {
	m := newTestMatch(t, func(c *config.NeonDashConfig) {
		*c = config.DefaultNeonDashConfig()
	})
	m.ToggleGodMode()

	prev := 0
	for range ticksFor(20 * time.Second) {
		m.Tick(Controls{Right: true}, step)
		if m.State.Score < prev {
			t.Fatalf("score dropped from %d to %d", prev, m.State.Score)
		}
		prev = m.State.Score
	}
	if prev == 0 {
		t.Error("score should have grown")
	}
}

func TestAddScore(t *testing.T) {
	m := newTestMatch(t, nil)
	m.AddScore(10)
	m.ActivateMultiplier(time.Second)
	m.AddScore(10)
	if m.State.Score != 30 {
		t.Errorf("score = %d, want 30", m.State.Score)
	}

	m.EndGame()
	m.AddScore(10)
	if m.State.Score != 30 {
		t.Error("score changed after game over")
	}
}

func TestPauseFreezesMatch(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.Spawner.spawn(far(), core.V(100, 0), Normal)
	run(m, Controls{}, 5)

	m.TogglePause()
	if !m.State.Paused || m.State.PauseEpoch != 1 {
		t.Fatalf("paused = %v epoch = %d", m.State.Paused, m.State.PauseEpoch)
	}
	elapsed, pos := m.Elapsed(), h.Pos()
	run(m, Controls{Right: true, Dash: true}, 50)
	if m.Elapsed() != elapsed || h.Pos() != pos {
		t.Error("paused match advanced")
	}
	if m.Player.DashState() != DashReady {
		t.Error("input during pause should be ignored")
	}

	m.TogglePause()
	run(m, Controls{}, 1)
	if m.Elapsed() == elapsed || h.Pos() == pos {
		t.Error("resumed match should advance")
	}
	if m.State.PauseEpoch != 1 {
		t.Errorf("resume changed the epoch to %d", m.State.PauseEpoch)
	}
}

func TestPauseIgnoredAfterGameOver(t *testing.T) {
	m := newTestMatch(t, nil)
	m.EndGame()
	m.TogglePause()
	if m.State.Paused {
		t.Error("game over match should not pause")
	}
}

func TestDebugSurface(t *testing.T) {
	m := newTestMatch(t, nil)

	m.GrantBonus()
	if m.State.Score != m.Config().Scoring.DebugBonus {
		t.Errorf("score = %d after bonus", m.State.Score)
	}

	m.ForceSpawnPowerUp(-1)
	m.ForceSpawnPowerUp(len(Effects))
	if n := len(m.Items.PowerUps()); n != 0 {
		t.Fatalf("out of range slots spawned %d crates", n)
	}

	for i := range Effects {
		m.ForceSpawnPowerUp(i)
	}
	pus := m.Items.PowerUps()
	if len(pus) != len(Effects) {
		t.Fatalf("crates = %d, want %d", len(pus), len(Effects))
	}
	for i, p := range pus {
		if p.Effect != Effects[i] {
			t.Errorf("slot %d spawned %s", i, p.Effect.Name())
		}
	}
}

func TestMatchIDsDiffer(t *testing.T) {
	a := newTestMatch(t, nil)
	b := newTestMatch(t, nil)
	if a.ID == b.ID || a.ID == "" {
		t.Errorf("match IDs %q and %q", a.ID, b.ID)
	}
}

func TestMatchLogger(t *testing.T) {
	var buf bytes.Buffer
	m := NewMatch(Options{GameID: GameID, Config: quietConfig(), Seed: 1, Logger: log.New(&buf)})
	m.EndGame()
	if !strings.Contains(buf.String(), "game over") {
		t.Errorf("log output = %q", buf.String())
	}

	// Without a logger output is dropped.
	quiet := NewMatch(Options{GameID: GameID, Config: quietConfig(), Seed: 1})
	quiet.EndGame()
	if _, ok := quiet.Summary(); !ok {
		t.Error("match without a logger should still finish")
	}
}
