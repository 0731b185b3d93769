package neondash

import (
	"testing"
	"time"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/core"
)

// step is the tick length used by tests. It divides every configured
// duration exactly.
const step = 10 * time.Millisecond

// never is a period long enough that a loop does not fire during a test.
const never = 1_000_000_000

// quietConfig returns defaults with every automatic spawner and the score
// trickle pushed out of reach, so tests control what is in the arena.
func quietConfig() config.NeonDashConfig {
	cfg := config.DefaultNeonDashConfig()
	cfg.Hostiles.SpawnIntervalMS = never
	cfg.Hostiles.RampEnabled = false
	cfg.Items.OrbPeriodMS = never
	cfg.Items.PowerUpPeriodMS = never
	cfg.Scoring.TricklePeriodMS = never
	return cfg
}

func newTestMatch(t *testing.T, mutate func(*config.NeonDashConfig)) *Match {
	t.Helper()
	cfg := quietConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewMatch(Options{GameID: GameID, Config: cfg, Seed: 42})
}

// run ticks the match n times with the same controls.
func run(m *Match, c Controls, n int) {
	for range n {
		m.Tick(c, step)
	}
}

// ticksFor returns how many test ticks cover d.
func ticksFor(d time.Duration) int {
	return int(d / step)
}

// far returns a point well away from the player.
func far() core.Vec2 {
	return core.V(100, 100)
}

func hasText(fx *FX, text string) bool {
	for _, t := range fx.Texts() {
		if t.Text == text {
			return true
		}
	}
	return false
}

func hasSound(fx *FX, name string) bool {
	for _, s := range fx.Sounds() {
		if s == name {
			return true
		}
	}
	return false
}
