package neondash

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/physics"
	"github.com/vovakirdan/neon-dash/internal/sched"
)

// Physics groups used by a match.
const (
	GroupPlayer physics.Group = iota + 1
	GroupHostile
	GroupOrb
	GroupPowerUp
)

// MatchState is the mutable state shared by every component of a match.
type MatchState struct {
	Score      int
	Multiplier int
	Paused     bool
	GameOver   bool
	GodMode    bool

	// PauseEpoch increments every time the match enters pause. Deferred
	// work compares it to detect a pause that happened while it waited.
	PauseEpoch int

	Best    int
	NewBest bool
}

// Running reports whether the match is neither paused nor over.
func (s *MatchState) Running() bool {
	return !s.Paused && !s.GameOver
}

// Context bundles what components need from their match. It is built once
// per match and handed to each component at construction.
type Context struct {
	Cfg   config.NeonDashConfig
	State *MatchState
	Sched *sched.Scheduler
	World *physics.World
	RNG   *RNG
	FX    *FX
	Log   *log.Logger
}

// Now returns the match clock.
func (c *Context) Now() time.Duration {
	return c.Sched.Now()
}

// running is used as a scheduler guard.
func (c *Context) running() bool {
	return c.State.Running()
}
