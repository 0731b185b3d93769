package neondash

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/physics"
	"github.com/vovakirdan/neon-dash/internal/sched"
)

// BestScoreStore persists the best score of a game.
type BestScoreStore interface {
	// RecordBest stores score if it beats the stored best and reports
	// whether it did.
	RecordBest(gameID string, score int) (bool, error)
}

// Options configures a new match.
type Options struct {
	GameID string
	Config config.NeonDashConfig
	Seed   int64
	Best   int
	Store  BestScoreStore
	Logger *log.Logger

	// SharedStatusSlot selects the single-slot status timer behavior.
	SharedStatusSlot bool
}

// Summary is the final result of a match.
type Summary struct {
	MatchID string
	Score   int
	Best    int
	NewBest bool
	Phase   int
	Elapsed time.Duration
}

// Match wires the player, spawner and items together and owns the tick.
type Match struct {
	ID     string
	GameID string
	State  *MatchState

	Player  *Player
	Spawner *Spawner
	Items   *Items

	ctx     *Context
	store   BestScoreStore
	trickle *sched.Timer
	revert  *sched.Timer
	summary *Summary
}

// NewMatch builds a fresh match. There is no partial reset: restarting
// means building a new Match.
func NewMatch(opts Options) *Match {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := sched.New()
	ctx := &Context{
		Cfg:   cfg,
		State: &MatchState{Multiplier: 1, Best: opts.Best},
		Sched: s,
		World: physics.NewWorld(cfg.Arena.Width, cfg.Arena.Height),
		RNG:   NewRNG(opts.Seed),
		FX:    NewFX(s.Now),
		Log:   logger,
	}

	m := &Match{
		ID:     uuid.NewString(),
		GameID: opts.GameID,
		State:  ctx.State,
		ctx:    ctx,
		store:  opts.Store,
	}

	center := core.V(cfg.Arena.Width/2, cfg.Arena.Height/2)
	m.Player = NewPlayer(ctx, center, opts.SharedStatusSlot)
	m.Spawner = NewSpawner(ctx, m.Player)
	m.Items = NewItems(ctx, m.Player, m.Spawner, m)

	ctx.World.OnOverlap(GroupPlayer, GroupHostile, m.onPlayerHostile)
	ctx.World.OnOverlap(GroupPlayer, GroupOrb, func(_, b *physics.Body) {
		if o, ok := b.Owner.(*Orb); ok {
			m.Items.CollectOrb(o)
		}
	})
	ctx.World.OnOverlap(GroupPlayer, GroupPowerUp, func(_, b *physics.Body) {
		if p, ok := b.Owner.(*PowerUp); ok {
			m.Items.CollectPowerUp(p)
		}
	})
	ctx.World.OnOverlap(GroupHostile, GroupHostile, m.Spawner.HandleCrash)

	sc := cfg.Scoring
	m.trickle = s.Every(sc.TricklePeriod(), func() {
		m.State.Score += sc.TrickleAmount
	}).Guard(ctx.running)

	logger.Debug("match started", "id", m.ID, "seed", opts.Seed)
	return m
}

// Tick advances the match by dt. Overlaps found last tick resolve first,
// then player, spawner and items update, then timers fire and physics
// integrates.
func (m *Match) Tick(c Controls, dt time.Duration) {
	if !m.State.Running() {
		return
	}

	m.ctx.World.DispatchOverlaps()
	if m.State.GameOver {
		return
	}

	m.Player.Update(c)
	m.Spawner.Update(m.State.Score)
	m.Items.Update()

	m.ctx.Sched.Advance(dt)
	m.ctx.World.Step(dt)

	m.Spawner.compact()
	m.Items.compact()
	m.ctx.World.Compact()
	m.ctx.FX.Prune()
}

func (m *Match) onPlayerHostile(_, hb *physics.Body) {
	if m.State.GameOver || m.State.GodMode {
		return
	}
	h, ok := hb.Owner.(*Hostile)
	if !ok {
		return
	}
	if m.Player.TakeHit() {
		m.EndGame()
		return
	}
	pos := h.Pos()
	m.Spawner.Destroy(h)
	m.ctx.FX.Text(pos, "BLOCKED!", core.ColorBrightCyan)
}

// AddScore adds base times the current multiplier.
func (m *Match) AddScore(base int) {
	if m.State.GameOver {
		return
	}
	m.State.Score += base * m.State.Multiplier
}

// ActivateMultiplier raises the multiplier for d. A newer activation
// replaces the pending revert.
func (m *Match) ActivateMultiplier(d time.Duration) {
	if m.State.GameOver {
		return
	}
	m.State.Multiplier = m.ctx.Cfg.PowerUps.Multiplier
	m.revert.Cancel()
	m.revert = m.ctx.Sched.After(d, func() {
		m.State.Multiplier = 1
	})
}

// TogglePause flips between running and paused.
func (m *Match) TogglePause() {
	if m.State.GameOver {
		return
	}
	m.State.Paused = !m.State.Paused
	if m.State.Paused {
		m.State.PauseEpoch++
		m.ctx.World.Pause()
	} else {
		m.ctx.World.Resume()
	}
}

// EndGame enters the terminal state. Calling it again does nothing.
func (m *Match) EndGame() {
	if m.State.GameOver {
		return
	}
	m.State.GameOver = true
	m.ctx.Sched.Clear()
	m.ctx.World.Pause()

	if m.State.Score > m.State.Best {
		m.State.Best = m.State.Score
		m.State.NewBest = true
		if m.store != nil {
			if _, err := m.store.RecordBest(m.GameID, m.State.Score); err != nil {
				m.ctx.Log.Warn("failed to save best score", "err", err)
			}
		}
	}

	pos := m.Player.Pos()
	m.ctx.FX.Burst(pos, 60, core.ColorBrightCyan, 900*time.Millisecond)
	m.ctx.FX.Shake(350 * time.Millisecond)
	m.ctx.FX.Sound(SoundExplode)
	m.Player.Die()

	m.summary = &Summary{
		MatchID: m.ID,
		Score:   m.State.Score,
		Best:    m.State.Best,
		NewBest: m.State.NewBest,
		Phase:   m.Spawner.Phase(),
		Elapsed: m.Elapsed(),
	}
	m.ctx.Log.Info("game over",
		"id", m.ID, "score", m.State.Score, "best", m.State.Best,
		"phase", m.Spawner.Phase(), "elapsed", m.Elapsed())
}

// Teardown releases a match that is being replaced. Hostiles are
// cleared in bulk without effects and the world drops every body.
func (m *Match) Teardown() {
	m.ctx.Sched.Clear()
	m.Spawner.Clear()
	m.ctx.World.Clear()
}

// Summary returns the final result once the match is over.
func (m *Match) Summary() (Summary, bool) {
	if m.summary == nil {
		return Summary{}, false
	}
	return *m.summary, true
}

// Elapsed returns the simulated play time.
func (m *Match) Elapsed() time.Duration {
	return m.ctx.Sched.Now()
}

// FX returns the presentation cues.
func (m *Match) FX() *FX {
	return m.ctx.FX
}

// Config returns the match configuration.
func (m *Match) Config() config.NeonDashConfig {
	return m.ctx.Cfg
}

// GrantBonus adds the debug bonus through the normal scoring path.
func (m *Match) GrantBonus() {
	m.AddScore(m.ctx.Cfg.Scoring.DebugBonus)
}

// ToggleGodMode flips invulnerability.
func (m *Match) ToggleGodMode() {
	m.State.GodMode = !m.State.GodMode
	m.ctx.Log.Debug("god mode", "on", m.State.GodMode)
}

// ForceSpawnPowerUp drops a crate of the given slot next to the player.
// Out of range slots are ignored.
func (m *Match) ForceSpawnPowerUp(slot int) {
	if slot < 0 || slot >= len(Effects) || m.State.GameOver {
		return
	}
	w, h := m.ctx.World.Width, m.ctx.World.Height
	pos := m.Player.Pos().Add(m.Player.Facing().Scale(60))
	pos.X = core.ClampF(pos.X, itemMargin, w-itemMargin)
	pos.Y = core.ClampF(pos.Y, itemMargin, h-itemMargin)
	m.Items.SpawnPowerUp(Effects[slot], pos)
}
