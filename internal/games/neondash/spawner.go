package neondash

import (
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/physics"
	"github.com/vovakirdan/neon-dash/internal/sched"
)

const (
	// spawnPadding keeps fresh hostiles just inside the arena edge.
	spawnPadding = 30.0
	// telegraphInset pins warning markers against the arena border.
	telegraphInset = 10.0
	telegraphEdge  = 50.0
)

// Spawner owns the hostile population and the difficulty ramp.
type Spawner struct {
	ctx    *Context
	player *Player

	hostiles []*Hostile

	speed      float64
	interval   time.Duration
	phase      int
	warpActive bool
	warpFactor float64

	spawnTimer  *sched.Timer
	seekerTimer *sched.Timer
	rampTimer   *sched.Timer
}

// NewSpawner creates a spawner and starts its normal spawn loop and ramp.
func NewSpawner(ctx *Context, player *Player) *Spawner {
	hc := ctx.Cfg.Hostiles
	s := &Spawner{
		ctx:        ctx,
		player:     player,
		speed:      hc.StartSpeed,
		interval:   hc.SpawnInterval(),
		warpFactor: 1,
	}

	s.spawnTimer = ctx.Sched.Every(s.interval, s.spawnNormal).Guard(ctx.running)
	if hc.RampEnabled {
		s.rampTimer = ctx.Sched.Every(hc.RampPeriod(), s.ramp).Guard(ctx.running)
	}
	return s
}

// Update evaluates the phase for score and steers seekers.
func (s *Spawner) Update(score int) {
	s.updatePhase(score)

	target := s.player.Pos()
	seekerSpeed := s.SeekerSpeed()
	for _, h := range s.hostiles {
		if !h.Alive() {
			continue
		}
		if s.player.Alive() {
			h.Kind.steer(h, target, seekerSpeed)
		}
		if h.Kind.culled() && s.outside(h.Pos()) {
			s.ctx.World.Destroy(h.Body)
		}
	}
}

func (s *Spawner) outside(p core.Vec2) bool {
	m := s.ctx.Cfg.Hostiles.CullMargin
	w, h := s.ctx.World.Width, s.ctx.World.Height
	return p.X < -m || p.X > w+m || p.Y < -m || p.Y > h+m
}

// PhaseFor maps a score to a difficulty phase.
func (s *Spawner) PhaseFor(score int) int {
	pc := s.ctx.Cfg.Phases
	switch {
	case score >= pc.Phase2Score:
		return 2
	case score >= pc.Phase1Score:
		return 1
	default:
		return 0
	}
}

func (s *Spawner) updatePhase(score int) {
	if s.ctx.State.GameOver {
		return
	}
	next := s.PhaseFor(score)
	if next == s.phase {
		return
	}
	s.phase = next
	s.ctx.Log.Info("difficulty phase", "phase", next, "score", score)

	// In-flight telegraphs are left alone.
	s.seekerTimer.Cancel()
	s.seekerTimer = nil

	pc := s.ctx.Cfg.Phases
	switch next {
	case 1:
		s.seekerTimer = s.ctx.Sched.Every(pc.Phase1Period(), func() {
			s.spawnSeekerBatch(1)
		}).Guard(s.ctx.running)
	case 2:
		s.seekerTimer = s.ctx.Sched.Every(pc.Phase2Period(), func() {
			s.spawnSeekerBatch(s.ctx.RNG.Between(pc.Phase2MinBatch, pc.Phase2MaxBatch))
		}).Guard(s.ctx.running)
	}
}

func (s *Spawner) spawnSeekerBatch(count int) {
	stagger := s.ctx.Cfg.Phases.Stagger()
	for i := 0; i < count; i++ {
		s.ctx.Sched.After(time.Duration(i)*stagger, func() {
			pos, _ := s.edgeSpawn()
			s.telegraph(pos, core.Vec2{}, Seeker)
		}).Guard(s.ctx.running)
	}
}

func (s *Spawner) spawnNormal() {
	pos, dir := s.edgeSpawn()
	s.telegraph(pos, dir.Scale(s.speed), Normal)
}

// edgeSpawn picks a point just inside a random edge and the inward
// direction from it.
func (s *Spawner) edgeSpawn() (core.Vec2, core.Vec2) {
	w, h := s.ctx.World.Width, s.ctx.World.Height
	rng := s.ctx.RNG
	switch rng.Intn(4) {
	case 0: // top
		return core.V(rng.Range(0, w), spawnPadding), core.V(0, 1)
	case 1: // right
		return core.V(w-spawnPadding, rng.Range(0, h)), core.V(-1, 0)
	case 2: // bottom
		return core.V(rng.Range(0, w), h-spawnPadding), core.V(0, -1)
	default: // left
		return core.V(spawnPadding, rng.Range(0, h)), core.V(1, 0)
	}
}

// telegraph shows the warning and spawns once it completes. A pause at
// any point of the window, or game over, cancels the spawn.
func (s *Spawner) telegraph(pos, base core.Vec2, kind HostileKind) {
	hc := s.ctx.Cfg.Hostiles
	marker := s.ctx.FX.Telegraph(s.markerPos(pos), kind, time.Duration(hc.TelegraphPulseMS)*time.Millisecond)
	epoch := s.ctx.State.PauseEpoch

	s.ctx.Sched.After(hc.TelegraphDuration(), func() {
		marker.Done()
		if !s.ctx.State.Running() || s.ctx.State.PauseEpoch != epoch {
			return
		}
		s.spawn(pos, base, kind)
	})
}

func (s *Spawner) markerPos(p core.Vec2) core.Vec2 {
	w, h := s.ctx.World.Width, s.ctx.World.Height
	if p.Y < telegraphEdge {
		p.Y = telegraphInset
	}
	if p.X > w-telegraphEdge {
		p.X = w - telegraphInset
	}
	if p.Y > h-telegraphEdge {
		p.Y = h - telegraphInset
	}
	if p.X < telegraphEdge {
		p.X = telegraphInset
	}
	return p
}

func (s *Spawner) spawn(pos, base core.Vec2, kind HostileKind) *Hostile {
	size := s.ctx.Cfg.Hostiles.Size
	h := &Hostile{
		Kind:         kind,
		Body:         s.ctx.World.CreateBody(GroupHostile, pos, size, size),
		BaseVelocity: base,
	}
	h.Body.Owner = h
	kind.onWarp(h, s.warpFactor)
	if s.player.Alive() {
		kind.steer(h, s.player.Pos(), s.SeekerSpeed())
	}
	s.hostiles = append(s.hostiles, h)
	return h
}

// ramp raises speed and spawn rate one step.
func (s *Spawner) ramp() {
	if s.warpActive {
		return
	}
	hc := s.ctx.Cfg.Hostiles
	s.speed = min(s.speed+hc.SpeedStep, hc.MaxSpeed)

	next := max(s.interval-hc.IntervalStep(), hc.MinSpawnInterval())
	if next != s.interval {
		s.interval = next
		s.spawnTimer.SetPeriod(next)
	}
}

// SetTimeWarp switches the global slow motion and rescales every normal
// hostile from its base velocity.
func (s *Spawner) SetTimeWarp(active bool) {
	s.warpActive = active
	s.warpFactor = 1
	if active {
		s.warpFactor = s.ctx.Cfg.PowerUps.WarpFactor
	}
	for _, h := range s.hostiles {
		if h.Alive() {
			h.Kind.onWarp(h, s.warpFactor)
		}
	}
}

// TriggerEMP destroys every live hostile.
func (s *Spawner) TriggerEMP() {
	s.ctx.FX.Flash(200 * time.Millisecond)
	s.ctx.FX.Shake(300 * time.Millisecond)
	s.ctx.FX.Sound(SoundExplode)

	n := 0
	for _, h := range s.hostiles {
		if h.Alive() {
			s.destroy(h)
			n++
		}
	}
	s.ctx.Log.Info("emp", "destroyed", n)
}

// HandleCrash applies the hostile-hostile rule to an overlapping pair.
func (s *Spawner) HandleCrash(a, b *physics.Body) {
	ha, okA := a.Owner.(*Hostile)
	hb, okB := b.Owner.(*Hostile)
	if !okA || !okB {
		return
	}
	if !ha.Kind.crashesWith(hb.Kind) {
		return
	}
	pos := ha.Pos()
	s.destroy(ha)
	s.destroy(hb)
	s.ctx.FX.Sound(SoundExplode)
	s.ctx.FX.Text(pos, "CRASH!", core.ColorYellow)
}

// Destroy removes a hostile with a burst.
func (s *Spawner) Destroy(h *Hostile) {
	if h.Alive() {
		s.destroy(h)
	}
}

func (s *Spawner) destroy(h *Hostile) {
	s.ctx.FX.Burst(h.Pos(), 24, h.Kind.Color(), 500*time.Millisecond)
	s.ctx.World.Destroy(h.Body)
}

// Clear destroys every hostile without effects.
func (s *Spawner) Clear() {
	for _, h := range s.hostiles {
		s.ctx.World.Destroy(h.Body)
	}
	s.hostiles = s.hostiles[:0]
}

// compact drops destroyed hostiles.
func (s *Spawner) compact() {
	live := s.hostiles[:0]
	for _, h := range s.hostiles {
		if h.Alive() {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.hostiles); i++ {
		s.hostiles[i] = nil
	}
	s.hostiles = live
}

// Hostiles returns the live hostiles.
func (s *Spawner) Hostiles() []*Hostile {
	out := make([]*Hostile, 0, len(s.hostiles))
	for _, h := range s.hostiles {
		if h.Alive() {
			out = append(out, h)
		}
	}
	return out
}

// Speed returns the current hostile speed before warp.
func (s *Spawner) Speed() float64 { return s.speed }

// Interval returns the current normal spawn interval.
func (s *Spawner) Interval() time.Duration { return s.interval }

// Phase returns the current difficulty phase.
func (s *Spawner) Phase() int { return s.phase }

// SeekerTimer returns the active seeker timer, or nil in phase 0.
func (s *Spawner) SeekerTimer() *sched.Timer { return s.seekerTimer }

// TimeWarp reports whether slow motion is active and its factor.
func (s *Spawner) TimeWarp() (bool, float64) { return s.warpActive, s.warpFactor }

// SeekerSpeed returns the speed seekers steer at.
func (s *Spawner) SeekerSpeed() float64 {
	return s.speed * s.warpFactor * s.ctx.Cfg.Hostiles.SeekerSpeedFactor
}
