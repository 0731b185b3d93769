package neondash

import (
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/physics"
	"github.com/vovakirdan/neon-dash/internal/sched"
)

// Controls is the input snapshot for one tick.
type Controls struct {
	Up, Down, Left, Right bool
	Dash                  bool
	Brake                 bool
}

// DashState is the dash state machine.
type DashState int

const (
	DashReady DashState = iota
	DashDashing
	DashCooldown
)

func (d DashState) String() string {
	switch d {
	case DashReady:
		return "ready"
	case DashDashing:
		return "dashing"
	case DashCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// StatusKind identifies a timed player status.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusPhantom
	StatusMagnet
	StatusOverdrive
	statusKinds
)

func (k StatusKind) String() string {
	switch k {
	case StatusPhantom:
		return "PHANTOM"
	case StatusMagnet:
		return "MAGNET"
	case StatusOverdrive:
		return "OVERDRIVE"
	default:
		return ""
	}
}

// StatusTimer records when a timed status started and how long it lasts.
type StatusTimer struct {
	Kind      StatusKind
	StartedAt time.Duration
	Duration  time.Duration
}

// Remaining returns the time left at now, never negative.
func (s StatusTimer) Remaining(now time.Duration) time.Duration {
	left := s.StartedAt + s.Duration - now
	if left < 0 || s.Kind == StatusNone {
		return 0
	}
	return left
}

// Player is the controlled agent. It owns movement, the dash state machine
// and status effects.
//
// Timed statuses come in two flavors. By default every kind keeps its own
// timer and only the newest activation of a kind may clear it. With
// sharedStatusSlot set, one slot serves every kind and each activation's
// clear fires unconditionally, so an older clear can cut a newer activation
// of the same kind short.
type Player struct {
	ctx  *Context
	Body *physics.Body

	facing   core.Vec2
	dash     DashState
	dashAt   time.Duration
	cooldown *sched.Timer
	prevDash bool

	shielded   bool
	phantom    bool
	magnetized bool
	overdrive  bool
	braking    bool

	sharedStatusSlot bool
	slot             StatusTimer
	timers           [statusKinds]StatusTimer
	gens             [statusKinds]int

	dead bool
}

// NewPlayer creates the player at pos.
func NewPlayer(ctx *Context, pos core.Vec2, sharedStatusSlot bool) *Player {
	pc := ctx.Cfg.Player
	body := ctx.World.CreateBody(GroupPlayer, pos, pc.Size, pc.Size)
	body.CollideBounds = true
	body.SetDrag(pc.Drag)
	body.SetMaxSpeed(pc.MaxSpeed)

	p := &Player{
		ctx:              ctx,
		Body:             body,
		facing:           core.V(1, 0),
		sharedStatusSlot: sharedStatusSlot,
	}
	body.Owner = p
	return p
}

// Update applies one tick of input.
func (p *Player) Update(c Controls) {
	if p.dead {
		return
	}
	pc := p.ctx.Cfg.Player

	p.braking = c.Brake
	if p.braking {
		p.Body.SetDrag(pc.BrakeDrag)
		p.Body.SetMaxSpeed(pc.BrakeMaxSpeed)
	} else {
		p.Body.SetDrag(pc.Drag)
		p.Body.SetMaxSpeed(pc.MaxSpeed)
	}

	// Axes are independent: diagonals are not normalized, and the last
	// pressed axis wins the facing.
	p.Body.SetAcceleration(0, 0)
	if c.Left {
		p.Body.Acc.X = -pc.Accel
		p.facing = core.V(-1, 0)
	}
	if c.Right {
		p.Body.Acc.X = pc.Accel
		p.facing = core.V(1, 0)
	}
	if c.Up {
		p.Body.Acc.Y = -pc.Accel
		p.facing = core.V(0, -1)
	}
	if c.Down {
		p.Body.Acc.Y = pc.Accel
		p.facing = core.V(0, 1)
	}

	pressed := c.Dash && !p.prevDash
	p.prevDash = c.Dash
	if pressed {
		p.tryDash()
	}
}

func (p *Player) tryDash() {
	if p.dash != DashReady {
		return
	}
	pc := p.ctx.Cfg.Player

	p.dash = DashDashing
	v := p.facing.Scale(pc.DashSpeed)
	p.Body.SetVelocity(v.X, v.Y)
	p.ctx.FX.Sound(SoundDash)

	if p.overdrive {
		p.dash = DashReady
		return
	}

	p.dash = DashCooldown
	p.dashAt = p.ctx.Now()
	p.cooldown = p.ctx.Sched.After(pc.DashCooldown(), func() {
		p.dash = DashReady
	}).Guard(func() bool {
		return !p.dead && p.dash == DashCooldown
	})
}

// ActivateShield grants a one-hit shield.
func (p *Player) ActivateShield() {
	if p.dead {
		return
	}
	p.shielded = true
}

// ActivatePhantom makes every hit pass through for d.
func (p *Player) ActivatePhantom(d time.Duration) {
	if p.dead {
		return
	}
	p.phantom = true
	p.startStatus(StatusPhantom, d, func() { p.phantom = false })
}

// ActivateMagnet pulls orbs toward the player for d.
func (p *Player) ActivateMagnet(d time.Duration) {
	if p.dead {
		return
	}
	p.magnetized = true
	p.startStatus(StatusMagnet, d, func() { p.magnetized = false })
}

// ActivateOverdrive lifts the dash cooldown for d.
func (p *Player) ActivateOverdrive(d time.Duration) {
	if p.dead {
		return
	}
	p.overdrive = true
	if p.dash == DashCooldown {
		p.cooldown.Cancel()
		p.dash = DashReady
	}
	p.startStatus(StatusOverdrive, d, func() { p.overdrive = false })
}

func (p *Player) startStatus(kind StatusKind, d time.Duration, clear func()) {
	timer := StatusTimer{Kind: kind, StartedAt: p.ctx.Now(), Duration: d}
	p.slot = timer
	p.timers[kind] = timer

	if p.sharedStatusSlot {
		p.ctx.Sched.After(d, clear).Guard(p.Alive)
		return
	}

	p.gens[kind]++
	gen := p.gens[kind]
	p.ctx.Sched.After(d, clear).Guard(func() bool {
		return !p.dead && p.gens[kind] == gen
	})
}

// TakeHit resolves a hit and reports whether it was lethal.
func (p *Player) TakeHit() bool {
	if p.dead {
		return false
	}
	if p.phantom {
		return false
	}
	if p.shielded {
		p.shielded = false
		p.ctx.FX.Sound(SoundShield)
		p.ctx.FX.Shake(100 * time.Millisecond)
		return false
	}
	return true
}

// Die removes the player from play. Calling it again does nothing.
func (p *Player) Die() {
	if p.dead {
		return
	}
	p.dead = true
	p.cooldown.Cancel()
	p.ctx.World.Destroy(p.Body)
}

// Alive reports whether the player is still in play.
func (p *Player) Alive() bool { return !p.dead }

// Pos returns the player's center.
func (p *Player) Pos() core.Vec2 { return p.Body.Pos }

// Facing returns the unit dash direction.
func (p *Player) Facing() core.Vec2 { return p.facing }

// DashState returns the current dash state.
func (p *Player) DashState() DashState { return p.dash }

// Shielded reports whether a shield is up.
func (p *Player) Shielded() bool { return p.shielded }

// Phantom reports whether hits pass through.
func (p *Player) Phantom() bool { return p.phantom }

// Magnetized reports whether orbs are pulled in.
func (p *Player) Magnetized() bool { return p.magnetized }

// Overdrive reports whether dashes skip the cooldown.
func (p *Player) Overdrive() bool { return p.overdrive }

// Braking reports whether the brake profile is active.
func (p *Player) Braking() bool { return p.braking }

// StatusTimer returns the most recently started timed status.
func (p *Player) StatusTimer() StatusTimer { return p.slot }

// ActiveStatuses returns the running timed statuses for display. With a
// shared slot only the slot is shown.
func (p *Player) ActiveStatuses() []StatusTimer {
	now := p.ctx.Now()
	var out []StatusTimer
	if p.sharedStatusSlot {
		if p.slot.Remaining(now) > 0 && p.flag(p.slot.Kind) {
			out = append(out, p.slot)
		}
		return out
	}
	for k := StatusPhantom; k < statusKinds; k++ {
		if p.flag(k) && p.timers[k].Remaining(now) > 0 {
			out = append(out, p.timers[k])
		}
	}
	return out
}

func (p *Player) flag(k StatusKind) bool {
	switch k {
	case StatusPhantom:
		return p.phantom
	case StatusMagnet:
		return p.magnetized
	case StatusOverdrive:
		return p.overdrive
	}
	return false
}

// DashProgress returns how far the cooldown has recovered, in [0, 1].
func (p *Player) DashProgress() float64 {
	if p.dash != DashCooldown {
		return 1
	}
	cd := p.ctx.Cfg.Player.DashCooldown()
	if cd <= 0 {
		return 1
	}
	return core.ClampF(float64(p.ctx.Now()-p.dashAt)/float64(cd), 0, 1)
}
