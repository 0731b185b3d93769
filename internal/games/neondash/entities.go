package neondash

import (
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/physics"
	"github.com/vovakirdan/neon-dash/internal/sched"
)

// HostileKind is the behavior of one hostile variant. The set is closed:
// adding a kind means implementing every method below.
type HostileKind interface {
	Name() string
	Glyph() rune
	Color() core.Color
	TelegraphColor() core.Color

	// steer runs every tick with the current seeker speed.
	steer(h *Hostile, target core.Vec2, speed float64)
	// onWarp runs when the global time warp factor changes.
	onWarp(h *Hostile, factor float64)
	// crashesWith reports whether overlapping other destroys both.
	crashesWith(other HostileKind) bool
	// culled reports whether leaving the arena destroys the hostile.
	culled() bool
}

// NormalKind hostiles fly in a straight line from an arena edge.
type NormalKind struct{}

// SeekerKind hostiles chase the player every tick.
type SeekerKind struct{}

// Kind singletons.
var (
	Normal HostileKind = NormalKind{}
	Seeker HostileKind = SeekerKind{}
)

func (NormalKind) Name() string               { return "normal" }
func (NormalKind) Glyph() rune                { return '■' }
func (NormalKind) Color() core.Color          { return core.ColorBrightMagenta }
func (NormalKind) TelegraphColor() core.Color { return core.ColorMagenta }

func (NormalKind) steer(*Hostile, core.Vec2, float64) {}

func (NormalKind) onWarp(h *Hostile, factor float64) {
	v := h.BaseVelocity.Scale(factor)
	h.Body.SetVelocity(v.X, v.Y)
}

func (NormalKind) crashesWith(HostileKind) bool { return false }
func (NormalKind) culled() bool                 { return true }

func (SeekerKind) Name() string               { return "seeker" }
func (SeekerKind) Glyph() rune                { return '▲' }
func (SeekerKind) Color() core.Color          { return core.ColorBrightRed }
func (SeekerKind) TelegraphColor() core.Color { return core.ColorRed }

func (SeekerKind) steer(h *Hostile, target core.Vec2, speed float64) {
	v := h.Body.Pos.Toward(target, speed)
	h.Body.SetVelocity(v.X, v.Y)
	if d := target.Sub(h.Body.Pos); !d.IsZero() {
		h.Facing = d.Angle()
	}
}

// Seekers are re-steered with the new factor on the next tick.
func (SeekerKind) onWarp(*Hostile, float64) {}

func (SeekerKind) crashesWith(other HostileKind) bool {
	_, ok := other.(SeekerKind)
	return ok
}

func (SeekerKind) culled() bool { return false }

// Hostile is a live enemy.
type Hostile struct {
	Kind HostileKind
	Body *physics.Body

	// BaseVelocity is the unwarped spawn velocity.
	BaseVelocity core.Vec2
	// Facing is the heading in radians, used for drawing seekers.
	Facing float64
}

// Alive reports whether the hostile is still in play.
func (h *Hostile) Alive() bool {
	return h.Body.Alive()
}

// Pos returns the hostile's center.
func (h *Hostile) Pos() core.Vec2 {
	return h.Body.Pos
}

// Orb is a score pickup.
type Orb struct {
	Body *physics.Body
}

// Alive reports whether the orb is still in play.
func (o *Orb) Alive() bool {
	return o.Body.Alive()
}

// Pos returns the orb's center.
func (o *Orb) Pos() core.Vec2 {
	return o.Body.Pos
}

// PowerUp is a floating crate carrying one effect.
type PowerUp struct {
	Effect PowerUpEffect
	Body   *physics.Body
	Born   time.Duration

	expiry *sched.Timer
}

// Alive reports whether the crate is still in play.
func (p *PowerUp) Alive() bool {
	return p.Body.Alive()
}

// Pos returns the crate's center.
func (p *PowerUp) Pos() core.Vec2 {
	return p.Body.Pos
}
