// Package physics is a small arcade physics substrate: axis-aligned bodies
// with velocity, acceleration, linear drag and a speed cap, integrated in
// fixed steps, plus group-based overlap detection.
//
// Overlaps found during Step are queued and delivered by DispatchOverlaps,
// which the caller runs at the start of the next tick. Bodies are never
// removed during a step: Destroy marks them dead and Compact drops them.
package physics

import (
	"math"
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
)

// Group tags bodies for overlap rules.
type Group uint8

// OverlapFunc receives a body from each side of a rule, in rule order.
type OverlapFunc func(a, b *Body)

// Body is a simulated axis-aligned box. Position is the box center.
type Body struct {
	ID    int
	Group Group
	Pos   core.Vec2
	Vel   core.Vec2
	Acc   core.Vec2
	W, H  float64

	// Drag decelerates an axis that has no acceleration, in units/s².
	Drag float64
	// MaxSpeed caps each velocity axis. Zero means uncapped.
	// Overspeed from a direct impulse decays at the drag rate.
	MaxSpeed float64
	// CollideBounds keeps the body inside the world rectangle.
	CollideBounds bool

	// Owner links the body back to the entity that created it.
	Owner any

	alive bool
}

// Alive reports whether the body is still simulated.
func (b *Body) Alive() bool {
	return b != nil && b.alive
}

// SetVelocity overwrites the body's velocity.
func (b *Body) SetVelocity(vx, vy float64) {
	b.Vel = core.V(vx, vy)
}

// SetAcceleration overwrites the body's acceleration.
func (b *Body) SetAcceleration(ax, ay float64) {
	b.Acc = core.V(ax, ay)
}

// SetDrag sets the linear drag.
func (b *Body) SetDrag(d float64) {
	b.Drag = d
}

// SetMaxSpeed sets the per-axis speed cap.
func (b *Body) SetMaxSpeed(m float64) {
	b.MaxSpeed = m
}

// Bounds returns the body's box.
func (b *Body) Bounds() core.RectF {
	return core.RectF{Center: b.Pos, W: b.W, H: b.H}
}

type rule struct {
	a, b Group
	fn   OverlapFunc
}

type contact struct {
	a, b *Body
	fn   OverlapFunc
}

// World owns all bodies and overlap rules.
type World struct {
	Width, Height float64

	bodies  []*Body
	rules   []rule
	pending []contact
	paused  bool
	nextID  int
}

// NewWorld creates a world with the given bounds.
func NewWorld(w, h float64) *World {
	return &World{Width: w, Height: h}
}

// CreateBody adds a body centered at pos.
func (w *World) CreateBody(g Group, pos core.Vec2, width, height float64) *Body {
	w.nextID++
	b := &Body{
		ID:    w.nextID,
		Group: g,
		Pos:   pos,
		W:     width,
		H:     height,
		alive: true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Destroy marks a body dead. Safe to call more than once.
func (w *World) Destroy(b *Body) {
	if b == nil {
		return
	}
	b.alive = false
	b.Vel = core.Vec2{}
	b.Acc = core.Vec2{}
}

// OnOverlap registers fn for overlaps between groups a and b.
func (w *World) OnOverlap(a, b Group, fn OverlapFunc) {
	w.rules = append(w.rules, rule{a: a, b: b, fn: fn})
}

// Pause freezes integration and overlap detection.
func (w *World) Pause() { w.paused = true }

// Resume undoes Pause.
func (w *World) Resume() { w.paused = false }

// Paused reports whether the world is frozen.
func (w *World) Paused() bool { return w.paused }

// Bodies returns the live bodies of a group, in creation order.
func (w *World) Bodies(g Group) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.alive && b.Group == g {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of bodies held, including dead ones not yet compacted.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step integrates every live body by dt and queues the overlaps found.
func (w *World) Step(dt time.Duration) {
	if w.paused || dt <= 0 {
		return
	}
	secs := dt.Seconds()
	for _, b := range w.bodies {
		if b.alive {
			w.integrate(b, secs)
		}
	}
	w.detect()
}

func (w *World) integrate(b *Body, dt float64) {
	b.Vel.X = capAxis(b.Vel.X, axisVelocity(b.Vel.X, b.Acc.X, b.Drag, dt), b.MaxSpeed, b.Drag*dt)
	b.Vel.Y = capAxis(b.Vel.Y, axisVelocity(b.Vel.Y, b.Acc.Y, b.Drag, dt), b.MaxSpeed, b.Drag*dt)

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if b.CollideBounds {
		w.clampToBounds(b)
	}
}

func axisVelocity(v, a, drag, dt float64) float64 {
	if a != 0 {
		return v + a*dt
	}
	if drag <= 0 || v == 0 {
		return v
	}
	d := drag * dt
	if math.Abs(v) <= d {
		return 0
	}
	if v > 0 {
		return v - d
	}
	return v + d
}

// capAxis limits v to max. Speed already above the cap, such as from an
// impulse set directly on the body, bleeds off by decay per step instead of
// being cut at once.
func capAxis(prev, v, max, decay float64) float64 {
	if max <= 0 || math.Abs(v) <= max {
		return v
	}
	limit := max
	if over := math.Abs(prev) - decay; over > limit {
		limit = over
	}
	return core.ClampF(v, -limit, limit)
}

func (w *World) clampToBounds(b *Body) {
	hw, hh := b.W/2, b.H/2
	if b.Pos.X < hw {
		b.Pos.X = hw
		b.Vel.X = 0
	} else if b.Pos.X > w.Width-hw {
		b.Pos.X = w.Width - hw
		b.Vel.X = 0
	}
	if b.Pos.Y < hh {
		b.Pos.Y = hh
		b.Vel.Y = 0
	} else if b.Pos.Y > w.Height-hh {
		b.Pos.Y = w.Height - hh
		b.Vel.Y = 0
	}
}

func (w *World) detect() {
	for _, r := range w.rules {
		if r.a == r.b {
			group := w.Bodies(r.a)
			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					if group[i].Bounds().Intersects(group[j].Bounds()) {
						w.pending = append(w.pending, contact{a: group[i], b: group[j], fn: r.fn})
					}
				}
			}
			continue
		}
		as, bs := w.Bodies(r.a), w.Bodies(r.b)
		for _, a := range as {
			for _, b := range bs {
				if a.Bounds().Intersects(b.Bounds()) {
					w.pending = append(w.pending, contact{a: a, b: b, fn: r.fn})
				}
			}
		}
	}
}

// PendingOverlaps returns the number of queued overlaps.
func (w *World) PendingOverlaps() int {
	return len(w.pending)
}

// DispatchOverlaps delivers queued overlaps in detection order. A pair is
// skipped when either body died after it was detected, including deaths
// caused by earlier callbacks in the same dispatch.
func (w *World) DispatchOverlaps() {
	queue := w.pending
	w.pending = nil
	for _, c := range queue {
		if c.a.alive && c.b.alive {
			c.fn(c.a, c.b)
		}
	}
}

// Compact drops dead bodies.
func (w *World) Compact() {
	live := w.bodies[:0]
	for _, b := range w.bodies {
		if b.alive {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = live
}

// Clear destroys every body and drops queued overlaps.
func (w *World) Clear() {
	for _, b := range w.bodies {
		w.Destroy(b)
	}
	w.bodies = w.bodies[:0]
	w.pending = nil
}
