package physics

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
)

const (
	groupA Group = iota + 1
	groupB
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStepIntegratesVelocity(t *testing.T) {
	w := NewWorld(800, 600)
	b := w.CreateBody(groupA, core.V(100, 100), 10, 10)
	b.SetVelocity(100, -50)

	w.Step(time.Second / 2)

	if !approx(b.Pos.X, 150) || !approx(b.Pos.Y, 75) {
		t.Errorf("pos = %+v, want (150, 75)", b.Pos)
	}
}

func TestDragOnlyWithoutAcceleration(t *testing.T) {
	tests := []struct {
		name  string
		acc   core.Vec2
		wantX float64
	}{
		{"drag applies", core.V(0, 0), 50},
		{"accel wins", core.V(100, 0), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(800, 600)
			b := w.CreateBody(groupA, core.V(400, 300), 10, 10)
			b.SetVelocity(100, 0)
			b.Acc = tt.acc
			b.SetDrag(50)

			w.Step(time.Second)

			if !approx(b.Vel.X, tt.wantX) {
				t.Errorf("vel.x = %v, want %v", b.Vel.X, tt.wantX)
			}
		})
	}
}

func TestDragStopsAtZero(t *testing.T) {
	w := NewWorld(800, 600)
	b := w.CreateBody(groupA, core.V(400, 300), 10, 10)
	b.SetVelocity(-10, 10)
	b.SetDrag(500)
	w.Step(time.Second)
	if !b.Vel.IsZero() {
		t.Errorf("drag should not reverse velocity, got %+v", b.Vel)
	}
}

func TestMaxSpeedPerAxis(t *testing.T) {
	w := NewWorld(800, 600)
	b := w.CreateBody(groupA, core.V(400, 300), 10, 10)
	b.SetAcceleration(100000, -100000)
	b.SetMaxSpeed(320)
	w.Step(time.Second / 60)
	if b.Vel.X != 320 || b.Vel.Y != -320 {
		t.Errorf("vel = %+v, want (320, -320)", b.Vel)
	}
}

func TestCollideBounds(t *testing.T) {
	w := NewWorld(800, 600)
	b := w.CreateBody(groupA, core.V(10, 590), 20, 20)
	b.CollideBounds = true
	b.SetVelocity(-1000, 1000)
	w.Step(time.Second / 10)

	if b.Pos.X != 10 || b.Pos.Y != 590 {
		t.Errorf("pos = %+v, want clamped to (10, 590)", b.Pos)
	}
	if !b.Vel.IsZero() {
		t.Errorf("vel = %+v, want zeroed", b.Vel)
	}
}

func TestOverlapDispatchedNextCall(t *testing.T) {
	w := NewWorld(800, 600)
	a := w.CreateBody(groupA, core.V(100, 100), 20, 20)
	b := w.CreateBody(groupB, core.V(110, 100), 20, 20)

	hits := 0
	w.OnOverlap(groupA, groupB, func(x, y *Body) {
		if x != a || y != b {
			t.Errorf("callback bodies out of rule order")
		}
		hits++
	})

	w.Step(time.Millisecond)
	if hits != 0 {
		t.Fatal("overlap delivered during Step")
	}
	w.DispatchOverlaps()
	if hits != 1 {
		t.Errorf("expected 1 overlap, got %d", hits)
	}
	w.DispatchOverlaps()
	if hits != 1 {
		t.Errorf("queue not drained, got %d", hits)
	}
}

func TestSameGroupPairsOnce(t *testing.T) {
	w := NewWorld(800, 600)
	w.CreateBody(groupA, core.V(100, 100), 20, 20)
	w.CreateBody(groupA, core.V(105, 100), 20, 20)

	hits := 0
	w.OnOverlap(groupA, groupA, func(_, _ *Body) { hits++ })
	w.Step(time.Millisecond)
	w.DispatchOverlaps()

	if hits != 1 {
		t.Errorf("expected 1 overlap for one pair, got %d", hits)
	}
}

func TestDispatchSkipsDeadBodies(t *testing.T) {
	w := NewWorld(800, 600)
	a := w.CreateBody(groupA, core.V(100, 100), 20, 20)
	w.CreateBody(groupA, core.V(105, 100), 20, 20)
	w.CreateBody(groupA, core.V(95, 100), 20, 20)

	hits := 0
	w.OnOverlap(groupA, groupA, func(x, y *Body) {
		hits++
		w.Destroy(x)
		w.Destroy(y)
	})
	w.Step(time.Millisecond)
	if w.PendingOverlaps() != 3 {
		t.Fatalf("expected 3 queued overlaps, got %d", w.PendingOverlaps())
	}
	w.DispatchOverlaps()

	if hits != 1 {
		t.Errorf("expected 1 delivered overlap, got %d", hits)
	}
	if a.Alive() {
		t.Error("first body should be destroyed")
	}
}

func TestTouchingEdgesDoNotOverlap(t *testing.T) {
	w := NewWorld(800, 600)
	w.CreateBody(groupA, core.V(100, 100), 20, 20)
	w.CreateBody(groupB, core.V(120, 100), 20, 20)
	hits := 0
	w.OnOverlap(groupA, groupB, func(_, _ *Body) { hits++ })
	w.Step(time.Millisecond)
	w.DispatchOverlaps()
	if hits != 0 {
		t.Errorf("touching boxes reported overlap")
	}
}

func TestPausedWorldFrozen(t *testing.T) {
	w := NewWorld(800, 600)
	b := w.CreateBody(groupA, core.V(100, 100), 20, 20)
	w.CreateBody(groupB, core.V(100, 100), 20, 20)
	b.SetVelocity(100, 0)
	hits := 0
	w.OnOverlap(groupA, groupB, func(_, _ *Body) { hits++ })

	w.Pause()
	w.Step(time.Second)
	w.DispatchOverlaps()
	if b.Pos.X != 100 || hits != 0 {
		t.Errorf("paused world moved or detected: pos=%v hits=%d", b.Pos, hits)
	}

	w.Resume()
	w.Step(time.Millisecond)
	if b.Pos.X == 100 {
		t.Error("resumed world should integrate")
	}
}

func TestCompact(t *testing.T) {
	w := NewWorld(800, 600)
	a := w.CreateBody(groupA, core.V(0, 0), 1, 1)
	w.CreateBody(groupA, core.V(0, 0), 1, 1)
	w.Destroy(a)
	w.Destroy(a)
	if w.Len() != 2 {
		t.Fatalf("destroy should not remove, len=%d", w.Len())
	}
	w.Compact()
	if w.Len() != 1 {
		t.Errorf("len after compact = %d, want 1", w.Len())
	}
	if len(w.Bodies(groupA)) != 1 {
		t.Errorf("live bodies = %d, want 1", len(w.Bodies(groupA)))
	}
}

func TestWorldClear(t *testing.T) {
	w := NewWorld(800, 600)
	a := w.CreateBody(groupA, core.V(100, 100), 20, 20)
	b := w.CreateBody(groupB, core.V(110, 100), 20, 20)
	hits := 0
	w.OnOverlap(groupA, groupB, func(_, _ *Body) { hits++ })

	w.Step(time.Millisecond)
	w.Clear()
	w.DispatchOverlaps()
	if hits != 0 {
		t.Error("queued overlap delivered after clear")
	}
	if w.Len() != 0 || a.Alive() || b.Alive() {
		t.Errorf("clear left len=%d a=%v b=%v", w.Len(), a.Alive(), b.Alive())
	}
}

func TestImpulseAboveCapDecays(t *testing.T) {
	w := NewWorld(800, 600)
	b := w.CreateBody(groupA, core.V(400, 300), 10, 10)
	b.SetMaxSpeed(320)
	b.SetDrag(600)
	b.SetVelocity(750, 0)
	b.SetAcceleration(900, 0)

	w.Step(100 * time.Millisecond)
	if !approx(b.Vel.X, 690) {
		t.Fatalf("vel.x = %v, want 690 after one decay step", b.Vel.X)
	}

	for i := 0; i < 20; i++ {
		w.Step(100 * time.Millisecond)
	}
	if !approx(b.Vel.X, 320) {
		t.Errorf("vel.x = %v, want settled at cap 320", b.Vel.X)
	}
}
