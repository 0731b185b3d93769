package neondash

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/neon-dash/internal/config"
	"github.com/vovakirdan/neon-dash/internal/core"
)

func TestPhaseFor(t *testing.T) {
	m := newTestMatch(t, nil)
	tests := []struct {
		score int
		want  int
	}{
		{0, 0},
		{299, 0},
		{300, 1},
		{999, 1},
		{1000, 2},
		{50000, 2},
	}
	for _, tt := range tests {
		if got := m.Spawner.PhaseFor(tt.score); got != tt.want {
			t.Errorf("PhaseFor(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestPhaseGating(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner

	m.State.Score = 299
	m.Tick(Controls{}, step)
	if s.Phase() != 0 || s.SeekerTimer() != nil {
		t.Fatalf("score 299: phase %d, seeker timer %v", s.Phase(), s.SeekerTimer())
	}

	m.State.Score = 300
	m.Tick(Controls{}, step)
	phase1 := s.SeekerTimer()
	if s.Phase() != 1 || !phase1.Active() {
		t.Fatalf("score 300: phase %d, want 1 with an active seeker timer", s.Phase())
	}
	if phase1.Period() != 5*time.Second {
		t.Errorf("phase 1 period = %v, want 5s", phase1.Period())
	}

	m.State.Score = 1000
	m.Tick(Controls{}, step)
	if s.Phase() != 2 {
		t.Fatalf("score 1000: phase %d, want 2", s.Phase())
	}
	if phase1.Active() {
		t.Error("phase 1 timer should be cancelled on transition")
	}
	if got := s.SeekerTimer().Period(); got != 3*time.Second {
		t.Errorf("phase 2 period = %v, want 3s", got)
	}
}

func TestTelegraphThenSpawn(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	warn := m.Config().Hostiles.TelegraphDuration()

	s.spawnNormal()
	if len(m.FX().Telegraphs()) != 1 {
		t.Fatal("spawn should start with a telegraph")
	}

	run(m, Controls{}, ticksFor(warn)-1)
	if n := len(s.Hostiles()); n != 0 {
		t.Fatalf("hostile appeared before the telegraph finished: %d", n)
	}

	m.Tick(Controls{}, step)
	hs := s.Hostiles()
	if len(hs) != 1 {
		t.Fatalf("hostiles after telegraph = %d, want 1", len(hs))
	}
	if len(m.FX().Telegraphs()) != 0 {
		t.Error("telegraph should be removed once resolved")
	}
	if hs[0].Kind != Normal {
		t.Errorf("kind = %s, want normal", hs[0].Kind.Name())
	}
	if got := hs[0].BaseVelocity.Len(); math.Abs(got-s.Speed()) > 1e-9 {
		t.Errorf("base speed = %v, want %v", got, s.Speed())
	}
}

func TestTelegraphCancelledByPause(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner

	s.spawnNormal()
	run(m, Controls{}, 10)
	m.TogglePause()
	run(m, Controls{}, 100)
	m.TogglePause()

	run(m, Controls{}, ticksFor(time.Second))
	if n := len(s.Hostiles()); n != 0 {
		t.Errorf("paused telegraph still spawned %d hostile(s)", n)
	}
	if n := len(m.FX().Telegraphs()); n != 0 {
		t.Errorf("cancelled telegraph still shown: %d", n)
	}
}

func TestEdgeSpawnInsideArena(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	w, h := m.Config().Arena.Width, m.Config().Arena.Height
	for range 200 {
		pos, dir := s.edgeSpawn()
		if pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h {
			t.Fatalf("spawn %+v outside arena", pos)
		}
		center := core.V(w/2, h/2)
		if pos.Add(dir.Scale(10)).Dist(center) >= pos.Dist(center) {
			t.Fatalf("direction %+v at %+v does not point inward", dir, pos)
		}
	}
}

func TestRampMonotonic(t *testing.T) {
	m := newTestMatch(t, func(c *config.NeonDashConfig) {
		c.Hostiles.SpawnIntervalMS = 1000
		c.Hostiles.RampEnabled = true
		c.Hostiles.RampPeriodMS = 100
	})
	m.State.GodMode = true
	s := m.Spawner
	hc := m.Config().Hostiles

	prevSpeed, prevInterval := s.Speed(), s.Interval()
	for range ticksFor(3 * time.Second) {
		m.Tick(Controls{}, step)
		if s.Speed() < prevSpeed {
			t.Fatalf("speed decreased: %v -> %v", prevSpeed, s.Speed())
		}
		if s.Interval() > prevInterval {
			t.Fatalf("interval increased: %v -> %v", prevInterval, s.Interval())
		}
		prevSpeed, prevInterval = s.Speed(), s.Interval()
	}

	if s.Speed() != hc.MaxSpeed {
		t.Errorf("speed = %v, want capped at %v", s.Speed(), hc.MaxSpeed)
	}
	if s.Interval() != hc.MinSpawnInterval() {
		t.Errorf("interval = %v, want floor %v", s.Interval(), hc.MinSpawnInterval())
	}
	if s.spawnTimer.Period() != hc.MinSpawnInterval() {
		t.Errorf("spawn timer period = %v, want %v", s.spawnTimer.Period(), hc.MinSpawnInterval())
	}
}

func TestRampSkippedDuringWarp(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	speed, interval := s.Speed(), s.Interval()

	s.SetTimeWarp(true)
	s.ramp()
	if s.Speed() != speed || s.Interval() != interval {
		t.Errorf("ramp ran during warp: speed %v interval %v", s.Speed(), s.Interval())
	}

	s.SetTimeWarp(false)
	s.ramp()
	if s.Speed() <= speed {
		t.Error("ramp should resume after warp")
	}
}

func TestTimeWarpRescalesNormals(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	factor := m.Config().PowerUps.WarpFactor

	h := s.spawn(core.V(100, 300), core.V(100, 0), Normal)
	if h.Body.Vel.X != 100 {
		t.Fatalf("vel = %v, want 100", h.Body.Vel.X)
	}

	s.SetTimeWarp(true)
	if math.Abs(h.Body.Vel.X-100*factor) > 1e-9 {
		t.Errorf("warped vel = %v, want %v", h.Body.Vel.X, 100*factor)
	}

	late := s.spawn(core.V(100, 500), core.V(0, -100), Normal)
	if math.Abs(late.Body.Vel.Y+100*factor) > 1e-9 {
		t.Errorf("spawned during warp: vel = %v, want %v", late.Body.Vel.Y, -100*factor)
	}

	s.SetTimeWarp(false)
	if h.Body.Vel.X != 100 || late.Body.Vel.Y != -100 {
		t.Errorf("restored vels = %v, %v; want 100, -100", h.Body.Vel.X, late.Body.Vel.Y)
	}
	if h.BaseVelocity != core.V(100, 0) {
		t.Errorf("base velocity changed to %+v", h.BaseVelocity)
	}
}

func TestSeekerSteering(t *testing.T) {
	tests := []struct {
		name string
		warp bool
	}{
		{"normal time", false},
		{"time warp", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, nil)
			s := m.Spawner
			s.SetTimeWarp(tt.warp)

			h := s.spawn(core.V(100, 300), core.Vec2{}, Seeker)
			s.Update(0)

			want := s.Speed() * m.Config().Hostiles.SeekerSpeedFactor
			if tt.warp {
				want *= m.Config().PowerUps.WarpFactor
			}
			if got := h.Body.Vel.Len(); math.Abs(got-want) > 1e-9 {
				t.Errorf("seeker speed = %v, want %v", got, want)
			}
			if h.Body.Vel.X <= 0 {
				t.Errorf("seeker at the left should move right, vel %+v", h.Body.Vel)
			}
			if math.Abs(h.Facing) > 1e-9 {
				t.Errorf("facing = %v, want 0 (east)", h.Facing)
			}
		})
	}
}

func TestCulling(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner

	normal := s.spawn(core.V(-100, 300), core.V(-100, 0), Normal)
	seeker := s.spawn(core.V(-100, 200), core.Vec2{}, Seeker)
	inside := s.spawn(core.V(-10, 300), core.V(-100, 0), Normal)
	s.Update(0)

	if normal.Alive() {
		t.Error("normal hostile far outside should be culled")
	}
	if !seeker.Alive() {
		t.Error("seekers are never culled")
	}
	if !inside.Alive() {
		t.Error("hostile within the margin should survive")
	}
}

func TestEMPDestroysAll(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	for i := range 5 {
		s.spawn(core.V(100+float64(i)*40, 100), core.Vec2{}, Normal)
	}
	if len(s.Hostiles()) != 5 {
		t.Fatalf("setup: %d hostiles", len(s.Hostiles()))
	}

	s.TriggerEMP()
	if n := len(s.Hostiles()); n != 0 {
		t.Errorf("hostiles after EMP = %d, want 0", n)
	}
	if !m.FX().Flashing() || !m.FX().Shaking() {
		t.Error("EMP should flash and shake")
	}
	if len(m.FX().Bursts()) != 5 {
		t.Errorf("bursts = %d, want one per hostile", len(m.FX().Bursts()))
	}
}

func TestHostileCrash(t *testing.T) {
	tests := []struct {
		name      string
		a, b      HostileKind
		wantCrash bool
	}{
		{"seeker pair", Seeker, Seeker, true},
		{"normal pair", Normal, Normal, false},
		{"normal and seeker", Normal, Seeker, false},
		{"seeker and normal", Seeker, Normal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, nil)
			s := m.Spawner
			a := s.spawn(far(), core.Vec2{}, tt.a)
			b := s.spawn(far().Add(core.V(4, 0)), core.Vec2{}, tt.b)

			s.HandleCrash(a.Body, b.Body)

			if dead := !a.Alive() && !b.Alive(); dead != tt.wantCrash {
				t.Errorf("a alive=%v b alive=%v, want crash=%v", a.Alive(), b.Alive(), tt.wantCrash)
			}
			if tt.wantCrash && !hasText(m.FX(), "CRASH!") {
				t.Error("crash should show a floating text")
			}
		})
	}
}

func TestSeekerCrashThroughOverlap(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	a := s.spawn(far(), core.Vec2{}, Seeker)
	b := s.spawn(far().Add(core.V(2, 2)), core.Vec2{}, Seeker)

	// Detected during the first step, resolved at the start of the second.
	run(m, Controls{}, 2)

	if a.Alive() || b.Alive() {
		t.Error("overlapping seekers should destroy each other")
	}
}

func TestSeekerBatchStagger(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner

	s.spawnSeekerBatch(3)
	m.Tick(Controls{}, step)
	if n := len(m.FX().Telegraphs()); n != 1 {
		t.Fatalf("telegraphs after first stagger = %d, want 1", n)
	}

	run(m, Controls{}, ticksFor(300*time.Millisecond))
	if n := len(m.FX().Telegraphs()); n != 2 {
		t.Fatalf("telegraphs after second stagger = %d, want 2", n)
	}

	run(m, Controls{}, ticksFor(time.Second))
	if n := len(m.FX().Telegraphs()); n != 0 {
		t.Errorf("telegraphs left = %d, want 0", n)
	}
}

func TestMarkerPos(t *testing.T) {
	m := newTestMatch(t, nil)
	s := m.Spawner
	w, h := m.Config().Arena.Width, m.Config().Arena.Height
	tests := []struct {
		in, want core.Vec2
	}{
		{core.V(400, 30), core.V(400, 10)},
		{core.V(w-30, 200), core.V(w-10, 200)},
		{core.V(300, h-30), core.V(300, h-10)},
		{core.V(30, 200), core.V(10, 200)},
		{core.V(400, 300), core.V(400, 300)},
	}
	for _, tt := range tests {
		if got := s.markerPos(tt.in); got != tt.want {
			t.Errorf("markerPos(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
