package neondash

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func TestGameDeterminism(t *testing.T) {
	// Steer in a loop and dash now and then.
	inputs := make([]core.InputFrame, 1200)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch (i / 90) % 4 {
		case 0:
			inputs[i].Set(core.ActionRight)
		case 1:
			inputs[i].Set(core.ActionDown)
		case 2:
			inputs[i].Set(core.ActionLeft)
		case 3:
			inputs[i].Set(core.ActionUp)
		}
		if i%45 == 0 {
			inputs[i].Set(core.ActionDash)
		}
	}

	play := func() Snapshot {
		g := New()
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Match().Snapshot()
	}

	s1, s2 := play(), play()
	if s1.Hash() != s2.Hash() {
		t.Errorf("determinism failed: hashes differ (%d vs %d)", s1.Hash(), s2.Hash())
	}
	if s1.Score != s2.Score || s1.Elapsed != s2.Elapsed {
		t.Errorf("determinism failed: score %d/%d elapsed %d/%d", s1.Score, s2.Score, s1.Elapsed, s2.Elapsed)
	}
}

func TestSeedsDiverge(t *testing.T) {
	snap := func(seed int64) Snapshot {
		g := New()
		g.Reset(testRuntime(seed))
		for range 600 {
			g.Step(core.NewInputFrame())
		}
		return g.Match().Snapshot()
	}
	if snap(1).RNGState == snap(2).RNGState {
		t.Error("different seeds produced the same RNG state")
	}
}

func TestGameRestart(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))
	first := g.Match()

	// Restart is ignored while playing.
	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.Match() != first {
		t.Fatal("restart during play replaced the match")
	}

	first.EndGame()
	g.Step(in)
	if g.Match() == first {
		t.Fatal("restart after game over should build a new match")
	}
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("state after restart = %+v", g.State())
	}
}

func TestRestartClearsHostiles(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))
	first := g.Match()
	for i := range 5 {
		first.Spawner.spawn(core.V(100+float64(i)*40, 100), core.Vec2{}, Normal)
	}
	first.EndGame()

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	if n := len(first.Spawner.Hostiles()); n != 0 {
		t.Errorf("hostiles left on the replaced match = %d", n)
	}
	if n := first.ctx.World.Len(); n != 0 {
		t.Errorf("bodies left on the replaced match = %d", n)
	}
	if len(first.FX().Bursts()) != 1 {
		t.Errorf("bulk clear should add no bursts beyond the game over one, got %d", len(first.FX().Bursts()))
	}
	if g.Match().Player == nil || !g.Match().Player.Body.Alive() {
		t.Error("new match player missing")
	}
}

func TestGamePauseToggle(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if !g.Step(in).State.Paused {
		t.Fatal("pause action should pause")
	}
	if g.Step(in).State.Paused {
		t.Error("second pause action should resume")
	}
}

func TestDebugKeys(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  int
	}{
		{"disabled", false, 0},
		{"enabled", true, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDebug(tt.debug)
			t.Cleanup(func() { SetDebug(false) })

			g := New()
			g.Reset(testRuntime(3))
			in := core.NewInputFrame()
			in.Set(core.ActionDebugBonus)
			in.Set(core.ActionDebugSlot1)
			g.Step(in)

			if g.State().Score != tt.want {
				t.Errorf("score = %d, want %d", g.State().Score, tt.want)
			}
			crates := len(g.Match().Items.PowerUps())
			if tt.debug != (crates == 1) {
				t.Errorf("crates = %d with debug %v", crates, tt.debug)
			}
		})
	}
}

func TestReport(t *testing.T) {
	g := New()
	g.Reset(testRuntime(9))
	if _, ok := g.Report(); ok {
		t.Fatal("report before game over")
	}

	g.Match().State.Score = 42
	g.Match().EndGame()
	r, ok := g.Report()
	if !ok {
		t.Fatal("no report after game over")
	}
	if r.GameID != GameID || r.Score != 42 || r.MatchID != g.Match().ID {
		t.Errorf("report = %+v", r)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{GameID, ClassicGameID} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		if _, ok := g.(registry.Reporter); !ok {
			t.Errorf("%s should report matches", id)
		}
		if _, ok := g.(registry.Resizer); !ok {
			t.Errorf("%s should resize in place", id)
		}
		if _, ok := g.(registry.Debugger); !ok {
			t.Errorf("%s should expose its debug flag", id)
		}
	}
}

func TestClassicUsesSharedSlot(t *testing.T) {
	g := NewClassic()
	g.Reset(testRuntime(1))
	if !g.Match().Player.sharedStatusSlot {
		t.Error("classic variant should share the status slot")
	}
	if New().Title() == g.Title() {
		t.Error("variants need distinct titles")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(5))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Dash") {
		t.Errorf("status row = %q", screen.Row(1))
	}
	if screen.Get(0, hudRows) != '╔' {
		t.Errorf("arena corner = %q", screen.Get(0, hudRows))
	}
	if !strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("player not drawn")
	}

	g.Match().TogglePause()
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause box not drawn")
	}

	g.Match().TogglePause()
	g.Match().EndGame()
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over box not drawn")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	rt := testRuntime(1)
	rt.ScreenW, rt.ScreenH = 20, 10
	g.Reset(rt)

	before := g.Match().Elapsed()
	g.Step(core.NewInputFrame())
	if g.Match().Elapsed() != before {
		t.Error("too small screen should not simulate")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("missing size hint")
	}
}

func TestSeekerGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '►'},
		{3.14159265 / 2, '▼'},
		{3.14159265, '◄'},
		{-3.14159265 / 2, '▲'},
	}
	for _, tt := range tests {
		if got := seekerGlyph(tt.angle); got != tt.want {
			t.Errorf("seekerGlyph(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}

func TestResizeKeepsMatch(t *testing.T) {
	g := New()
	g.Reset(testRuntime(4))
	m := g.Match()

	g.Resize(20, 10)
	before := m.Elapsed()
	g.Step(core.NewInputFrame())
	if m.Elapsed() != before {
		t.Error("shrunk screen should pause the simulation")
	}

	g.Resize(100, 30)
	g.Step(core.NewInputFrame())
	if g.Match() != m || m.Elapsed() == before {
		t.Error("growing the screen should resume the same match")
	}
}
