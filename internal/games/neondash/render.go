package neondash

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '◆'
	PhantomChar   = '◇'
	OrbChar       = '•'
	TelegraphChar = '!'
	BurstChar     = '*'
	DashFull      = '█'
	DashEmpty     = '░'
)

// hudRows is the number of rows above the arena box.
const hudRows = 2

// seekerArrows point a seeker along its heading, starting east and
// turning clockwise in screen space.
var seekerArrows = []rune{'►', '◢', '▼', '◣', '◄', '◤', '▲', '◥'}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.match == nil {
		return
	}

	v := newViewport(g.match, dst)

	g.renderHUD(dst)
	v.renderArena(dst)
	v.renderTelegraphs(dst)
	v.renderItems(dst)
	v.renderHostiles(dst)
	v.renderPlayer(dst)
	v.renderBursts(dst)
	v.renderTexts(dst)
	g.renderOverlay(dst)
}

// viewport maps world coordinates into the arena box on screen.
type viewport struct {
	m     *Match
	box   core.Rect
	now   time.Duration
	shake int
}

func newViewport(m *Match, dst *core.Screen) viewport {
	v := viewport{
		m:   m,
		box: core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows),
		now: m.Elapsed(),
	}
	if m.FX().Shaking() {
		// Deterministic jitter so rendering never draws from the match RNG.
		v.shake = int((v.now/(40*time.Millisecond))%3) - 1
	}
	return v
}

// cell returns the screen cell for a world position.
func (v viewport) cell(p core.Vec2) (int, int) {
	cfg := v.m.Config().Arena
	innerW := v.box.W - 2
	innerH := v.box.H - 2
	x := int(p.X / cfg.Width * float64(innerW))
	y := int(p.Y / cfg.Height * float64(innerH))
	x = core.Clamp(x, 0, innerW-1)
	y = core.Clamp(y, 0, innerH-1)
	return v.box.X + 1 + x + v.shake, v.box.Y + 1 + y
}

func (v viewport) set(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	x, y := v.cell(p)
	dst.SetColored(x, y, r, c)
}

func (v viewport) renderArena(dst *core.Screen) {
	border := core.ColorBrightBlue
	if v.m.FX().Flashing() {
		border = core.ColorBrightWhite
	}
	b := v.box
	dst.SetColored(b.X, b.Y, '╔', border)
	dst.SetColored(b.Right()-1, b.Y, '╗', border)
	dst.SetColored(b.X, b.Bottom()-1, '╚', border)
	dst.SetColored(b.Right()-1, b.Bottom()-1, '╝', border)
	for x := b.X + 1; x < b.Right()-1; x++ {
		dst.SetColored(x, b.Y, '═', border)
		dst.SetColored(x, b.Bottom()-1, '═', border)
	}
	for y := b.Y + 1; y < b.Bottom()-1; y++ {
		dst.SetColored(b.X, y, '║', border)
		dst.SetColored(b.Right()-1, y, '║', border)
	}

	if v.m.FX().Flashing() {
		for y := b.Y + 1; y < b.Bottom()-1; y++ {
			for x := b.X + 1; x < b.Right()-1; x++ {
				dst.SetColored(x, y, '░', core.ColorWhite)
			}
		}
	}
}

func (v viewport) renderTelegraphs(dst *core.Screen) {
	for _, t := range v.m.FX().Telegraphs() {
		if t.Visible(v.now) {
			v.set(dst, t.Pos, TelegraphChar, t.Kind.TelegraphColor())
		}
	}
}

func (v viewport) renderItems(dst *core.Screen) {
	for _, o := range v.m.Items.Orbs() {
		v.set(dst, o.Pos(), OrbChar, core.ColorBrightYellow)
	}
	for _, p := range v.m.Items.PowerUps() {
		pos := p.Pos()
		pos.Y += v.m.Items.Bob(p, v.now)
		v.set(dst, pos, p.Effect.Glyph(), p.Effect.Color())
	}
}

func (v viewport) renderHostiles(dst *core.Screen) {
	for _, h := range v.m.Spawner.Hostiles() {
		glyph := h.Kind.Glyph()
		if h.Kind == Seeker {
			glyph = seekerGlyph(h.Facing)
		}
		v.set(dst, h.Pos(), glyph, h.Kind.Color())
	}
}

func seekerGlyph(angle float64) rune {
	step := 2 * math.Pi / float64(len(seekerArrows))
	i := int(math.Round(angle/step)) % len(seekerArrows)
	if i < 0 {
		i += len(seekerArrows)
	}
	return seekerArrows[i]
}

func (v viewport) renderPlayer(dst *core.Screen) {
	p := v.m.Player
	if !p.Alive() {
		return
	}
	glyph, color := PlayerChar, core.ColorBrightCyan
	switch {
	case p.Phantom():
		glyph, color = PhantomChar, core.ColorGray
	case p.Shielded():
		color = core.ColorBrightGreen
	case p.Overdrive():
		color = core.ColorOrange
	}
	v.set(dst, p.Pos(), glyph, color)
}

func (v viewport) renderBursts(dst *core.Screen) {
	cfg := v.m.Config().Arena
	for _, b := range v.m.FX().Bursts() {
		r := b.Radius * b.Progress(v.now)
		// Eight sparks on the expanding ring.
		for i := range 8 {
			a := float64(i) * math.Pi / 4
			p := core.V(b.Pos.X+r*math.Cos(a), b.Pos.Y+r*math.Sin(a))
			if p.X < 0 || p.Y < 0 || p.X > cfg.Width || p.Y > cfg.Height {
				continue
			}
			v.set(dst, p, BurstChar, b.Color)
		}
	}
}

func (v viewport) renderTexts(dst *core.Screen) {
	for _, t := range v.m.FX().Texts() {
		x, y := v.cell(t.Pos)
		dst.DrawTextColored(x-len(t.Text)/2, y, t.Text, t.Color)
	}
}

// renderHUD draws the score line and the status line.
func (g *Game) renderHUD(dst *core.Screen) {
	m := g.match
	st := m.State

	score := fmt.Sprintf("Score: %d", st.Score)
	if st.Multiplier > 1 {
		score += fmt.Sprintf(" x%d", st.Multiplier)
	}
	dst.DrawTextColored(1, 0, score, core.ColorBrightYellow)

	dst.DrawTextCentered(0, fmt.Sprintf("Best: %d", max(st.Best, st.Score)))

	right := fmt.Sprintf("Phase %d", m.Spawner.Phase())
	if st.GodMode {
		right = "GOD " + right
	}
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorBrightMagenta)

	// Status line: dash meter, then active statuses.
	x := 1
	dst.DrawText(x, 1, "Dash ")
	x += 5
	const meter = 10
	filled := int(m.Player.DashProgress() * meter)
	for i := range meter {
		r, c := DashEmpty, core.ColorGray
		if i < filled {
			r, c = DashFull, core.ColorBrightCyan
		}
		dst.SetColored(x+i, 1, r, c)
	}
	x += meter + 1

	var parts []string
	if m.Player.Shielded() {
		parts = append(parts, "SHIELD")
	}
	now := m.Elapsed()
	for _, s := range m.Player.ActiveStatuses() {
		secs := int(math.Ceil(s.Remaining(now).Seconds()))
		parts = append(parts, fmt.Sprintf("%s(%d)", s.Kind, secs))
	}
	if warp, _ := m.Spawner.TimeWarp(); warp {
		parts = append(parts, "WARP")
	}
	if len(parts) > 0 {
		dst.DrawTextColored(x, 1, strings.Join(parts, " "), core.ColorBrightGreen)
	}
}

// renderOverlay draws pause and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	st := g.match.State
	switch {
	case st.GameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", st.Score)}
		if st.NewBest {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "R restart  Q quit")
		drawCenteredBox(dst, lines)
	case st.Paused:
		drawCenteredBox(dst, []string{"PAUSED", "P to resume"})
	}
}

func drawCenteredBox(dst *core.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (w-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
