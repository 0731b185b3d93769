package neondash

import (
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
)

// Sound cue names. Playback is up to the shell; the match only records them.
const (
	SoundDash    = "dash"
	SoundOrb     = "orb"
	SoundPowerUp = "powerup"
	SoundExplode = "explode"
	SoundShield  = "shield_break"
)

const (
	floatingTextLife = 800 * time.Millisecond
	floatingTextRise = 50.0
	maxSoundCues     = 8
)

// FloatingText is a short message that drifts up and fades.
type FloatingText struct {
	Pos   core.Vec2
	Text  string
	Color core.Color
	Born  time.Duration
}

// Telegraph is the blinking warning shown before a hostile appears.
type Telegraph struct {
	Pos   core.Vec2
	Kind  HostileKind
	Born  time.Duration
	Pulse time.Duration
	done  bool
}

// Visible reports whether the blinking marker is lit at time now. Each
// pulse fades in and back out, lit for its brighter half.
func (t *Telegraph) Visible(now time.Duration) bool {
	if t.Pulse <= 0 {
		return true
	}
	cycle := 2 * t.Pulse
	phase := (now - t.Born) % cycle
	return phase >= t.Pulse/2 && phase < cycle-t.Pulse/2
}

// Burst is an explosion ring.
type Burst struct {
	Pos    core.Vec2
	Radius float64
	Color  core.Color
	Born   time.Duration
	Life   time.Duration
}

// Progress returns how far the burst has expanded, in [0, 1].
func (b Burst) Progress(now time.Duration) float64 {
	if b.Life <= 0 {
		return 1
	}
	return core.ClampF(float64(now-b.Born)/float64(b.Life), 0, 1)
}

// FX collects presentation cues raised by the simulation.
type FX struct {
	now func() time.Duration

	texts      []FloatingText
	telegraphs []*Telegraph
	bursts     []Burst
	sounds     []string
	flashUntil time.Duration
	shakeUntil time.Duration
}

// NewFX creates an effect list timed by the given clock.
func NewFX(now func() time.Duration) *FX {
	return &FX{now: now}
}

// Text shows a floating message above pos.
func (f *FX) Text(pos core.Vec2, text string, c core.Color) {
	f.texts = append(f.texts, FloatingText{Pos: pos, Text: text, Color: c, Born: f.now()})
}

// Telegraph starts a warning marker. Call Done on it when the spawn resolves.
func (f *FX) Telegraph(pos core.Vec2, kind HostileKind, pulse time.Duration) *Telegraph {
	t := &Telegraph{Pos: pos, Kind: kind, Born: f.now(), Pulse: pulse}
	f.telegraphs = append(f.telegraphs, t)
	return t
}

// Done removes a telegraph from display.
func (t *Telegraph) Done() {
	t.done = true
}

// Burst shows an expanding explosion.
func (f *FX) Burst(pos core.Vec2, radius float64, c core.Color, life time.Duration) {
	f.bursts = append(f.bursts, Burst{Pos: pos, Radius: radius, Color: c, Born: f.now(), Life: life})
}

// Flash tints the whole arena for d.
func (f *FX) Flash(d time.Duration) {
	f.flashUntil = max(f.flashUntil, f.now()+d)
}

// Shake jitters the arena for d.
func (f *FX) Shake(d time.Duration) {
	f.shakeUntil = max(f.shakeUntil, f.now()+d)
}

// Sound records a sound cue.
func (f *FX) Sound(name string) {
	f.sounds = append(f.sounds, name)
	if len(f.sounds) > maxSoundCues {
		f.sounds = f.sounds[len(f.sounds)-maxSoundCues:]
	}
}

// Flashing reports whether a flash is active.
func (f *FX) Flashing() bool { return f.now() < f.flashUntil }

// Shaking reports whether a shake is active.
func (f *FX) Shaking() bool { return f.now() < f.shakeUntil }

// Sounds returns the most recent sound cues, oldest first.
func (f *FX) Sounds() []string { return f.sounds }

// Texts returns live floating texts with their current rise offset applied.
func (f *FX) Texts() []FloatingText {
	now := f.now()
	out := make([]FloatingText, 0, len(f.texts))
	for _, t := range f.texts {
		age := now - t.Born
		if age >= floatingTextLife {
			continue
		}
		t.Pos.Y -= floatingTextRise * float64(age) / float64(floatingTextLife)
		out = append(out, t)
	}
	return out
}

// Telegraphs returns the pending warning markers.
func (f *FX) Telegraphs() []*Telegraph {
	out := make([]*Telegraph, 0, len(f.telegraphs))
	for _, t := range f.telegraphs {
		if !t.done {
			out = append(out, t)
		}
	}
	return out
}

// Bursts returns the bursts still expanding.
func (f *FX) Bursts() []Burst {
	now := f.now()
	out := make([]Burst, 0, len(f.bursts))
	for _, b := range f.bursts {
		if now-b.Born < b.Life {
			out = append(out, b)
		}
	}
	return out
}

// Prune drops expired cues.
func (f *FX) Prune() {
	now := f.now()
	texts := f.texts[:0]
	for _, t := range f.texts {
		if now-t.Born < floatingTextLife {
			texts = append(texts, t)
		}
	}
	f.texts = texts
	f.telegraphs = f.Telegraphs()
	f.bursts = f.Bursts()
}
