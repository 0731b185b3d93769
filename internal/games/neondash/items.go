package neondash

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/neon-dash/internal/core"
	"github.com/vovakirdan/neon-dash/internal/sched"
)

// itemMargin keeps random item positions away from the arena border.
const itemMargin = 50.0

// Scorer is the part of the match that items award score through.
type Scorer interface {
	AddScore(base int)
	ActivateMultiplier(d time.Duration)
}

// Items owns orbs and power-up crates and dispatches their effects.
type Items struct {
	ctx     *Context
	player  *Player
	spawner *Spawner
	scorer  Scorer

	orbs     []*Orb
	powerUps []*PowerUp

	orbTimer     *sched.Timer
	powerUpTimer *sched.Timer
	warpRevert   *sched.Timer
}

// NewItems creates the item director and starts its spawn loops.
func NewItems(ctx *Context, player *Player, spawner *Spawner, scorer Scorer) *Items {
	ic := ctx.Cfg.Items
	it := &Items{
		ctx:     ctx,
		player:  player,
		spawner: spawner,
		scorer:  scorer,
	}
	it.orbTimer = ctx.Sched.Every(ic.OrbPeriod(), it.spawnOrb).Guard(ctx.running)
	it.powerUpTimer = ctx.Sched.Every(ic.PowerUpPeriod(), it.spawnRandomPowerUp).Guard(ctx.running)
	return it
}

// Update runs magnet attraction. Without a magnet orbs stay put.
func (it *Items) Update() {
	magnet := it.player.Alive() && it.player.Magnetized()
	target := it.player.Pos()
	speed := it.ctx.Cfg.Items.MagnetSpeed
	for _, o := range it.orbs {
		if !o.Alive() {
			continue
		}
		if magnet {
			v := o.Body.Pos.Toward(target, speed)
			o.Body.SetVelocity(v.X, v.Y)
		} else if !o.Body.Vel.IsZero() {
			o.Body.SetVelocity(0, 0)
		}
	}
}

func (it *Items) randomPos() core.Vec2 {
	w, h := it.ctx.World.Width, it.ctx.World.Height
	rng := it.ctx.RNG
	return core.V(rng.Range(itemMargin, w-itemMargin), rng.Range(itemMargin, h-itemMargin))
}

// spawnOrb places one orb, skipping the attempt if it lands too close to
// the player.
func (it *Items) spawnOrb() {
	pos := it.randomPos()
	if pos.Dist(it.player.Pos()) < it.ctx.Cfg.Items.OrbSafeRadius {
		return
	}
	it.SpawnOrb(pos)
}

// SpawnOrb places an orb at pos.
func (it *Items) SpawnOrb(pos core.Vec2) *Orb {
	size := it.ctx.Cfg.Items.OrbSize
	o := &Orb{Body: it.ctx.World.CreateBody(GroupOrb, pos, size, size)}
	o.Body.Owner = o
	it.orbs = append(it.orbs, o)
	return o
}

func (it *Items) spawnRandomPowerUp() {
	effect := Effects[it.ctx.RNG.Intn(len(Effects))]
	it.SpawnPowerUp(effect, it.randomPos())
}

// SpawnPowerUp places a crate carrying effect at pos. The crate removes
// itself if nobody collects it in time.
func (it *Items) SpawnPowerUp(effect PowerUpEffect, pos core.Vec2) *PowerUp {
	size := it.ctx.Cfg.Items.PowerUpSize
	p := &PowerUp{
		Effect: effect,
		Body:   it.ctx.World.CreateBody(GroupPowerUp, pos, size, size),
		Born:   it.ctx.Now(),
	}
	p.Body.Owner = p
	p.expiry = it.ctx.Sched.After(it.ctx.Cfg.Items.PowerUpLife(), func() {
		it.ctx.World.Destroy(p.Body)
	}).Guard(p.Alive)
	it.powerUps = append(it.powerUps, p)
	return p
}

// CollectOrb awards the orb's score and removes it.
func (it *Items) CollectOrb(o *Orb) {
	if !o.Alive() {
		return
	}
	it.ctx.World.Destroy(o.Body)
	it.ctx.FX.Sound(SoundOrb)

	base := it.ctx.Cfg.Items.OrbScore
	it.ctx.FX.Text(it.player.Pos(), fmt.Sprintf("+%d", base*it.ctx.State.Multiplier), core.ColorBrightYellow)
	it.scorer.AddScore(base)
}

// CollectPowerUp removes the crate and applies its effect once.
func (it *Items) CollectPowerUp(p *PowerUp) {
	if !p.Alive() {
		return
	}
	it.ctx.World.Destroy(p.Body)
	p.expiry.Cancel()
	it.ctx.FX.Sound(SoundPowerUp)

	if p.Effect == nil {
		return
	}
	it.ctx.FX.Text(it.player.Pos(), p.Effect.Label(), p.Effect.Color())
	it.ctx.Log.Info("power-up", "effect", p.Effect.Name())
	p.Effect.apply(it)
}

// ActivateTimeWarp slows hostiles for d. Only the newest activation
// reverts it.
func (it *Items) ActivateTimeWarp(d time.Duration) {
	it.spawner.SetTimeWarp(true)
	it.warpRevert.Cancel()
	it.warpRevert = it.ctx.Sched.After(d, func() {
		it.spawner.SetTimeWarp(false)
	})
}

// compact drops collected and expired items.
func (it *Items) compact() {
	orbs := it.orbs[:0]
	for _, o := range it.orbs {
		if o.Alive() {
			orbs = append(orbs, o)
		}
	}
	clear(it.orbs[len(orbs):])
	it.orbs = orbs

	pus := it.powerUps[:0]
	for _, p := range it.powerUps {
		if p.Alive() {
			pus = append(pus, p)
		}
	}
	clear(it.powerUps[len(pus):])
	it.powerUps = pus
}

// Orbs returns the live orbs.
func (it *Items) Orbs() []*Orb {
	out := make([]*Orb, 0, len(it.orbs))
	for _, o := range it.orbs {
		if o.Alive() {
			out = append(out, o)
		}
	}
	return out
}

// PowerUps returns the live crates.
func (it *Items) PowerUps() []*PowerUp {
	out := make([]*PowerUp, 0, len(it.powerUps))
	for _, p := range it.powerUps {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// Bob returns the crate's vertical display offset at now: a sweep up by
// the bob amplitude and back, one half period each way.
func (it *Items) Bob(p *PowerUp, now time.Duration) float64 {
	ic := it.ctx.Cfg.Items
	half := ic.BobHalfPeriod()
	if half <= 0 {
		return 0
	}
	t := float64((now-p.Born)%(2*half)) / float64(half) // [0, 2)
	return -ic.BobAmplitude * (1 - math.Abs(1-t))
}
