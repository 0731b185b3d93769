package neondash

import "github.com/vovakirdan/neon-dash/internal/core"

// PowerUpEffect is what a crate does when collected. The set is closed;
// apply is the single dispatch point.
type PowerUpEffect interface {
	Name() string
	Label() string
	Glyph() rune
	Color() core.Color

	apply(it *Items)
}

// Effect types carried by crates.
type (
	ShieldEffect     struct{}
	PhantomEffect    struct{}
	MagnetEffect     struct{}
	TimeWarpEffect   struct{}
	EMPEffect        struct{}
	MultiplierEffect struct{}
	OverdriveEffect  struct{}
)

// Effects lists every effect in debug slot order.
var Effects = []PowerUpEffect{
	ShieldEffect{},
	PhantomEffect{},
	MagnetEffect{},
	TimeWarpEffect{},
	EMPEffect{},
	MultiplierEffect{},
	OverdriveEffect{},
}

func (ShieldEffect) Name() string      { return "shield" }
func (ShieldEffect) Label() string     { return "SHIELD!" }
func (ShieldEffect) Glyph() rune       { return 'S' }
func (ShieldEffect) Color() core.Color { return core.ColorBrightCyan }

func (ShieldEffect) apply(it *Items) {
	it.player.ActivateShield()
}

func (PhantomEffect) Name() string      { return "phantom" }
func (PhantomEffect) Label() string     { return "PHANTOM!" }
func (PhantomEffect) Glyph() rune       { return 'G' }
func (PhantomEffect) Color() core.Color { return core.ColorBrightWhite }

func (PhantomEffect) apply(it *Items) {
	it.player.ActivatePhantom(it.ctx.Cfg.PowerUps.Phantom())
}

func (MagnetEffect) Name() string      { return "magnet" }
func (MagnetEffect) Label() string     { return "MAGNET!" }
func (MagnetEffect) Glyph() rune       { return 'M' }
func (MagnetEffect) Color() core.Color { return core.ColorMagenta }

func (MagnetEffect) apply(it *Items) {
	it.player.ActivateMagnet(it.ctx.Cfg.PowerUps.Magnet())
}

func (TimeWarpEffect) Name() string      { return "time_warp" }
func (TimeWarpEffect) Label() string     { return "TIME WARP!" }
func (TimeWarpEffect) Glyph() rune       { return 'T' }
func (TimeWarpEffect) Color() core.Color { return core.ColorBrightGreen }

func (TimeWarpEffect) apply(it *Items) {
	it.ActivateTimeWarp(it.ctx.Cfg.PowerUps.TimeWarp())
}

func (EMPEffect) Name() string      { return "emp" }
func (EMPEffect) Label() string     { return "EMP BLAST!" }
func (EMPEffect) Glyph() rune       { return 'E' }
func (EMPEffect) Color() core.Color { return core.ColorRed }

func (EMPEffect) apply(it *Items) {
	it.spawner.TriggerEMP()
}

func (MultiplierEffect) Name() string      { return "multiplier" }
func (MultiplierEffect) Label() string     { return "2X SCORE!" }
func (MultiplierEffect) Glyph() rune       { return 'X' }
func (MultiplierEffect) Color() core.Color { return core.ColorYellow }

func (MultiplierEffect) apply(it *Items) {
	it.scorer.ActivateMultiplier(it.ctx.Cfg.PowerUps.MultiplierDuration())
}

func (OverdriveEffect) Name() string      { return "overdrive" }
func (OverdriveEffect) Label() string     { return "OVERDRIVE!" }
func (OverdriveEffect) Glyph() rune       { return 'O' }
func (OverdriveEffect) Color() core.Color { return core.ColorOrange }

func (OverdriveEffect) apply(it *Items) {
	it.player.ActivateOverdrive(it.ctx.Cfg.PowerUps.Overdrive())
}
