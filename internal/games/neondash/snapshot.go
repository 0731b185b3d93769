package neondash

import "math"

// Snapshot is a flattened view of a match for determinism checks and
// debugging. Positions are rounded to whole world units.
type Snapshot struct {
	Elapsed    int64 // nanoseconds of match time
	Score      int
	Multiplier int
	Phase      int
	Paused     bool
	GameOver   bool

	PlayerX, PlayerY int
	DashState        int

	HostileSpeed    int
	SpawnIntervalMS int64

	// Each hostile is 3 ints: kind (0 normal, 1 seeker), X, Y
	HostileData []int
	// Each orb is 2 ints: X, Y
	OrbData []int
	// Each crate is 3 ints: effect slot, X, Y
	PowerUpData []int

	RNGState uint64
}

// Snapshot returns the current match state.
func (m *Match) Snapshot() Snapshot {
	hostiles := m.Spawner.Hostiles()
	hostileData := make([]int, 0, len(hostiles)*3)
	for _, h := range hostiles {
		kind := 0
		if h.Kind == Seeker {
			kind = 1
		}
		hostileData = append(hostileData, kind, round(h.Pos().X), round(h.Pos().Y))
	}

	orbs := m.Items.Orbs()
	orbData := make([]int, 0, len(orbs)*2)
	for _, o := range orbs {
		orbData = append(orbData, round(o.Pos().X), round(o.Pos().Y))
	}

	pus := m.Items.PowerUps()
	puData := make([]int, 0, len(pus)*3)
	for _, p := range pus {
		puData = append(puData, effectSlot(p.Effect), round(p.Pos().X), round(p.Pos().Y))
	}

	return Snapshot{
		Elapsed:         int64(m.Elapsed()),
		Score:           m.State.Score,
		Multiplier:      m.State.Multiplier,
		Phase:           m.Spawner.Phase(),
		Paused:          m.State.Paused,
		GameOver:        m.State.GameOver,
		PlayerX:         round(m.Player.Pos().X),
		PlayerY:         round(m.Player.Pos().Y),
		DashState:       int(m.Player.DashState()),
		HostileSpeed:    round(m.Spawner.Speed()),
		SpawnIntervalMS: m.Spawner.Interval().Milliseconds(),
		HostileData:     hostileData,
		OrbData:         orbData,
		PowerUpData:     puData,
		RNGState:        m.ctx.RNG.State(),
	}
}

func round(f float64) int {
	return int(math.Round(f))
}

func effectSlot(e PowerUpEffect) int {
	for i, x := range Effects {
		if x == e {
			return i
		}
	}
	return -1
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Elapsed) //#nosec G115 -- hash computation
	mix := func(v int) {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	mix(snap.Score)
	mix(snap.Multiplier)
	mix(snap.Phase)
	mix(boolInt(snap.Paused))
	mix(boolInt(snap.GameOver))
	mix(snap.PlayerX)
	mix(snap.PlayerY)
	mix(snap.DashState)
	mix(snap.HostileSpeed)
	mix(int(snap.SpawnIntervalMS))
	for _, v := range snap.HostileData {
		mix(v)
	}
	for _, v := range snap.OrbData {
		mix(v)
	}
	for _, v := range snap.PowerUpData {
		mix(v)
	}
	h = h*31 + snap.RNGState
	return h
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
