package config

import (
	_ "embed"
)

//go:embed defaults/neondash.yaml
var defaultNeonDashYAML []byte

// DefaultNeonDashConfig returns the default Neon Dash configuration.
func DefaultNeonDashConfig() NeonDashConfig {
	return NeonDashConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			Size:           16,
			Accel:          900,
			Drag:           500,
			MaxSpeed:       320,
			BrakeDrag:      1600,
			BrakeMaxSpeed:  110,
			DashSpeed:      600,
			DashCooldownMS: 1000,
		},
		Hostiles: HostileConfig{
			Size:               16,
			StartSpeed:         120,
			MaxSpeed:           550,
			SpeedStep:          25,
			SpawnIntervalMS:    1000,
			MinSpawnIntervalMS: 300,
			IntervalStepMS:     50,
			RampEnabled:        true,
			RampPeriodMS:       5000,
			SeekerSpeedFactor:  0.65,
			TelegraphPulses:    3,
			TelegraphPulseMS:   100,
			CullMargin:         64,
		},
		Phases: PhaseConfig{
			Phase1Score:    300,
			Phase2Score:    1000,
			Phase1PeriodMS: 5000,
			Phase2PeriodMS: 3000,
			Phase2MinBatch: 1,
			Phase2MaxBatch: 3,
			StaggerMS:      300,
		},
		Items: ItemConfig{
			OrbSize:         12,
			OrbPeriodMS:     3000,
			OrbScore:        50,
			OrbSafeRadius:   100,
			PowerUpSize:     20,
			PowerUpPeriodMS: 15000,
			PowerUpLifeMS:   10000,
			MagnetSpeed:     400,
			BobAmplitude:    10,
			BobHalfPeriodMS: 1000,
		},
		PowerUps: PowerUpConfig{
			PhantomMS:    5000,
			MagnetMS:     10000,
			OverdriveMS:  4000,
			TimeWarpMS:   5000,
			MultiplierMS: 10000,
			WarpFactor:   0.3,
			Multiplier:   2,
		},
		Scoring: ScoringConfig{
			TrickleAmount:   5,
			TricklePeriodMS: 1000,
			DebugBonus:      500,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "neondash", "neondash_classic":
		return defaultNeonDashYAML
	default:
		return nil
	}
}
