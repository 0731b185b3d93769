// Package config provides YAML-based game configuration loading,
// difficulty presets and validation for Neon Dash.
package config

import "time"

// NeonDashConfig contains all tunables of a Neon Dash match.
// Durations are stored in YAML as integer milliseconds.
type NeonDashConfig struct {
	Arena    ArenaConfig   `yaml:"arena"`
	Player   PlayerConfig  `yaml:"player"`
	Hostiles HostileConfig `yaml:"hostiles"`
	Phases   PhaseConfig   `yaml:"phases"`
	Items    ItemConfig    `yaml:"items"`
	PowerUps PowerUpConfig `yaml:"powerups"`
	Scoring  ScoringConfig `yaml:"scoring"`
	Debug    DebugConfig   `yaml:"debug"`
}

// ArenaConfig defines the world rectangle in world units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines movement and dash parameters.
type PlayerConfig struct {
	Size           float64 `yaml:"size"`
	Accel          float64 `yaml:"accel"`
	Drag           float64 `yaml:"drag"`
	MaxSpeed       float64 `yaml:"max_speed"`
	BrakeDrag      float64 `yaml:"brake_drag"`
	BrakeMaxSpeed  float64 `yaml:"brake_max_speed"`
	DashSpeed      float64 `yaml:"dash_speed"`
	DashCooldownMS int     `yaml:"dash_cooldown_ms"`
}

// DashCooldown returns the dash cooldown as a duration.
func (p PlayerConfig) DashCooldown() time.Duration {
	return ms(p.DashCooldownMS)
}

// HostileConfig defines spawning and the difficulty ramp.
type HostileConfig struct {
	Size               float64 `yaml:"size"`
	StartSpeed         float64 `yaml:"start_speed"`
	MaxSpeed           float64 `yaml:"max_speed"`
	SpeedStep          float64 `yaml:"speed_step"`
	SpawnIntervalMS    int     `yaml:"spawn_interval_ms"`
	MinSpawnIntervalMS int     `yaml:"min_spawn_interval_ms"`
	IntervalStepMS     int     `yaml:"interval_step_ms"`
	RampEnabled        bool    `yaml:"ramp_enabled"`
	RampPeriodMS       int     `yaml:"ramp_period_ms"`
	SeekerSpeedFactor  float64 `yaml:"seeker_speed_factor"`
	TelegraphPulses    int     `yaml:"telegraph_pulses"`
	TelegraphPulseMS   int     `yaml:"telegraph_pulse_ms"`
	CullMargin         float64 `yaml:"cull_margin"`
}

// SpawnInterval returns the starting spawn interval.
func (h HostileConfig) SpawnInterval() time.Duration { return ms(h.SpawnIntervalMS) }

// MinSpawnInterval returns the spawn interval floor.
func (h HostileConfig) MinSpawnInterval() time.Duration { return ms(h.MinSpawnIntervalMS) }

// IntervalStep returns the per-ramp interval reduction.
func (h HostileConfig) IntervalStep() time.Duration { return ms(h.IntervalStepMS) }

// RampPeriod returns the ramp period.
func (h HostileConfig) RampPeriod() time.Duration { return ms(h.RampPeriodMS) }

// TelegraphDuration returns the total warning time before a spawn:
// every pulse fades out and back in.
func (h HostileConfig) TelegraphDuration() time.Duration {
	return ms(h.TelegraphPulseMS) * time.Duration(2*h.TelegraphPulses)
}

// PhaseConfig defines the score thresholds and seeker cadence per phase.
type PhaseConfig struct {
	Phase1Score    int `yaml:"phase1_score"`
	Phase2Score    int `yaml:"phase2_score"`
	Phase1PeriodMS int `yaml:"phase1_period_ms"`
	Phase2PeriodMS int `yaml:"phase2_period_ms"`
	Phase2MinBatch int `yaml:"phase2_min_batch"`
	Phase2MaxBatch int `yaml:"phase2_max_batch"`
	StaggerMS      int `yaml:"stagger_ms"`
}

// Phase1Period returns the seeker period in phase 1.
func (p PhaseConfig) Phase1Period() time.Duration { return ms(p.Phase1PeriodMS) }

// Phase2Period returns the seeker period in phase 2.
func (p PhaseConfig) Phase2Period() time.Duration { return ms(p.Phase2PeriodMS) }

// Stagger returns the delay between seekers of one batch.
func (p PhaseConfig) Stagger() time.Duration { return ms(p.StaggerMS) }

// ItemConfig defines orbs and power-up crates.
type ItemConfig struct {
	OrbSize         float64 `yaml:"orb_size"`
	OrbPeriodMS     int     `yaml:"orb_period_ms"`
	OrbScore        int     `yaml:"orb_score"`
	OrbSafeRadius   float64 `yaml:"orb_safe_radius"`
	PowerUpSize     float64 `yaml:"powerup_size"`
	PowerUpPeriodMS int     `yaml:"powerup_period_ms"`
	PowerUpLifeMS   int     `yaml:"powerup_life_ms"`
	MagnetSpeed     float64 `yaml:"magnet_speed"`
	BobAmplitude    float64 `yaml:"bob_amplitude"`
	BobHalfPeriodMS int     `yaml:"bob_half_period_ms"`
}

// OrbPeriod returns the orb spawn period.
func (i ItemConfig) OrbPeriod() time.Duration { return ms(i.OrbPeriodMS) }

// PowerUpPeriod returns the power-up spawn period.
func (i ItemConfig) PowerUpPeriod() time.Duration { return ms(i.PowerUpPeriodMS) }

// PowerUpLife returns how long an uncollected power-up stays.
func (i ItemConfig) PowerUpLife() time.Duration { return ms(i.PowerUpLifeMS) }

// BobHalfPeriod returns the time of one bob sweep.
func (i ItemConfig) BobHalfPeriod() time.Duration { return ms(i.BobHalfPeriodMS) }

// PowerUpConfig defines effect durations and strengths.
type PowerUpConfig struct {
	PhantomMS    int     `yaml:"phantom_ms"`
	MagnetMS     int     `yaml:"magnet_ms"`
	OverdriveMS  int     `yaml:"overdrive_ms"`
	TimeWarpMS   int     `yaml:"time_warp_ms"`
	MultiplierMS int     `yaml:"multiplier_ms"`
	WarpFactor   float64 `yaml:"warp_factor"`
	Multiplier   int     `yaml:"multiplier"`
}

// Phantom returns the phantom duration.
func (p PowerUpConfig) Phantom() time.Duration { return ms(p.PhantomMS) }

// Magnet returns the magnet duration.
func (p PowerUpConfig) Magnet() time.Duration { return ms(p.MagnetMS) }

// Overdrive returns the overdrive duration.
func (p PowerUpConfig) Overdrive() time.Duration { return ms(p.OverdriveMS) }

// TimeWarp returns the time warp duration.
func (p PowerUpConfig) TimeWarp() time.Duration { return ms(p.TimeWarpMS) }

// MultiplierDuration returns the score multiplier duration.
func (p PowerUpConfig) MultiplierDuration() time.Duration { return ms(p.MultiplierMS) }

// ScoringConfig defines the passive score trickle.
type ScoringConfig struct {
	TrickleAmount   int `yaml:"trickle_amount"`
	TricklePeriodMS int `yaml:"trickle_period_ms"`
	DebugBonus      int `yaml:"debug_bonus"`
}

// TricklePeriod returns the trickle period.
func (s ScoringConfig) TricklePeriod() time.Duration { return ms(s.TricklePeriodMS) }

// DebugConfig enables the debug key surface.
type DebugConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
