package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

const neonDashFile = "neondash.yaml"

// LoadNeonDash loads Neon Dash configuration.
// Search order: customPath -> ~/.neondash/configs/neondash.yaml -> ./configs/neondash.yaml -> embedded default
//
// Files are layered over the hardcoded defaults, so a file only needs the
// keys it changes. A custom path that cannot be read, parsed or validated is
// an error; a broken file found during the search is skipped.
func LoadNeonDash(customPath string) (NeonDashConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultNeonDashConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseNeonDash(data)
		if err != nil {
			return DefaultNeonDashConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(neonDashFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseNeonDash(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", neonDashFile)); err == nil {
		if cfg, err := parseNeonDash(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseNeonDash(defaultNeonDashYAML)
	if err != nil {
		return DefaultNeonDashConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseNeonDash(data []byte) (NeonDashConfig, error) {
	cfg := DefaultNeonDashConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neondash", "configs", filename)
}

// Validate reports every out-of-range value at once.
func (c *NeonDashConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		el.Add(fmt.Errorf("arena: width and height must be positive"))
	}
	el.Add(c.Player.validate())
	el.Add(c.Hostiles.validate())
	el.Add(c.Phases.validate())
	el.Add(c.Items.validate())
	el.Add(c.PowerUps.validate())

	if c.Scoring.TrickleAmount < 0 {
		el.Add(fmt.Errorf("scoring: trickle_amount must not be negative"))
	}
	if c.Scoring.TricklePeriodMS <= 0 {
		el.Add(fmt.Errorf("scoring: trickle_period_ms must be positive"))
	}

	return el.Err()
}

func (p *PlayerConfig) validate() error {
	el := errors.NewErrorList()
	if p.Size <= 0 {
		el.Add(fmt.Errorf("player: size must be positive"))
	}
	if p.MaxSpeed <= 0 || p.BrakeMaxSpeed <= 0 {
		el.Add(fmt.Errorf("player: max_speed and brake_max_speed must be positive"))
	}
	if p.Drag < 0 || p.BrakeDrag < 0 {
		el.Add(fmt.Errorf("player: drag must not be negative"))
	}
	if p.DashCooldownMS < 0 {
		el.Add(fmt.Errorf("player: dash_cooldown_ms must not be negative"))
	}
	return el.Err()
}

func (h *HostileConfig) validate() error {
	el := errors.NewErrorList()
	if h.Size <= 0 {
		el.Add(fmt.Errorf("hostiles: size must be positive"))
	}
	if h.StartSpeed <= 0 {
		el.Add(fmt.Errorf("hostiles: start_speed must be positive"))
	}
	if h.MaxSpeed < h.StartSpeed {
		el.Add(fmt.Errorf("hostiles: max_speed %v is below start_speed %v", h.MaxSpeed, h.StartSpeed))
	}
	if h.SpeedStep < 0 || h.IntervalStepMS < 0 {
		el.Add(fmt.Errorf("hostiles: ramp steps must not be negative"))
	}
	if h.MinSpawnIntervalMS <= 0 {
		el.Add(fmt.Errorf("hostiles: min_spawn_interval_ms must be positive"))
	}
	if h.SpawnIntervalMS < h.MinSpawnIntervalMS {
		el.Add(fmt.Errorf("hostiles: spawn_interval_ms %d is below min_spawn_interval_ms %d",
			h.SpawnIntervalMS, h.MinSpawnIntervalMS))
	}
	if h.RampPeriodMS <= 0 {
		el.Add(fmt.Errorf("hostiles: ramp_period_ms must be positive"))
	}
	if h.TelegraphPulses < 0 || h.TelegraphPulseMS < 0 {
		el.Add(fmt.Errorf("hostiles: telegraph values must not be negative"))
	}
	return el.Err()
}

func (p *PhaseConfig) validate() error {
	el := errors.NewErrorList()
	if p.Phase1Score <= 0 || p.Phase2Score <= p.Phase1Score {
		el.Add(fmt.Errorf("phases: thresholds must satisfy 0 < phase1_score < phase2_score"))
	}
	if p.Phase1PeriodMS <= 0 || p.Phase2PeriodMS <= 0 {
		el.Add(fmt.Errorf("phases: seeker periods must be positive"))
	}
	if p.Phase2MinBatch < 1 || p.Phase2MaxBatch < p.Phase2MinBatch {
		el.Add(fmt.Errorf("phases: batch range [%d,%d] is invalid", p.Phase2MinBatch, p.Phase2MaxBatch))
	}
	if p.StaggerMS < 0 {
		el.Add(fmt.Errorf("phases: stagger_ms must not be negative"))
	}
	return el.Err()
}

func (i *ItemConfig) validate() error {
	el := errors.NewErrorList()
	if i.OrbSize <= 0 || i.PowerUpSize <= 0 {
		el.Add(fmt.Errorf("items: sizes must be positive"))
	}
	if i.OrbPeriodMS <= 0 || i.PowerUpPeriodMS <= 0 {
		el.Add(fmt.Errorf("items: spawn periods must be positive"))
	}
	if i.PowerUpLifeMS <= 0 {
		el.Add(fmt.Errorf("items: powerup_life_ms must be positive"))
	}
	if i.OrbScore < 0 {
		el.Add(fmt.Errorf("items: orb_score must not be negative"))
	}
	return el.Err()
}

func (p *PowerUpConfig) validate() error {
	el := errors.NewErrorList()
	if p.PhantomMS <= 0 || p.MagnetMS <= 0 || p.OverdriveMS <= 0 || p.TimeWarpMS <= 0 || p.MultiplierMS <= 0 {
		el.Add(fmt.Errorf("powerups: durations must be positive"))
	}
	if p.WarpFactor <= 0 || p.WarpFactor > 1 {
		el.Add(fmt.Errorf("powerups: warp_factor must be in (0, 1]"))
	}
	if p.Multiplier < 1 {
		el.Add(fmt.Errorf("powerups: multiplier must be at least 1"))
	}
	return el.Err()
}

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyNeonDashPreset modifies the config based on a difficulty preset.
func ApplyNeonDashPreset(cfg *NeonDashConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Hostiles.RampEnabled = false
	} else {
		cfg.Hostiles.RampEnabled = true
	}

	// Adjust starting pressure based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Hostiles.StartSpeed = 90
		cfg.Hostiles.SpawnIntervalMS = 1300
		cfg.Player.DashCooldownMS = 800
	case DifficultyHard:
		cfg.Hostiles.StartSpeed = 200
		cfg.Hostiles.SpawnIntervalMS = 700
	}

	if cfg.Hostiles.StartSpeed > cfg.Hostiles.MaxSpeed {
		cfg.Hostiles.StartSpeed = cfg.Hostiles.MaxSpeed
	}
	if cfg.Hostiles.SpawnIntervalMS < cfg.Hostiles.MinSpawnIntervalMS {
		cfg.Hostiles.SpawnIntervalMS = cfg.Hostiles.MinSpawnIntervalMS
	}
}
