// Package config provides YAML-based game configuration loading for the
// sinkhole platform.
package config

// SinkholeConfig contains all tunables for the sinkhole game.
type SinkholeConfig struct {
	Hole        HoleConfig        `yaml:"hole"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Progression ProgressionConfig `yaml:"progression"`
}

// HoleConfig defines hole movement and swallow parameters.
type HoleConfig struct {
	// MoveSpeed is drag speed in world units per second.
	MoveSpeed float64 `yaml:"move_speed"`
	// ProximityFactor scales the capture range relative to hole radius.
	ProximityFactor float64 `yaml:"proximity_factor"`
	// GrowthRate converts swallowed object radius into hole growth.
	GrowthRate float64 `yaml:"growth_rate"`
	// DisposalDepth is the (negative) Y below which a fall finalizes.
	DisposalDepth float64 `yaml:"disposal_depth"`
	// PollIntervalMS is how often in-flight falls are checked.
	PollIntervalMS int `yaml:"poll_interval_ms"`
	// CutCooldownMS rate-limits movement-triggered terrain cuts.
	CutCooldownMS int `yaml:"cut_cooldown_ms"`
	// MaxFallSeconds abandons stuck falls after this long; 0 waits forever.
	MaxFallSeconds float64 `yaml:"max_fall_seconds"`
}

// PhysicsConfig defines world physics parameters.
type PhysicsConfig struct {
	// Gravity is the fall acceleration in world units per second squared,
	// used when a level does not set its own.
	Gravity float64 `yaml:"gravity"`
}

// ProgressionConfig defines level-transition behavior.
type ProgressionConfig struct {
	// VictoryDelaySeconds is the celebration pause before the next level.
	VictoryDelaySeconds float64 `yaml:"victory_delay_seconds"`
}
