package config

import (
	_ "embed"
)

//go:embed defaults/sinkhole.yaml
var defaultSinkholeYAML []byte

// DefaultSinkholeConfig returns the hardcoded fallback configuration,
// mirroring the embedded defaults file.
func DefaultSinkholeConfig() SinkholeConfig {
	return SinkholeConfig{
		Hole: HoleConfig{
			MoveSpeed:       4.0,
			ProximityFactor: 0.9,
			GrowthRate:      0.3,
			DisposalDepth:   -2.0,
			PollIntervalMS:  100,
			CutCooldownMS:   100,
			MaxFallSeconds:  0,
		},
		Physics: PhysicsConfig{
			Gravity: 9.8,
		},
		Progression: ProgressionConfig{
			VictoryDelaySeconds: 2.0,
		},
	}
}
