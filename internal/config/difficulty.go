package config

// DifficultyPreset names a pre-tuned difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI flag value to a preset. Unknown values (including
// the empty string) return "", meaning config values are used untouched.
func ParsePreset(s string) DifficultyPreset {
	switch s {
	case "easy", "normal", "hard":
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplySinkholePreset adjusts swallow tuning for a preset. Easy widens the
// capture range and speeds growth; hard does the opposite. Normal keeps the
// stock values.
func ApplySinkholePreset(cfg *SinkholeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Hole.ProximityFactor = 1.1
		cfg.Hole.GrowthRate = 0.4
		cfg.Hole.MoveSpeed = 5.0
	case DifficultyHard:
		cfg.Hole.ProximityFactor = 0.7
		cfg.Hole.GrowthRate = 0.22
		cfg.Hole.MoveSpeed = 3.2
	}
}
