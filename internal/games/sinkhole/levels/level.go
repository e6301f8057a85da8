// Package levels provides level definitions and loading for the sinkhole
// campaign. This package depends on nothing inside the game; the game and
// scene packages depend on it.
package levels

import "fmt"

// VictoryKind tags the level's victory condition variant.
type VictoryKind string

const (
	// VictoryAllObjects: every object in the level must be swallowed.
	VictoryAllObjects VictoryKind = "all_objects"
	// VictoryHoleSize: the hole must reach a target radius.
	VictoryHoleSize VictoryKind = "hole_size"
	// VictoryRequiredObjects: every object flagged required must be swallowed.
	VictoryRequiredObjects VictoryKind = "required_objects"
)

// Victory describes how a level is won.
type Victory struct {
	Kind         VictoryKind `yaml:"kind"`
	TargetRadius float64     `yaml:"target_radius,omitempty"` // hole_size only
}

// HoleStart is the hole's configured starting state for a level.
type HoleStart struct {
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
}

// Environment carries per-level world parameters.
type Environment struct {
	// GroundHalfExtent is half the side length of the square play area,
	// centered on the origin.
	GroundHalfExtent float64 `yaml:"ground_half_extent"`
	// Gravity is the downward acceleration applied to falling objects,
	// in world units per second squared. Zero means use the game default.
	Gravity float64 `yaml:"gravity,omitempty"`
}

// ObjectDef defines one placeable scene object.
type ObjectDef struct {
	ID string `yaml:"id"`
	// Shape is a semantic tag ("crate", "cone", "bench", "tree", "car", ...)
	// used by renderers to pick a glyph; it has no effect on swallow rules.
	Shape string `yaml:"shape"`
	// Radius is the swallow radius: the semantic size compared against the
	// hole, independent of exact rendered geometry.
	Radius   float64 `yaml:"radius"`
	X        float64 `yaml:"x"`
	Z        float64 `yaml:"z"`
	Required bool    `yaml:"required,omitempty"`
}

// Level is an immutable level definition, authored as static content and
// loaded read-only at level start.
type Level struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Victory     Victory     `yaml:"victory"`
	Hole        HoleStart   `yaml:"hole"`
	Environment Environment `yaml:"environment"`
	Objects     []ObjectDef `yaml:"objects"`
}

// RequiredIDs returns the ids of all objects flagged required.
func (l Level) RequiredIDs() []string {
	var ids []string
	for _, o := range l.Objects {
		if o.Required {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Validate checks the level for content-authoring defects: duplicate or
// empty object ids, non-positive radii, unknown victory kinds, and victory
// configurations that can never be satisfied. The progression manager itself
// tolerates broken levels (an unreachable condition simply never fires), but
// authored files should not ship broken.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("levels: level has empty id")
	}
	if l.Hole.Radius <= 0 {
		return fmt.Errorf("levels: %s: hole start radius must be positive, got %v", l.ID, l.Hole.Radius)
	}
	if l.Environment.GroundHalfExtent <= 0 {
		return fmt.Errorf("levels: %s: ground_half_extent must be positive", l.ID)
	}

	seen := make(map[string]bool, len(l.Objects))
	for _, o := range l.Objects {
		if o.ID == "" {
			return fmt.Errorf("levels: %s: object with empty id", l.ID)
		}
		if seen[o.ID] {
			return fmt.Errorf("levels: %s: duplicate object id %q", l.ID, o.ID)
		}
		seen[o.ID] = true
		if o.Radius <= 0 {
			return fmt.Errorf("levels: %s: object %q radius must be positive, got %v", l.ID, o.ID, o.Radius)
		}
	}

	switch l.Victory.Kind {
	case VictoryAllObjects:
		if len(l.Objects) == 0 {
			return fmt.Errorf("levels: %s: all_objects victory with no objects", l.ID)
		}
	case VictoryHoleSize:
		if l.Victory.TargetRadius <= l.Hole.Radius {
			return fmt.Errorf("levels: %s: target radius %v not above start radius %v",
				l.ID, l.Victory.TargetRadius, l.Hole.Radius)
		}
	case VictoryRequiredObjects:
		if len(l.RequiredIDs()) == 0 {
			return fmt.Errorf("levels: %s: required_objects victory with no required objects", l.ID)
		}
	default:
		return fmt.Errorf("levels: %s: unknown victory kind %q", l.ID, l.Victory.Kind)
	}

	return nil
}
