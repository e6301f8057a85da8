// Package scene is the in-process stand-in for a full 3D engine: it owns
// object positions, simulates the free fall of released objects, and records
// terrain cuts for the renderers. The game core only ever talks to it
// through the hole and progress interfaces.
package scene

import (
	"sort"

	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/hole"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/levels"
)

// DefaultGravity is the downward acceleration for falling objects, in world
// units per second squared, used when a level does not override it.
const DefaultGravity = 9.8

// Object is a live scene object. Position is owned here and updated every
// Step; the game core reads it through the hole.Scene interface.
type Object struct {
	ID       string
	Shape    string
	Pos      core.Vec3
	VelY     float64
	Radius   float64
	Required bool
	Falling  bool
}

// Cut is a recorded terrain cut: a circle stamped out of the ground.
type Cut struct {
	X, Z, Radius float64
}

// Scene holds the level's live objects and environment.
type Scene struct {
	objects map[string]*Object
	order   []string // insertion order for deterministic iteration

	cuts        []Cut
	gravity     float64
	baseGravity float64
	halfExtent  float64
}

// New creates an empty scene. The given gravity applies to levels that do
// not set their own; zero or negative selects DefaultGravity.
func New(gravity float64) *Scene {
	if gravity <= 0 {
		gravity = DefaultGravity
	}
	return &Scene{
		objects:     make(map[string]*Object),
		gravity:     gravity,
		baseGravity: gravity,
	}
}

// Reset clears all live objects, physics state and cuts, applies the
// level's environment, and instantiates its object definitions. Implements
// the progress.World collaborator.
func (s *Scene) Reset(lvl levels.Level) {
	s.objects = make(map[string]*Object, len(lvl.Objects))
	s.order = s.order[:0]
	s.cuts = nil

	s.halfExtent = lvl.Environment.GroundHalfExtent
	s.gravity = lvl.Environment.Gravity
	if s.gravity <= 0 {
		s.gravity = s.baseGravity
	}

	for _, def := range lvl.Objects {
		s.objects[def.ID] = &Object{
			ID:       def.ID,
			Shape:    def.Shape,
			Pos:      core.Vec3{X: def.X, Y: 0, Z: def.Z},
			Radius:   def.Radius,
			Required: def.Required,
		}
		s.order = append(s.order, def.ID)
	}
}

// Step advances the physics simulation by dt seconds: released objects
// accelerate downward under gravity. Standing objects do not move.
func (s *Scene) Step(dt float64) {
	for _, id := range s.order {
		o, ok := s.objects[id]
		if !ok || !o.Falling {
			continue
		}
		o.VelY -= s.gravity * dt
		o.Pos.Y += o.VelY * dt
	}
}

// Objects returns the per-frame candidate view for the hole machine, in
// insertion order. Objects already falling are reported too; the machine's
// in-flight set keeps them from being re-approved.
func (s *Scene) Objects() []hole.ObjectInfo {
	out := make([]hole.ObjectInfo, 0, len(s.order))
	for _, id := range s.order {
		o, ok := s.objects[id]
		if !ok {
			continue
		}
		out = append(out, hole.ObjectInfo{
			ID:          o.ID,
			Pos:         o.Pos,
			Radius:      o.Radius,
			Swallowable: true,
		})
	}
	return out
}

// ObjectPosition returns an object's current position, or ok=false if the
// object is no longer in the scene.
func (s *Scene) ObjectPosition(id string) (core.Vec3, bool) {
	o, ok := s.objects[id]
	if !ok {
		return core.Vec3{}, false
	}
	return o.Pos, true
}

// Release hands an object over to free fall. Unknown ids are ignored.
func (s *Scene) Release(id string) {
	if o, ok := s.objects[id]; ok {
		o.Falling = true
	}
}

// Dispose removes an object from the scene. Further queries for the id
// return not-found. Idempotent.
func (s *Scene) Dispose(id string) {
	delete(s.objects, id)
}

// CutHole records a terrain cut. Cuts at the same position replace the
// previous cut when the radius grew (the hole recutting itself as it
// grows); distinct positions accumulate. Implements hole.TerrainCutter.
func (s *Scene) CutHole(x, z, radius float64) {
	for i := range s.cuts {
		c := &s.cuts[i]
		if c.X == x && c.Z == z {
			if radius > c.Radius {
				c.Radius = radius
			}
			return
		}
	}
	s.cuts = append(s.cuts, Cut{X: x, Z: z, Radius: radius})
}

// Cuts returns the recorded terrain cuts for rendering.
func (s *Scene) Cuts() []Cut {
	return s.cuts
}

// HalfExtent returns half the side length of the square play area.
func (s *Scene) HalfExtent() float64 {
	return s.halfExtent
}

// Live returns the objects still in the scene, in insertion order.
// Renderers and snapshots use this; game rules go through Objects().
func (s *Scene) Live() []Object {
	out := make([]Object, 0, len(s.objects))
	for _, id := range s.order {
		if o, ok := s.objects[id]; ok {
			out = append(out, *o)
		}
	}
	return out
}

// LiveIDs returns the sorted ids of all objects still in the scene.
func (s *Scene) LiveIDs() []string {
	ids := make([]string, 0, len(s.objects))
	for id := range s.objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Interface conformance with the game core's collaborator contracts.
var (
	_ hole.Scene         = (*Scene)(nil)
	_ hole.TerrainCutter = (*Scene)(nil)
)
