// Package hole implements the hole state machine: the hole's radius and
// position, the per-tick scan for swallowable objects, and the tracking of
// in-flight swallows from approval to finalized disposal.
//
// The package talks to the world through two narrow interfaces, Scene and
// TerrainCutter, and never touches rendering or physics integration directly.
package hole

import (
	"errors"
	"sort"

	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/swallow"
)

// DefaultDisposalDepth is the vertical position below which a falling object
// counts as gone. Ground level is Y = 0.
const DefaultDisposalDepth = -2.0

// ObjectInfo is the per-frame view of a scene object the machine needs:
// identity, current world position, swallow radius, and whether the object
// participates in swallowing at all (terrain and decor meshes do not).
type ObjectInfo struct {
	ID          string
	Pos         core.Vec3
	Radius      float64
	Swallowable bool
}

// Scene is the machine's view of the physics/scene collaborator. Positions
// are owned and updated by the scene every frame; the machine only reads
// them. Release hands an object over to free-fall physics; Dispose removes
// it from the scene and invalidates further queries.
type Scene interface {
	Objects() []ObjectInfo
	ObjectPosition(id string) (core.Vec3, bool)
	Release(id string)
	Dispose(id string)
}

// TerrainCutter receives "cut the ground at (x, z) with radius r" requests.
// Implementations may treat repeated cuts as idempotent.
type TerrainCutter interface {
	CutHole(x, z, radius float64)
}

// Config carries the machine's tunables.
type Config struct {
	Rules swallow.Rules

	// DisposalDepth is the (negative) Y threshold for finalizing a fall.
	DisposalDepth float64

	// PollTicks is how often, in simulation ticks, in-flight falls are
	// checked. Falls are polled rather than checked every tick to bound
	// per-frame overhead; the default corresponds to roughly 100ms.
	PollTicks int

	// CutCooldownTicks rate-limits move-triggered terrain cuts. A move
	// during the cooldown defers the cut instead of dropping it.
	CutCooldownTicks int

	// MaxFallTicks, when positive, abandons an in-flight object that has
	// not crossed the disposal depth after this many ticks (stuck in
	// geometry). Zero preserves the original unbounded wait.
	MaxFallTicks int
}

// DefaultConfig returns machine tunables scaled to the given tick rate.
func DefaultConfig(tickRate int) Config {
	if tickRate <= 0 {
		tickRate = 60
	}
	poll := tickRate / 10
	if poll < 1 {
		poll = 1
	}
	return Config{
		Rules:            swallow.DefaultRules(),
		DisposalDepth:    DefaultDisposalDepth,
		PollTicks:        poll,
		CutCooldownTicks: poll,
	}
}

// pendingSwallow is an approved swallow waiting for its fall to finish.
type pendingSwallow struct {
	growth    float64
	startTick uint64
}

// Machine owns the hole's continuous state and the in-flight swallow set.
// All methods must be called from the single simulation goroutine; the
// machine performs no locking of its own.
type Machine struct {
	scene  Scene
	cutter TerrainCutter
	cfg    Config

	radius float64
	pos    core.Vec2

	inflight map[string]pendingSwallow

	onSwallowed func(id string)

	tick        uint64
	lastCutTick uint64
	cutDeferred bool
}

// New creates a machine bound to its collaborators. Both are mandatory: a
// hole that cannot cut terrain or query the scene is non-functional, so a
// nil collaborator is a programming error surfaced at construction.
func New(scene Scene, cutter TerrainCutter, cfg Config) (*Machine, error) {
	if scene == nil {
		return nil, errors.New("hole: scene collaborator is required")
	}
	if cutter == nil {
		return nil, errors.New("hole: terrain cutter is required")
	}
	if cfg.PollTicks < 1 {
		cfg.PollTicks = 1
	}
	if cfg.DisposalDepth >= 0 {
		cfg.DisposalDepth = DefaultDisposalDepth
	}
	return &Machine{
		scene:    scene,
		cutter:   cutter,
		cfg:      cfg,
		inflight: make(map[string]pendingSwallow),
	}, nil
}

// OnSwallowed registers the completion callback, invoked with an object's
// id when its swallow finalizes. At most one callback is registered.
func (m *Machine) OnSwallowed(fn func(id string)) {
	m.onSwallowed = fn
}

// Radius returns the hole's current radius.
func (m *Machine) Radius() float64 {
	return m.radius
}

// Position returns the hole's current ground-plane position.
func (m *Machine) Position() core.Vec2 {
	return m.pos
}

// InFlight returns the number of approved swallows still falling.
func (m *Machine) InFlight() int {
	return len(m.inflight)
}

// MoveTo sets the hole position and requests a terrain cut there. Cuts from
// movement are debounced; a move inside the cooldown window defers the cut
// to the next eligible tick rather than dropping it.
func (m *Machine) MoveTo(x, z float64) {
	m.pos = core.Vec2{X: x, Z: z}
	m.requestCut()
}

// MoveBy shifts the hole position by the given delta.
func (m *Machine) MoveBy(dx, dz float64) {
	m.MoveTo(m.pos.X+dx, m.pos.Z+dz)
}

// Grow increases the radius by amount and recuts the terrain at the new
// size. Radius is strictly non-decreasing for the lifetime of a level:
// non-positive amounts are ignored.
func (m *Machine) Grow(amount float64) {
	if amount <= 0 {
		return
	}
	m.radius += amount
	m.cutNow()
}

// SetRadius overrides the radius directly. This is a level-initialization
// operation, not in-level progress; it bypasses the monotonic-growth rule
// because it represents a fresh level state.
func (m *Machine) SetRadius(radius float64) {
	m.radius = radius
	m.inflight = make(map[string]pendingSwallow)
	m.cutNow()
}

// Update advances the machine by one simulation tick: it flushes any
// deferred terrain cut, polls in-flight falls at the configured interval,
// and scans the scene for new swallow candidates.
func (m *Machine) Update() {
	m.tick++

	if m.cutDeferred && m.tick-m.lastCutTick >= uint64(m.cfg.CutCooldownTicks) {
		m.cutNow()
	}

	if m.tick%uint64(m.cfg.PollTicks) == 0 {
		m.pollInFlight()
	}

	m.scanCandidates()
}

// scanCandidates evaluates every swallowable object not already in flight.
func (m *Machine) scanCandidates() {
	for _, obj := range m.scene.Objects() {
		if !obj.Swallowable {
			continue
		}
		if _, pending := m.inflight[obj.ID]; pending {
			continue
		}

		dist := m.pos.Dist(obj.Pos.Ground())
		if !m.cfg.Rules.CanSwallow(m.radius, obj.Radius, dist) {
			continue
		}

		// Growth is computed at approval time so finalization does not
		// need the object's metadata after disposal.
		m.inflight[obj.ID] = pendingSwallow{
			growth:    m.cfg.Rules.Growth(obj.Radius),
			startTick: m.tick,
		}
		m.scene.Release(obj.ID)
	}
}

// pollInFlight checks each falling object against the disposal depth.
// Objects the scene no longer knows (disposed out-of-band) are abandoned
// silently: no growth, no notification, no crash. Iteration is in sorted
// id order so finalization order is deterministic.
func (m *Machine) pollInFlight() {
	if len(m.inflight) == 0 {
		return
	}

	ids := make([]string, 0, len(m.inflight))
	for id := range m.inflight {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := m.inflight[id]

		pos, ok := m.scene.ObjectPosition(id)
		if !ok {
			delete(m.inflight, id)
			continue
		}

		if pos.Y < m.cfg.DisposalDepth {
			m.finalize(id, p)
			continue
		}

		if m.cfg.MaxFallTicks > 0 && m.tick-p.startTick > uint64(m.cfg.MaxFallTicks) {
			// Stuck object safeguard: clear it out without rewarding growth.
			m.scene.Dispose(id)
			delete(m.inflight, id)
		}
	}
}

// finalize disposes a fully fallen object, applies the precomputed growth,
// and notifies the completion callback. The id leaves the in-flight set
// before the callback runs, so a re-entrant query sees consistent state.
func (m *Machine) finalize(id string, p pendingSwallow) {
	m.scene.Dispose(id)
	delete(m.inflight, id)
	m.Grow(p.growth)
	if m.onSwallowed != nil {
		m.onSwallowed(id)
	}
}

func (m *Machine) requestCut() {
	if m.tick-m.lastCutTick >= uint64(m.cfg.CutCooldownTicks) {
		m.cutNow()
		return
	}
	m.cutDeferred = true
}

func (m *Machine) cutNow() {
	m.cutter.CutHole(m.pos.X, m.pos.Z, m.radius)
	m.lastCutTick = m.tick
	m.cutDeferred = false
}
