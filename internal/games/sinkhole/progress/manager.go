// Package progress implements level progression: the active level's object
// roster, victory evaluation, advancing through the catalog, and persisting
// the player's position in it.
package progress

import (
	"errors"

	"github.com/velmoga/sinkhole/internal/games/sinkhole/levels"
)

// State is the manager's position in the level lifecycle.
type State int

const (
	StateNoLevel State = iota
	StateActive
	StateVictoryPending // victory fired, celebrating before the next load
	StateComplete       // catalog exhausted
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateNoLevel:
		return "no_level"
	case StateActive:
		return "active"
	case StateVictoryPending:
		return "victory_pending"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Store persists the player's catalog position across sessions. The only
// persisted value is the current level index.
type Store interface {
	// LevelIndex returns the saved index and whether one was saved.
	LevelIndex() (int, bool, error)
	SetLevelIndex(index int) error
	ClearProgress() error
}

// Hole is the manager's view of the hole state machine: enough to reset it
// at level load and to read its radius for hole-size victories.
type Hole interface {
	SetRadius(radius float64)
	MoveTo(x, z float64)
	Radius() float64
}

// World is the scene collaborator the manager drives at level boundaries:
// Reset clears the previous level's live objects and physics bindings,
// applies the new environment, and instantiates the object definitions.
type World interface {
	Reset(lvl levels.Level)
}

// Options tunes manager behavior.
type Options struct {
	// VictoryDelayTicks is the celebratory pause between victory and the
	// next level load.
	VictoryDelayTicks int

	// Endless, when true, wraps around the catalog instead of completing.
	Endless bool
}

// Manager is the level progression state machine. Like the rest of the game
// core it is single-goroutine: all mutations happen inside the frame loop.
type Manager struct {
	catalog []levels.Level
	store   Store
	hole    Hole
	world   World
	opts    Options

	state     State
	index     int
	remaining map[string]struct{}
	required  map[string]struct{}
	delayLeft int

	onVictory  func(lvl levels.Level)
	onComplete func()
}

// New creates a manager over the given catalog. The store may be nil when
// persistence is not wanted (tests, freeplay); hole and world are mandatory.
func New(catalog []levels.Level, store Store, hole Hole, world World, opts Options) (*Manager, error) {
	if len(catalog) == 0 {
		return nil, errors.New("progress: empty level catalog")
	}
	if hole == nil {
		return nil, errors.New("progress: hole collaborator is required")
	}
	if world == nil {
		return nil, errors.New("progress: world collaborator is required")
	}
	if opts.VictoryDelayTicks < 0 {
		opts.VictoryDelayTicks = 0
	}
	return &Manager{
		catalog: catalog,
		store:   store,
		hole:    hole,
		world:   world,
		opts:    opts,
	}, nil
}

// OnVictory registers the victory notification callback (UI layer).
func (m *Manager) OnVictory(fn func(lvl levels.Level)) { m.onVictory = fn }

// OnComplete registers the game-complete callback.
func (m *Manager) OnComplete(fn func()) { m.onComplete = fn }

// State returns the manager's current lifecycle state.
func (m *Manager) State() State { return m.state }

// LevelIndex returns the current catalog index.
func (m *Manager) LevelIndex() int { return m.index }

// CurrentLevel returns the active level definition. Only meaningful while a
// level is loaded.
func (m *Manager) CurrentLevel() levels.Level {
	if m.index >= len(m.catalog) {
		return levels.Level{}
	}
	return m.catalog[m.effectiveIndex()]
}

// Remaining returns how many of the level's objects are not yet consumed.
func (m *Manager) Remaining() int { return len(m.remaining) }

// RequiredRemaining returns how many required objects are not yet consumed.
func (m *Manager) RequiredRemaining() int {
	n := 0
	for id := range m.required {
		if _, left := m.remaining[id]; left {
			n++
		}
	}
	return n
}

// Start restores the persisted catalog position and loads that level.
// Missing or out-of-range persisted state falls back to the beginning.
func (m *Manager) Start() error {
	m.index = 0
	if m.store != nil {
		idx, ok, err := m.store.LevelIndex()
		if err != nil {
			return err
		}
		if ok && idx >= 0 {
			m.index = idx
		}
	}
	m.LoadCurrentLevel()
	return nil
}

// LoadCurrentLevel loads catalog[index], or transitions to complete when
// the index has run past the catalog (endless mode wraps instead).
func (m *Manager) LoadCurrentLevel() {
	if m.index >= len(m.catalog) && !m.opts.Endless {
		if m.state != StateComplete {
			m.state = StateComplete
			if m.onComplete != nil {
				m.onComplete()
			}
		}
		return
	}
	m.loadLevel(m.catalog[m.effectiveIndex()])
}

// effectiveIndex maps the monotonically increasing index into the catalog,
// wrapping in endless mode.
func (m *Manager) effectiveIndex() int {
	if m.opts.Endless {
		return m.index % len(m.catalog)
	}
	return m.index
}

// loadLevel resets the world and hole to the level's starting state and
// rebuilds the remaining/required rosters.
func (m *Manager) loadLevel(lvl levels.Level) {
	m.world.Reset(lvl)
	m.hole.SetRadius(lvl.Hole.Radius)
	m.hole.MoveTo(lvl.Hole.X, lvl.Hole.Z)

	m.remaining = make(map[string]struct{}, len(lvl.Objects))
	m.required = make(map[string]struct{})
	for _, o := range lvl.Objects {
		m.remaining[o.ID] = struct{}{}
		if o.Required {
			m.required[o.ID] = struct{}{}
		}
	}

	m.delayLeft = 0
	m.state = StateActive
}

// ObjectSwallowed is the completion callback invoked by the hole machine on
// finalized consumption. Unknown or already-removed ids are a no-op, which
// makes duplicate notifications harmless.
func (m *Manager) ObjectSwallowed(id string) {
	if m.state != StateActive {
		return
	}
	if _, ok := m.remaining[id]; !ok {
		return
	}
	delete(m.remaining, id)
	m.checkVictory()
}

// checkVictory evaluates the active level's victory condition and, when it
// holds, advances and persists the catalog position and enters the
// celebratory delay.
func (m *Manager) checkVictory() {
	lvl := m.CurrentLevel()

	won := false
	switch lvl.Victory.Kind {
	case levels.VictoryAllObjects:
		won = len(m.remaining) == 0
	case levels.VictoryHoleSize:
		won = m.hole.Radius() >= lvl.Victory.TargetRadius
	case levels.VictoryRequiredObjects:
		won = m.RequiredRemaining() == 0 && len(m.required) > 0
	}
	// An unknown kind, or a required set referencing nothing, never wins:
	// broken content leaves the player stuck, not crashed.

	if !won {
		return
	}

	m.index++
	if m.store != nil {
		// Persist on every advance so a session can resume here.
		_ = m.store.SetLevelIndex(m.index)
	}

	m.state = StateVictoryPending
	m.delayLeft = m.opts.VictoryDelayTicks
	if m.onVictory != nil {
		m.onVictory(lvl)
	}
}

// Update advances the manager by one simulation tick. It only does work in
// the victory-pending state, counting down the celebration before loading
// the next level.
func (m *Manager) Update() {
	if m.state != StateVictoryPending {
		return
	}
	if m.delayLeft > 0 {
		m.delayLeft--
		return
	}
	m.LoadCurrentLevel()
}

// ResetProgress returns to the start of the catalog, clears persisted
// state, and reloads level 0. Used for explicit restart after completion.
func (m *Manager) ResetProgress() error {
	m.index = 0
	if m.store != nil {
		if err := m.store.ClearProgress(); err != nil {
			return err
		}
	}
	m.LoadCurrentLevel()
	return nil
}
