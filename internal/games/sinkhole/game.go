// Package sinkhole wires the game core (swallow rules, hole machine, level
// progression) and the scene simulation into a playable registry.Game.
package sinkhole

import (
	"fmt"

	"github.com/velmoga/sinkhole/internal/config"
	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/hole"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/levels"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/progress"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/scene"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/swallow"
	"github.com/velmoga/sinkhole/internal/registry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // play the catalog once, complete at the end
	ModeEndless                  // cycle the catalog forever
)

// Package-level knobs set by the CLI before game creation.
var (
	configPath       string
	levelsDir        string
	startLevel       int
	difficultyPreset config.DifficultyPreset
	progressStore    progress.Store
)

// SetConfigPath sets a custom tuning config path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsDir points the game at a directory of level files instead of the
// embedded campaign.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel selects a 1-indexed starting level. When set, the run uses
// throwaway progress so the persisted campaign position is untouched.
func SetStartLevel(level int) {
	startLevel = level
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetProgressStore supplies the persistence backend for campaign progress.
// When unset the game runs on in-memory progress.
func SetProgressStore(store progress.Store) {
	progressStore = store
}

// Game implements the sinkhole game logic.
type Game struct {
	mode GameMode

	runtime core.RuntimeConfig
	cfg     config.SinkholeConfig
	catalog []levels.Level

	world   *scene.Scene
	machine *hole.Machine
	manager *progress.Manager
	store   progress.Store

	tickCount      int
	swallowedTotal int
	complete       bool
	paused         bool

	banner      string
	bannerTicks int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new campaign game instance.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless game instance.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "sinkhole_endless"
	}
	return "sinkhole"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Sinkhole (Endless)"
	}
	return "Sinkhole"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}

	cfg, err := config.LoadSinkhole(configPath)
	if err != nil {
		cfg = config.DefaultSinkholeConfig()
	}
	if difficultyPreset != "" {
		config.ApplySinkholePreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.catalog = g.loadCatalog()

	g.minScreenW = 40
	g.minScreenH = 14
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.tickCount = 0
	g.swallowedTotal = 0
	g.complete = false
	g.paused = false
	g.banner = ""
	g.bannerTicks = 0

	g.world = scene.New(g.cfg.Physics.Gravity)

	machine, err := hole.New(g.world, g.world, g.machineConfig())
	if err != nil {
		// Both collaborators are the freshly built scene; this cannot
		// happen outside a programming error.
		panic(fmt.Sprintf("sinkhole: %v", err))
	}
	g.machine = machine

	g.store = g.selectStore()
	manager, err := progress.New(g.catalog, g.store, g.machine, g.world, progress.Options{
		VictoryDelayTicks: g.secondsToTicks(g.cfg.Progression.VictoryDelaySeconds),
		Endless:           g.mode == ModeEndless,
	})
	if err != nil {
		panic(fmt.Sprintf("sinkhole: %v", err))
	}
	g.manager = manager
	g.wireCallbacks()

	if err := g.manager.Start(); err != nil {
		// Persistence failed; run without it rather than refuse to play.
		g.store = progress.NewMemoryStore()
		g.manager, _ = progress.New(g.catalog, g.store, g.machine, g.world, progress.Options{
			VictoryDelayTicks: g.secondsToTicks(g.cfg.Progression.VictoryDelaySeconds),
			Endless:           g.mode == ModeEndless,
		})
		g.wireCallbacks()
		//nolint:errcheck // memory store Start cannot fail
		g.manager.Start()
	}
}

// completionRecorder is the optional store capability for keeping a history
// of finished levels alongside the campaign position.
type completionRecorder interface {
	SaveCompletion(levelID string, levelIndex, swallowed int) (int64, error)
}

// wireCallbacks registers the machine and manager callbacks on the game.
func (g *Game) wireCallbacks() {
	g.machine.OnSwallowed(func(id string) {
		g.swallowedTotal++
		g.manager.ObjectSwallowed(id)
	})
	g.manager.OnVictory(func(lvl levels.Level) {
		g.banner = fmt.Sprintf("Level complete: %s", lvl.Name)
		g.bannerTicks = g.secondsToTicks(g.cfg.Progression.VictoryDelaySeconds)
		if rec, ok := g.store.(completionRecorder); ok {
			//nolint:errcheck // history is best-effort
			rec.SaveCompletion(lvl.ID, g.manager.LevelIndex()-1, g.swallowedTotal)
		}
	})
	g.manager.OnComplete(func() {
		g.complete = true
	})
}

// loadCatalog resolves the level catalog: an explicit levels directory when
// set, the embedded campaign otherwise.
func (g *Game) loadCatalog() []levels.Level {
	if levelsDir != "" {
		if loaded, err := levels.NewLoader(levelsDir).LoadAll(); err == nil && len(loaded) > 0 {
			return loaded
		}
	}
	return levels.Default()
}

// selectStore picks the progress backend. Endless runs and explicit level
// selection use throwaway progress so the campaign position survives.
func (g *Game) selectStore() progress.Store {
	if g.mode == ModeEndless || startLevel > 0 {
		st := progress.NewMemoryStore()
		if startLevel > 0 {
			//nolint:errcheck // memory store writes cannot fail
			st.SetLevelIndex(startLevel - 1)
		}
		return st
	}
	if progressStore != nil {
		return progressStore
	}
	return progress.NewMemoryStore()
}

// machineConfig translates wall-clock tunables into tick counts.
func (g *Game) machineConfig() hole.Config {
	return hole.Config{
		Rules: swallow.Rules{
			ProximityFactor: g.cfg.Hole.ProximityFactor,
			GrowthRate:      g.cfg.Hole.GrowthRate,
		},
		DisposalDepth:    g.cfg.Hole.DisposalDepth,
		PollTicks:        g.msToTicks(g.cfg.Hole.PollIntervalMS),
		CutCooldownTicks: g.msToTicks(g.cfg.Hole.CutCooldownMS),
		MaxFallTicks:     g.secondsToTicks(g.cfg.Hole.MaxFallSeconds),
	}
}

func (g *Game) msToTicks(ms int) int {
	ticks := ms * g.runtime.TickRate / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (g *Game) secondsToTicks(s float64) int {
	if s <= 0 {
		return 0
	}
	ticks := int(s * float64(g.runtime.TickRate))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Restart after campaign completion.
	if in.Has(core.ActionRestart) && g.complete {
		g.complete = false
		g.swallowedTotal = 0
		//nolint:errcheck // a failed clear still reloads level 0
		g.manager.ResetProgress()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.complete {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := 1.0 / float64(g.runtime.TickRate)

	g.moveHole(in, dt)
	g.world.Step(dt)
	g.machine.Update()
	g.manager.Update()

	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
		}
	}

	return core.StepResult{State: g.State()}
}

// moveHole translates directional input into hole movement, clamped to the
// level's play area.
func (g *Game) moveHole(in core.InputFrame, dt float64) {
	var dx, dz float64
	if in.Has(core.ActionLeft) {
		dx -= 1
	}
	if in.Has(core.ActionRight) {
		dx += 1
	}
	if in.Has(core.ActionUp) {
		dz -= 1
	}
	if in.Has(core.ActionDown) {
		dz += 1
	}
	if dx == 0 && dz == 0 {
		return
	}

	step := g.cfg.Hole.MoveSpeed * dt
	pos := g.machine.Position()
	x := pos.X + dx*step
	z := pos.Z + dz*step

	if he := g.world.HalfExtent(); he > 0 {
		x = core.ClampF(x, -he, he)
		z = core.ClampF(z, -he, he)
	}
	g.machine.MoveTo(x, z)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	level := 0
	if g.manager != nil {
		level = g.manager.LevelIndex() + 1
	}
	return core.GameState{
		Score:    g.swallowedTotal,
		Level:    level,
		GameOver: g.complete,
		Paused:   g.paused,
	}
}

// Register the game modes with the registry.
func init() {
	registry.Register("sinkhole", func() registry.Game {
		return New()
	})
	registry.Register("sinkhole_endless", func() registry.Game {
		return NewEndless()
	})
}
