package sinkhole

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole/progress"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}
}

// resetKnobs clears the package-level CLI knobs so tests don't leak into
// each other.
func resetKnobs() {
	configPath = ""
	levelsDir = ""
	startLevel = 0
	difficultyPreset = ""
	progressStore = nil
}

// driveTo steers the hole toward (x, z) one tick at a time, stopping once it
// is within 0.1 world units or the tick budget runs out.
func driveTo(t *testing.T, g *Game, x, z float64, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		pos := g.machine.Position()
		in := core.NewInputFrame()
		if x-pos.X > 0.05 {
			in.Set(core.ActionRight)
		} else if pos.X-x > 0.05 {
			in.Set(core.ActionLeft)
		}
		if z-pos.Z > 0.05 {
			in.Set(core.ActionDown)
		} else if pos.Z-z > 0.05 {
			in.Set(core.ActionUp)
		}
		g.Step(in)

		pos = g.machine.Position()
		dx, dz := x-pos.X, z-pos.Z
		if dx*dx+dz*dz < 0.01 {
			return
		}
	}
	t.Fatalf("hole did not reach (%.1f, %.1f) in %d ticks", x, z, maxTicks)
}

// settle steps the game with no input for the given number of ticks.
func settle(g *Game, ticks int) {
	in := core.NewInputFrame()
	for i := 0; i < ticks; i++ {
		g.Step(in)
	}
}

func TestGameReset(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	if g.manager.State() != progress.StateActive {
		t.Fatalf("expected active after reset, got %s", g.manager.State())
	}
	if g.manager.LevelIndex() != 0 {
		t.Errorf("expected level 0, got %d", g.manager.LevelIndex())
	}
	if got := g.machine.Radius(); got != 0.8 {
		t.Errorf("expected starting radius 0.8, got %v", got)
	}
	if got := len(g.world.Live()); got != 3 {
		t.Errorf("expected 3 live objects, got %d", got)
	}
	if got := g.State(); got.Score != 0 || got.GameOver || got.Paused {
		t.Errorf("unexpected initial state: %+v", got)
	}
}

func TestSwallowGrowsHole(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	// The first level's ball sits at (2, 1) with radius 0.25.
	driveTo(t, g, 2.0, 1.0, 300)
	settle(g, 120) // approval poll plus the fall below disposal depth

	if g.swallowedTotal != 1 {
		t.Fatalf("expected 1 swallowed object, got %d", g.swallowedTotal)
	}
	if got, want := g.machine.Radius(), 0.8+0.25*0.3; got != want {
		t.Errorf("radius after ball = %v, want %v", got, want)
	}
	if got := len(g.world.Live()); got != 2 {
		t.Errorf("expected 2 live objects left, got %d", got)
	}
}

func TestGrowthUnlocksLargerObjects(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	// At radius 0.8 the doghouse crate (radius 1.0) must survive a visit.
	driveTo(t, g, 4.0, -3.0, 400)
	settle(g, 120)
	if g.swallowedTotal != 0 {
		t.Fatalf("crate swallowed while hole was too small")
	}

	// Ball then flowerpot: 0.8 -> 0.875 -> 1.025, now above the crate.
	driveTo(t, g, 2.0, 1.0, 400)
	settle(g, 120)
	driveTo(t, g, -3.0, 2.5, 500)
	settle(g, 120)
	if g.swallowedTotal != 2 {
		t.Fatalf("expected ball and flowerpot swallowed, got %d", g.swallowedTotal)
	}
	if got, want := g.machine.Radius(), 0.8+0.25*0.3+0.5*0.3; got != want {
		t.Fatalf("radius after two swallows = %v, want %v", got, want)
	}

	driveTo(t, g, 4.0, -3.0, 700)
	settle(g, 150)
	if g.swallowedTotal != 3 {
		t.Errorf("expected crate swallowed at radius %v, got %d swallows", g.machine.Radius(), g.swallowedTotal)
	}
}

// writeLevel drops a minimal one-object level file into dir.
func writeLevel(t *testing.T, dir, id string) {
	t.Helper()
	content := `id: "` + id + `"
name: "Test ` + id + `"
victory:
  kind: all_objects
hole:
  radius: 0.8
  x: 0.0
  z: 0.0
environment:
  ground_half_extent: 5.0
objects:
  - id: thing
    shape: ball
    radius: 0.3
    x: 2.0
    z: 0.0
`
	if err := os.WriteFile(filepath.Join(dir, id+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLevelAdvanceAndCompletion(t *testing.T) {
	resetKnobs()
	dir := t.TempDir()
	writeLevel(t, dir, "a_first")
	writeLevel(t, dir, "b_second")
	SetLevelsDir(dir)
	defer resetKnobs()

	g := New()
	g.Reset(testRuntime())
	if len(g.catalog) != 2 {
		t.Fatalf("expected 2 catalog levels, got %d", len(g.catalog))
	}

	// The object spawns outside the hole's capture range; nothing may be
	// swallowed until the player moves.
	settle(g, 60)
	if g.swallowedTotal != 0 {
		t.Fatalf("level cleared itself without input: %d swallows", g.swallowedTotal)
	}
	if g.manager.State() != progress.StateActive {
		t.Fatalf("expected level still active without input, got %s", g.manager.State())
	}

	// Clear level one.
	driveTo(t, g, 2.0, 0.0, 200)
	settle(g, 120)
	if g.manager.State() != progress.StateVictoryPending {
		t.Fatalf("expected victory pending, got %s", g.manager.State())
	}

	// Ride out the celebration; level two should load fresh.
	settle(g, 200)
	if g.manager.State() != progress.StateActive {
		t.Fatalf("expected next level active, got %s", g.manager.State())
	}
	if g.manager.LevelIndex() != 1 {
		t.Errorf("expected level index 1, got %d", g.manager.LevelIndex())
	}
	if got := g.machine.Radius(); got != 0.8 {
		t.Errorf("radius should reset to 0.8 on level load, got %v", got)
	}

	// Clear level two; the catalog is exhausted.
	driveTo(t, g, 2.0, 0.0, 200)
	settle(g, 350)
	if !g.complete {
		t.Fatal("expected game complete after final level")
	}
	if got := g.State(); !got.GameOver {
		t.Errorf("State should report game over, got %+v", got)
	}

	// Restart rewinds to the first level.
	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if g.complete {
		t.Error("restart should clear completion")
	}
	if g.manager.LevelIndex() != 0 {
		t.Errorf("restart should rewind to level 0, got %d", g.manager.LevelIndex())
	}
	if g.swallowedTotal != 0 {
		t.Errorf("restart should clear the swallow count, got %d", g.swallowedTotal)
	}
}

func TestEndlessWrapsCatalog(t *testing.T) {
	resetKnobs()
	dir := t.TempDir()
	writeLevel(t, dir, "only")
	SetLevelsDir(dir)
	defer resetKnobs()

	g := NewEndless()
	g.Reset(testRuntime())

	driveTo(t, g, 2.0, 0.0, 200)
	settle(g, 350)

	if g.complete {
		t.Fatal("endless mode should never complete")
	}
	if g.manager.State() != progress.StateActive {
		t.Fatalf("expected wrapped level active, got %s", g.manager.State())
	}
	if got := len(g.world.Live()); got != 1 {
		t.Errorf("wrapped level should respawn its object, got %d live", got)
	}
}

func TestStartLevelUsesThrowawayProgress(t *testing.T) {
	resetKnobs()
	store := progress.NewMemoryStore()
	if err := store.SetLevelIndex(0); err != nil {
		t.Fatal(err)
	}
	SetProgressStore(store)
	SetStartLevel(3)
	defer resetKnobs()

	g := New()
	g.Reset(testRuntime())

	if g.manager.LevelIndex() != 2 {
		t.Errorf("expected start at level index 2, got %d", g.manager.LevelIndex())
	}
	// The persisted store must be untouched by the selected run.
	idx, ok, err := store.LevelIndex()
	if err != nil || !ok || idx != 0 {
		t.Errorf("persisted progress changed: idx=%d ok=%v err=%v", idx, ok, err)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.paused {
		t.Fatal("expected paused")
	}

	before := g.machine.Position()
	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	for i := 0; i < 30; i++ {
		g.Step(in)
	}
	if after := g.machine.Position(); after != before {
		t.Errorf("hole moved while paused: %+v -> %+v", before, after)
	}

	g.Step(pause)
	if g.paused {
		t.Error("expected unpaused")
	}
}

func TestMovementClampedToPlayArea(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionDown)
	for i := 0; i < 1000; i++ {
		g.Step(in)
	}

	he := g.world.HalfExtent()
	pos := g.machine.Position()
	if pos.X > he || pos.Z > he {
		t.Errorf("hole escaped the play area: %+v (half extent %v)", pos, he)
	}
}

func TestGameRender(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	str := screen.String()
	hasContent := false
	for _, ch := range str {
		if ch != ' ' && ch != '\n' {
			hasContent = true
			break
		}
	}
	if !hasContent {
		t.Error("Render should draw something to the screen")
	}

	// The hole center marker sits at the projected hole position.
	pos := g.machine.Position()
	cx, cy := g.project(screen, pos.X, pos.Z)
	if screen.Get(cx, cy) != HoleCenter {
		t.Errorf("expected hole center at (%d,%d), got %q", cx, cy, screen.Get(cx, cy))
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	resetKnobs()
	g := New()
	g.Reset(testRuntime())

	driveTo(t, g, 2.0, 1.0, 300)
	settle(g, 120)

	snap := g.Snapshot()
	if snap.Mode != "campaign" {
		t.Errorf("mode = %q", snap.Mode)
	}
	if snap.LevelID != "01_backyard" {
		t.Errorf("level id = %q", snap.LevelID)
	}
	if snap.Swallowed != g.swallowedTotal {
		t.Errorf("snapshot swallowed = %d, game says %d", snap.Swallowed, g.swallowedTotal)
	}
	if snap.HoleRadius != g.machine.Radius() {
		t.Errorf("snapshot radius = %v, machine says %v", snap.HoleRadius, g.machine.Radius())
	}
	if len(snap.Objects) != len(g.world.Live()) {
		t.Errorf("snapshot objects = %d, scene has %d", len(snap.Objects), len(g.world.Live()))
	}
	if len(snap.Cuts) == 0 {
		t.Error("expected at least the initial terrain cut in the snapshot")
	}
}
