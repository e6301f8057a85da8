package levels

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()
	if len(catalog) < 5 {
		t.Fatalf("default catalog has %d levels, want at least 5", len(catalog))
	}

	// Sorted by ID, unique ids, all valid.
	seen := make(map[string]bool)
	for i, lvl := range catalog {
		if i > 0 && catalog[i-1].ID >= lvl.ID {
			t.Errorf("catalog not sorted: %q before %q", catalog[i-1].ID, lvl.ID)
		}
		if seen[lvl.ID] {
			t.Errorf("duplicate level id %q", lvl.ID)
		}
		seen[lvl.ID] = true
		if err := lvl.Validate(); err != nil {
			t.Errorf("level %q invalid: %v", lvl.ID, err)
		}
	}

	// The campaign must exercise every victory variant.
	kinds := make(map[VictoryKind]bool)
	for _, lvl := range catalog {
		kinds[lvl.Victory.Kind] = true
	}
	for _, k := range []VictoryKind{VictoryAllObjects, VictoryHoleSize, VictoryRequiredObjects} {
		if !kinds[k] {
			t.Errorf("default catalog has no %s level", k)
		}
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
id: test_level
name: Test
victory:
  kind: required_objects
hole:
  radius: 0.8
  x: 1.0
  z: -1.0
environment:
  ground_half_extent: 5.0
objects:
  - id: box
    shape: crate
    radius: 0.5
    x: 2.0
    z: 2.0
    required: true
  - id: cone
    shape: cone
    radius: 0.3
    x: -2.0
    z: 0.0
`)

	lvl, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if lvl.ID != "test_level" || lvl.Name != "Test" {
		t.Errorf("identity = %q/%q", lvl.ID, lvl.Name)
	}
	if lvl.Hole.Radius != 0.8 || lvl.Hole.X != 1.0 || lvl.Hole.Z != -1.0 {
		t.Errorf("hole start = %+v", lvl.Hole)
	}
	if len(lvl.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(lvl.Objects))
	}
	if got := lvl.RequiredIDs(); len(got) != 1 || got[0] != "box" {
		t.Errorf("RequiredIDs = %v, want [box]", got)
	}
}

func TestParseRejectsBrokenLevels(t *testing.T) {
	cases := map[string]string{
		"empty id": `
name: X
victory: {kind: all_objects}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects: [{id: a, shape: ball, radius: 0.5}]
`,
		"duplicate object id": `
id: dup
victory: {kind: all_objects}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects:
  - {id: a, shape: ball, radius: 0.5}
  - {id: a, shape: ball, radius: 0.6}
`,
		"non-positive radius": `
id: bad_radius
victory: {kind: all_objects}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects: [{id: a, shape: ball, radius: 0}]
`,
		"unknown victory kind": `
id: bad_kind
victory: {kind: survive}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects: [{id: a, shape: ball, radius: 0.5}]
`,
		"required victory without required objects": `
id: no_required
victory: {kind: required_objects}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects: [{id: a, shape: ball, radius: 0.5}]
`,
		"target not above start": `
id: bad_target
victory: {kind: hole_size, target_radius: 0.5}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects: [{id: a, shape: ball, radius: 0.5}]
`,
	}

	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: Parse accepted a broken level", name)
		}
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	valid := `
id: ok_level
victory: {kind: all_objects}
hole: {radius: 1.0}
environment: {ground_half_extent: 5.0}
objects: [{id: a, shape: ball, radius: 0.5}]
`
	if err := os.WriteFile(filepath.Join(dir, "ok.yaml"), []byte(valid), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a level"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ok_level" {
		t.Errorf("LoadAll = %v, want just ok_level", got)
	}
}
