package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	// Fresh database has no saved position
	idx, ok, err := store.LevelIndex()
	if err != nil {
		t.Fatalf("LevelIndex() failed: %v", err)
	}
	if ok {
		t.Errorf("Expected no saved progress, got index %d", idx)
	}

	// Save and read back
	if err := store.SetLevelIndex(3); err != nil {
		t.Fatalf("SetLevelIndex() failed: %v", err)
	}
	idx, ok, err = store.LevelIndex()
	if err != nil {
		t.Fatalf("LevelIndex() failed: %v", err)
	}
	if !ok || idx != 3 {
		t.Errorf("Expected index 3, got %d (ok=%v)", idx, ok)
	}

	// Overwrite
	if err := store.SetLevelIndex(4); err != nil {
		t.Fatalf("SetLevelIndex() failed: %v", err)
	}
	idx, _, _ = store.LevelIndex()
	if idx != 4 {
		t.Errorf("Expected index 4 after overwrite, got %d", idx)
	}

	// Clear
	if err := store.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}
	_, ok, err = store.LevelIndex()
	if err != nil {
		t.Fatalf("LevelIndex() failed: %v", err)
	}
	if ok {
		t.Error("Expected no progress after clear")
	}
}

func TestProgressSlots(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetLevelIndex(2); err != nil {
		t.Fatalf("SetLevelIndex() failed: %v", err)
	}

	other := store.WithSlot("second_player")
	if _, ok, _ := other.LevelIndex(); ok {
		t.Error("Second slot should start empty")
	}
	if err := other.SetLevelIndex(7); err != nil {
		t.Fatalf("SetLevelIndex() failed: %v", err)
	}

	// Slots are independent
	idx, _, _ := store.LevelIndex()
	if idx != 2 {
		t.Errorf("Default slot changed, got %d", idx)
	}
	idx, _, _ = other.LevelIndex()
	if idx != 7 {
		t.Errorf("Second slot = %d, want 7", idx)
	}

	// Clearing one slot leaves the other
	if err := other.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}
	if _, ok, _ := store.LevelIndex(); !ok {
		t.Error("Default slot should survive the other slot's clear")
	}
}

func TestCompletionHistory(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveCompletion("01_backyard", 0, 3); err != nil {
		t.Fatalf("SaveCompletion() failed: %v", err)
	}
	if _, err := store.SaveCompletion("02_picnic", 1, 8); err != nil {
		t.Fatalf("SaveCompletion() failed: %v", err)
	}

	entries, err := store.Completions(10)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 completions, got %d", len(entries))
	}

	// Most recent first
	if entries[0].LevelID != "02_picnic" {
		t.Errorf("Expected most recent completion first, got %s", entries[0].LevelID)
	}
	if entries[0].Swallowed != 8 {
		t.Errorf("Expected 8 swallowed, got %d", entries[0].Swallowed)
	}

	// ClearProgress wipes history too
	if err := store.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}
	entries, err = store.Completions(10)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no completions after clear, got %d", len(entries))
	}
}

func TestScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{12, 30, 7} {
		if _, err := store.SaveScore("sinkhole_endless", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("sinkhole", 5); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sinkhole_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 30 || scores[1].Score != 12 || scores[2].Score != 7 {
		t.Errorf("Scores not sorted descending: %d, %d, %d",
			scores[0].Score, scores[1].Score, scores[2].Score)
	}

	high, err := store.HighScore("sinkhole_endless")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score 30, got %d", high)
	}

	// No rows for an unknown game
	high, err = store.HighScore("nothing")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for unknown game, got %d", high)
	}
}
