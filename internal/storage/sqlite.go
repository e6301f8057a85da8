// Package storage provides SQLite-based persistence for campaign progress
// and play history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/velmoga/sinkhole/internal/games/sinkhole/progress"
)

// DefaultSlot is the progress slot used when the player does not name one.
const DefaultSlot = "default"

// Store manages the SQLite database connection.
type Store struct {
	db   *sql.DB
	slot string
}

// CompletionEntry records one finished level.
type CompletionEntry struct {
	ID          int64
	LevelID     string
	LevelIndex  int
	Swallowed   int
	CompletedAt time.Time
}

// ScoreEntry represents a single run record: how many objects a session
// swallowed in total.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, slot: DefaultSlot}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS campaign_progress (
			slot TEXT PRIMARY KEY,
			level_index INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			swallowed INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_slot ON level_completions(slot);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WithSlot returns a view of the store bound to a named progress slot.
func (s *Store) WithSlot(slot string) *Store {
	if slot == "" {
		slot = DefaultSlot
	}
	return &Store{db: s.db, slot: slot}
}

// LevelIndex returns the saved campaign position for the slot, and whether
// one was saved. Implements progress.Store.
func (s *Store) LevelIndex() (int, bool, error) {
	var index int
	err := s.db.QueryRow(
		"SELECT level_index FROM campaign_progress WHERE slot = ?",
		s.slot,
	).Scan(&index)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return index, true, nil
}

// SetLevelIndex saves the campaign position for the slot.
func (s *Store) SetLevelIndex(index int) error {
	_, err := s.db.Exec(
		`INSERT INTO campaign_progress (slot, level_index, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   level_index = excluded.level_index,
		   updated_at = CURRENT_TIMESTAMP`,
		s.slot, index,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ClearProgress removes the slot's saved position and completion history.
func (s *Store) ClearProgress() error {
	if _, err := s.db.Exec("DELETE FROM campaign_progress WHERE slot = ?", s.slot); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM level_completions WHERE slot = ?", s.slot); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// SaveCompletion records a finished level for the slot.
func (s *Store) SaveCompletion(levelID string, levelIndex, swallowed int) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_completions (slot, level_id, level_index, swallowed)
		 VALUES (?, ?, ?, ?)`,
		s.slot, levelID, levelIndex, swallowed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Completions retrieves the slot's completion history, most recent first.
func (s *Store) Completions(limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, level_index, swallowed, completed_at
		 FROM level_completions
		 WHERE slot = ?
		 ORDER BY completed_at DESC, id DESC
		 LIMIT ?`,
		s.slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var completedAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.LevelIndex, &e.Swallowed, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CompletedAt = parseTimestamp(completedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SaveScore records a finished run's swallow total for the given game mode.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game mode.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// parseTimestamp handles the driver returning either time.Time or the raw
// DATETIME string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store satisfies the progression persistence contract.
var _ progress.Store = (*Store)(nil)
