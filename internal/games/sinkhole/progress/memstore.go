package progress

// MemoryStore is an in-memory Store. Used by tests and by freeplay sessions
// that should not touch the player's persisted campaign position.
type MemoryStore struct {
	index int
	saved bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LevelIndex returns the stored index, if any.
func (s *MemoryStore) LevelIndex() (int, bool, error) {
	return s.index, s.saved, nil
}

// SetLevelIndex stores the index.
func (s *MemoryStore) SetLevelIndex(index int) error {
	s.index = index
	s.saved = true
	return nil
}

// ClearProgress forgets any stored index.
func (s *MemoryStore) ClearProgress() error {
	s.index = 0
	s.saved = false
	return nil
}

var _ Store = (*MemoryStore)(nil)
