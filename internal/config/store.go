package config

import "sync"

// Store holds the live settings. The frame loop reads a snapshot once per
// tick with Get; hotkeys and the file watcher write through Update.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a store holding the normalized initial settings.
func NewStore(initial Settings) *Store {
	return &Store{settings: initial.Normalize()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and normalizes the result.
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	fn(&next)
	s.settings = next.Normalize()
	return s.settings
}

// Replace swaps in a whole new settings value.
func (s *Store) Replace(next Settings) {
	s.Update(func(cur *Settings) { *cur = next })
}
