package ats

import "sync"

// Store holds the currently published Shortlist. The shortlist is treated
// as immutable after publish: each completed batch replaces it wholesale,
// so concurrent readers never observe a partially updated view.
type Store struct {
	mu      sync.RWMutex
	current *Shortlist
}

func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current shortlist.
func (s *Store) Publish(shortlist *Shortlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = shortlist
}

// Current returns the published shortlist, or nil when no batch has
// completed since startup or the last reset.
func (s *Store) Current() *Shortlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reset discards the published shortlist.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
