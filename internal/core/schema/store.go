package schema

import "sync/atomic"

// Store holds the active snapshot. Readers get either the old or the new
// snapshot in full; nothing is ever mutated in place.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial == nil {
		initial = Empty()
	}
	s.current.Store(initial)
	return s
}

func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap installs next and returns the snapshot it replaced.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		next = Empty()
	}
	return s.current.Swap(next)
}
