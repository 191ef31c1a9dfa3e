package taxonomy

import "sync/atomic"

// Store holds the live taxonomy behind an atomic pointer. Reload replaces the
// whole snapshot in one swap; the live structure is never mutated in place,
// so in-flight requests keep the snapshot they started with.
type Store struct {
	cur atomic.Pointer[Taxonomy]
}

func NewStore(t *Taxonomy) *Store {
	s := &Store{}
	s.cur.Store(t)
	return s
}

// Current returns the live snapshot.
func (s *Store) Current() *Taxonomy { return s.cur.Load() }

// Swap installs a new snapshot.
func (s *Store) Swap(t *Taxonomy) { s.cur.Store(t) }
