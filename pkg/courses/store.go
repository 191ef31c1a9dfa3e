package courses

import "sync/atomic"

// Store holds the live catalog behind an atomic pointer, mirroring the
// taxonomy store: reload is a snapshot swap, never in-place mutation.
type Store struct {
	cur atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.cur.Store(c)
	return s
}

// Current returns the live snapshot.
func (s *Store) Current() *Catalog { return s.cur.Load() }

// Swap installs a new snapshot.
func (s *Store) Swap(c *Catalog) { s.cur.Store(c) }
