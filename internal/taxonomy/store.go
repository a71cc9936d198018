package taxonomy

import "sync"

// Store is the single owner of the live taxonomy and its file. Mutations are
// applied to a copy, persisted, and only then published, so memory and disk
// always agree on the last successful save.
type Store struct {
	mu   sync.RWMutex
	path string
	tax  *Taxonomy
}

// Open loads the taxonomy at path into a new Store
func Open(path string) (*Store, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(path, t), nil
}

// NewStore wraps an already loaded taxonomy
func NewStore(path string, t *Taxonomy) *Store {
	return &Store{path: path, tax: t}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a private copy of the current taxonomy
func (s *Store) Snapshot() *Taxonomy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tax.Clone()
}

// View runs fn against the current taxonomy under a read lock. fn must not
// retain or mutate t.
func (s *Store) View(fn func(t *Taxonomy)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.tax)
}

// Update applies fn to a copy of the taxonomy and writes it through to disk.
// If fn or the save fails, the store keeps its previous state.
func (s *Store) Update(fn func(t *Taxonomy) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.tax.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.Save(s.path); err != nil {
		return err
	}
	s.tax = next
	return nil
}
