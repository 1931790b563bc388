package inventory

import (
	"sort"
	"sync"
)

// Store is the shared map of container ID to Entity.
type Store struct {
	mu       sync.Mutex
	entities map[string]Entity
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entities: make(map[string]Entity)}
}

// Replace swaps the whole snapshot. Entities absent from list do not survive.
// Later duplicates of the same ID win.
func (s *Store) Replace(list []Entity) {
	next := make(map[string]Entity, len(list))
	for _, e := range list {
		next[e.ID] = e
	}

	s.mu.Lock()
	s.entities = next
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of the current entities, ordered by
// name then ID so repeated builds over an unchanged store are stable.
func (s *Store) Snapshot() []Entity {
	s.mu.Lock()
	out := make([]Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns the entity with the given ID.
func (s *Store) Get(id string) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	return e, ok
}

// Len returns the number of known entities.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}
