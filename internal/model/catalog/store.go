package catalog

import "sync"

// Store exposes read-only restaurant lookups.
type Store interface {
	List() []Restaurant
	FindByID(id string) (Restaurant, bool)
}

// MemoryStore implements Store with an in-memory slice. Contents can be swapped
// wholesale with Replace when the backing catalog file changes.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Restaurant
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied restaurants.
func NewMemoryStore(items []Restaurant) *MemoryStore {
	return &MemoryStore{items: append([]Restaurant(nil), items...)}
}

// List returns a copy of the catalog in its original order.
func (s *MemoryStore) List() []Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Restaurant(nil), s.items...)
}

// FindByID looks up a restaurant by identifier.
func (s *MemoryStore) FindByID(id string) (Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Restaurant{}, false
}

// Replace swaps the whole catalog.
func (s *MemoryStore) Replace(items []Restaurant) {
	copied := append([]Restaurant(nil), items...)
	s.mu.Lock()
	s.items = copied
	s.mu.Unlock()
}

// Len reports the number of restaurants currently loaded.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
