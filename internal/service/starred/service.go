package starred

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	"github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
	"github.com/zhouzirui/restaurant-stars/backend/internal/service/events"
)

var (
	ErrNotFound           = errors.New("starred restaurant not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrAlreadyStarred     = errors.New("restaurant already starred")
)

// IDGenerator hands out identifiers for new entries. Implementations must not
// repeat an id for the lifetime of the process.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

// NewID implements IDGenerator.
func (f IDGeneratorFunc) NewID() string { return f() }

// Publisher receives a notification after every successful mutation.
type Publisher interface {
	Publish(evt events.Event)
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the default random UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithPublisher attaches a change listener, typically an events.Hub.
func WithPublisher(pub Publisher) Option {
	return func(s *Service) {
		s.publisher = pub
	}
}

// Service owns the starred list and joins it against the catalog on reads.
// Each operation runs as one critical section under mu.
type Service struct {
	mu        sync.RWMutex
	entries   []starred.Entry
	catalog   catalog.Store
	ids       IDGenerator
	publisher Publisher
}

// NewService builds the service around the given catalog, preloaded with seed.
func NewService(restaurants catalog.Store, seed []starred.Entry, opts ...Option) *Service {
	s := &Service{
		entries: make([]starred.Entry, 0, len(seed)),
		catalog: restaurants,
		ids:     IDGeneratorFunc(uuid.NewString),
	}
	for _, entry := range seed {
		s.entries = append(s.entries, cloneEntry(entry))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the joined view of every entry in insertion order. Entries whose
// restaurant is missing from the catalog are skipped.
func (s *Service) List(_ context.Context) []starred.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]starred.View, 0, len(s.entries))
	for _, entry := range s.entries {
		view, ok := s.join(entry)
		if !ok {
			log.Printf("[starred] skipping entry=%s: restaurant %s missing from catalog", entry.ID, entry.RestaurantID)
			continue
		}
		views = append(views, view)
	}
	return views
}

// Get returns the joined view of a single entry.
func (s *Service) Get(_ context.Context, entryID string) (starred.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(entryID)
	if idx < 0 {
		return starred.View{}, ErrNotFound
	}

	entry := s.entries[idx]
	view, ok := s.join(entry)
	if !ok {
		log.Printf("[starred] entry=%s references missing restaurant %s", entry.ID, entry.RestaurantID)
		return starred.View{}, ErrNotFound
	}
	return view, nil
}

// Add stars a catalog restaurant. The new entry starts without a comment.
func (s *Service) Add(_ context.Context, restaurantID string) (starred.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restaurant, ok := s.catalog.FindByID(restaurantID)
	if !ok {
		return starred.View{}, ErrRestaurantNotFound
	}
	for _, entry := range s.entries {
		if entry.RestaurantID == restaurantID {
			return starred.View{}, ErrAlreadyStarred
		}
	}

	id := s.ids.NewID()
	if s.indexOf(id) >= 0 {
		return starred.View{}, fmt.Errorf("id generator returned duplicate id %q", id)
	}

	entry := starred.Entry{ID: id, RestaurantID: restaurant.ID}
	s.entries = append(s.entries, entry)

	s.publish(events.Event{Type: events.TypeAdded, EntryID: entry.ID, RestaurantID: entry.RestaurantID})
	return starred.View{ID: entry.ID, RestaurantID: restaurant.ID, Name: restaurant.Name}, nil
}

// Delete removes an entry, keeping the order of the remaining ones.
func (s *Service) Delete(_ context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(entryID)
	if idx < 0 {
		return ErrNotFound
	}

	removed := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)

	s.publish(events.Event{Type: events.TypeDeleted, EntryID: removed.ID, RestaurantID: removed.RestaurantID})
	return nil
}

// UpdateComment replaces the comment of an entry. nil clears it.
func (s *Service) UpdateComment(_ context.Context, entryID string, comment *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(entryID)
	if idx < 0 {
		return ErrNotFound
	}

	s.entries[idx].Comment = cloneString(comment)

	entry := s.entries[idx]
	s.publish(events.Event{
		Type:         events.TypeUpdated,
		EntryID:      entry.ID,
		RestaurantID: entry.RestaurantID,
		Comment:      cloneString(entry.Comment),
	})
	return nil
}

// Count reports the number of stored entries, including ones the catalog no
// longer resolves.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Service) indexOf(entryID string) int {
	for i, entry := range s.entries {
		if entry.ID == entryID {
			return i
		}
	}
	return -1
}

func (s *Service) join(entry starred.Entry) (starred.View, bool) {
	restaurant, ok := s.catalog.FindByID(entry.RestaurantID)
	if !ok {
		return starred.View{}, false
	}
	return starred.View{
		ID:           entry.ID,
		RestaurantID: restaurant.ID,
		Name:         restaurant.Name,
		Comment:      cloneString(entry.Comment),
	}, true
}

func (s *Service) publish(evt events.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(evt)
}

func cloneEntry(entry starred.Entry) starred.Entry {
	entry.Comment = cloneString(entry.Comment)
	return entry
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
