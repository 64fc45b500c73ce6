package events

import (
	"log"
	"sync"
	"time"
)

// Event types published when the starred list changes.
const (
	TypeAdded   = "starred.added"
	TypeDeleted = "starred.deleted"
	TypeUpdated = "starred.updated"
)

const defaultBuffer = 16

// Event describes a single mutation of the starred list.
type Event struct {
	Type         string    `json:"type"`
	EntryID      string    `json:"entryId"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	Comment      *string   `json:"comment,omitempty"`
	At           time.Time `json:"at"`
}

// Hub fans events out to subscribers. Publish never blocks: a subscriber whose
// buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
}

// NewHub creates a hub whose subscriber channels hold up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[int]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new listener. The returned cancel func must be called
// once the caller stops reading; it closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers evt to every current subscriber.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- evt:
		default:
			log.Printf("[events] subscriber %d is lagging, dropped %s for entry=%s", id, evt.Type, evt.EntryID)
		}
	}
}

// Subscribers reports how many listeners are attached.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
