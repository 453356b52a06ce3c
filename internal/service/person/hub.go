package person

import (
	"sync"

	"github.com/zhouzirui/person-records/backend/internal/metrics"
	"github.com/zhouzirui/person-records/backend/internal/model/person"
)

// EventType names a change applied to the store.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event describes one successful mutation.
type Event struct {
	Type      EventType      `json:"type"`
	ID        int            `json:"id"`
	Person    *person.Person `json:"person,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

const defaultSubscriberBuffer = 32

// Hub fans change events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	buffer  int
	metrics *metrics.Metrics
}

// NewHub creates a hub. buffer < 1 selects the default per-subscriber buffer.
func NewHub(buffer int, m *metrics.Metrics) *Hub {
	if buffer < 1 {
		buffer = defaultSubscriberBuffer
	}
	return &Hub{
		subs:    make(map[*Subscription]struct{}),
		buffer:  buffer,
		metrics: m,
	}
}

// Subscription receives events until Close is called.
type Subscription struct {
	ch   chan Event
	hub  *Hub
	once sync.Once
}

// Events returns the receive side of the subscription. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription from its hub. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan Event, h.buffer), hub: h}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Subscribers returns the number of attached subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers evt to every subscriber with room in its buffer.
func (h *Hub) Publish(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- evt:
		default:
			h.metrics.IncrementEventsDropped()
		}
	}
}
