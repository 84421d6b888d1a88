package events

import (
	"sync"
	"time"
)

// Topic names the record streams clients can watch.
type Topic string

const (
	TopicBookings Topic = "bookings"
	TopicInvoices Topic = "invoice_modifications"
	TopicCoverage Topic = "coverage"
)

// Event is a change notification. Consumers treat it as a hint to refetch;
// the store remains authoritative.
type Event struct {
	Topic     Topic
	Action    string // "created", "updated", "deleted"
	RecordID  string
	CreatedAt time.Time
}

// Handler reacts to an event.
type Handler func(Event)

// Hub provides in-process pub/sub with explicit teardown: Subscribe returns
// an unsubscribe func that must be called when the consumer goes away.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]Handler
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[int]Handler)}
}

// Subscribe registers a handler for a topic and returns its teardown func.
func (h *Hub) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]Handler)
	}
	id := h.nextID
	h.nextID++
	h.subs[topic][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[topic], id)
	}
}

// Publish notifies subscribers of the event's topic. Handlers run
// synchronously; the caller decides the concurrency model.
func (h *Hub) Publish(e Event) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[e.Topic]))
	for _, fn := range h.subs[e.Topic] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// SubscriberCount returns how many handlers watch a topic.
func (h *Hub) SubscriberCount(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
