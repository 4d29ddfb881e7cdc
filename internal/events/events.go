package events

import (
	"sync"
	"time"

	"hibachi/internal/model"
)

// Event types published by the reservation store.
const (
	ReservationCreated = "reservation.created"
	ReservationDeleted = "reservation.deleted"
)

// Event is a lightweight in-process domain event.
type Event struct {
	Type        string
	Reservation model.Reservation
	OccurredAt  time.Time
}

// Handler reacts to an event.
type Handler func(event Event)

// Bus provides in-process pub/sub for reservation mutations. Handlers
// run synchronously on the publishing goroutine.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		handler(event)
	}
}
