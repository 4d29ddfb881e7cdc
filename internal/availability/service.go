package availability

import (
	"sync"
	"time"

	"hibachi/internal/events"
	"hibachi/internal/model"
)

// Lister provides the current reservation list.
type Lister interface {
	List() []model.Reservation
}

// Service holds the cached availability snapshot for the current anchor
// date. Reads see either the last full recompute or that recompute plus
// optimistic decrements applied since; a recompute always wins.
type Service struct {
	store Lister

	mu       sync.RWMutex
	anchor   time.Time
	snapshot Snapshot
}

// NewService builds a service anchored at the given date and primes the
// snapshot.
func NewService(store Lister, anchor time.Time) *Service {
	s := &Service{store: store}
	s.Recompute(anchor)
	return s
}

// Attach subscribes the service to reservation mutations so every add
// or delete triggers the authoritative recompute phase.
func (s *Service) Attach(bus *events.Bus) {
	recompute := func(events.Event) {
		s.Recompute(s.Anchor())
	}
	bus.Subscribe(events.ReservationCreated, recompute)
	bus.Subscribe(events.ReservationDeleted, recompute)
}

// Anchor returns the current anchor date.
func (s *Service) Anchor() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anchor
}

// Recompute rebuilds the whole window from the store.
func (s *Service) Recompute(anchor time.Time) {
	fresh := Compute(anchor, s.store.List())
	s.mu.Lock()
	s.anchor = anchor
	s.snapshot = fresh
	s.mu.Unlock()
}

// ApplyDecrement subtracts seats from one slot ahead of the next full
// recompute, creating the entry if the slot is not in the snapshot yet.
// This keeps the picker from flashing stale counts right after a
// submission.
func (s *Service) ApplyDecrement(date, label string, seats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byLabel := s.snapshot[date]
	if byLabel == nil {
		byLabel = make(map[string]SlotAvailability)
		s.snapshot[date] = byLabel
	}
	slot, ok := byLabel[label]
	if !ok {
		slot = SlotAvailability{AvailableSeats: model.TotalSeats, TotalSeats: model.TotalSeats}
	}
	slot.AvailableSeats -= seats
	byLabel[label] = slot
}

// Snapshot returns a deep copy of the current window so callers cannot
// mutate the cached state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Snapshot, len(s.snapshot))
	for date, byLabel := range s.snapshot {
		inner := make(map[string]SlotAvailability, len(byLabel))
		for label, slot := range byLabel {
			inner[label] = slot
		}
		out[date] = inner
	}
	return out
}
