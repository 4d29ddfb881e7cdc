package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hibachi/internal/events"
	"hibachi/internal/model"
)

// persistTimeout bounds the fire-and-forget durable write.
const persistTimeout = 5 * time.Second

// Store holds the reservation list. The in-memory slice is the source
// of truth for the session; every mutation mirrors the full list to the
// KV, and a failed mirror is logged but never surfaced to the caller.
type Store struct {
	kv     KV
	bus    *events.Bus
	logger *zerolog.Logger

	mu           sync.RWMutex
	reservations []model.Reservation
}

// Open loads the persisted reservation list. A missing record or
// unparseable payload yields an empty list; neither is fatal.
func Open(ctx context.Context, kv KV, bus *events.Bus, logger *zerolog.Logger) *Store {
	s := &Store{kv: kv, bus: bus, logger: logger}

	data, err := kv.Get(ctx, StateKey)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Info().Msg("no persisted reservations, starting empty")
	case err != nil:
		logger.Warn().Err(err).Msg("failed to read persisted reservations, starting empty")
	default:
		var list []model.Reservation
		if err := json.Unmarshal(data, &list); err != nil {
			logger.Warn().Err(err).Msg("persisted reservations unparseable, starting empty")
		} else {
			s.reservations = list
		}
	}

	logger.Info().Int("count", len(s.reservations)).Msg("reservation store opened")
	return s
}

// Add assigns an ID, appends the reservation, persists the full list
// and publishes a created event. The caller is expected to have run the
// conflict gate already; Add itself only validates shape.
func (s *Store) Add(ctx context.Context, r *model.Reservation) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.reservations = append(s.reservations, *r)
	snapshot := s.encodeLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.ReservationCreated, Reservation: *r})
	}
	return nil
}

// Remove filters out the reservation with the given ID and persists the
// remaining list. Returns false when no record matched.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	var removed *model.Reservation
	kept := s.reservations[:0]
	for i := range s.reservations {
		if s.reservations[i].ID == id && removed == nil {
			r := s.reservations[i]
			removed = &r
			continue
		}
		kept = append(kept, s.reservations[i])
	}
	s.reservations = kept
	var snapshot []byte
	if removed != nil {
		snapshot = s.encodeLocked()
	}
	s.mu.Unlock()

	if removed == nil {
		return false
	}

	s.persist(ctx, snapshot)
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.ReservationDeleted, Reservation: *removed})
	}
	return true
}

// List returns a copy of the current reservation list.
func (s *Store) List() []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

// Get returns the reservation with the given ID.
func (s *Store) Get(id string) (model.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			return s.reservations[i], true
		}
	}
	return model.Reservation{}, false
}

// Count returns the number of stored reservations.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reservations)
}

func (s *Store) encodeLocked() []byte {
	data, err := json.Marshal(s.reservations)
	if err != nil {
		// Reservation marshalling cannot fail for validated records.
		s.logger.Error().Err(err).Msg("encode reservations")
		return nil
	}
	return data
}

// persist mirrors the full list to the KV. Best effort: errors are
// logged and swallowed, the in-memory list stays authoritative.
func (s *Store) persist(ctx context.Context, snapshot []byte) {
	if snapshot == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, StateKey, snapshot); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist reservations")
	}
}
