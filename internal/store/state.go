package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/hisbu/events-app/internal/model"
	"github.com/hisbu/events-app/internal/notify"
	"github.com/hisbu/events-app/internal/storage"
)

// State is the single source of truth for the event collection. All
// mutations go through the pure transforms in this package; State applies
// them under a lock, persists the resulting collection through the gateway,
// and pushes a confirmation to the notification relay.
//
// A mutation and its persistence write happen inside one critical section,
// so two mutations never interleave. Persistence failures are logged and
// swallowed: the in-memory collection stays authoritative for the session.
type State struct {
	mu      sync.RWMutex
	events  []model.Event
	gateway storage.Gateway
	relay   *notify.Relay
}

// NewState seeds the state from the gateway (falling back to the built-in
// sample collection when the stored blob is missing or unreadable).
func NewState(ctx context.Context, gw storage.Gateway, relay *notify.Relay) *State {
	return &State{
		events:  storage.LoadOrSeed(ctx, gw),
		gateway: gw,
		relay:   relay,
	}
}

// Relay exposes the notification relay for the HTTP surface to poll.
func (s *State) Relay() *notify.Relay {
	return s.relay
}

// Events returns a copy of the current collection in insertion order.
func (s *State) Events() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Filtered returns the events matching the search term and category filter.
func (s *State) Filtered(term, category string) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.events, term, category)
}

// Get returns the event with the given id.
func (s *State) Get(id int) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Find(s.events, id)
}

// Stats aggregates the full collection.
func (s *State) Stats() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.events)
}

// AddEvent creates an event from a pre-validated draft and returns it.
func (s *State) AddEvent(ctx context.Context, d model.EventDraft) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = AddEvent(s.events, d)
	ev := s.events[len(s.events)-1]
	s.persist(ctx)
	s.notifyf("Event %q berhasil ditambahkan!", ev.Name)
	return ev
}

// UpdateEvent replaces the stored event with the same id. It reports whether
// a matching event existed; either way the operation does not fail.
func (s *State) UpdateEvent(ctx context.Context, ev model.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := Find(s.events, ev.ID)
	s.events = UpdateEvent(s.events, ev)
	if found {
		s.persist(ctx)
		s.notifyf("Event %q berhasil diperbarui!", ev.Name)
	}
	return found
}

// DeleteEvent removes the event with the given id; absent ids are ignored.
func (s *State) DeleteEvent(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, found := Find(s.events, id)
	s.events = DeleteEvent(s.events, id)
	if found {
		s.persist(ctx)
		s.notifyf("Event %q berhasil dihapus!", ev.Name)
	}
	return found
}

// AddParticipant registers a participant built from a pre-validated draft.
// Capacity is advisory: a full event still accepts the registration.
func (s *State) AddParticipant(ctx context.Context, eventID int, d model.ParticipantDraft) (model.Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := Find(s.events, eventID); !found {
		return model.Participant{}, false
	}
	p := NewParticipant(d)
	s.events = AddParticipant(s.events, eventID, p)
	s.persist(ctx)
	s.notifyf("Peserta %q berhasil ditambahkan!", p.Name)
	return p, true
}

// RemoveParticipant removes a participant from an event; unknown ids on
// either side are ignored.
func (s *State) RemoveParticipant(ctx context.Context, eventID int, participantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, found := Find(s.events, eventID)
	if !found {
		return false
	}
	had := len(ev.Participants)
	s.events = RemoveParticipant(s.events, eventID, participantID)
	ev, _ = Find(s.events, eventID)
	if len(ev.Participants) == had {
		return false
	}
	s.persist(ctx)
	s.notifyf("Peserta berhasil dihapus!")
	return true
}

// persist writes the whole collection through the gateway. Callers hold the
// write lock. Failures degrade to session-only state.
func (s *State) persist(ctx context.Context) {
	if s.gateway == nil {
		return
	}
	if err := s.gateway.Save(ctx, s.events); err != nil {
		log.Printf("store: persist failed, keeping in-memory state: %v", err)
	}
}

func (s *State) notifyf(format string, args ...any) {
	if s.relay == nil {
		return
	}
	s.relay.Push(notify.Success, fmt.Sprintf(format, args...))
}
