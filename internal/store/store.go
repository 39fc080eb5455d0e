// Package store implements the event collection: pure transforms over the
// ordered event list, derived views, and the State container that owns the
// authoritative copy. Transforms never mutate their input; each one returns
// a fresh collection built from the old one plus its arguments.
package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/hisbu/events-app/internal/model"
)

// NextID returns the id the next created event will receive:
// one past the highest existing id, or 1 for an empty collection.
// Ids are never reused after a delete.
func NextID(events []model.Event) int {
	max := 0
	for _, e := range events {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// AddEvent appends a new event built from the draft. The draft is assumed
// pre-validated; AddEvent itself never fails. The new event starts with an
// empty participant list.
func AddEvent(events []model.Event, d model.EventDraft) []model.Event {
	category := d.Category
	if category == "" {
		category = model.CategoryWorkshop
	}

	ev := model.Event{
		ID:              NextID(events),
		Name:            d.Name,
		Date:            d.Date,
		Time:            d.Time,
		Category:        category,
		Location:        d.Location,
		Description:     d.Description,
		MaxParticipants: d.MaxParticipants,
		Participants:    []model.Participant{},
	}

	out := make([]model.Event, 0, len(events)+1)
	out = append(out, events...)
	return append(out, ev)
}

// UpdateEvent replaces the event whose id matches ev.ID. When no event
// matches, the collection is returned unchanged; a missing id is a silent
// no-op, not an error.
func UpdateEvent(events []model.Event, ev model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	for i := range out {
		if out[i].ID == ev.ID {
			out[i] = ev
		}
	}
	return out
}

// DeleteEvent removes the event with the given id; no-op when absent.
func DeleteEvent(events []model.Event, id int) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// NewParticipant builds a participant from a draft, assigning a fresh UUID.
// Affiliation is kept only when the draft represents an institution, and the
// attendance type defaults to offline.
func NewParticipant(d model.ParticipantDraft) model.Participant {
	p := model.Participant{
		ID:             uuid.New().String(),
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		AttendanceType: d.AttendanceType,
	}
	if d.RepresentsInstitution {
		p.Affiliation = strings.TrimSpace(d.Affiliation)
	}
	if p.AttendanceType == "" {
		p.AttendanceType = model.AttendanceOffline
	}
	return p
}

// AddParticipant appends p to the event with the given id; no-op when the
// event is absent. Capacity is advisory only: the transform accepts the add
// even when the event is already full. Clients that want the UI guard check
// Event.IsFull before calling.
func AddParticipant(events []model.Event, eventID int, p model.Participant) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	for i := range out {
		if out[i].ID != eventID {
			continue
		}
		ps := make([]model.Participant, 0, len(out[i].Participants)+1)
		ps = append(ps, out[i].Participants...)
		out[i].Participants = append(ps, p)
	}
	return out
}

// RemoveParticipant removes the matching participant from the matching
// event; no-op when either is not found.
func RemoveParticipant(events []model.Event, eventID int, participantID string) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	for i := range out {
		if out[i].ID != eventID {
			continue
		}
		ps := make([]model.Participant, 0, len(out[i].Participants))
		for _, p := range out[i].Participants {
			if p.ID != participantID {
				ps = append(ps, p)
			}
		}
		out[i].Participants = ps
	}
	return out
}
