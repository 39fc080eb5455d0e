package store

import (
	"math"
	"strings"

	"github.com/hisbu/events-app/internal/model"
)

// Matches reports whether an event passes the search term and category
// filter. The term matches the event name or location case-insensitively;
// an empty category or the wildcard matches every category.
func Matches(e model.Event, term, category string) bool {
	if category != "" && category != model.CategoryAll && e.Category != category {
		return false
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Name), t) ||
		strings.Contains(strings.ToLower(e.Location), t)
}

// Filter returns the events passing Matches, preserving collection order.
// It re-scans the whole collection on every call, which is fine at the
// dozens-of-events scale this tool operates at.
func Filter(events []model.Event, term, category string) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, term, category) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the event with the given id, or false when absent. It backs
// the create-vs-edit mode of the event form.
func Find(events []model.Event, id int) (model.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}

// Statistics aggregates the full, unfiltered collection.
type Statistics struct {
	TotalEvents         int     `json:"totalEvents"`
	TotalParticipants   int     `json:"totalParticipants"`
	AverageParticipants float64 `json:"averageParticipants"`
	TotalCapacity       int     `json:"totalCapacity"`
	CapacityUtilization float64 `json:"capacityUtilization"`
	AvailableSeats      int     `json:"availableSeats"`
}

// Summarize computes the aggregate statistics. Ratios are rounded to one
// decimal and degrade to 0 instead of dividing by zero. AvailableSeats can
// go negative when events are overbooked.
func Summarize(events []model.Event) Statistics {
	s := Statistics{TotalEvents: len(events)}
	for _, e := range events {
		s.TotalParticipants += len(e.Participants)
		s.TotalCapacity += e.MaxParticipants
	}
	if s.TotalEvents > 0 {
		s.AverageParticipants = round1(float64(s.TotalParticipants) / float64(s.TotalEvents))
	}
	if s.TotalCapacity > 0 {
		s.CapacityUtilization = round1(float64(s.TotalParticipants) / float64(s.TotalCapacity) * 100)
	}
	s.AvailableSeats = s.TotalCapacity - s.TotalParticipants
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
