// Package storage implements the persistence gateway: the whole event
// collection is serialized as a single JSON blob and written under one
// fixed key. There are no partial updates and no migrations; every mutation
// rewrites the full collection. Backends cover a local JSON file (the
// default), Redis, and PostgreSQL.
package storage

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/hisbu/events-app/internal/model"
)

// Key is the fixed name the serialized collection is stored under.
const Key = "events"

// ErrNotFound is returned by Load when no collection has been saved yet.
var ErrNotFound = errors.New("storage: no saved collection")

// Gateway reads and writes the event collection as one blob.
type Gateway interface {
	Load(ctx context.Context) ([]model.Event, error)
	Save(ctx context.Context, events []model.Event) error
}

// LoadOrSeed loads the stored collection. A missing key or malformed blob
// logs a warning and yields the built-in sample collection; it never
// surfaces an error to the caller.
func LoadOrSeed(ctx context.Context, g Gateway) []model.Event {
	if g == nil {
		return Seed()
	}
	events, err := g.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("storage: could not load saved events, using sample data: %v", err)
		}
		return Seed()
	}
	return events
}

// Seed returns the sample collection used when nothing has been saved yet:
// two events with a few registered participants.
func Seed() []model.Event {
	return []model.Event{
		{
			ID:              1,
			Name:            "Workshop React",
			Date:            "2025-12-15",
			Time:            "09:00",
			Category:        model.CategoryWorkshop,
			Location:        "Ruang A",
			Description:     "Belajar React dari dasar hingga mahir",
			MaxParticipants: 30,
			Participants: []model.Participant{
				{ID: uuid.New().String(), Name: "Budi", Email: "budi@example.com"},
				{ID: uuid.New().String(), Name: "Santi", Email: "santi@example.com"},
			},
		},
		{
			ID:              2,
			Name:            "Seminar Web Development",
			Date:            "2025-12-20",
			Time:            "14:00",
			Category:        model.CategorySeminar,
			Location:        "Auditorium",
			Description:     "Tren terbaru dalam web development",
			MaxParticipants: 100,
			Participants: []model.Participant{
				{ID: uuid.New().String(), Name: "Ahmad", Email: "ahmad@example.com"},
			},
		},
	}
}
