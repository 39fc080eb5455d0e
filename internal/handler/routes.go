package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the API routes on the given router. Middleware and the
// static file server are wired by the caller.
func Routes(r chi.Router, events *EventHandler, weather *WeatherHandler, guard func(http.Handler) http.Handler) {
	r.Get("/health", HealthCheck)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", events.ListEvents)
		r.Get("/{id}", events.GetEvent)
		r.Group(func(r chi.Router) {
			if guard != nil {
				r.Use(guard)
			}
			r.Post("/", events.CreateEvent)
			r.Put("/{id}", events.UpdateEvent)
			r.Delete("/{id}", events.DeleteEvent)
			r.Post("/{id}/participants", events.AddParticipant)
			r.Delete("/{id}/participants/{pid}", events.RemoveParticipant)
		})
	})

	r.Get("/stats", events.Stats)
	r.Get("/notification", events.Notification)

	r.Route("/weather", func(r chi.Router) {
		r.Get("/", weather.Current)
		r.Post("/location", weather.Override)
		r.Post("/refresh", weather.Refresh)
	})
}
