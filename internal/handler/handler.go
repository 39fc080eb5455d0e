// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the event state and the weather service.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hisbu/events-app/internal/model"
	"github.com/hisbu/events-app/internal/store"
	"github.com/hisbu/events-app/internal/validate"
)

// EventHandler holds the HTTP handlers operating on the event collection.
type EventHandler struct {
	state *store.State
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(state *store.State) *EventHandler {
	return &EventHandler{state: state}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func writeFieldErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, model.FieldErrorResponse{Errors: errs})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func eventID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// ─── Event handlers ───────────────────────────────────────────────────────────

// ListEvents handles GET /events?q=...&category=...
// Returns the collection filtered by search term and category.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, h.state.Filtered(term, category))
}

// CreateEvent handles POST /events
// Validates the draft; field errors come back as a 422 with a field→message
// map so the form can display them inline.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var draft model.EventDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if errs := validate.Event(draft); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	writeJSON(w, http.StatusCreated, h.state.AddEvent(r.Context(), draft))
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ev, found := h.state.Get(id)
	if !found {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// UpdateEvent handles PUT /events/{id}
// The body carries the full event; the id comes from the URL. An unknown id
// is silently ignored at the data layer, matching the lenient update
// semantics of the collection.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var ev model.Event
	if err := decodeJSON(r, &ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	ev.ID = id
	if ev.Participants == nil {
		// An update from the form replaces the whole entity; keep the
		// existing roster when the client did not send one.
		if existing, found := h.state.Get(id); found {
			ev.Participants = existing.Participants
		} else {
			ev.Participants = []model.Participant{}
		}
	}

	draft := model.EventDraft{
		Name:            ev.Name,
		Date:            ev.Date,
		Time:            ev.Time,
		Category:        ev.Category,
		Location:        ev.Location,
		Description:     ev.Description,
		MaxParticipants: ev.MaxParticipants,
	}
	if errs := validate.Event(draft); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	h.state.UpdateEvent(r.Context(), ev)
	writeJSON(w, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /events/{id}
// Deleting an unknown id is a no-op, not an error.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	h.state.DeleteEvent(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// ─── Participant handlers ─────────────────────────────────────────────────────

// AddParticipant handles POST /events/{id}/participants
// Capacity is advisory: a full event still accepts the registration; the
// client reads Remaining from the event to disable the affordance.
func (h *EventHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var draft model.ParticipantDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if errs := validate.Participant(draft); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	p, found := h.state.AddParticipant(r.Context(), id, draft)
	if !found {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// RemoveParticipant handles DELETE /events/{id}/participants/{pid}
// Unknown event or participant ids are no-ops.
func (h *EventHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	h.state.RemoveParticipant(r.Context(), id, chi.URLParam(r, "pid"))
	w.WriteHeader(http.StatusNoContent)
}

// ─── Derived views ────────────────────────────────────────────────────────────

// Stats handles GET /stats
// Aggregates the full, unfiltered collection.
func (h *EventHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Stats())
}

// Notification handles GET /notification
// Returns the pending transient notification, or 204 when none is pending.
func (h *EventHandler) Notification(w http.ResponseWriter, r *http.Request) {
	n := h.state.Relay().Current()
	if n == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
