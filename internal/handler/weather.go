package handler

import (
	"net/http"

	"github.com/hisbu/events-app/internal/weather"
)

// WeatherHandler exposes the weather widget state over HTTP. Geolocation
// itself happens in the browser; the client sends coordinates here.
type WeatherHandler struct {
	svc *weather.Service
}

// NewWeatherHandler constructs a WeatherHandler.
func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{svc: svc}
}

// Current handles GET /weather
// Returns the last report and the current error state, if any. Errors are a
// displayed state of the widget, never an HTTP failure.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// Override handles POST /weather/location
// The body carries either a free-text place name or a lat/lon pair from the
// browser's geolocation.
func (h *WeatherHandler) Override(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Place string   `json:"place"`
		Lat   *float64 `json:"lat"`
		Lon   *float64 `json:"lon"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	switch {
	case req.Lat != nil && req.Lon != nil:
		h.svc.SetCoordinates(r.Context(), *req.Lat, *req.Lon)
	case req.Place != "":
		h.svc.SetLocation(r.Context(), req.Place)
	default:
		writeError(w, http.StatusBadRequest, "place or lat/lon is required")
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Status())
}

// Refresh handles POST /weather/refresh
// Forces an immediate re-fetch for the current location.
func (h *WeatherHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.svc.Refresh(r.Context())
	writeJSON(w, http.StatusOK, h.svc.Status())
}
