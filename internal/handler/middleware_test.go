package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit429(t *testing.T) {
	// One token, no refill worth mentioning: the second request must be
	// rejected with a Retry-After header.
	h := RateLimit(0.001, 1)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, req)
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Equal(t, "1", w2.Header().Get("Retry-After"))
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(0.001, 1)(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/events", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	other := httptest.NewRequest(http.MethodGet, "/events", nil)
	other.RemoteAddr = "10.0.0.2:1234"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, first)
	require.Equal(t, http.StatusOK, w.Code)

	// A different client has its own bucket.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuth(t *testing.T) {
	hash, err := HashPassword("rahasia")
	require.NoError(t, err)
	h := BasicAuth("admin", hash)(okHandler())

	// No credentials.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	// Wrong password.
	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	req.SetBasicAuth("admin", "salah")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong username.
	req = httptest.NewRequest(http.MethodPost, "/events", nil)
	req.SetBasicAuth("root", "rahasia")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct credentials.
	req = httptest.NewRequest(http.MethodPost, "/events", nil)
	req.SetBasicAuth("admin", "rahasia")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/events", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
