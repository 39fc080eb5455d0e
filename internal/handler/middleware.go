package handler

import (
	"crypto/subtle"
	"log"
	"net/http"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// Logger is a structured access-log middleware.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Printf("%s %s %d %dB %s reqid=%s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
			time.Since(start).Round(time.Microsecond),
			chimiddleware.GetReqID(r.Context()),
		)
	})
}

// CORS is a permissive CORS middleware for the browser UI.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─── Rate limiting ────────────────────────────────────────────────────────────

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	rps   float64
	burst int

	mu      sync.Mutex
	buckets map[string]*clientBucket
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = time.Now()
		return b.limiter
	}
	lim := rate.NewLimiter(rate.Limit(rl.rps), rl.burst)
	rl.buckets[key] = &clientBucket{limiter: lim, lastSeen: time.Now()}
	return lim
}

// cleanup drops idle buckets so the map does not grow without bound.
func (rl *rateLimiter) cleanup(idleTTL time.Duration) {
	ticker := time.NewTicker(idleTTL / 2)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) > idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit returns a per-client token-bucket middleware keyed by remote
// address. Clients over the limit get a 429 with a Retry-After header.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	rl := &rateLimiter{rps: rps, burst: burst, buckets: make(map[string]*clientBucket)}
	go rl.cleanup(3 * time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.get(r.RemoteAddr).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ─── Basic auth ───────────────────────────────────────────────────────────────

// BasicAuth enforces HTTP Basic Auth against a bcrypt password hash. The
// username comparison is constant-time.
func BasicAuth(username, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passMatch := ok && userMatch &&
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) == nil
			if !passMatch {
				w.Header().Set("WWW-Authenticate", `Basic realm="event scheduler"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HashPassword produces a bcrypt hash suitable for the basic_auth config.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
