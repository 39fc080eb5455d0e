package weather

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Error kinds exposed on the widget status, kept distinct so the UI can
// display each independently.
const (
	ErrKindMissingKey = "missing_key"
	ErrKindProvider   = "provider"
	ErrKindNetwork    = "network"
)

// Status is what the widget endpoint serves: the last successful report, if
// any, plus the current error state.
type Status struct {
	Report    *Report `json:"report,omitempty"`
	Error     string  `json:"error,omitempty"`
	ErrorKind string  `json:"errorKind,omitempty"`
}

// Service keeps the current weather report for one location and refreshes
// it on a recurring schedule. The location can be overridden manually with
// a place name or with coordinates supplied by the client's geolocation.
type Service struct {
	client *Client

	mu      sync.Mutex
	query   string
	report  *Report
	lastErr error

	cron *cron.Cron
}

// NewService constructs a Service starting at the given default location.
func NewService(client *Client, defaultLocation string) *Service {
	if defaultLocation == "" {
		defaultLocation = "Jakarta"
	}
	return &Service{client: client, query: defaultLocation}
}

// Start fetches once and schedules recurring refreshes. The schedule is a
// robfig/cron spec; "@every 30m" matches the widget's refresh interval.
// Errors from the initial fetch are recorded, not returned: a missing API
// key or an unreachable provider must not prevent startup.
func (s *Service) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = "@every 30m"
	}
	s.Refresh(ctx)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		s.Refresh(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop cancels the recurring refresh. Call on teardown.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Refresh re-fetches conditions for the current location.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()
	s.fetch(ctx, query)
}

// SetLocation overrides the location with a free-text place name and
// fetches immediately.
func (s *Service) SetLocation(ctx context.Context, place string) {
	s.fetch(ctx, place)
}

// SetCoordinates overrides the location with a client-supplied latitude and
// longitude and fetches immediately.
func (s *Service) SetCoordinates(ctx context.Context, lat, lon float64) {
	s.fetch(ctx, Coords(lat, lon))
}

// Status returns the last report and the current error state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Report: s.report}
	if s.lastErr != nil {
		st.ErrorKind = classify(s.lastErr)
		switch st.ErrorKind {
		case ErrKindMissingKey:
			st.Error = "API key tidak ditemukan. Konfigurasi WEATHER_API_KEY"
		case ErrKindProvider:
			var pe *ProviderError
			errors.As(s.lastErr, &pe)
			st.Error = pe.Message
		default:
			st.Error = "Gagal memuat data cuaca"
		}
	}
	return st
}

// fetch performs one request and records the outcome. On success the
// location tracks the provider's canonical name for the query, so a
// coordinate query resolves into a place name for later refreshes. On
// failure the previous report is kept alongside the error state.
func (s *Service) fetch(ctx context.Context, query string) {
	report, err := s.client.Current(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		log.Printf("weather: fetch failed for %q: %v", query, err)
		return
	}
	s.lastErr = nil
	s.report = report
	if report.Location != "" {
		s.query = report.Location
	} else {
		s.query = query
	}
}

func classify(err error) string {
	if errors.Is(err, ErrNoAPIKey) {
		return ErrKindMissingKey
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return ErrKindProvider
	}
	return ErrKindNetwork
}
