// Package weather wraps the WeatherAPI current-conditions endpoint and
// keeps a periodically refreshed report for the widget. Nothing in this
// package panics past its boundary; every failure becomes one of the
// distinct error states the widget displays.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNoAPIKey is returned when no provider credential is configured. It is
// a recoverable, user-visible state, not a startup failure.
var ErrNoAPIKey = errors.New("weather: API key not configured")

// ProviderError carries an error message reported by the provider itself
// (e.g. an unknown location), as opposed to a transport failure.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "weather provider: " + e.Message
}

// Report is the mapped current-conditions response.
type Report struct {
	Location    string    `json:"location"`
	TempC       float64   `json:"tempC"`
	WindKph     float64   `json:"windKph"`
	Humidity    int       `json:"humidity"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Condition   string    `json:"condition"`
	LastUpdated string    `json:"lastUpdated"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Client calls the WeatherAPI current.json endpoint.
type Client struct {
	key     string
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client. The request timeout bounds every fetch at
// 10 seconds.
func NewClient(key string) *Client {
	return &Client{
		key:     key,
		baseURL: "https://api.weatherapi.com/v1",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Coords formats a latitude/longitude pair as the provider's query string.
func Coords(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

type apiResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC       float64 `json:"temp_c"`
		WindKph     float64 `json:"wind_kph"`
		Humidity    int     `json:"humidity"`
		LastUpdated string  `json:"last_updated"`
		Condition   struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
	} `json:"current"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Current fetches current conditions for a place name or "lat,lon" query.
func (c *Client) Current(ctx context.Context, query string) (*Report, error) {
	if c.key == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("key", c.key)
	q.Set("q", query)
	q.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	if body.Error != nil {
		msg := body.Error.Message
		if msg == "" {
			msg = "Lokasi tidak ditemukan"
		}
		return nil, &ProviderError{Message: msg}
	}
	if body.Current == nil {
		return nil, &ProviderError{Message: "Lokasi tidak ditemukan"}
	}

	cond := Lookup(body.Current.Condition.Code, body.Current.Condition.Text)
	report := &Report{
		TempC:       body.Current.TempC,
		WindKph:     body.Current.WindKph,
		Humidity:    body.Current.Humidity,
		Icon:        cond.Icon,
		Description: cond.Description,
		Condition:   body.Current.Condition.Text,
		LastUpdated: body.Current.LastUpdated,
		FetchedAt:   time.Now(),
	}
	if body.Location != nil {
		report.Location = body.Location.Name
	}
	return report, nil
}
