// Package config loads application configuration from a YAML file with
// environment-variable overrides. A missing file yields the defaults; the
// only externally required credential, the weather API key, is read from
// the environment and its absence is a recoverable widget error rather
// than a startup failure.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	// Backend is one of "file", "redis", "postgres".
	Backend string `yaml:"backend"`
	// File is the JSON file path for the file backend.
	File string `yaml:"file"`
	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `yaml:"redis_addr"`
}

// WeatherConfig parameterizes the weather widget.
type WeatherConfig struct {
	// APIKey is the provider credential; env WEATHER_API_KEY wins.
	APIKey string `yaml:"api_key"`
	// DefaultLocation is used until geolocation or an override arrives.
	DefaultLocation string `yaml:"default_location"`
	// Refresh is a cron spec for the recurring re-fetch.
	Refresh string `yaml:"refresh"`
}

// RateLimitConfig tunes the per-client token bucket.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// BasicAuthConfig, when present, protects mutating routes. PasswordHash is
// a bcrypt hash.
type BasicAuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Config is the top-level application configuration.
type Config struct {
	Listen    string           `yaml:"listen"`
	WebDir    string           `yaml:"web_dir"`
	Storage   StorageConfig    `yaml:"storage"`
	Weather   WeatherConfig    `yaml:"weather"`
	RateLimit RateLimitConfig  `yaml:"rate_limit"`
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		WebDir: "./web",
		Storage: StorageConfig{
			Backend:   "file",
			File:      "events.json",
			RedisAddr: "localhost:6379",
		},
		Weather: WeatherConfig{
			DefaultLocation: "Jakarta",
			Refresh:         "@every 30m",
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// Normalize fills missing values with defaults so a partially filled file
// still behaves.
func (c *Config) Normalize() {
	d := Default()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.WebDir == "" {
		c.WebDir = d.WebDir
	}
	switch c.Storage.Backend {
	case "file", "redis", "postgres":
	default:
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.File == "" {
		c.Storage.File = d.Storage.File
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = d.Storage.RedisAddr
	}
	if c.Weather.DefaultLocation == "" {
		c.Weather.DefaultLocation = d.Weather.DefaultLocation
	}
	if c.Weather.Refresh == "" {
		c.Weather.Refresh = d.Weather.Refresh
	}
	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = d.RateLimit.RPS
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = d.RateLimit.Burst
	}
}

// applyEnv overlays well-known environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
	if v := os.Getenv("LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("EVENTS_FILE"); v != "" {
		c.Storage.File = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_LOCATION"); v != "" {
		c.Weather.DefaultLocation = v
	}
}

// Load reads configuration from the given YAML path, then applies env
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// First run: defaults only.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to the given path with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
