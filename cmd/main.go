// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hisbu/events-app/internal/config"
	"github.com/hisbu/events-app/internal/database"
	"github.com/hisbu/events-app/internal/handler"
	"github.com/hisbu/events-app/internal/notify"
	"github.com/hisbu/events-app/internal/storage"
	"github.com/hisbu/events-app/internal/store"
	"github.com/hisbu/events-app/internal/weather"
)

func main() {
	ctx := context.Background()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ── 1. Select the persistence gateway ────────────────────────────────
	gateway, cleanup, err := newGateway(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer cleanup()
	log.Printf("✓ Using %s persistence backend", cfg.Storage.Backend)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	relay := notify.NewRelay(0)
	defer relay.Stop()

	state := store.NewState(ctx, gateway, relay)
	log.Printf("✓ Loaded %d events", len(state.Events()))

	weatherSvc := weather.NewService(
		weather.NewClient(cfg.Weather.APIKey),
		cfg.Weather.DefaultLocation,
	)
	if err := weatherSvc.Start(ctx, cfg.Weather.Refresh); err != nil {
		log.Fatalf("weather schedule: %v", err)
	}
	defer weatherSvc.Stop()

	eventHandler := handler.NewEventHandler(state)
	weatherHandler := handler.NewWeatherHandler(weatherSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log
	r.Use(handler.CORS)            // permissive CORS for the browser UI
	r.Use(handler.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	// Mutating routes are optionally protected by basic auth.
	var guard func(http.Handler) http.Handler
	if cfg.BasicAuth != nil {
		guard = handler.BasicAuth(cfg.BasicAuth.Username, cfg.BasicAuth.PasswordHash)
		log.Printf("✓ Basic auth enabled for mutating routes (user: %s)", cfg.BasicAuth.Username)
	}
	handler.Routes(r, eventHandler, weatherHandler, guard)

	// Static browser UI – serve the web/ directory at the root.
	r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("✓ Server listening on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}

// newGateway builds the configured persistence backend. The returned cleanup
// closes whatever connection the backend holds.
func newGateway(ctx context.Context, cfg *config.Config) (storage.Gateway, func(), error) {
	switch cfg.Storage.Backend {
	case "file":
		return storage.NewFileStore(cfg.Storage.File), func() {}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return storage.NewRedisStore(rdb, storage.Key), func() { rdb.Close() }, nil

	case "postgres":
		pool, err := database.NewPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		pg := storage.NewPostgresStore(pool, storage.Key)
		if err := pg.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
