package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hisbu/events-app/internal/model"
)

// PostgresStore persists the collection as one jsonb row in a key-value
// table. The whole blob is upserted on every save; there is no per-event
// schema.
type PostgresStore struct {
	db  *pgxpool.Pool
	key string
}

// NewPostgresStore constructs a PostgresStore. An empty key selects the
// package default.
func NewPostgresStore(db *pgxpool.Pool, key string) *PostgresStore {
	if key == "" {
		key = Key
	}
	return &PostgresStore{db: db, key: key}
}

// Init creates the backing table when it does not exist yet.
func (p *PostgresStore) Init(ctx context.Context) error {
	_, err := p.db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS event_blobs (
			key        text PRIMARY KEY,
			value      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
	)
	if err != nil {
		return fmt.Errorf("create event_blobs table: %w", err)
	}
	return nil
}

// Load fetches and decodes the stored blob. A missing row maps to
// ErrNotFound.
func (p *PostgresStore) Load(ctx context.Context) ([]model.Event, error) {
	var data []byte
	err := p.db.QueryRow(ctx,
		`SELECT value FROM event_blobs WHERE key = $1`,
		p.key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load events blob: %w", err)
	}

	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode events blob: %w", err)
	}
	return events, nil
}

// Save serializes the whole collection and upserts the row.
func (p *PostgresStore) Save(ctx context.Context, events []model.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	_, err = p.db.Exec(ctx,
		`INSERT INTO event_blobs (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		p.key, data,
	)
	if err != nil {
		return fmt.Errorf("save events blob: %w", err)
	}
	return nil
}
