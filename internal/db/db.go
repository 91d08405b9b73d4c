package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool for server property lookups.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// NewFromPool wraps an existing pool. The caller keeps ownership of pool.
func NewFromPool(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// GetString returns the string property stored under key.
// Returns def if the property is not set.
func (d *DB) GetString(ctx context.Context, key, def string) (string, error) {
	var value string
	err := d.pool.QueryRow(ctx,
		`SELECT value FROM config_properties_string WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return def, nil
		}
		return def, fmt.Errorf("querying property %q: %w", key, err)
	}
	return value, nil
}

// SetString inserts or replaces a string property.
func (d *DB) SetString(ctx context.Context, key, value, description string) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO config_properties_string (key, value, description, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = now()`,
		key, value, description,
	)
	if err != nil {
		return fmt.Errorf("storing property %q: %w", key, err)
	}
	slog.Debug("property stored", "key", key, "bytes", len(value))
	return nil
}

// DeleteString removes a string property. Missing keys are not an error.
func (d *DB) DeleteString(ctx context.Context, key string) error {
	if _, err := d.pool.Exec(ctx,
		`DELETE FROM config_properties_string WHERE key = $1`, key,
	); err != nil {
		return fmt.Errorf("deleting property %q: %w", key, err)
	}
	return nil
}
