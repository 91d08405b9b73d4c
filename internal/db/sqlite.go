package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/db/migrations"
)

// SQLiteStore is an embedded property store for single-node deployments.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// один writer, sqlite не любит конкурентную запись
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging sqlite %s: %w", path, err)
	}
	if err := migrate(ctx, sqlDB, "sqlite3", migrations.SQLiteDir); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqlDB}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetString returns the string property stored under key.
// Returns def if the property is not set.
func (s *SQLiteStore) GetString(ctx context.Context, key, def string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM config_properties_string WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, nil
		}
		return def, fmt.Errorf("querying property %q: %w", key, err)
	}
	return value, nil
}

// SetString inserts or replaces a string property.
func (s *SQLiteStore) SetString(ctx context.Context, key, value, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO config_properties_string (key, value, description, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE
		 SET value = excluded.value, description = excluded.description, updated_at = CURRENT_TIMESTAMP`,
		key, value, description,
	)
	if err != nil {
		return fmt.Errorf("storing property %q: %w", key, err)
	}
	return nil
}

// DeleteString removes a string property. Missing keys are not an error.
func (s *SQLiteStore) DeleteString(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM config_properties_string WHERE key = ?`, key,
	); err != nil {
		return fmt.Errorf("deleting property %q: %w", key, err)
	}
	return nil
}
