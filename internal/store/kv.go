package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

// Logical keys in the kv table.
const (
	KeyTheme         = "smartstudy_theme"
	KeyIsPro         = "smartstudy_is_pro"
	KeyHistory       = "smartstudy_history"
	KeySchemaVersion = "smartstudy_schema_version"
)

// Get returns the value stored under key, or "" if the key is missing.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Set upserts a key-value pair.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		key, value, value,
	)
	return err
}

// StoredSchemaVersion returns the schema version tag of the database.
func (s *Store) StoredSchemaVersion(ctx context.Context) (int, error) {
	v, err := s.Get(ctx, KeySchemaVersion)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
