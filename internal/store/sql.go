package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps keys in the local_storage table. It works against both
// sqlite and postgres; only the placeholder syntax differs.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

// NewSQLStore creates a SQLStore over a sqlite database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// NewPostgresStore creates a SQLStore over a postgres database.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, postgres: true}
}

// q rewrites ? placeholders to $n for postgres.
func (s *SQLStore) q(query string) string {
	if !s.postgres {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// Get returns the value for key, or ErrNotFound.
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT value FROM local_storage WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set upserts value under key.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM local_storage WHERE key = ?`), key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
