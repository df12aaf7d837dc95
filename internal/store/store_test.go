package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/memosync/internal/database"
)

func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLStore(db)
}

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, "memosync:"), mr
}

func TestStorageBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Storage{
		"sqlite": func(t *testing.T) Storage { return setupSQLStore(t) },
		"memory": func(t *testing.T) Storage { return NewMemoryStore() },
		"redis": func(t *testing.T) Storage {
			s, _ := setupRedisStore(t)
			return s
		},
	}

	for name, newStorage := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStorage(t)

			_, err := s.Get(ctx, "darkMode")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "darkMode", "true"))
			got, err := s.Get(ctx, "darkMode")
			require.NoError(t, err)
			assert.Equal(t, "true", got)

			// Overwrite replaces the whole value.
			require.NoError(t, s.Set(ctx, "darkMode", "false"))
			got, err = s.Get(ctx, "darkMode")
			require.NoError(t, err)
			assert.Equal(t, "false", got)

			// Keys are independent.
			require.NoError(t, s.Set(ctx, "memosync_notes", "[]"))
			got, err = s.Get(ctx, "darkMode")
			require.NoError(t, err)
			assert.Equal(t, "false", got)

			require.NoError(t, s.Delete(ctx, "darkMode"))
			_, err = s.Get(ctx, "darkMode")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting a missing key is not an error.
			assert.NoError(t, s.Delete(ctx, "missing"))
		})
	}
}

func TestRedisStorePrefix(t *testing.T) {
	s, mr := setupRedisStore(t)
	require.NoError(t, s.Set(context.Background(), "memosync_notes", "[]"))

	v, err := mr.Get("memosync:memosync_notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestPostgresPlaceholders(t *testing.T) {
	s := &SQLStore{postgres: true}
	got := s.q(`INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)`)
	assert.Equal(t, `INSERT INTO local_storage (key, value, updated_at) VALUES ($1, $2, $3)`, got)

	sqlite := &SQLStore{}
	assert.Equal(t, `DELETE FROM local_storage WHERE key = ?`, sqlite.q(`DELETE FROM local_storage WHERE key = ?`))
}
