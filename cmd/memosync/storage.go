package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-redis/redis/v8"

	"github.com/dukerupert/memosync/internal/config"
	"github.com/dukerupert/memosync/internal/database"
	"github.com/dukerupert/memosync/internal/store"
)

// openStorage builds the configured backend. The returned func releases it.
func openStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Storage, func() error, error) {
	dbOpts := database.Options{
		PingAttempts: cfg.PingAttempts,
		Logger:       logger.With("component", "database"),
	}

	switch cfg.Driver {
	case config.StorageSQLite:
		db, err := database.OpenDriver(ctx, database.DriverSQLite, cfg.DBPath, dbOpts)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store.NewSQLStore(db), db.Close, nil

	case config.StoragePostgres:
		db, err := database.OpenDriver(ctx, database.DriverPostgres, cfg.DatabaseURL, dbOpts)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return store.NewPostgresStore(db), db.Close, nil

	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		attempts := cfg.PingAttempts
		if attempts == 0 {
			attempts = 1
		}
		err := retry.Do(
			func() error { return rdb.Ping(ctx).Err() },
			retry.Context(ctx),
			retry.Delay(300*time.Millisecond),
			retry.Attempts(attempts),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(attempt uint, err error) {
				logger.Warn("failed ping to redis", "error", err, "attempt", attempt)
			}),
		)
		if err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return store.NewRedisStore(rdb, cfg.RedisPrefix), rdb.Close, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, notes are lost on exit")
		return store.NewMemoryStore(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q", cfg.Driver)
}
