// Package storage provides the flat string-keyed store that every record is
// persisted in, with in-memory, Redis and SQL backends.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/fittrack/internal/config"
	"github.com/vladimiradmaev/fittrack/internal/database"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("key not found")

// KeyValueStore is a persistent string-keyed store. Values are opaque strings;
// callers encode documents as JSON. Each single-key write is atomic.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes keys; keys that do not exist are ignored.
	Remove(ctx context.Context, keys ...string) error
	// Keys lists every key in the store in no particular order.
	Keys(ctx context.Context) ([]string, error)
	// Incr atomically increments the integer counter at key and returns the
	// new value. A missing counter starts at zero.
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

// Open builds the backend selected by cfg.Store.Driver
func Open(ctx context.Context, cfg *config.Config) (KeyValueStore, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.Redis, cfg.Store.Namespace)
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.Open(cfg.Store.Driver, cfg.DB)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
