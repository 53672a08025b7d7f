package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/fittrack/internal/config"
	"github.com/vladimiradmaev/fittrack/internal/database"
)

func newRedisStore(t *testing.T, namespace string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, namespace)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.Open(config.DriverSQLite, config.DBConfig{
		SQLitePath: filepath.Join(t.TempDir(), "kv.db"),
	})
	require.NoError(t, err)
	store := NewSQLStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func backends(t *testing.T) map[string]KeyValueStore {
	redisStore, _ := newRedisStore(t, "")
	return map[string]KeyValueStore{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
		"sql":    newSQLStore(t),
	}
}

func TestKeyValueStore(t *testing.T) {
	for name, store := range backends(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("missing key", func(t *testing.T) {
				_, err := store.Get(ctx, "absent")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("set and overwrite", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "alice@users", `{"username":"alice"}`))
				require.NoError(t, store.Set(ctx, "alice@users", `{"username":"alice","userAge":"31"}`))

				got, err := store.Get(ctx, "alice@users")
				require.NoError(t, err)
				assert.Equal(t, `{"username":"alice","userAge":"31"}`, got)
			})

			t.Run("keys", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "@meals/1", "{}"))

				keys, err := store.Keys(ctx)
				require.NoError(t, err)
				sort.Strings(keys)
				assert.Equal(t, []string{"@meals/1", "alice@users"}, keys)
			})

			t.Run("remove ignores missing keys", func(t *testing.T) {
				require.NoError(t, store.Remove(ctx, "@meals/1", "never-written"))
				require.NoError(t, store.Remove(ctx))

				_, err := store.Get(ctx, "@meals/1")
				assert.ErrorIs(t, err, ErrNotFound)
				_, err = store.Get(ctx, "alice@users")
				assert.NoError(t, err)
			})

			t.Run("incr", func(t *testing.T) {
				for want := int64(1); want <= 3; want++ {
					n, err := store.Incr(ctx, "@meals#seq")
					require.NoError(t, err)
					assert.Equal(t, want, n)
				}
			})
		})
	}
}

func TestMemoryStore_ConcurrentIncr(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	seen := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.Incr(ctx, "seq")
			assert.NoError(t, err)
			seen <- n
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for n := range seen {
		unique[n] = true
	}
	assert.Len(t, unique, 50)
}

func TestRedisStore_Namespace(t *testing.T) {
	store, mr := newRedisStore(t, "fittrack:")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "bob@users", `{"username":"bob"}`))
	require.NoError(t, mr.Set("other-app:key", "x"))

	assert.True(t, mr.Exists("fittrack:bob@users"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@users"}, keys)
}

func TestRedisStore_KeysSpansScanBatches(t *testing.T) {
	store, _ := newRedisStore(t, "")
	ctx := context.Background()

	for i := 0; i < scanBatch*3; i++ {
		_, err := store.Incr(ctx, fmt.Sprintf("counter-%d", i))
		require.NoError(t, err)
	}

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, scanBatch*3)

	unique := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		unique[k] = struct{}{}
	}
	assert.Len(t, unique, len(keys))
}

func TestRedisStore_KeysAreUniqueAcrossBatches(t *testing.T) {
	seen := make(map[string]struct{})
	var keys []string
	keys = appendUniqueKeys(keys, seen, []string{"ns:@meals/a", "ns:bob@users"}, "ns:")
	keys = appendUniqueKeys(keys, seen, []string{"ns:@meals/a", "ns:@meals/b"}, "ns:")
	keys = appendUniqueKeys(keys, seen, []string{"ns:bob@users"}, "ns:")

	assert.Equal(t, []string{"@meals/a", "bob@users", "@meals/b"}, keys)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		store, err := Open(ctx, &config.Config{
			Store: config.StoreConfig{Driver: config.DriverSQLite},
			DB:    config.DBConfig{SQLitePath: filepath.Join(t.TempDir(), "nested", "kv.db")},
		})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &SQLStore{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverRedis}}
		cfg.Redis.Host = mr.Host()
		cfg.Redis.Port = mr.Port()
		cfg.Redis.Timeout = time.Second

		store, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &RedisStore{}, store)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: "etcd"}})
		assert.Error(t, err)
	})
}
