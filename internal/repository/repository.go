package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"github.com/vladimiradmaev/fittrack/internal/storage"
)

// Storage keys. Users live under "<username>@users". Every meal and training
// has its own key under the collection prefix; the bare collection keys hold
// the legacy whole-array layout and are only read.
const (
	usersSuffix = "@users"

	mealsKey      = "@meals"
	mealsPrefix   = mealsKey + "/"
	mealsSeqKey   = mealsKey + "#seq"
	trainingsKey  = "@activities"
	trainingsPref = trainingsKey + "/"
	trainingsSeq  = trainingsKey + "#seq"
)

func userKey(username string) string {
	return username + usersSuffix
}

// Repository is the typed record layer over a KeyValueStore
type Repository struct {
	store storage.KeyValueStore
	log   *slog.Logger

	// userMu serializes read-modify-write on user documents in this process
	userMu sync.Mutex
	newID  func() string
}

// New creates a repository backed by store
func New(store storage.KeyValueStore) *Repository {
	return &Repository{
		store: store,
		log:   logger.WithFields("component", "repository"),
		newID: uuid.NewString,
	}
}

func (r *Repository) putJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewInternalError(err).WithContext("key", key)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return apperrors.NewStorageError(err, "write").WithContext("key", key)
	}
	return nil
}

// nextStamp reserves an identifier and an ordering stamp for a new record
func (r *Repository) nextStamp(ctx context.Context, seqKey string) (string, int64, error) {
	seq, err := r.store.Incr(ctx, seqKey)
	if err != nil {
		return "", 0, apperrors.NewStorageError(err, "allocate sequence").WithContext("key", seqKey)
	}
	return r.newID(), seq, nil
}

// readLegacyArray decodes a whole-array collection value. Anything that is
// not a JSON array of objects degrades to the entries that do decode.
func readLegacyArray[T any](ctx context.Context, r *Repository, key string) ([]T, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(err, "read").WithContext("key", key)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.log.Warn("Legacy collection is not a JSON array, ignoring it", "key", key, "error", err)
		return nil, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			r.log.Warn("Skipping undecodable legacy entry", "key", key, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// readRecords loads a collection: legacy array entries first in array order,
// then per-key records ordered by sequence stamp.
func readRecords[T any](ctx context.Context, r *Repository, legacyKey, prefix string, seqOf func(T) int64) ([]T, error) {
	records, err := readLegacyArray[T](ctx, r, legacyKey)
	if err != nil {
		return nil, err
	}

	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "list keys")
	}

	var keyed []T
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		raw, err := r.store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, apperrors.NewStorageError(err, "read").WithContext("key", key)
		}

		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			r.log.Warn("Skipping undecodable record", "key", key, "error", err)
			continue
		}
		keyed = append(keyed, v)
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return seqOf(keyed[i]) < seqOf(keyed[j])
	})

	if records == nil {
		records = make([]T, 0, len(keyed))
	}
	return append(records, keyed...), nil
}

// removeOwned deletes every record of a collection that belongs to owner,
// rewriting the legacy array without that owner's entries.
func removeOwned[T any](ctx context.Context, r *Repository, legacyKey, prefix string, ownerOf func(T) string, owner string) error {
	legacy, err := readLegacyArray[T](ctx, r, legacyKey)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(legacy))
	for _, v := range legacy {
		if ownerOf(v) != owner {
			kept = append(kept, v)
		}
	}
	if len(kept) != len(legacy) {
		data, err := json.Marshal(kept)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if err := r.store.Set(ctx, legacyKey, string(data)); err != nil {
			return apperrors.NewStorageError(err, "write").WithContext("key", legacyKey)
		}
	}

	keys, err := r.store.Keys(ctx)
	if err != nil {
		return apperrors.NewStorageError(err, "list keys")
	}

	var doomed []string
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		raw, err := r.store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return apperrors.NewStorageError(err, "read").WithContext("key", key)
		}
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			continue
		}
		if ownerOf(v) == owner {
			doomed = append(doomed, key)
		}
	}

	if err := r.store.Remove(ctx, doomed...); err != nil {
		return apperrors.NewStorageError(err, "remove")
	}
	return nil
}
