package storage

import (
	"context"
	"errors"
	"strconv"

	"github.com/vladimiradmaev/fittrack/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps keys as rows of the kv_entries table
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps a migrated gorm connection
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func keyEq(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var entry database.KVEntry
	err := s.db.WithContext(ctx).Where(keyEq(key)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&database.KVEntry{Key: key, Value: value}).Error
}

func (s *SQLStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	values := make([]interface{}, len(keys))
	for i, key := range keys {
		values[i] = key
	}
	return s.db.WithContext(ctx).
		Where(clause.IN{Column: clause.Column{Name: "key"}, Values: values}).
		Delete(&database.KVEntry{}).Error
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&database.KVEntry{}).Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *SQLStore) Incr(ctx context.Context, key string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&database.KVEntry{Key: key, Value: "0"}).Error; err != nil {
			return err
		}

		var entry database.KVEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(keyEq(key)).First(&entry).Error; err != nil {
			return err
		}

		current, err := strconv.ParseInt(entry.Value, 10, 64)
		if err != nil {
			return err
		}
		n = current + 1

		return tx.Model(&database.KVEntry{}).Where(keyEq(key)).
			Update("value", strconv.FormatInt(n, 10)).Error
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying connection pool
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
