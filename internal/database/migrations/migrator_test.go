package migrations

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type note struct {
	ID   uint
	Text string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrations.db")), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openDB(t)

	runs := 0
	Register("a001_create_notes", func(db *gorm.DB) error {
		runs++
		return db.Migrator().CreateTable(&note{})
	}, func(db *gorm.DB) error {
		return db.Migrator().DropTable(&note{})
	})

	fsys := fstest.MapFS{
		"sql/a002_seed_notes.sql": {Data: []byte("INSERT INTO notes (text) VALUES ('first');")},
		"sql/README.md":           {Data: []byte("ignored")},
	}
	require.NoError(t, LoadSQLMigrations(fsys, "sql"))

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))
	assert.Equal(t, 1, runs, "executed migrations must not run twice")

	var count int64
	require.NoError(t, db.Model(&note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var records []MigrationRecord
	require.NoError(t, db.Order("id").Find(&records).Error)
	require.Len(t, records, 2)
	assert.Equal(t, "a001_create_notes", records[0].ID)
	assert.Equal(t, "a002_seed_notes", records[1].ID)

	t.Run("rollback refuses sql migrations", func(t *testing.T) {
		_, err := RollbackLast(db)
		assert.ErrorContains(t, err, "a002_seed_notes has no down step")
	})

	t.Run("rollback with down step", func(t *testing.T) {
		require.NoError(t, db.Delete(&MigrationRecord{ID: "a002_seed_notes"}).Error)

		id, err := RollbackLast(db)
		require.NoError(t, err)
		assert.Equal(t, "a001_create_notes", id)
		assert.False(t, db.Migrator().HasTable(&note{}))
	})
}

func TestLoadSQLMigrations_MissingDir(t *testing.T) {
	err := LoadSQLMigrations(fstest.MapFS{}, "sql")
	assert.Error(t, err)
}
