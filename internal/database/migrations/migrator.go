package migrations

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vladimiradmaev/fittrack/internal/logger"
	"gorm.io/gorm"
)

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

var (
	migrations = make(map[string]Migration)
	mu         sync.Mutex
)

// Register adds a new migration to the registry
func Register(id string, up, down func(*gorm.DB) error) {
	mu.Lock()
	defer mu.Unlock()
	migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

func sortedIDs() []string {
	mu.Lock()
	defer mu.Unlock()
	ids := make([]string, 0, len(migrations))
	for id := range migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func lookup(id string) (Migration, bool) {
	mu.Lock()
	defer mu.Unlock()
	m, ok := migrations[id]
	return m, ok
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func executed(db *gorm.DB) (map[string]bool, error) {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var records []MigrationRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get executed migrations: %w", err)
	}

	done := make(map[string]bool, len(records))
	for _, r := range records {
		done[r.ID] = true
	}
	return done, nil
}

// RunMigrations executes all pending migrations in ID order
func RunMigrations(db *gorm.DB) error {
	done, err := executed(db)
	if err != nil {
		return err
	}

	for _, id := range sortedIDs() {
		if done[id] {
			continue
		}
		migration, _ := lookup(id)
		logger.Info("Running migration", "id", id)
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: id}).Error
		}); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
	}

	return nil
}

// RollbackLast reverts the most recent executed migration and returns its ID.
// Migrations without a Down step cannot be rolled back.
func RollbackLast(db *gorm.DB) (string, error) {
	done, err := executed(db)
	if err != nil {
		return "", err
	}

	ids := sortedIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if !done[id] {
			continue
		}
		migration, _ := lookup(id)
		if migration.Down == nil {
			return "", fmt.Errorf("migration %s has no down step", id)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&MigrationRecord{ID: id}).Error
		})
		if err != nil {
			return "", fmt.Errorf("failed to roll back migration %s: %w", id, err)
		}
		logger.Info("Rolled back migration", "id", id)
		return id, nil
	}

	return "", nil
}

// LoadSQLMigrations registers every .sql file under dir of fsys as an
// up-only migration named after the file
func LoadSQLMigrations(fsys fs.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		id := strings.TrimSuffix(file.Name(), ".sql")

		content, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		statement := string(content)
		Register(id, func(db *gorm.DB) error {
			return db.Exec(statement).Error
		}, nil)
	}

	return nil
}
