package database

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/config"
	"github.com/vladimiradmaev/fittrack/internal/database/migrations"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed sql/*.sql
var sqlMigrations embed.FS

// KVEntry is one key of the flat record store
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:512"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

func init() {
	migrations.Register("0001_create_kv_entries",
		func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&KVEntry{})
		},
		func(db *gorm.DB) error {
			return db.Migrator().DropTable(&KVEntry{})
		},
	)
}

// Open connects with the given driver ("postgres" or "sqlite") and runs pending migrations
func Open(driver string, cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == config.DriverSQLite {
		// sqlite allows one writer; a single connection avoids "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := migrations.LoadSQLMigrations(sqlMigrations, "sql"); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("Database connection established and migrations completed", "driver", driver)
	return db, nil
}
