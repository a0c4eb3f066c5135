package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"estoquecestas/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the store named by dsn and migrates the schema.
// A postgres:// URL selects Postgres; anything else is a SQLite file path,
// whose parent directory is created when missing.
//
// SQLite runs on a single connection so writes are serialized by the pool.
func NewDatabase(dsn string) (*gorm.DB, error) {
	dialector, maxConns, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, int, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn), 10, nil
	}

	path := dsn
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, 0, fmt.Errorf("sqlite: create database dir: %w", err)
		}
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return sqlite.Open(dsn), 1, nil
}

// RunMigrations creates or updates the three tables. Idempotent.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Lote{},
		&model.Cesta{},
		&model.ItemCesta{},
	)
}
