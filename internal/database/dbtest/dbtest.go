// Package dbtest opens throwaway SQLite catalogs for repository and handler
// tests. Every database is migrated with the production schema, so foreign
// key cascades behave exactly as they do in a deployed service.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookexchange/internal/config"
	"github.com/mrlokans/bookexchange/internal/database/migrations"
)

// Config returns settings for a fresh database file under t.TempDir().
func Config(t *testing.T) config.Database {
	t.Helper()
	return config.Database{
		Driver:      config.DriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "catalog.db"),
		AutoMigrate: true,
		LogLevel:    "silent",
	}
}

// Open migrates a new database and returns a gorm handle to it. The handle
// is closed when the test finishes.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := Config(t)
	require.NoError(t, migrations.Up(cfg))

	db, err := gorm.Open(sqlite.Open(cfg.ConnectionString()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
