// Package migrations owns the catalog schema. Each supported driver has its
// own directory of numbered golang-migrate files embedded into the binary.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/mrlokans/bookexchange/internal/config"
)

//go:embed sqlite postgres mysql
var files embed.FS

// databaseURL converts a gorm DSN into the URL golang-migrate expects for
// the same database.
func databaseURL(cfg config.Database) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return "sqlite3://" + cfg.ConnectionString(), nil
	case config.DriverPostgres:
		return cfg.DSN, nil
	case config.DriverMySQL:
		return "mysql://" + cfg.DSN, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func sourceDir(driver config.Driver) string {
	if driver == "" {
		return string(config.DriverSQLite)
	}
	return string(driver)
}

type logger struct{}

func (logger) Printf(format string, v ...any) {
	log.Printf("migrate: "+format, v...)
}

func (logger) Verbose() bool { return false }

// open builds a migrator on its own connection. The caller must close it;
// the application pool is never handed to golang-migrate.
func open(cfg config.Database) (*migrate.Migrate, error) {
	dbURL, err := databaseURL(cfg)
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(files, sourceDir(cfg.Driver))
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrations: %w", err)
	}
	m.Log = logger{}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Warning: failed to close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("Warning: failed to close migration database: %v", dbErr)
	}
}

// Up applies every pending migration.
func Up(cfg config.Database) error {
	m, err := open(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back the given number of migrations.
func Down(cfg config.Database, steps int) error {
	if steps < 1 {
		return fmt.Errorf("migrate down: steps must be positive, got %d", steps)
	}
	m, err := open(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied schema version. A database with no migrations
// applied returns version 0.
func Version(cfg config.Database) (version uint, dirty bool, err error) {
	m, err := open(cfg)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator(m)

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrate version: %w", err)
	}
	return version, dirty, nil
}
