package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"cobible/internal/config"
	"cobible/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// NewMigrator returns a migrator over the embedded schema of driver. The
// oracle schema is provisioned outside this tool.
func NewMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	var (
		target migratedb.Driver
		dir    string
		err    error
	)

	switch driver {
	case config.DriverSQLite:
		target, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		dir = "migrations/sqlite"
	case config.DriverPostgres:
		target, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		dir = "migrations/postgres"
	default:
		return nil, fmt.Errorf("migrations are not supported for driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(db *sql.DB, driver string) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logVersion(m)
	return nil
}

// MigrateDown rolls back steps migrations, or all of them when steps <= 0.
func MigrateDown(db *sql.DB, driver string, steps int) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}

	if steps <= 0 {
		err = m.Down()
	} else {
		err = m.Steps(-steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	logVersion(m)
	return nil
}

func logVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Get().Info("Schema has no applied migrations")
		return
	}
	if err != nil {
		logger.Get().Warn("Failed to read schema version", zap.Error(err))
		return
	}
	logger.Get().Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
