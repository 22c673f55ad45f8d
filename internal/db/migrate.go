package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sparkify/etl/config"
	"github.com/sparkify/etl/internal/db/migrations"
)

// MigrateUp creates the six ETL tables. An up-to-date schema is not an error.
func MigrateUp(cfg config.Config) error {
	return runMigration(cfg, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown drops the six ETL tables.
func MigrateDown(cfg config.Config) error {
	return runMigration(cfg, func(m *migrate.Migrate) error { return m.Down() })
}

func runMigration(cfg config.Config, step func(*migrate.Migrate) error) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, URL(cfg.Database, cfg.Database.DBName))
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := step(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
