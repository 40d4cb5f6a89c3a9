package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-ticket-store/db/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

type migrateRunner interface {
	Up() error
	Close() (sourceErr, dbErr error)
}

// newMigrator runs migrations on a connection reserved from db. Closing the
// migrator releases that connection and leaves db open for the application.
var newMigrator = func(ctx context.Context, db *sql.DB) (migrateRunner, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve migration connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init postgres migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("init migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}

// RunMigrations brings the passenger and ticket schema up to date. Running it
// against an up to date database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, log *logrus.Logger) error {
	m, err := newMigrator(ctx, db)
	if err != nil {
		log.WithError(err).Error("Failed to prepare migrations")
		return err
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			log.WithError(sourceErr).Warn("Failed to close migration source")
		}
		if dbErr != nil {
			log.WithError(dbErr).Warn("Failed to close migration database")
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("Starting database migrations")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("No database migrations to apply")
			return nil
		}
		log.WithError(err).Error("Failed to run migrations")
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}
