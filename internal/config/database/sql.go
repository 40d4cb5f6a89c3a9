package database

import (
	"database/sql"
	"time"

	"go-ticket-store/internal/config/env"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var sqlOpen = otelsql.Open

// NewDatabase opens the pgx backed *sql.DB instrumented with OpenTelemetry.
// It exits the process when the store cannot be reached.
func NewDatabase(log *logrus.Logger, config *env.Config) *sql.DB {
	dsn, err := config.DatabaseDSN()
	if err != nil {
		log.Fatalf("invalid database configuration: %v", err)
	}

	sqlDB, err := sqlOpen("pgx", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		log.Fatalf("failed to open sql database: %v", err)
	}

	sqlDB.SetMaxIdleConns(config.Database.Pool.Idle)
	sqlDB.SetMaxOpenConns(config.Database.Pool.Max)
	sqlDB.SetConnMaxLifetime(time.Duration(config.Database.Pool.Lifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("failed to ping sql database: %v", err)
	}

	log.Info("SQL database connection established successfully")
	return sqlDB
}
