package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "go-ticket-store/internal"
	"go-ticket-store/internal/config/database"
	"go-ticket-store/internal/config/env"
	"go-ticket-store/internal/config/logger"
	"go-ticket-store/internal/config/monitor"
	"go-ticket-store/internal/config/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config := env.NewConfig()
	log := logger.NewLogger(config)
	monitoring := monitor.NewMonitoring(log, config)
	db := database.NewDatabase(log, config)
	validation := validation.NewValidation()
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
		if err := monitoring.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("Failed to shut down monitoring")
		}
	}()

	server := app.NewApp(log, config, db, validation)
	if err := server.Run(ctx); err != nil {
		log.WithError(err).Error("Failed to start ticket store")
		return err
	}
	return nil
}
