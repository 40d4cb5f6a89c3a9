package main

import (
	"context"
	"os"

	"go-ticket-store/db/seeder"
	app "go-ticket-store/internal"
	"go-ticket-store/internal/config/database"
	"go-ticket-store/internal/config/env"
	"go-ticket-store/internal/config/logger"
	"go-ticket-store/internal/config/validation"
)

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config := env.NewConfig()
	log := logger.NewLogger(config)
	sqlDB := database.NewDatabase(log, config)
	defer sqlDB.Close()

	boot := app.NewApp(log, config, sqlDB, validation.NewValidation())
	if err := boot.Run(ctx); err != nil {
		return err
	}
	return seeder.Seed(ctx, boot, log)
}
