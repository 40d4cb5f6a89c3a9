package app

import (
	"context"
	"database/sql"

	"go-ticket-store/internal/config/env"
	"go-ticket-store/internal/config/migration"
	"go-ticket-store/internal/config/validation"
	"go-ticket-store/internal/datasource"
	"go-ticket-store/internal/repository"
	"go-ticket-store/internal/service"

	"github.com/sirupsen/logrus"
)

var runMigrations = migration.RunMigrations

type BootstrapConfig struct {
	db         *sql.DB
	log        *logrus.Logger
	config     *env.Config
	validation *validation.Validation

	Datasource          *datasource.Datasource
	UnitOfWork          *repository.UnitOfWork
	PassengerRepository *repository.PassengerRepository
	TicketRepository    *repository.TicketRepository
	TicketService       *service.TicketService
}

func NewApp(log *logrus.Logger, config *env.Config, db *sql.DB, validation *validation.Validation) *BootstrapConfig {
	return &BootstrapConfig{db: db, log: log, config: config, validation: validation}
}

func (app *BootstrapConfig) Bootstrap() {
	// setup connection provider
	app.Datasource = datasource.NewDatasource(app.db, app.log)

	// setup repositories
	app.PassengerRepository = repository.NewPassengerRepository(app.Datasource)
	app.TicketRepository = repository.NewTicketRepository(app.Datasource)
	app.UnitOfWork = repository.NewUnitOfWork(app.Datasource, app.log)

	// setup service
	app.TicketService = service.NewTicketService(
		app.UnitOfWork,
		app.PassengerRepository,
		app.TicketRepository,
		app.validation,
		app.log,
	)
}

// Run wires the application, applies pending migrations when enabled and
// checks the store is reachable.
func (app *BootstrapConfig) Run(ctx context.Context) error {
	app.Bootstrap()

	if app.config.Database.Migrate {
		if err := runMigrations(ctx, app.db, app.log); err != nil {
			return err
		}
	}

	if err := app.Datasource.Ping(ctx); err != nil {
		app.log.WithContext(ctx).WithError(err).Error("Ticket store is unreachable")
		return err
	}

	app.log.WithContext(ctx).WithField("app", app.config.App.Name).Info("Ticket store is ready")
	return nil
}
