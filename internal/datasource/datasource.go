package datasource

import (
	"context"
	"database/sql"

	"go-ticket-store/internal/utils/apperrors"

	"github.com/sirupsen/logrus"
)

// Conn is a dedicated database connection. *sql.Conn satisfies it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	Close() error
}

// Provider hands out connections. Every Conn returned must be closed by the
// caller exactly once.
type Provider interface {
	Conn(ctx context.Context) (Conn, error)
}

// Datasource opens a dedicated connection per call on top of *sql.DB.
type Datasource struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewDatasource(db *sql.DB, log *logrus.Logger) *Datasource {
	return &Datasource{db: db, log: log}
}

// Conn returns a connection reserved for the caller until Close. Any failure
// is reported as apperrors.ErrConnectivity.
func (d *Datasource) Conn(ctx context.Context) (Conn, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		d.log.WithContext(ctx).WithError(err).Warn("failed to acquire database connection")
		return nil, apperrors.Connectivity(err)
	}
	return conn, nil
}

// Ping verifies the store is reachable.
func (d *Datasource) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return apperrors.Connectivity(err)
	}
	return nil
}
