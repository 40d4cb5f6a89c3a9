package repository

import (
	"context"
	"database/sql"
	"errors"

	"go-ticket-store/internal/datasource"
	"go-ticket-store/internal/utils/apperrors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// UnitOfWork runs a sequence of repository calls in one transaction on one
// dedicated connection.
type UnitOfWork struct {
	provider datasource.Provider
	log      *logrus.Logger
	tracer   trace.Tracer
	opts     *sql.TxOptions
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func NewUnitOfWork(provider datasource.Provider, log *logrus.Logger) *UnitOfWork {
	return &UnitOfWork{provider: provider, log: log, tracer: otel.Tracer("UnitOfWork"), opts: &sql.TxOptions{}}
}

// Do runs fn within a transaction. See RunTransactional.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := RunTransactional(ctx, u, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// RunTransactional acquires a connection, begins a transaction and calls work
// with a context carrying it, so repository calls made with that context share
// the transaction. The transaction is committed when work succeeds and rolled
// back when it fails or panics. The error of work is returned unchanged unless
// the rollback fails too, in which case an *apperrors.RollbackError carries
// both. A connection acquired here is closed once on every path.
//
// If ctx already carries a transaction, work joins it and the outermost call
// decides the outcome. If ctx carries a caller connection set with
// WithExecutor, the transaction runs on that connection and the caller keeps
// ownership of it.
func RunTransactional[T any](ctx context.Context, u *UnitOfWork, work func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	var beginner txBeginner
	if exec, ok := ExecutorFrom(ctx); ok {
		if _, inTx := exec.(*sql.Tx); inTx {
			return work(ctx)
		}
		beginner, _ = exec.(txBeginner)
	}

	spanCtx, span := u.tracer.Start(ctx, "UnitOfWork.RunTransactional")
	defer span.End()

	if beginner == nil {
		conn, err := u.provider.Conn(spanCtx)
		if err != nil {
			return zero, err
		}
		defer u.release(spanCtx, conn)
		beginner = conn
	}

	tx, err := beginner.BeginTx(spanCtx, u.opts)
	if err != nil {
		return zero, apperrors.Wrap("begin transaction", "failed to begin transaction", classify(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	result, err := work(WithExecutor(spanCtx, tx))
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			u.log.WithContext(spanCtx).WithError(rbErr).Error("failed to roll back transaction")
			return zero, &apperrors.RollbackError{Err: rbErr, Cause: err}
		}
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, apperrors.Wrap("commit transaction", "failed to commit transaction", err)
	}
	return result, nil
}

func (u *UnitOfWork) release(ctx context.Context, conn datasource.Conn) {
	if err := conn.Close(); err != nil {
		u.log.WithContext(ctx).WithError(err).Warn("failed to release database connection")
	}
}
