package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"go-ticket-store/internal/datasource"
	"go-ticket-store/internal/mapper"
	"go-ticket-store/internal/utils/apperrors"
)

type contextKey string

var TxKey contextKey = "tx"

// Executor is what repositories run statements on. *sql.Conn and *sql.Tx
// both satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithExecutor returns a context whose repository calls run on exec. The
// caller keeps ownership of exec: repositories never close it.
func WithExecutor(ctx context.Context, exec Executor) context.Context {
	return context.WithValue(ctx, TxKey, exec)
}

// ExecutorFrom returns the caller-owned executor carried by ctx, if any.
func ExecutorFrom(ctx context.Context) (Executor, bool) {
	exec, ok := ctx.Value(TxKey).(Executor)
	if !ok || isNil(exec) {
		return nil, false
	}
	return exec, true
}

func isNil(exec Executor) bool {
	if exec == nil {
		return true
	}
	v := reflect.ValueOf(exec)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Repository holds the statement plumbing shared by the entity repositories.
// Every operation runs on the executor found in ctx, or on a connection of
// its own that is released before the operation returns.
type Repository[T any] struct {
	provider datasource.Provider
	mapper   mapper.RowMapper[T]
}

func (r *Repository[T]) getExecutor(ctx context.Context) (Executor, func(), error) {
	if exec, ok := ExecutorFrom(ctx); ok {
		return exec, func() {}, nil
	}

	conn, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, func() { _ = conn.Close() }, nil
}

func (r *Repository[T]) findOne(ctx context.Context, op string, query string, args ...any) (*T, error) {
	exec, release, err := r.getExecutor(ctx)
	if err != nil {
		return nil, fail(op, err)
	}
	defer release()

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fail(op, err)
	}
	defer rows.Close()

	entity, err := r.mapper.MapOne(rows)
	if err != nil {
		return nil, fail(op, err)
	}
	return entity, nil
}

func (r *Repository[T]) findMany(ctx context.Context, op string, query string, args ...any) ([]*T, error) {
	exec, release, err := r.getExecutor(ctx)
	if err != nil {
		return nil, fail(op, err)
	}
	defer release()

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fail(op, err)
	}
	defer rows.Close()

	entities, err := r.mapper.MapMany(rows)
	if err != nil {
		return nil, fail(op, err)
	}
	return entities, nil
}

// insertReturningID runs an INSERT ... RETURNING id and yields the generated key.
func (r *Repository[T]) insertReturningID(ctx context.Context, op string, query string, args ...any) (int64, error) {
	exec, release, err := r.getExecutor(ctx)
	if err != nil {
		return 0, fail(op, err)
	}
	defer release()

	var id int64
	if err := exec.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fail(op, err)
	}
	return id, nil
}

// insertReturningIDs runs a multi-row INSERT ... RETURNING id and yields the
// generated keys in the order the store returns them.
func (r *Repository[T]) insertReturningIDs(ctx context.Context, op string, query string, args ...any) ([]int64, error) {
	exec, release, err := r.getExecutor(ctx)
	if err != nil {
		return nil, fail(op, err)
	}
	defer release()

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fail(op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fail(op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(op, err)
	}
	return ids, nil
}

// exec runs a statement and reports the affected row count. Zero rows is
// not an error.
func (r *Repository[T]) exec(ctx context.Context, op string, query string, args ...any) (int64, error) {
	exec, release, err := r.getExecutor(ctx)
	if err != nil {
		return 0, fail(op, err)
	}
	defer release()

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fail(op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fail(op, err)
	}
	return affected, nil
}

func fail(op string, err error) error {
	return apperrors.Wrap(op, fmt.Sprintf("failed to %s", op), classify(err))
}
