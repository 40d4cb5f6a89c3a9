package mapper

import (
	"go-ticket-store/internal/utils/apperrors"
)

// Rows is the cursor part of *sql.Rows the mappers rely on.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// RowMapper decodes result rows into entities of type T.
type RowMapper[T any] interface {
	// MapOne advances the cursor once. It returns nil when there is no row.
	MapOne(rows Rows) (*T, error)
	// MapMany drains the cursor in order.
	MapMany(rows Rows) ([]*T, error)
}

type scanFunc[T any] func(rows Rows) (*T, error)

func mapOne[T any](rows Rows, scan scanFunc[T]) (*T, error) {
	if !rows.Next() {
		return nil, rows.Err()
	}
	entity, err := scan(rows)
	if err != nil {
		return nil, apperrors.Mapping(err)
	}
	return entity, nil
}

func mapMany[T any](rows Rows, scan scanFunc[T]) ([]*T, error) {
	entities := make([]*T, 0)
	for rows.Next() {
		entity, err := scan(rows)
		if err != nil {
			return nil, apperrors.Mapping(err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}
