package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"go-ticket-store/internal/utils/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// classify tags driver errors with the matching apperrors kind. Errors that
// already carry a kind pass through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return apperrors.Connectivity(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == uniqueViolation:
		return fmt.Errorf("%w: %w", apperrors.ErrDuplicate, err)
	case pgErr.Code == foreignKeyViolation:
		return fmt.Errorf("%w: %w", apperrors.ErrReferenceMissing, err)
	case strings.HasPrefix(pgErr.Code, "23"):
		return fmt.Errorf("%w: %w", apperrors.ErrConstraint, err)
	// connection exception and invalid authorization
	case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "28"):
		return apperrors.Connectivity(err)
	}
	return err
}
