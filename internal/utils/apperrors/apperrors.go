package apperrors

import (
	"errors"
	"fmt"
)

var (
	// Error kinds
	ErrConnectivity = errors.New("database is unreachable")
	ErrStatement    = errors.New("statement execution failed")
	ErrMapping      = errors.New("row mapping failed")
	ErrBusinessRule = errors.New("business rule violated")
	ErrRollback     = errors.New("transaction rollback failed")

	// ErrDataAccess marks every error returned by a repository.
	ErrDataAccess = errors.New("data access failed")

	// Statement refinements
	ErrDuplicate           = fmt.Errorf("%w: duplicate record", ErrStatement)
	ErrReferenceMissing    = fmt.Errorf("%w: referenced record does not exist", ErrStatement)
	ErrConstraint          = fmt.Errorf("%w: constraint violated", ErrStatement)
	ErrPassengerUnresolved = fmt.Errorf("%w: ticket has neither passenger id nor passenger", ErrStatement)

	// Business rules
	ErrPassengerNotFound = fmt.Errorf("%w: referenced passenger does not exist", ErrBusinessRule)
)

// kinds is ordered from most to least specific.
var kinds = []error{
	ErrRollback,
	ErrConnectivity,
	ErrMapping,
	ErrBusinessRule,
	ErrDuplicate,
	ErrReferenceMissing,
	ErrConstraint,
	ErrStatement,
}

// KindOf reports the taxonomy kind of err. Anything unclassified is a
// statement failure.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrStatement
}

// DataAccessError is the single error type surfaced by repositories. It keeps
// the operation that failed, the kind and the original cause.
type DataAccessError struct {
	Op      string
	Message string
	Kind    error
	Err     error
}

func (e *DataAccessError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap lets errors.Is match ErrDataAccess, the kind and the cause.
func (e *DataAccessError) Unwrap() []error {
	errs := []error{ErrDataAccess}
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Wrap turns err into a *DataAccessError for op. A nil err stays nil and an
// error that already is a *DataAccessError is returned unchanged so nested
// repository calls keep the innermost operation.
func Wrap(op, message string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}
	return &DataAccessError{
		Op:      op,
		Message: message,
		Kind:    KindOf(err),
		Err:     err,
	}
}

// Connectivity marks err as a connectivity failure.
func Connectivity(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrConnectivity, err)
}

// Mapping marks err as a row decode failure.
func Mapping(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrMapping, err)
}

// RollbackError is returned when rolling back after a failed unit of work
// fails itself. The store state is unknown at that point.
type RollbackError struct {
	// Err is the rollback failure.
	Err error
	// Cause is the failure that triggered the rollback.
	Cause error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed: %v (after: %v)", e.Err, e.Cause)
}

func (e *RollbackError) Unwrap() []error {
	return []error{ErrRollback, e.Err, e.Cause}
}
