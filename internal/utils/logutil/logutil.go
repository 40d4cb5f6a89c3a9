package logutil

import (
	"context"
	"errors"

	"go-ticket-store/internal/utils/apperrors"

	"github.com/sirupsen/logrus"
)

// OperationEntry returns an entry tagged with the data operation being run.
func OperationEntry(logger *logrus.Logger, ctx context.Context, operation string) *logrus.Entry {
	return logger.WithContext(ctx).WithField("operation", operation)
}

// Error logs an error with additional context, handling nil errors gracefully.
// Data access errors also log their operation and kind.
func Error(logger *logrus.Logger, message string, err error, fields ...logrus.Fields) {
	entry := logger.WithFields(logrus.Fields{})
	if err != nil {
		entry = entry.WithField("error", err.Error())

		var dae *apperrors.DataAccessError
		if errors.As(err, &dae) {
			entry = entry.WithField("operation", dae.Op)
		}
		entry = entry.WithField("kind", apperrors.KindOf(err).Error())
	}
	if len(fields) > 0 {
		entry = entry.WithFields(fields[0])
	}
	entry.Warn(message)
}
