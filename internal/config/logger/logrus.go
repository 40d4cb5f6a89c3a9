package logger

import (
	"strings"

	"go-ticket-store/internal/config/env"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// NewLogger builds the process logger. log.format selects "json" output,
// anything else falls back to colored text.
func NewLogger(config *env.Config) *logrus.Logger {
	log := logrus.New()

	log.SetLevel(logrus.Level(config.Log.Level))
	log.SetFormatter(newFormatter(config.Log.Format))

	return log
}

func newFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		}
	}

	return &logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
	}
}
