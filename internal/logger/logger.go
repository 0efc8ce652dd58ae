// Package logger provides the process-wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
)

var globalLogger *zap.Logger

// Init initializes the global logger. logLevel overrides KINGDOMGEN_LOG_LEVEL
// when non-nil.
func Init(logLevel *string) error {
	var err error

	env := os.Getenv("GO_ENV")
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	appliedLogLevel := os.Getenv("KINGDOMGEN_LOG_LEVEL")
	if logLevel != nil {
		appliedLogLevel = *logLevel
	}
	if appliedLogLevel == "" {
		appliedLogLevel = "info"
	}

	switch appliedLogLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	globalLogger, err = config.Build()
	if err != nil {
		return err
	}
	return nil
}

// Get returns the global logger, falling back to a development logger if
// Init was never called (e.g. in tests).
func Get() *zap.Logger {
	if globalLogger == nil {
		globalLogger, _ = zap.NewDevelopment()
	}
	return globalLogger
}

// Sync flushes any buffered log entries.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// WithContext returns a logger carrying additional fields.
func WithContext(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// WithRunContext returns a logger tagged with the correlation id of a single
// kingdom-generation run.
func WithRunContext(runID string) *zap.Logger {
	if runID == "" {
		return Get()
	}
	return Get().With(zap.String("run_id", runID))
}
