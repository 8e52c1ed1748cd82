package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop().Sugar()

// Init initializes the global logger with JSON output.
func Init(appEnv string) error {
	var config zap.Config
	if appEnv == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "json"

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	globalLogger = logger.Sugar()
	return nil
}

// L returns the global SugaredLogger. It is a no-op logger until Init runs.
func L() *zap.SugaredLogger {
	return globalLogger
}

// Set replaces the global logger, mainly for tests.
func Set(l *zap.SugaredLogger) {
	globalLogger = l
}

// Close flushes any buffered logs.
func Close() error {
	return globalLogger.Sync()
}

func Info(message string, fields ...any) {
	globalLogger.Infow(message, fields...)
}

func Warn(message string, fields ...any) {
	globalLogger.Warnw(message, fields...)
}

func Error(message string, fields ...any) {
	globalLogger.Errorw(message, fields...)
}
