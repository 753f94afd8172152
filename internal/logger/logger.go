package logger

import (
	"fmt"

	"doc-quiz/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log     *zap.Logger
	closeFn func()
)

// Initialize sets up the global logger. Output is "stdout" (default),
// "stderr" or a file path; files are appended to.
func Initialize(loggerCfg config.LoggerConfig) error {
	level := zapcore.InfoLevel
	if loggerCfg.Level != "" {
		if err := level.Set(loggerCfg.Level); err != nil {
			return err
		}
	}

	output := loggerCfg.Output
	if output == "" {
		output = "stdout"
	}
	sink, closeSink, err := zap.Open(output)
	if err != nil {
		return fmt.Errorf("open log output %q: %w", output, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	if loggerCfg.Env == "production" {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "timestamp"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	if closeFn != nil {
		closeFn()
	}
	log = zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	closeFn = closeSink
	return nil
}

// Get returns the global logger instance. Before Initialize it returns a
// no-op logger so packages can log unconditionally.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
