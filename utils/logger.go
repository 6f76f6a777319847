package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger. It is a no-op until
// InitLogger runs.
var Logger = zap.NewNop()

// InitLogger builds the JSON logger writing to stdout and to a dated file
// under dir. An empty dir logs to stdout only.
func InitLogger(level, dir string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %v", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %v", err)
		}
		file := filepath.Join(dir, fmt.Sprintf("storefront-%s.log", time.Now().Format("2006-01-02")))
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %v", err)
	}
	Logger = logger
	return logger, nil
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	Logger.Sugar().Infof(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	Logger.Sugar().Errorf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	Logger.Sugar().Debugf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	Logger.Info("Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("ip", ip),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Duration("duration", duration))
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	Logger.Error("Panic recovered", zap.Error(err), zap.ByteString("stack", stack))
}
