package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Printf-style logging facade backed by zap. The pipeline packages only
// need leveled formatted output, so the sugared logger stays behind
// package functions instead of being passed around.

var sugar *zap.SugaredLogger

func init() {
	sugar = build(zapcore.InfoLevel)
}

// Init replaces the global logger with one at the given level.
// Unknown level strings fall back to info.
func Init(level string) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	sugar = build(parsed)
}

func build(level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

func Debug(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Info(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Warn(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Error(format string, args ...any) {
	sugar.Errorf(format, args...)
}

func Fatal(format string, args ...any) {
	sugar.Fatalf(format, args...)
}

// Sync flushes buffered log entries. Safe to call on exit.
func Sync() {
	_ = sugar.Sync()
}
