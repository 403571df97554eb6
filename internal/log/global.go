package log

import (
	"context"
	"sync/atomic"
)

var global atomic.Pointer[Logger]

func init() {
	global.Store(New(Config{}))
}

// SetGlobalConfig rebuilds the global logger from config, keeping hooks
// registered on the previous instance.
func SetGlobalConfig(cfg Config) {
	old := global.Load()
	logger := New(cfg)

	if old != nil {
		old.mu.RLock()
		logger.hooks = append(logger.hooks, old.hooks...)
		old.mu.RUnlock()
	}

	global.Store(logger)
}

// SetGlobalLogger replaces the global logger.
func SetGlobalLogger(l *Logger) {
	global.Store(l)
}

// GetGlobalLogger returns the process-wide logger.
func GetGlobalLogger() *Logger {
	return global.Load()
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	global.Load().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	global.Load().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	global.Load().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	global.Load().Error(ctx, msg, fields...)
}
