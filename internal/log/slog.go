package log

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AsSlog exposes the logger through the standard slog interface for
// libraries that expect a *slog.Logger.
func (l *Logger) AsSlog() *slog.Logger {
	return slog.New(&slogHandler{logger: l})
}

type slogHandler struct {
	logger *Logger
	attrs  []Field
	group  string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.level.Enabled(slogToZapLevel(level))
}

func (h *slogHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]Field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)

	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.attrToField(attr))
		return true
	})

	h.logger.log(ctx, slogToZapLevel(record.Level), record.Message, fields...)

	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &slogHandler{logger: h.logger, group: h.group}
	next.attrs = append(next.attrs, h.attrs...)

	for _, attr := range attrs {
		next.attrs = append(next.attrs, h.attrToField(attr))
	}

	return next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	return &slogHandler{logger: h.logger, attrs: h.attrs, group: name}
}

func (h *slogHandler) attrToField(attr slog.Attr) Field {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	return zap.Any(key, attr.Value.Any())
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
