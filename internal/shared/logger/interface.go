package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Interface is the logger components receive. The *w variants take
// alternating keys and values.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Fatalw(msg string, keysAndValues ...any)
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger returns an Interface over the process-wide logger.
func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

// NewLoggerWithSlog wraps an existing slog logger.
func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

// log records the caller of the exported method, not this wrapper.
func (l *slogLogger) log(lvl slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), lvl, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *slogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *slogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *slogLogger) Fatal(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
	panic("fatal: " + msg)
}

func (l *slogLogger) Debugw(msg string, kv ...any) { l.log(slog.LevelDebug, msg, kv) }
func (l *slogLogger) Infow(msg string, kv ...any)  { l.log(slog.LevelInfo, msg, kv) }
func (l *slogLogger) Warnw(msg string, kv ...any)  { l.log(slog.LevelWarn, msg, kv) }
func (l *slogLogger) Errorw(msg string, kv ...any) { l.log(slog.LevelError, msg, kv) }

func (l *slogLogger) Fatalw(msg string, kv ...any) {
	l.log(slog.LevelError, msg, kv)
	panic("fatal: " + msg)
}

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Named(name string) Interface {
	return &slogLogger{logger: l.logger.With("logger", name)}
}
