// Package logger configures the process-wide slog logger: tint on a
// console, JSON in production. Components depend on Interface.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/orris-inc/moderation/internal/shared/config"
)

var (
	mu     sync.RWMutex
	root   *slog.Logger
	output *os.File
	level  = new(slog.LevelVar)
)

// Init configures the process-wide logger. Source locations are attached
// from warn upwards, or on every level when serverMode is "debug".
func Init(cfg *config.LoggerConfig, serverMode string) error {
	level.Set(ParseLevel(cfg.Level))

	writer, file, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}

	sourceFrom := slog.LevelWarn
	if serverMode == "debug" {
		sourceFrom = slog.LevelDebug
	}

	var base slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		base = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	} else {
		base = newConsoleHandler(writer, level)
	}

	l := slog.New(newSourceHandler(base, sourceFrom))

	mu.Lock()
	prev := output
	root, output = l, file
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}

	slog.SetDefault(l)
	return nil
}

// ParseLevel maps a config level name onto slog. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(path string) (io.Writer, *os.File, error) {
	switch strings.ToLower(path) {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func newConsoleHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "error" && a.Value.Kind() == slog.KindAny {
				if err, ok := a.Value.Any().(error); ok {
					return tint.Err(err)
				}
			}
			return a
		},
	})
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetLevel changes the minimum level at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Get returns the configured logger, falling back to a console logger on
// stdout before Init runs.
func Get() *slog.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		root = slog.New(newSourceHandler(newConsoleHandler(os.Stdout, level), slog.LevelWarn))
	}
	return root
}

// Sync flushes a file output. Console outputs need nothing.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if output == nil {
		return nil
	}
	return output.Sync()
}
