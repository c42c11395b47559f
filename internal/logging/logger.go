// Package logging - обёртка над slog с общими именами полей.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// New создаёт логгер с обработчиком handler (nil - текстовый в stderr).
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop отбрасывает все записи.
func Noop() *Logger {
	return New(slog.DiscardHandler)
}

func (l *Logger) WithMH(mh string) *Logger {
	return &Logger{Logger: l.Logger.With("mh", mh)}
}

func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{Logger: l.Logger.With("seed", seed)}
}

// WithBatch помечает записи идентификатором серии запусков.
func (l *Logger) WithBatch(id string) *Logger {
	return &Logger{Logger: l.Logger.With("batch", id)}
}

func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With("component", name)}
}

// ParseLevel разбирает debug|info|warn|error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level: %s", s)
}
