package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pipeline-specific helpers.
type Logger struct {
	*slog.Logger
}

// Options selects handler format and verbosity.
type Options struct {
	// Format is "text" (default) or "json".
	Format string
	Debug  bool
	// Quiet raises the level to Warn so a normal run only prints its result line.
	Quiet  bool
	Output io.Writer
}

// New creates a logger writing to stderr unless Output is set.
func New(opt Options) *Logger {
	level := slog.LevelInfo
	if opt.Quiet {
		level = slog.LevelWarn
	}
	if opt.Debug {
		level = slog.LevelDebug
	}
	w := opt.Output
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if opt.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return &Logger{slog.New(h)}
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// Stage logs completion of a pipeline stage with its duration.
func (l *Logger) Stage(stage string, started time.Time, attrs ...any) {
	args := append([]any{"stage", stage, "elapsed", time.Since(started).Round(time.Microsecond)}, attrs...)
	l.Info("Stage completed", args...)
}

// FileOperation logs a read or write against the filesystem.
func (l *Logger) FileOperation(operation, path string) {
	l.Debug("File operation",
		"operation", operation,
		"path", path,
	)
}
