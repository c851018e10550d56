// Package log provides a leveled logger for screenctl.
//
// Log messages are meant to be read by the person running the command,
// so the output is compact text similar to the standard library's log
// package rather than a machine-readable format.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Error = slog.LevelError

	discard = Error + 4 // above everything we log
)

// Discard is a logger that discards all its operations.
var Discard = &Logger{slog.New(slog.DiscardHandler)}

// Logger is a leveled logger backed by log/slog.
// Its printf-style methods are the preferred way to log.
type Logger struct{ *slog.Logger }

// New builds a logger that writes to the given writer.
// The logger defaults to level Info.
func New(w io.Writer) *Logger {
	return &Logger{slog.New(&handler{
		W:     w,
		Level: Info,
		mu:    new(sync.Mutex),
	})}
}

// Level reports the minimum level of messages this logger will write.
func (l *Logger) Level() Level {
	if h, ok := l.Handler().(*handler); ok {
		return h.Level
	}
	return discard
}

// WithLevel builds a copy of this logger that logs messages at or above the
// given level.
func (l *Logger) WithLevel(lvl Level) *Logger {
	h, ok := l.Handler().(*handler)
	if !ok {
		return l
	}

	out := *h
	out.Level = lvl
	return &Logger{slog.New(&out)}
}

// WithName builds a new logger with the provided name. Messages logged by it
// are prefixed with the name. The returned logger is safe to use concurrently
// with this logger.
func (l *Logger) WithName(name string) *Logger {
	h, ok := l.Handler().(*handler)
	if !ok {
		return l
	}

	out := *h
	if len(out.name) > 0 {
		out.name += "." + name
	} else {
		out.name = name
	}
	return &Logger{slog.New(&out)}
}

// Debugf logs a debug message.
func (l *Logger) Debugf(msg string, args ...interface{}) {
	l.Logf(Debug, msg, args...)
}

// Infof logs an informational message.
func (l *Logger) Infof(msg string, args ...interface{}) {
	l.Logf(Info, msg, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(msg string, args ...interface{}) {
	l.Logf(Error, msg, args...)
}

// Logf logs a message at the given level.
func (l *Logger) Logf(lvl Level, msg string, args ...interface{}) {
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.Log(ctx, lvl, msg)
}
