// Package logger provides the structured logging interface used by the gsat
// driver and its helper packages.
//
// The driver logs every AT command it transmits, every response line it
// classifies and every UDP datagram it frames or unframes. These are debug
// messages, so a logger created with InfoLevel keeps a running device quiet.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
)

// Level is the logging severity level.
type Level int8

const (
	DebugLevel Level = iota - 1
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger is a structured logger taking alternating keys and values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// With returns a child logger that adds keyValues to every message.
	With(keyValues ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlog returns a Logger writing to w. If the ENV environment variable is
// set to "development" the output is human readable, otherwise it is JSON.
func NewSlog(level Level, w io.Writer) Logger {
	lv := toSlogLevel(level)
	var h slog.Handler
	if os.Getenv("ENV") == "development" {
		h = console.NewHandler(w, &console.HandlerOptions{Level: lv})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lv,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					a.Key = "ts"
				}
				return a
			},
		})
	}
	return &slogLogger{slog.New(h)}
}

func (s *slogLogger) Debug(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s *slogLogger) Info(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s *slogLogger) Warn(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s *slogLogger) Error(msg string, kv ...any) { s.l.Error(msg, kv...) }

func (s *slogLogger) With(kv ...any) Logger {
	return &slogLogger{s.l.With(kv...)}
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	}
	return slog.LevelError
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level. Any other
// string gives InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (n nop) With(...any) Logger { return n }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nop{}
}
