// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// qcpump application.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// FileName is the name of the application log file.
const FileName = "qcpump.log"

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// Options configures [NewAppLogger]. The values normally come straight from
// the loaded configuration.
type Options struct {
	// Level is one of debug | info | warning | error | critical.
	Level string
	// Debug forces the debug level regardless of Level.
	Debug bool
	// Console also writes human readable output to stderr.
	Console bool
	// Dir is the directory the logs/ folder is created in. Empty logs to
	// stderr only.
	Dir string
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger constructs a *Logger for the given role label (e.g. "qcpump")
// that writes JSON lines to out at the info level. Every entry carries the
// role, a timestamp and the calling function.
func NewLogger(role string, out io.Writer) *Logger {
	logger := zerolog.New(out).
		Level(zerolog.InfoLevel).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewAppLogger constructs the application logger described by opts.
//
// JSON entries go to <opts.Dir>/logs/qcpump.log. If the log file cannot be
// opened the logger falls back to stderr and reports why.
func NewAppLogger(role string, opts Options) *Logger {
	var (
		out     io.Writer = os.Stderr
		openErr error
	)

	if opts.Dir != "" {
		if f, err := openLogFile(opts.Dir); err == nil {
			out = f
		} else {
			openErr = err
		}
	}

	if opts.Console && out != os.Stderr {
		out = zerolog.MultiLevelWriter(out, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	l := NewLogger(role, out)
	l.Logger = l.Level(ParseLevel(opts.Level, opts.Debug))

	if openErr != nil {
		l.Warn().Err(openErr).Msg("cannot open log file, logging to stderr")
	}
	return l
}

func openLogFile(dir string) (*os.File, error) {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(logDir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// ParseLevel maps a configured level name to a zerolog level. debug wins
// over level; unknown names fall back to info.
func ParseLevel(level string, debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "critical":
		return zerolog.FatalLevel
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver and tags every entry with component. The parent is not affected.
func (l *Logger) GetChildLogger(component string) *Logger {
	return &Logger{l.With().Str("component", component).Logger()}
}

// FromContext returns the logger attached to ctx with zerolog's
// Logger.WithContext, or fallback when ctx carries none.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return &Logger{*l}
	}
	return fallback
}
