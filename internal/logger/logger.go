// SPDX-License-Identifier: MIT

// Package logger is the process-wide structured logger used by numcore
// packages. It wraps zerolog behind a small key/value API.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance wrapper.
var Log *Logger

// Logger forwards key/value pairs to a zerolog.Logger.
type Logger struct {
	z zerolog.Logger
}

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	z := zerolog.New(output).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	Log = &Logger{z: z}
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup configures the global logger to write to stderr.
func Setup(level string, format string) {
	SetupWriter(level, format, os.Stderr)
}

// SetupWriter configures the global logger with an explicit sink.
// format "json" emits one JSON object per line; anything else is console output.
func SetupWriter(level string, format string, w io.Writer) {
	var z zerolog.Logger
	if strings.ToLower(format) == "json" {
		z = zerolog.New(w)
	} else {
		z = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true})
	}

	Log = &Logger{z: z.Level(ParseLevel(level)).With().Timestamp().Logger()}
}

// With returns a child logger that always carries the given pairs.
func (l *Logger) With(args ...interface{}) *Logger {
	ctx := l.z.With()
	for i := 0; i+1 < len(args); i += 2 {
		ctx = ctx.Interface(keyOf(args[i]), args[i+1])
	}

	return &Logger{z: ctx.Logger()}
}

// Debug logs at Debug level with variadic key-value pairs.
func (l *Logger) Debug(msg string, args ...interface{}) {
	e := l.z.Debug()
	addFields(e, args...)
	e.Msg(msg)
}

// Info logs at Info level with variadic key-value pairs.
func (l *Logger) Info(msg string, args ...interface{}) {
	e := l.z.Info()
	addFields(e, args...)
	e.Msg(msg)
}

// Warn logs at Warn level with variadic key-value pairs.
func (l *Logger) Warn(msg string, args ...interface{}) {
	e := l.z.Warn()
	addFields(e, args...)
	e.Msg(msg)
}

// Error logs at Error level with variadic key-value pairs.
func (l *Logger) Error(msg string, args ...interface{}) {
	e := l.z.Error()
	addFields(e, args...)
	e.Msg(msg)
}

// addFields adds variadic key-value pairs to the event. A trailing key
// without a value is dropped. Disabled events are a no-op.
func addFields(e *zerolog.Event, args ...interface{}) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(args); i += 2 {
		if err, ok := args[i+1].(error); ok {
			e.AnErr(keyOf(args[i]), err)
			continue
		}
		e.Interface(keyOf(args[i]), args[i+1])
	}
}

func keyOf(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", k)
}
