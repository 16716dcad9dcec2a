// Package logger wraps zerolog with the small set of helpers the application
// needs: a constructor with a role label, a no-op logger for tests, and
// request-context accessors.
package logger

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding exposes the full
// zerolog API while leaving room for application helpers.
type Logger struct {
	zerolog.Logger
}

// New constructs a JSON logger writing to stdout, tagged with a role label
// (e.g. "server", "adduser"). Debug enables debug-level output.
func New(role string, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(os.Stdout).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromRequest returns the logger stored in the request context by the
// logging middleware, or a disabled logger when none is attached.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*zerolog.Ctx(r.Context())}
}
