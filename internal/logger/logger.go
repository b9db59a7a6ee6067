// Package logger provides a thin wrapper around zerolog.Logger used
// throughout the salim client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Because the client owns the terminal, log output goes to a file next to
// the executable rather than to stdout.
package logger

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding zerolog.Logger
// exposes the full zerolog API while allowing the application to add helper
// methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given component label (e.g. "client",
// "gateway"). Entries carry a "component" field, a timestamp, and the
// fully-qualified caller function name under "func".
//
// Output goes to a "salim.log" file next to the executable; if the file
// cannot be opened the logger falls back to stderr so the TUI screen is
// never polluted by stdout writes.
func New(component string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	out := logOutput()
	logger := zerolog.New(out).With().
		Str("component", component).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

func logOutput() *os.File {
	execPath, err := os.Executable()
	if err != nil {
		return os.Stderr
	}

	logPath := filepath.Join(filepath.Dir(execPath), "salim.log")
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return logFile
}

// Nop returns a *Logger that discards all log output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a new *Logger that inherits all fields of the receiver.
// The child can be enriched with additional context fields without
// affecting the parent.
func (l *Logger) Child() *Logger {
	return &Logger{l.With().Logger()}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper. If no logger has been attached to ctx, zerolog returns its global
// logger, so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
