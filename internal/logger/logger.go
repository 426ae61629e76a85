// Package logger provides the small logging interface bandwhich components
// share, so probes and the resolver are not coupled to a specific sink.
package logger

import (
	"log"
	"os"
)

// Logger defines the logging operations components depend on. All methods
// take a format string and arguments, like fmt.Printf.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// envLogger writes to stderr via the standard log package. Debug messages
// are only emitted when BANDWHICH_DEBUG is set; the TUI owns stdout.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that respects the BANDWHICH_DEBUG
// environment variable. The prefix is prepended to every message.
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...any) {
	if os.Getenv("BANDWHICH_DEBUG") != "" {
		log.Printf(l.prefix+" "+format, args...)
	}
}

func (l *envLogger) Info(format string, args ...any) {
	log.Printf(l.prefix+" "+format, args...)
}

func (l *envLogger) Warn(format string, args ...any) {
	log.Printf(l.prefix+" WARN: "+format, args...)
}

func (l *envLogger) Error(format string, args ...any) {
	log.Printf(l.prefix+" ERROR: "+format, args...)
}

// noopLogger discards all messages. Useful in tests.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...any) {}
func (l *noopLogger) Info(format string, args ...any)  {}
func (l *noopLogger) Warn(format string, args ...any)  {}
func (l *noopLogger) Error(format string, args ...any) {}
