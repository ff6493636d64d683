package config

import (
	"fmt"
	"io"
)

// Logger receives build progress output. The orchestrator and acquirer
// report through this interface so callers control where (and whether)
// progress is printed.
type Logger interface {
	// Infof logs normal progress messages.
	Infof(format string, args ...any)

	// Warnf logs conditions the build survives but the user should see.
	Warnf(format string, args ...any)
}

// noopLogger discards all output. Used when no logger is provided and
// for --quiet runs.
type noopLogger struct{}

func (noopLogger) Infof(format string, args ...any) {}
func (noopLogger) Warnf(format string, args ...any) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

type writerLogger struct {
	out io.Writer
}

func (l writerLogger) Infof(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

func (l writerLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "warning: "+format+"\n", args...)
}

// NewLogger returns a Logger writing one line per message to out.
func NewLogger(out io.Writer) Logger {
	return writerLogger{out: out}
}
