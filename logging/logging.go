// Package logging is a thin wrapper over the logrus Go logging package.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields.
type Fields = logrus.Fields

// Logger is the interface consumed by the editor and menu for diagnostics.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})

	WithFields(fields Fields) Logger
}

// StandardLogger is the default logrus-backed Logger implementation.
type StandardLogger struct {
	entry *logrus.Entry
}

// New returns a new standard logger writing to stderr at info level.
func New() *StandardLogger {
	return &StandardLogger{entry: logrus.NewEntry(logrus.New())}
}

// SetOutput sets the underlying writer.
func (l *StandardLogger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// SetLevel sets the log level by name (debug, info, warn, error).
func (l *StandardLogger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// WithFields returns a logger annotated with structured fields.
func (l *StandardLogger) WithFields(fields Fields) Logger {
	return &StandardLogger{entry: l.entry.WithFields(fields)}
}

// Debug logs a message at level Debug.
func (l *StandardLogger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info logs a message at level Info.
func (l *StandardLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn logs a message at level Warn.
func (l *StandardLogger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs a message at level Error.
func (l *StandardLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// NoOpLogger discards everything. It is the default for attached plugins.
type NoOpLogger struct{}

// NewNoOpLogger instantiates a NoOpLogger.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (*NoOpLogger) Debug(string, ...interface{}) {}
func (*NoOpLogger) Info(string, ...interface{})  {}
func (*NoOpLogger) Warn(string, ...interface{})  {}
func (*NoOpLogger) Error(string, ...interface{}) {}

// WithFields returns the same no-op logger.
func (l *NoOpLogger) WithFields(Fields) Logger { return l }
