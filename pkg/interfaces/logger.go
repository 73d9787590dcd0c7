package interfaces

import "context"

// Logger is the leveled, key/value logger accepted by every page builder
// component. Its method set is that of github.com/goliatone/go-logger, so a
// go-logger instance can be handed in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can bind structured fields to
// every later entry. Helpers fall back to the plain logger when it is absent.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out loggers by dotted module name, for example
// "pagebuilder.pages".
type LoggerProvider interface {
	GetLogger(name string) Logger
}
