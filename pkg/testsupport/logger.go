package testsupport

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Args    []any
	Fields  map[string]any
}

// RecordingLogger captures entries so tests can assert on diagnostics.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  map[string]any
}

var (
	_ interfaces.Logger         = (*RecordingLogger)(nil)
	_ interfaces.FieldsLogger   = (*RecordingLogger)(nil)
	_ interfaces.LoggerProvider = (*RecordingLogger)(nil)
)

// NewRecordingLogger returns an empty recorder.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (r *RecordingLogger) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *RecordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *RecordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *RecordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *RecordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *RecordingLogger) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *RecordingLogger) WithContext(context.Context) interfaces.Logger { return r }

// WithFields returns a child sharing the entry log.
func (r *RecordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(r.fields)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, fields)
	return &RecordingLogger{mu: r.mu, entries: r.entries, fields: merged}
}

// GetLogger lets the recorder act as a provider for every module.
func (r *RecordingLogger) GetLogger(string) interfaces.Logger { return r }

// Entries returns a snapshot of captured entries.
func (r *RecordingLogger) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), (*r.entries)...)
}

// Has reports whether an entry with msg was captured.
func (r *RecordingLogger) Has(msg string) bool {
	for _, entry := range r.Entries() {
		if entry.Message == msg {
			return true
		}
	}
	return false
}

func (r *RecordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, LogEntry{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Fields:  maps.Clone(r.fields),
	})
}
