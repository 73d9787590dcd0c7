package commands

import (
	"context"
	"maps"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// MessageFields extracts structured log fields from a message.
type MessageFields[T command.Message] func(msg T) map[string]any

// Handler wraps command execution with shared page builder concerns (context,
// logging, error tagging).
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    MessageFields[T]
	telemetry Telemetry[T]
	now       func() time.Time
}

// NewHandler creates a handler that satisfies go-command's Commander interface
// while applying validation, logging and timeout enforcement.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute and applies validation,
// context management, logging, and error categorisation before delegating to
// the wrapped function.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	ctx, cancel := boundContext(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	fields := map[string]any{
		"command": command.GetMessageType(msg),
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	started := h.now()
	info := TelemetryInfo{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		Fields:    fields,
		Status:    TelemetryStatusSuccess,
		Logger:    logger,
	}

	var result error
	if err := h.exec(ctx, msg); err != nil {
		info.Status = TelemetryStatusFailed
		info.Error = err
		result = wrapExecuteError(err)
	} else if err := ctx.Err(); err != nil {
		info.Status = TelemetryStatusContextError
		info.Error = err
		result = wrapContextError(err)
	}
	info.Duration = h.now().Sub(started)
	describe(&info, result)

	h.report(ctx, msg, info)
	return result
}

func (h *Handler[T]) report(ctx context.Context, msg T, info TelemetryInfo) {
	if h.telemetry != nil {
		h.telemetry(ctx, msg, info)
		return
	}
	logOutcome(info)
}

// WithTimeout overrides the default execution timeout.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation sets a human-friendly operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields attaches message derived fields to every log entry.
func WithMessageFields[T command.Message](fn MessageFields[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry replaces the built-in outcome logging with fn.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}

// WithClock overrides the clock used to measure execution time.
func WithClock[T command.Message](now func() time.Time) HandlerOption[T] {
	return func(h *Handler[T]) {
		if now != nil {
			h.now = now
		}
	}
}
