package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusRejected marks failures caused by the request itself:
	// invalid messages, missing pages, edits the schema refuses.
	TelemetryStatusRejected     TelemetryStatus = "rejected"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome provided to telemetry callbacks.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Category  goerrors.Category
	Code      string
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution, after the command returns.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes to logger: rejections at warn level, other
// failures at error level.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		info.Logger = logging.WithFields(logger, info.Fields)
		logOutcome(info)
	}
}

func logOutcome(info TelemetryInfo) {
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	if info.Code != "" {
		args = append(args, "error_code", info.Code)
	}
	switch info.Status {
	case TelemetryStatusSuccess:
		info.Logger.Info("command.execute.success", args...)
	case TelemetryStatusRejected:
		info.Logger.Warn("command.execute.rejected", append(args, "error", info.Error)...)
	case TelemetryStatusContextError:
		info.Logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		info.Logger.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}

// describe fills the error classification of info from the error returned to
// the caller.
func describe(info *TelemetryInfo, err error) {
	if err == nil {
		return
	}
	var classified *goerrors.Error
	if errors.As(err, &classified) {
		info.Category = classified.Category
		info.Code = classified.TextCode
	}
	if info.Status == TelemetryStatusFailed && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		info.Status = TelemetryStatusContextError
		return
	}
	switch info.Category {
	case goerrors.CategoryValidation, goerrors.CategoryNotFound, goerrors.CategoryConflict, goerrors.CategoryBadInput:
		if info.Status == TelemetryStatusFailed {
			info.Status = TelemetryStatusRejected
		}
	}
}
