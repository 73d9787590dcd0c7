package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to failures the handler classifies itself. Errors that
// already carry a go-errors category pass through unchanged.
const (
	CodeInvalidMessage = "PAGEBUILDER_COMMAND_INVALID"
	CodeCanceled       = "PAGEBUILDER_COMMAND_CANCELED"
	CodeTimeout        = "PAGEBUILDER_COMMAND_TIMEOUT"
	CodeContext        = "PAGEBUILDER_COMMAND_CONTEXT"
	CodeFailed         = "PAGEBUILDER_COMMAND_FAILED"
)

func classify(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return classify(err, goerrors.CategoryValidation, "invalid command message", CodeInvalidMessage)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return classify(err, goerrors.CategoryCommand, "command cancelled", CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return classify(err, goerrors.CategoryCommand, "command deadline exceeded", CodeTimeout)
	default:
		return classify(err, goerrors.CategoryCommand, "command context ended", CodeContext)
	}
}

// wrapExecuteError keeps timeouts reported by the executed function
// distinguishable from ordinary failures.
func wrapExecuteError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	return classify(err, goerrors.CategoryCommand, "command failed", CodeFailed)
}
