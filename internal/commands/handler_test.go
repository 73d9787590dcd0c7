package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

type testMessage struct{}

func (testMessage) Type() string { return "pagebuilder.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "pagebuilder.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
	if code := textCode(err); code != CodeTimeout {
		t.Fatalf("expected %s text code, got %q", CodeTimeout, code)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded to stay matchable, got %v", err)
	}
}

func TestHandlerPassesCategorisedErrorsThrough(t *testing.T) {
	domainErr := goerrors.New("page missing", goerrors.CategoryNotFound).WithTextCode("PAGE_NOT_FOUND")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return domainErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category to survive, got %v", err)
	}
	if code := textCode(err); code != "PAGE_NOT_FOUND" {
		t.Fatalf("expected domain text code, got %q", code)
	}
}

func textCode(err error) string {
	var target *goerrors.Error
	if errors.As(err, &target) {
		return target.TextCode
	}
	return ""
}

type fieldMessage struct {
	Slug string
}

func (fieldMessage) Type() string { return "pagebuilder.test.fields" }

func (fieldMessage) Validate() error { return nil }

func TestHandlerMessageFieldsAndTelemetry(t *testing.T) {
	logger := testsupport.NewRecordingLogger()
	var captured []TelemetryInfo

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	h := NewHandler(func(ctx context.Context, msg fieldMessage) error {
		return errors.New("store offline")
	},
		WithLogger[fieldMessage](logger),
		WithOperation[fieldMessage]("pages.save"),
		WithMessageFields(func(msg fieldMessage) map[string]any {
			return map[string]any{"page_slug": msg.Slug}
		}),
		WithTelemetry(func(ctx context.Context, msg fieldMessage, info TelemetryInfo) {
			captured = append(captured, info)
		}),
		WithClock[fieldMessage](func() time.Time {
			calls++
			return clock.Add(time.Duration(calls) * 5 * time.Millisecond)
		}),
	)

	err := h.Execute(context.Background(), fieldMessage{Slug: "home"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if len(captured) != 1 {
		t.Fatalf("expected one telemetry call, got %d", len(captured))
	}
	info := captured[0]
	if info.Status != TelemetryStatusFailed || info.Error == nil {
		t.Fatalf("unexpected telemetry status %+v", info)
	}
	if info.Category != goerrors.CategoryCommand || info.Code != CodeFailed {
		t.Fatalf("expected command classification, got %s %s", info.Category, info.Code)
	}
	if info.Fields["page_slug"] != "home" || info.Fields["operation"] != "pages.save" || info.Command != "pagebuilder.test.fields" {
		t.Fatalf("unexpected telemetry fields %+v", info.Fields)
	}
	if info.Duration != 5*time.Millisecond {
		t.Fatalf("expected measured duration, got %s", info.Duration)
	}
	if logger.Has("command.execute.failed") {
		t.Fatal("telemetry should replace built-in outcome logging")
	}

	entries := logger.Entries()
	if len(entries) == 0 || entries[0].Message != "command.execute.start" || entries[0].Fields["page_slug"] != "home" {
		t.Fatalf("expected start entry with message fields, got %+v", entries)
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := testsupport.NewRecordingLogger()
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	}, WithTelemetry(DefaultTelemetry[testMessage](logger)))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !logger.Has("command.execute.success") {
		t.Fatalf("expected success entry, got %+v", logger.Entries())
	}
}

func TestDefaultTelemetryWarnsOnRejectedRequests(t *testing.T) {
	logger := testsupport.NewRecordingLogger()
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return goerrors.New("page missing", goerrors.CategoryNotFound).WithTextCode("PAGE_NOT_FOUND")
	}, WithTelemetry(DefaultTelemetry[testMessage](logger)))

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}

	var rejected *testsupport.LogEntry
	for _, entry := range logger.Entries() {
		if entry.Message == "command.execute.rejected" {
			rejected = &entry
		}
	}
	if rejected == nil {
		t.Fatalf("expected rejected entry, got %+v", logger.Entries())
	}
	if rejected.Level != "warn" {
		t.Fatalf("expected warn level, got %s", rejected.Level)
	}
	if logger.Has("command.execute.failed") {
		t.Fatal("rejections should not be logged as failures")
	}
}

func TestTimeoutReportsContextError(t *testing.T) {
	var captured TelemetryInfo
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	},
		WithTimeout[testMessage](5*time.Millisecond),
		WithTelemetry(func(ctx context.Context, msg testMessage, info TelemetryInfo) {
			captured = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected timeout error")
	}
	if captured.Status != TelemetryStatusContextError || captured.Code != CodeTimeout {
		t.Fatalf("expected context error with timeout code, got %s %s", captured.Status, captured.Code)
	}
}
