package pagescmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

// SavePageHandler persists whole documents through the page service.
type SavePageHandler struct {
	inner *commands.Handler[SavePageCommand]
}

// NewSavePageHandler constructs a handler wired to the provided page service.
func NewSavePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageCommand]) *SavePageHandler {
	exec := func(ctx context.Context, msg SavePageCommand) error {
		_, err := service.Save(ctx, msg.Document)
		return categorize(err)
	}
	fields := func(msg SavePageCommand) map[string]any {
		if msg.Document == nil {
			return nil
		}
		return map[string]any{
			"page_slug":  msg.Document.Slug,
			"components": len(msg.Document.Components),
		}
	}
	return &SavePageHandler{inner: newHandler(exec, logger, "pages.save", fields, opts)}
}

// Execute satisfies command.Commander[SavePageCommand].
func (h *SavePageHandler) Execute(ctx context.Context, msg SavePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CreatePageHandler creates empty pages.
type CreatePageHandler struct {
	inner *commands.Handler[CreatePageCommand]
}

// NewCreatePageHandler constructs a handler wired to the provided page service.
func NewCreatePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreatePageCommand]) *CreatePageHandler {
	exec := func(ctx context.Context, msg CreatePageCommand) error {
		_, err := service.Create(ctx, pages.CreatePageRequest{
			Slug:        msg.Slug,
			Title:       msg.Title,
			Description: msg.Description,
		})
		return categorize(err)
	}
	fields := func(msg CreatePageCommand) map[string]any {
		return pageFields(msg.Slug, "", "")
	}
	return &CreatePageHandler{inner: newHandler(exec, logger, "pages.create", fields, opts)}
}

// Execute satisfies command.Commander[CreatePageCommand].
func (h *CreatePageHandler) Execute(ctx context.Context, msg CreatePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeletePageHandler removes pages.
type DeletePageHandler struct {
	inner *commands.Handler[DeletePageCommand]
}

// NewDeletePageHandler constructs a handler wired to the provided page service.
func NewDeletePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePageCommand]) *DeletePageHandler {
	exec := func(ctx context.Context, msg DeletePageCommand) error {
		return categorize(service.Delete(ctx, msg.Slug))
	}
	fields := func(msg DeletePageCommand) map[string]any {
		return pageFields(msg.Slug, "", "")
	}
	return &DeletePageHandler{inner: newHandler(exec, logger, "pages.delete", fields, opts)}
}

// Execute satisfies command.Commander[DeletePageCommand].
func (h *DeletePageHandler) Execute(ctx context.Context, msg DeletePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InsertComponentHandler adds default component instances to pages.
type InsertComponentHandler struct {
	inner *commands.Handler[InsertComponentCommand]
}

// NewInsertComponentHandler constructs a handler wired to the provided page service.
func NewInsertComponentHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[InsertComponentCommand]) *InsertComponentHandler {
	exec := func(ctx context.Context, msg InsertComponentCommand) error {
		_, _, err := service.InsertComponent(ctx, pages.InsertComponentRequest{
			Slug:     msg.Slug,
			Type:     msg.ComponentType,
			Position: msg.Position,
		})
		return categorize(err)
	}
	fields := func(msg InsertComponentCommand) map[string]any {
		out := pageFields(msg.Slug, "", "")
		out["component_type"] = msg.ComponentType
		out["position"] = msg.Position
		return out
	}
	return &InsertComponentHandler{inner: newHandler(exec, logger, "pages.component.insert", fields, opts)}
}

// Execute satisfies command.Commander[InsertComponentCommand].
func (h *InsertComponentHandler) Execute(ctx context.Context, msg InsertComponentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveComponentHandler drops components from pages.
type RemoveComponentHandler struct {
	inner *commands.Handler[RemoveComponentCommand]
}

// NewRemoveComponentHandler constructs a handler wired to the provided page service.
func NewRemoveComponentHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveComponentCommand]) *RemoveComponentHandler {
	exec := func(ctx context.Context, msg RemoveComponentCommand) error {
		_, err := service.RemoveComponent(ctx, pages.RemoveComponentRequest{
			Slug:        msg.Slug,
			ComponentID: msg.ComponentID,
		})
		return categorize(err)
	}
	fields := func(msg RemoveComponentCommand) map[string]any {
		return pageFields(msg.Slug, msg.ComponentID, "")
	}
	return &RemoveComponentHandler{inner: newHandler(exec, logger, "pages.component.remove", fields, opts)}
}

// Execute satisfies command.Commander[RemoveComponentCommand].
func (h *RemoveComponentHandler) Execute(ctx context.Context, msg RemoveComponentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MoveComponentHandler reorders components.
type MoveComponentHandler struct {
	inner *commands.Handler[MoveComponentCommand]
}

// NewMoveComponentHandler constructs a handler wired to the provided page service.
func NewMoveComponentHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[MoveComponentCommand]) *MoveComponentHandler {
	exec := func(ctx context.Context, msg MoveComponentCommand) error {
		_, err := service.MoveComponent(ctx, pages.MoveComponentRequest{
			Slug:        msg.Slug,
			ComponentID: msg.ComponentID,
			Position:    msg.Position,
		})
		return categorize(err)
	}
	fields := func(msg MoveComponentCommand) map[string]any {
		out := pageFields(msg.Slug, msg.ComponentID, "")
		out["position"] = msg.Position
		return out
	}
	return &MoveComponentHandler{inner: newHandler(exec, logger, "pages.component.move", fields, opts)}
}

// Execute satisfies command.Commander[MoveComponentCommand].
func (h *MoveComponentHandler) Execute(ctx context.Context, msg MoveComponentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateFieldHandler routes field edits to the base record or a variant.
type UpdateFieldHandler struct {
	inner *commands.Handler[UpdateFieldCommand]
}

// NewUpdateFieldHandler constructs a handler wired to the provided page service.
func NewUpdateFieldHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateFieldCommand]) *UpdateFieldHandler {
	exec := func(ctx context.Context, msg UpdateFieldCommand) error {
		_, err := service.UpdateField(ctx, pages.UpdateFieldRequest{
			Slug:        msg.Slug,
			ComponentID: msg.ComponentID,
			Variant:     msg.Variant,
			Field:       msg.Field,
			Value:       msg.Value,
		})
		return categorize(err)
	}
	fields := func(msg UpdateFieldCommand) map[string]any {
		out := pageFields(msg.Slug, msg.ComponentID, msg.Variant)
		out["field"] = msg.Field
		return out
	}
	return &UpdateFieldHandler{inner: newHandler(exec, logger, "pages.field.update", fields, opts)}
}

// Execute satisfies command.Commander[UpdateFieldCommand].
func (h *UpdateFieldHandler) Execute(ctx context.Context, msg UpdateFieldCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateTextHandler replaces one locale of a localized field.
type UpdateTextHandler struct {
	inner *commands.Handler[UpdateTextCommand]
}

// NewUpdateTextHandler constructs a handler wired to the provided page service.
func NewUpdateTextHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateTextCommand]) *UpdateTextHandler {
	exec := func(ctx context.Context, msg UpdateTextCommand) error {
		_, err := service.UpdateText(ctx, pages.UpdateTextRequest{
			Slug:        msg.Slug,
			ComponentID: msg.ComponentID,
			Variant:     msg.Variant,
			Field:       msg.Field,
			Locale:      schema.Locale(strings.TrimSpace(msg.Locale)),
			Text:        msg.Text,
		})
		return categorize(err)
	}
	fields := func(msg UpdateTextCommand) map[string]any {
		out := pageFields(msg.Slug, msg.ComponentID, msg.Variant)
		out["field"] = msg.Field
		if locale := strings.TrimSpace(msg.Locale); locale != "" {
			out["locale"] = locale
		}
		return out
	}
	return &UpdateTextHandler{inner: newHandler(exec, logger, "pages.field.update_text", fields, opts)}
}

// Execute satisfies command.Commander[UpdateTextCommand].
func (h *UpdateTextHandler) Execute(ctx context.Context, msg UpdateTextCommand) error {
	return h.inner.Execute(ctx, msg)
}

func newHandler[T command.Message](exec command.CommandFunc[T], logger interfaces.Logger, operation string, fields commands.MessageFields[T], opts []commands.HandlerOption[T]) *commands.Handler[T] {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	handlerOpts := []commands.HandlerOption[T]{
		commands.WithLogger[T](baseLogger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields(fields),
		commands.WithTelemetry(commands.DefaultTelemetry[T](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	return commands.NewHandler(exec, handlerOpts...)
}

func pageFields(slug, componentID, variant string) map[string]any {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields["page_slug"] = trimmed
	}
	if trimmed := strings.TrimSpace(componentID); trimmed != "" {
		fields["component_id"] = trimmed
	}
	if trimmed := strings.TrimSpace(variant); trimmed != "" {
		fields["variant"] = trimmed
	}
	return fields
}
