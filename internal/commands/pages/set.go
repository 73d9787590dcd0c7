package pagescmd

import (
	"time"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Subscription releases a dispatcher subscription.
type Subscription interface {
	Unsubscribe()
}

// HandlerSet groups every page command handler built over one service.
type HandlerSet struct {
	Save            *SavePageHandler
	Create          *CreatePageHandler
	Delete          *DeletePageHandler
	InsertComponent *InsertComponentHandler
	RemoveComponent *RemoveComponentHandler
	MoveComponent   *MoveComponentHandler
	UpdateField     *UpdateFieldHandler
	UpdateText      *UpdateTextHandler
}

// NewHandlerSet builds all page handlers sharing logger and timeout. A zero
// timeout disables the per-command deadline.
func NewHandlerSet(service pages.Service, logger interfaces.Logger, timeout time.Duration) *HandlerSet {
	return &HandlerSet{
		Save:            NewSavePageHandler(service, logger, commands.WithTimeout[SavePageCommand](timeout)),
		Create:          NewCreatePageHandler(service, logger, commands.WithTimeout[CreatePageCommand](timeout)),
		Delete:          NewDeletePageHandler(service, logger, commands.WithTimeout[DeletePageCommand](timeout)),
		InsertComponent: NewInsertComponentHandler(service, logger, commands.WithTimeout[InsertComponentCommand](timeout)),
		RemoveComponent: NewRemoveComponentHandler(service, logger, commands.WithTimeout[RemoveComponentCommand](timeout)),
		MoveComponent:   NewMoveComponentHandler(service, logger, commands.WithTimeout[MoveComponentCommand](timeout)),
		UpdateField:     NewUpdateFieldHandler(service, logger, commands.WithTimeout[UpdateFieldCommand](timeout)),
		UpdateText:      NewUpdateTextHandler(service, logger, commands.WithTimeout[UpdateTextCommand](timeout)),
	}
}

// Handlers lists the handlers in registration order.
func (s *HandlerSet) Handlers() []any {
	if s == nil {
		return nil
	}
	return []any{
		s.Save,
		s.Create,
		s.Delete,
		s.InsertComponent,
		s.RemoveComponent,
		s.MoveComponent,
		s.UpdateField,
		s.UpdateText,
	}
}

// Subscribe registers every handler with the go-command dispatcher so
// dispatcher.Dispatch routes page messages to them.
func (s *HandlerSet) Subscribe() []Subscription {
	if s == nil {
		return nil
	}
	subs := make([]Subscription, 0, 8)
	for _, handler := range s.Handlers() {
		if sub, ok := SubscribeHandler(handler); ok {
			subs = append(subs, sub)
		}
	}
	return subs
}

// SubscribeHandler subscribes a single page handler. ok is false when handler
// is not one of this package's handlers.
func SubscribeHandler(handler any) (Subscription, bool) {
	switch h := handler.(type) {
	case *SavePageHandler:
		return dispatcher.SubscribeCommand(h), true
	case *CreatePageHandler:
		return dispatcher.SubscribeCommand(h), true
	case *DeletePageHandler:
		return dispatcher.SubscribeCommand(h), true
	case *InsertComponentHandler:
		return dispatcher.SubscribeCommand(h), true
	case *RemoveComponentHandler:
		return dispatcher.SubscribeCommand(h), true
	case *MoveComponentHandler:
		return dispatcher.SubscribeCommand(h), true
	case *UpdateFieldHandler:
		return dispatcher.SubscribeCommand(h), true
	case *UpdateTextHandler:
		return dispatcher.SubscribeCommand(h), true
	default:
		return nil, false
	}
}
