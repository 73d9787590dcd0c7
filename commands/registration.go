package commands

import (
	"errors"
	"fmt"

	internalcommands "github.com/goliatone/go-pagebuilder/internal/commands"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe releases every dispatcher subscription in the result.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// GoCommandDispatcher subscribes page handlers to the process-wide go-command
// dispatcher.
type GoCommandDispatcher struct{}

// RegisterCommand satisfies CommandDispatcher.
func (GoCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	sub, ok := pagescmd.SubscribeHandler(handler)
	if !ok {
		return nil, fmt.Errorf("commands: unsupported handler %T", handler)
	}
	return sub, nil
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	// Page commands.
	handlers := container.PageCommands()
	if handlers != nil && opts.LoggerProvider != nil {
		handlers = pagescmd.NewHandlerSet(
			container.PageService(),
			internalcommands.CommandLogger(opts.LoggerProvider, "pages"),
			container.Config.Commands.Timeout,
		)
	}
	for _, handler := range handlers.Handlers() {
		register(handler)
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure commands are enabled in the configuration")
	}

	return result, errs
}
