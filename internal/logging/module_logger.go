package logging

import (
	"context"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	rootModule     = "pagebuilder"
	pagesModule    = "pagebuilder.pages"
	registryModule = "pagebuilder.registry"
	editingModule  = "pagebuilder.editing"
	storageModule  = "pagebuilder.storage"
	commandsModule = "pagebuilder.commands"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for the page service.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// RegistryLogger returns the logger namespace reserved for the component registry.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// EditingLogger returns the logger namespace reserved for editing sessions.
func EditingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editingModule)
}

// StorageLogger returns the logger namespace reserved for page stores.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
