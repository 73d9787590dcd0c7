// Package pagebuilder assembles personalized landing pages from typed
// components. Pages are stored as JSON documents; components carry base fields
// plus named variants that override a subset of them per audience segment.
package pagebuilder

import (
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// PageService exports the page service contract.
type PageService = pages.Service

// PageStore exports the storage contract.
type PageStore = interfaces.PageStore

// PageView exports the resolved, render-ready page.
type PageView = pages.View

type (
	CreatePageRequest      = pages.CreatePageRequest
	InsertComponentRequest = pages.InsertComponentRequest
	RemoveComponentRequest = pages.RemoveComponentRequest
	MoveComponentRequest   = pages.MoveComponentRequest
	UpdateFieldRequest     = pages.UpdateFieldRequest
	UpdateTextRequest      = pages.UpdateTextRequest
)

// ComponentRegistry exports the component registry.
type ComponentRegistry = *registry.Registry

// ComponentDefinition describes a component type to register.
type ComponentDefinition = registry.Definition

// ComponentMetadata describes a registered component type.
type ComponentMetadata = registry.Metadata

// Validator exports the schema validator.
type Validator = *validation.Validator

// PageCommands exports the page command handler set.
type PageCommands = *pagescmd.HandlerSet

// Option customises the module at construction time.
type Option = di.Option

// WithBunDB stores pages in db regardless of the configured provider.
func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

// WithCache fronts database storage with the given cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

// WithStore overrides the page store.
func WithStore(store PageStore) Option {
	return di.WithStore(store)
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithComponentDefinitions registers extra component types.
func WithComponentDefinitions(defs ...ComponentDefinition) Option {
	return di.WithComponentDefinitions(defs...)
}

// WithIDGenerator overrides the generator used for new component IDs.
func WithIDGenerator(gen func() string) Option {
	return di.WithIDGenerator(identity.Generator(gen))
}

// Module represents the top level page builder runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a page builder module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Registry returns the frozen component registry.
func (m *Module) Registry() ComponentRegistry {
	return m.container.Registry()
}

// Validator returns the schema validator, or nil when validation is disabled.
func (m *Module) Validator() Validator {
	return m.container.Validator()
}

// Commands returns the page command handlers, or nil when commands are disabled.
func (m *Module) Commands() PageCommands {
	return m.container.PageCommands()
}

// Close releases resources the module opened itself.
func (m *Module) Close() error {
	return m.container.Close()
}
