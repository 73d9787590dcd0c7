package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

// Registry maps component type tags to their metadata and default factories.
// It is configured at startup and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Definition
	frozen  bool
	ids     identity.Generator
	logger  interfaces.Logger
}

// Option customises a Registry.
type Option func(*Registry)

// WithIDGenerator overrides the generator behind new component ids.
func WithIDGenerator(gen identity.Generator) Option {
	return func(r *Registry) {
		if gen != nil {
			r.ids = gen
		}
	}
}

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Definition),
		ids:     identity.UUIDv7(),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds a definition. The type tag must already be in slug form, every
// declared field must have a default of the declared kind, and the registry
// must not be frozen.
func (r *Registry) Register(def Definition) error {
	typ := strings.TrimSpace(def.Metadata.Type)
	if typ == "" || !isSlug(typ) {
		return fmt.Errorf("%w: %q", ErrInvalidType, def.Metadata.Type)
	}
	def.Metadata.Type = typ
	if err := checkDefaults(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, exists := r.entries[typ]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, typ)
	}
	r.entries[typ] = def
	return nil
}

// MustRegister panics when Register fails. Intended for startup code.
func (r *Registry) MustRegister(defs ...Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// CreateInstance returns a new component of type typ with a fresh id and default
// fields. Unknown types report false and log a diagnostic.
func (r *Registry) CreateInstance(typ string) (schema.Component, bool) {
	def, ok := r.lookup(typ)
	if !ok {
		r.logger.Warn("registry.unknown_type", "component_type", typ)
		return schema.Component{}, false
	}
	fields := def.Defaults()
	if fields == nil {
		fields = schema.Fields{}
	}
	return schema.Component{
		ID:     identity.ComponentID(r.ids, def.Metadata.Type),
		Type:   def.Metadata.Type,
		Fields: fields.Clone(),
	}, true
}

// ListTypes returns every registered type tag in sorted order.
func (r *Registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// GetMetadata returns the metadata registered for typ.
func (r *Registry) GetMetadata(typ string) (Metadata, bool) {
	def, ok := r.lookup(typ)
	if !ok {
		return Metadata{}, false
	}
	meta := def.Metadata
	meta.Fields = slices.Clone(meta.Fields)
	return meta, true
}

// Definitions returns every registered definition ordered by type.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.entries))
	for _, typ := range slices.Sorted(maps.Keys(r.entries)) {
		out = append(out, r.entries[typ])
	}
	return out
}

// Has reports whether typ is registered.
func (r *Registry) Has(typ string) bool {
	_, ok := r.lookup(typ)
	return ok
}

func (r *Registry) lookup(typ string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[typ]
	return def, ok
}

func checkDefaults(def Definition) error {
	if def.Defaults == nil {
		return fmt.Errorf("%w: %s has no factory", ErrDefinitionIncomplete, def.Metadata.Type)
	}
	defaults := def.Defaults()
	for _, spec := range def.Metadata.Fields {
		field, ok := defaults[spec.Name]
		if !ok || field == nil {
			return fmt.Errorf("%w: %s.%s missing", ErrDefinitionIncomplete, def.Metadata.Type, spec.Name)
		}
		if field.Kind() != spec.Kind {
			return fmt.Errorf("%w: %s.%s is %s, declared %s", ErrDefinitionIncomplete, def.Metadata.Type, spec.Name, field.Kind(), spec.Kind)
		}
	}
	return nil
}

func isSlug(value string) bool {
	return slug.IsValid(value) && strings.ToLower(value) == value
}
