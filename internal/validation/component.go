package validation

import (
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/schema"
)

// MetadataSource resolves component metadata by type tag.
type MetadataSource interface {
	GetMetadata(typ string) (registry.Metadata, bool)
}

// Validator checks components and documents against registry metadata.
// Compiled schemas are cached per type.
type Validator struct {
	source          MetadataSource
	strictOverrides bool

	mu       sync.Mutex
	compiled map[string]compiledComponent
}

type compiledComponent struct {
	full    *jsonschema.Schema
	partial *jsonschema.Schema
}

// Option customises a Validator.
type Option func(*Validator)

// WithStrictOverrides controls whether override keys absent from the base
// fields are reported. Defaults to true.
func WithStrictOverrides(strict bool) Option {
	return func(v *Validator) {
		v.strictOverrides = strict
	}
}

// NewValidator constructs a validator backed by source.
func NewValidator(source MetadataSource, opts ...Option) *Validator {
	v := &Validator{
		source:          source,
		strictOverrides: true,
		compiled:        make(map[string]compiledComponent),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// ValidateComponent checks the base fields against the type's schema, then each
// override record: keys must exist in base, kinds must match and values must
// satisfy the field schema.
func (v *Validator) ValidateComponent(component schema.Component) error {
	compiled, err := v.schemaFor(component.Type)
	if err != nil {
		return err
	}

	payload, err := toPayload(component.Fields)
	if err != nil {
		return fmt.Errorf("validation: component %q: %w", component.ID, err)
	}
	if err := ValidatePayload(compiled.full, payload); err != nil {
		return fmt.Errorf("component %q: %w", component.ID, err)
	}

	var errs []error
	for _, variant := range component.Variants.Names() {
		overrides := component.Variants[variant]
		for _, name := range overrides.Names() {
			base, ok := component.Fields[name]
			if !ok {
				if v.strictOverrides {
					errs = append(errs, fmt.Errorf("%w: component %q variant %q field %q", ErrUnknownOverrideField, component.ID, variant, name))
				}
				continue
			}
			if override := overrides[name]; override == nil || override.Kind() != base.Kind() {
				errs = append(errs, fmt.Errorf("%w: component %q variant %q field %q", ErrOverrideKindMismatch, component.ID, variant, name))
			}
		}
		payload, err := toPayload(overrides)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := ValidatePayload(compiled.partial, payload); err != nil && v.strictOverrides {
			errs = append(errs, fmt.Errorf("component %q variant %q: %w", component.ID, variant, err))
		}
	}
	return errors.Join(errs...)
}

func (v *Validator) schemaFor(typ string) (compiledComponent, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if cached, ok := v.compiled[typ]; ok {
		return cached, nil
	}
	if v.source == nil {
		return compiledComponent{}, errComponentSchemaNotFound
	}
	meta, ok := v.source.GetMetadata(typ)
	if !ok {
		return compiledComponent{}, fmt.Errorf("%w: %q", ErrUnknownComponentType, typ)
	}

	full, err := Compile(ComponentSchema(meta, false))
	if err != nil {
		return compiledComponent{}, fmt.Errorf("type %q: %w", typ, err)
	}
	partial, err := Compile(ComponentSchema(meta, true))
	if err != nil {
		return compiledComponent{}, fmt.Errorf("type %q: %w", typ, err)
	}
	entry := compiledComponent{full: full, partial: partial}
	v.compiled[typ] = entry
	return entry, nil
}

// ComponentSchema renders the JSON schema of a component's fields object. A
// partial schema drops required fields, which is how override records are
// checked.
func ComponentSchema(meta registry.Metadata, partial bool) map[string]any {
	properties := make(map[string]any, len(meta.Fields))
	required := []any{}
	for _, spec := range meta.Fields {
		properties[spec.Name] = FieldSchema(spec)
		if spec.Required && !partial {
			required = append(required, spec.Name)
		}
	}
	out := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// FieldSchema renders the JSON schema of one tagged field object.
func FieldSchema(spec registry.FieldSpec) map[string]any {
	tag := map[string]any{"const": string(spec.Kind)}
	str := map[string]any{"type": "string"}

	switch spec.Kind {
	case schema.KindImage:
		return object(map[string]any{"type": tag, "src": str, "alt": localizedSchema()}, "type", "src", "alt")
	case schema.KindList:
		items := map[string]any{}
		if spec.ItemSchema != nil {
			items = spec.ItemSchema
		}
		return object(map[string]any{"type": tag, "value": map[string]any{"type": "array", "items": items}}, "type", "value")
	case schema.KindButton:
		return object(map[string]any{"type": tag, "label": localizedSchema(), "href": str, "variant": str}, "type", "label", "href")
	case schema.KindMockup:
		return object(map[string]any{"type": tag, "src": str, "device": str}, "type", "src")
	default:
		return object(map[string]any{"type": tag, "value": localizedSchema()}, "type", "value")
	}
}

func object(properties map[string]any, required ...string) map[string]any {
	names := make([]any, len(required))
	for i, name := range required {
		names[i] = name
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             names,
		"additionalProperties": false,
	}
}

func localizedSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"required":             []any{string(schema.FallbackLocale)},
		"additionalProperties": map[string]any{"type": "string"},
	}
}
