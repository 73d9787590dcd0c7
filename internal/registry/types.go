package registry

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/schema"
)

var (
	ErrInvalidType          = errors.New("registry: component type must be a lowercase slug")
	ErrDuplicateType        = errors.New("registry: component type already registered")
	ErrDefinitionIncomplete = errors.New("registry: defaults do not cover declared fields")
	ErrRegistryFrozen       = errors.New("registry: registry is frozen")
)

// FieldSpec declares one field of a component type.
type FieldSpec struct {
	Name     string      `json:"name"`
	Kind     schema.Kind `json:"kind"`
	Label    string      `json:"label,omitempty"`
	Required bool        `json:"required,omitempty"`
	// ItemSchema is the JSON schema of one list item. Only used by list fields.
	ItemSchema map[string]any `json:"item_schema,omitempty"`
}

// Metadata describes a component type for palettes and validation.
type Metadata struct {
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Fields      []FieldSpec `json:"fields"`
}

// Field returns the spec for name.
func (m Metadata) Field(name string) (FieldSpec, bool) {
	for _, spec := range m.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Factory returns fresh default field values for a new instance.
type Factory func() schema.Fields

// Definition pairs metadata with the factory producing default instances.
type Definition struct {
	Metadata Metadata
	Defaults Factory
}

// Type returns the type tag of the definition.
func (d Definition) Type() string {
	return d.Metadata.Type
}
