package schema

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// Fields maps field names to field values.
type Fields map[string]Field

// Clone returns a deep copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for name, field := range f {
		out[name] = CloneField(field)
	}
	return out
}

// Names returns the field names in sorted order.
func (f Fields) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

// Variants maps a variant name to a partial set of field overrides.
type Variants map[string]Fields

// Clone returns a deep copy.
func (v Variants) Clone() Variants {
	if v == nil {
		return nil
	}
	out := make(Variants, len(v))
	for name, overrides := range v {
		out[name] = overrides.Clone()
	}
	return out
}

// Names returns the variant names in sorted order.
func (v Variants) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// Component is one section instance on a page. Fields is the base record;
// Variants holds named partial overrides whose keys must exist in Fields.
type Component struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Fields   Fields   `json:"fields"`
	Variants Variants `json:"variants,omitempty"`
}

// Clone returns a deep copy sharing no maps with c.
func (c Component) Clone() Component {
	return Component{
		ID:       c.ID,
		Type:     c.Type,
		Fields:   c.Fields.Clone(),
		Variants: c.Variants.Clone(),
	}
}

// HasVariants reports whether any override record exists.
func (c Component) HasVariants() bool {
	return len(c.Variants) > 0
}

// Field returns the base field named name.
func (c Component) Field(name string) (Field, bool) {
	field, ok := c.Fields[name]
	return field, ok
}

// Override returns the override for name under variant.
func (c Component) Override(variant, name string) (Field, bool) {
	overrides, ok := c.Variants[variant]
	if !ok {
		return nil, false
	}
	field, ok := overrides[name]
	return field, ok
}

// PersonalizationContext maps context dimensions to values.
type PersonalizationContext map[string]string

// SegmentKey is the dimension that selects a variant for viewers.
const SegmentKey = "segment"

// Segment returns the segment dimension, if any.
func (p PersonalizationContext) Segment() (string, bool) {
	value, ok := p[SegmentKey]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// ForSegment builds a context carrying only a segment.
func ForSegment(segment string) PersonalizationContext {
	if segment == "" {
		return PersonalizationContext{}
	}
	return PersonalizationContext{SegmentKey: segment}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneAny(value)
	}
	return out
}

func cloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		out[i] = cloneAny(value)
	}
	return out
}

func cloneAny(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		return cloneSlice(typed)
	case LocalizedText:
		return typed.Clone()
	case int:
		return json.Number(strconv.FormatInt(int64(typed), 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(typed), 10))
	case int64:
		return json.Number(strconv.FormatInt(typed, 10))
	case uint:
		return json.Number(strconv.FormatUint(uint64(typed), 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(typed), 10))
	case uint64:
		return json.Number(strconv.FormatUint(typed, 10))
	case float32:
		return json.Number(strconv.FormatFloat(float64(typed), 'f', -1, 32))
	case float64:
		return json.Number(strconv.FormatFloat(typed, 'f', -1, 64))
	default:
		return value
	}
}
