package editing

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-pagebuilder/schema"
)

// UpdateField returns a copy of component with the value-bearing part of field
// name replaced by value. An empty variant edits the base record and carries
// every override record over unchanged. A named variant edits variants[variant]
// only; when the override does not exist yet, the base field is cloned as the
// starting point so non-value attributes such as an image src are kept.
//
// The input component is never modified.
func UpdateField(component schema.Component, variant, name string, value schema.Value) (schema.Component, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)

	target, err := editTarget(component, variant, name)
	if err != nil {
		return component, err
	}
	updated, err := target.WithValue(value)
	if err != nil {
		return component, fmt.Errorf("editing: field %q: %w", name, err)
	}

	next := component.Clone()
	if variant == "" {
		next.Fields[name] = updated
		return next, nil
	}

	if next.Variants == nil {
		next.Variants = schema.Variants{}
	}
	overrides := next.Variants[variant]
	if overrides == nil {
		overrides = schema.Fields{}
	}
	overrides[name] = updated
	next.Variants[variant] = overrides
	return next, nil
}

// editTarget returns the field an edit starts from.
func editTarget(component schema.Component, variant, name string) (schema.Field, error) {
	if name == "" {
		return nil, ErrInvalidFieldName
	}
	if variant != "" {
		if override, ok := component.Override(variant, name); ok && override != nil {
			return override, nil
		}
	}
	base, ok := component.Field(name)
	if !ok || base == nil {
		if variant == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
		}
		return nil, fmt.Errorf("%w: %q (variant %q)", ErrInvalidFieldName, name, variant)
	}
	return base, nil
}

// TextEdit builds the localized value for replacing one locale of field name as
// it is currently edited, leaving the other locales intact. Editing the
// fallback locale is the common case for single-language pages.
func TextEdit(component schema.Component, variant, name string, locale schema.Locale, text string) (schema.Value, error) {
	target, err := editTarget(component, strings.TrimSpace(variant), strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	current, ok := target.Value().(schema.LocalizedText)
	if !ok {
		if target.Value() == nil {
			return nil, fmt.Errorf("editing: field %q: %w", name, ErrFieldNotEditable)
		}
		return nil, fmt.Errorf("editing: field %q is %s: %w", name, target.Kind(), ErrValueKindMismatch)
	}
	if locale == "" {
		locale = schema.FallbackLocale
	}
	return current.With(locale, text), nil
}
