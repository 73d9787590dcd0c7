package schema

import "errors"

var (
	ErrFallbackLocaleMissing = errors.New("schema: fallback locale entry is required")
	ErrUnknownFieldKind      = errors.New("schema: unknown field type")
	ErrValueKindMismatch     = errors.New("schema: value does not match field type")
	ErrFieldNotEditable      = errors.New("schema: field type has no editable value")
	ErrComponentNotFound     = errors.New("schema: component not found")
	ErrNilDocument           = errors.New("schema: page document is nil")
)
