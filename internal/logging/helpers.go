package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	fieldSlug      = "page_slug"
	fieldComponent = "component_id"
	fieldVariant   = "variant"
)

// WithFields attaches structured fields when the logger supports the optional
// FieldsLogger extension. Nil or empty maps return the logger unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithPageContext enriches logger with the page slug, component id and edited
// variant. Empty values are skipped.
func WithPageContext(logger interfaces.Logger, slug, componentID, variant string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(componentID); trimmed != "" {
		fields[fieldComponent] = trimmed
	}
	if trimmed := strings.TrimSpace(variant); trimmed != "" {
		fields[fieldVariant] = trimmed
	}
	return WithFields(logger, fields)
}
