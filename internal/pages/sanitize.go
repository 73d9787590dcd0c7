package pages

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pagebuilder/schema"
)

// Sanitizer cleans author supplied rich text before it is stored.
type Sanitizer interface {
	Sanitize(html string) string
}

// HTMLSanitizer strips scripts, event handlers and unknown tags while keeping
// the formatting markup editors produce.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer returns a sanitizer backed by the bluemonday UGC policy.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.UGCPolicy()}
}

func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// sanitizeDocument returns a copy of doc with every rich text locale passed
// through sanitizer. Base fields and variant overrides are both covered.
func sanitizeDocument(doc *schema.PageDocument, sanitizer Sanitizer) *schema.PageDocument {
	out := doc.Clone()
	if sanitizer == nil || out == nil {
		return out
	}
	for i := range out.Components {
		out.Components[i] = sanitizeComponent(out.Components[i], sanitizer)
	}
	return out
}

func sanitizeComponent(component schema.Component, sanitizer Sanitizer) schema.Component {
	sanitizeFields(component.Fields, sanitizer)
	for _, overrides := range component.Variants {
		sanitizeFields(overrides, sanitizer)
	}
	return component
}

func sanitizeFields(fields schema.Fields, sanitizer Sanitizer) {
	for name, field := range fields {
		rich, ok := field.(schema.RichTextField)
		if !ok {
			continue
		}
		cleaned := make(schema.LocalizedText, len(rich.Text))
		for locale, text := range rich.Text {
			cleaned[locale] = sanitizer.Sanitize(text)
		}
		fields[name] = schema.RichTextField{Text: cleaned}
	}
}
