package personalization

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-pagebuilder/schema"
)

// ContextParamPrefix marks query parameters that carry extra context dimensions,
// e.g. ?ctx_region=eu becomes {"region": "eu"}.
const ContextParamPrefix = "ctx_"

// Apply returns the component as a viewer in ctx sees it. When ctx selects a
// segment with an override record, the override is merged over the base fields,
// override winning key by key. Every other case returns component unchanged.
//
// Override keys absent from the base fields are ignored. The returned component
// never shares maps with the input.
func Apply(component schema.Component, ctx schema.PersonalizationContext) schema.Component {
	if !component.HasVariants() {
		return component
	}
	segment, ok := ctx.Segment()
	if !ok {
		return component
	}
	overrides, ok := component.Variants[segment]
	if !ok {
		return component
	}

	merged := component.Fields.Clone()
	if merged == nil {
		merged = schema.Fields{}
	}
	for name, field := range overrides {
		if _, known := merged[name]; !known {
			continue
		}
		merged[name] = schema.CloneField(field)
	}

	return schema.Component{
		ID:       component.ID,
		Type:     component.Type,
		Fields:   merged,
		Variants: component.Variants.Clone(),
	}
}

// Page applies Apply to every component of doc, preserving order. The input
// document is not modified.
func Page(doc *schema.PageDocument, ctx schema.PersonalizationContext) *schema.PageDocument {
	if doc == nil {
		return nil
	}
	out := doc.Clone()
	for i, component := range out.Components {
		out.Components[i] = Apply(component, ctx)
	}
	return out
}

// ContextFromQuery builds a context from URL query parameters. The segment
// parameter name is configurable; an empty name uses "segment".
func ContextFromQuery(values url.Values, segmentParam string) schema.PersonalizationContext {
	if segmentParam = strings.TrimSpace(segmentParam); segmentParam == "" {
		segmentParam = schema.SegmentKey
	}
	ctx := schema.PersonalizationContext{}
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		value := strings.TrimSpace(list[0])
		if value == "" {
			continue
		}
		switch {
		case key == segmentParam:
			ctx[schema.SegmentKey] = value
		case strings.HasPrefix(key, ContextParamPrefix) && len(key) > len(ContextParamPrefix):
			dimension := strings.TrimPrefix(key, ContextParamPrefix)
			if dimension == schema.SegmentKey {
				continue
			}
			ctx[dimension] = value
		}
	}
	return ctx
}

// StripVariants returns component without its override records, the shape
// handed to renderers.
func StripVariants(component schema.Component) schema.Component {
	return schema.Component{
		ID:     component.ID,
		Type:   component.Type,
		Fields: component.Fields.Clone(),
	}
}
