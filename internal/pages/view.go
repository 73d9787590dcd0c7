package pages

import "github.com/goliatone/go-pagebuilder/schema"

// View is a page resolved for one audience and one locale, ready to render.
// Localized values are collapsed to plain strings and no override records remain.
type View struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Locale      schema.Locale   `json:"locale"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Components  []ComponentView `json:"components"`
}

// ComponentView is one resolved component.
type ComponentView struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Fields map[string]any `json:"fields"`
}

func newView(doc *schema.PageDocument, locale schema.Locale) *View {
	if locale == "" {
		locale = schema.FallbackLocale
	}
	view := &View{
		ID:         doc.ID,
		Slug:       doc.Slug,
		Locale:     locale,
		Title:      doc.Metadata.Title.Resolve(locale),
		Components: make([]ComponentView, 0, len(doc.Components)),
	}
	if doc.Metadata.Description != nil {
		view.Description = doc.Metadata.Description.Resolve(locale)
	}
	for _, component := range doc.Components {
		fields := make(map[string]any, len(component.Fields))
		for name, field := range component.Fields {
			fields[name] = resolveField(field, locale)
		}
		view.Components = append(view.Components, ComponentView{
			ID:     component.ID,
			Type:   component.Type,
			Fields: fields,
		})
	}
	return view
}

func resolveField(field schema.Field, locale schema.Locale) any {
	switch f := field.(type) {
	case schema.TextField:
		return f.Text.Resolve(locale)
	case schema.RichTextField:
		return f.Text.Resolve(locale)
	case schema.BadgeField:
		return f.Text.Resolve(locale)
	case schema.ImageField:
		return map[string]any{"src": f.Src, "alt": f.Alt.Resolve(locale)}
	case schema.ButtonField:
		return map[string]any{"label": f.Label.Resolve(locale), "href": f.Href, "style": f.Style}
	case schema.ListField:
		return []any(f.Items.Clone())
	case schema.MockupField:
		return map[string]any{"src": f.Src, "device": f.Device}
	default:
		return nil
	}
}
