package testsupport

import (
	"os"

	"github.com/goliatone/go-pagebuilder/schema"
)

// LoadFixture reads a fixture file verbatim.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadPage decodes a page document fixture.
func LoadPage(path string) (*schema.PageDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.UnmarshalDocument(data)
}

// HeroComponent returns the hero component used across tests: a base heading and
// description plus a "premium" variant overriding the heading.
func HeroComponent() schema.Component {
	return schema.Component{
		ID:   "hero-1",
		Type: "hero",
		Fields: schema.Fields{
			"heading":     schema.TextField{Text: schema.Localized("Base Heading")},
			"description": schema.RichTextField{Text: schema.Localized("Base Description")},
			"image":       schema.ImageField{Src: "/img/hero.png", Alt: schema.Localized("Hero image")},
			"cta":         schema.ButtonField{Label: schema.Localized("Get started"), Href: "/signup", Style: "primary"},
		},
		Variants: schema.Variants{
			"premium": {
				"heading": schema.TextField{Text: schema.Localized("Premium Heading")},
			},
		},
	}
}

// Page wraps components in a page document addressed by slug.
func Page(slug string, components ...schema.Component) *schema.PageDocument {
	if components == nil {
		components = []schema.Component{}
	}
	return &schema.PageDocument{
		ID:         "page-" + slug,
		Slug:       slug,
		Components: components,
		Metadata:   schema.Metadata{Title: schema.Localized("Page " + slug)},
	}
}
