package registry

import (
	"github.com/goliatone/go-pagebuilder/schema"
)

// Categories used by the builtin catalog.
const (
	CategoryHeader     = "header"
	CategoryContent    = "content"
	CategoryConversion = "conversion"
	CategorySocial     = "social-proof"
	CategoryFooter     = "footer"
)

// Builtin returns the standard marketing section catalog.
func Builtin() []Definition {
	return []Definition{
		hero(), features(), pricing(), testimonials(), cta(), faq(),
		logos(), stats(), newsletter(), team(), gallery(), footer(),
		productShowcase(),
	}
}

// RegisterBuiltins registers the builtin catalog on r.
func RegisterBuiltins(r *Registry) error {
	for _, def := range Builtin() {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func text(name, label string, required bool) FieldSpec {
	return FieldSpec{Name: name, Kind: schema.KindText, Label: label, Required: required}
}

func richtext(name, label string) FieldSpec {
	return FieldSpec{Name: name, Kind: schema.KindRichText, Label: label}
}

func list(name, label string, item map[string]any) FieldSpec {
	return FieldSpec{Name: name, Kind: schema.KindList, Label: label, ItemSchema: item}
}

func object(required []string, props map[string]any) map[string]any {
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		values := make([]any, len(required))
		for i, name := range required {
			values[i] = name
		}
		out["required"] = values
	}
	return out
}

var (
	stringProp = map[string]any{"type": "string"}
	numberProp = map[string]any{"type": "number"}
	boolProp   = map[string]any{"type": "boolean"}
)

func loc(value string) schema.LocalizedText {
	return schema.Localized(value)
}

func hero() Definition {
	return Definition{
		Metadata: Metadata{
			Type:        "hero",
			Name:        "Hero",
			Description: "Headline section with supporting copy, image and call to action.",
			Category:    CategoryHeader,
			Icon:        "layout-top",
			Fields: []FieldSpec{
				{Name: "badge", Kind: schema.KindBadge, Label: "Badge"},
				text("heading", "Heading", true),
				richtext("description", "Description"),
				{Name: "image", Kind: schema.KindImage, Label: "Image"},
				{Name: "cta", Kind: schema.KindButton, Label: "Primary action"},
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"badge":       schema.BadgeField{Text: loc("New")},
				"heading":     schema.TextField{Text: loc("Build pages your customers remember")},
				"description": schema.RichTextField{Text: loc("<p>Compose landing pages from ready made sections.</p>")},
				"image":       schema.ImageField{Src: "/images/placeholder-hero.png", Alt: loc("Product preview")},
				"cta":         schema.ButtonField{Label: loc("Get started"), Href: "#", Style: "primary"},
			}
		},
	}
}

func features() Definition {
	item := object([]string{"title"}, map[string]any{
		"title":       stringProp,
		"description": stringProp,
		"icon":        stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "features",
			Name:        "Features",
			Description: "Grid of product features with icons.",
			Category:    CategoryContent,
			Icon:        "grid",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				richtext("description", "Description"),
				list("items", "Features", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading":     schema.TextField{Text: loc("Everything you need")},
				"description": schema.RichTextField{Text: loc("<p>Tools that grow with your team.</p>")},
				"items": schema.ListField{Items: schema.Items{
					map[string]any{"title": "Fast", "description": "Pages load in milliseconds.", "icon": "zap"},
					map[string]any{"title": "Secure", "description": "Built in access control.", "icon": "shield"},
					map[string]any{"title": "Flexible", "description": "Mix and match sections.", "icon": "layers"},
				}},
			}
		},
	}
}

func pricing() Definition {
	item := object([]string{"name", "price"}, map[string]any{
		"name":        stringProp,
		"price":       stringProp,
		"period":      stringProp,
		"features":    map[string]any{"type": "array", "items": stringProp},
		"highlighted": boolProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "pricing",
			Name:        "Pricing",
			Description: "Pricing tiers with feature lists.",
			Category:    CategoryConversion,
			Icon:        "credit-card",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				richtext("description", "Description"),
				list("plans", "Plans", item),
				{Name: "cta", Kind: schema.KindButton, Label: "Action"},
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading":     schema.TextField{Text: loc("Simple pricing")},
				"description": schema.RichTextField{Text: loc("<p>Pick the plan that fits.</p>")},
				"plans": schema.ListField{Items: schema.Items{
					map[string]any{"name": "Starter", "price": "$0", "period": "month", "features": []any{"1 site"}, "highlighted": false},
					map[string]any{"name": "Pro", "price": "$29", "period": "month", "features": []any{"10 sites", "Analytics"}, "highlighted": true},
				}},
				"cta": schema.ButtonField{Label: loc("Choose plan"), Href: "#", Style: "primary"},
			}
		},
	}
}

func testimonials() Definition {
	item := object([]string{"quote", "author"}, map[string]any{
		"quote":  stringProp,
		"author": stringProp,
		"role":   stringProp,
		"avatar": stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "testimonials",
			Name:        "Testimonials",
			Description: "Customer quotes.",
			Category:    CategorySocial,
			Icon:        "message-square",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				list("items", "Quotes", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading": schema.TextField{Text: loc("Loved by teams")},
				"items": schema.ListField{Items: schema.Items{
					map[string]any{"quote": "We shipped our launch page in an afternoon.", "author": "Alex Doe", "role": "Marketing lead"},
				}},
			}
		},
	}
}

func cta() Definition {
	return Definition{
		Metadata: Metadata{
			Type:        "cta",
			Name:        "Call to action",
			Description: "Focused banner driving a single action.",
			Category:    CategoryConversion,
			Icon:        "mouse-pointer",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				richtext("description", "Description"),
				{Name: "primary", Kind: schema.KindButton, Label: "Primary action", Required: true},
				{Name: "secondary", Kind: schema.KindButton, Label: "Secondary action"},
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading":     schema.TextField{Text: loc("Ready to start?")},
				"description": schema.RichTextField{Text: loc("<p>Join thousands of teams today.</p>")},
				"primary":     schema.ButtonField{Label: loc("Sign up"), Href: "#", Style: "primary"},
				"secondary":   schema.ButtonField{Label: loc("Talk to sales"), Href: "#", Style: "secondary"},
			}
		},
	}
}

func faq() Definition {
	item := object([]string{"question", "answer"}, map[string]any{
		"question": stringProp,
		"answer":   stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "faq",
			Name:        "FAQ",
			Description: "Frequently asked questions.",
			Category:    CategoryContent,
			Icon:        "help-circle",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				list("items", "Questions", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading": schema.TextField{Text: loc("Frequently asked questions")},
				"items": schema.ListField{Items: schema.Items{
					map[string]any{"question": "Can I cancel anytime?", "answer": "Yes, plans are month to month."},
				}},
			}
		},
	}
}

func logos() Definition {
	item := object([]string{"src"}, map[string]any{
		"src":  stringProp,
		"alt":  stringProp,
		"href": stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "logos",
			Name:        "Logo cloud",
			Description: "Row of customer or partner logos.",
			Category:    CategorySocial,
			Icon:        "award",
			Fields: []FieldSpec{
				text("heading", "Heading", false),
				list("items", "Logos", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading": schema.TextField{Text: loc("Trusted by")},
				"items": schema.ListField{Items: schema.Items{
					map[string]any{"src": "/images/logo-1.svg", "alt": "Acme"},
				}},
			}
		},
	}
}

func stats() Definition {
	item := object([]string{"value", "label"}, map[string]any{
		"value": stringProp,
		"label": stringProp,
		"trend": numberProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "stats",
			Name:        "Stats",
			Description: "Key numbers with labels.",
			Category:    CategorySocial,
			Icon:        "bar-chart",
			Fields: []FieldSpec{
				text("heading", "Heading", false),
				list("items", "Stats", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading": schema.TextField{Text: loc("By the numbers")},
				"items": schema.ListField{Items: schema.Items{
					map[string]any{"value": "10k+", "label": "Pages published"},
					map[string]any{"value": "99.9%", "label": "Uptime"},
				}},
			}
		},
	}
}

func newsletter() Definition {
	return Definition{
		Metadata: Metadata{
			Type:        "newsletter",
			Name:        "Newsletter",
			Description: "Email signup form.",
			Category:    CategoryConversion,
			Icon:        "mail",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				richtext("description", "Description"),
				text("placeholder", "Input placeholder", false),
				{Name: "submit", Kind: schema.KindButton, Label: "Submit button", Required: true},
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading":     schema.TextField{Text: loc("Stay in the loop")},
				"description": schema.RichTextField{Text: loc("<p>Product news once a month.</p>")},
				"placeholder": schema.TextField{Text: loc("you@example.com")},
				"submit":      schema.ButtonField{Label: loc("Subscribe"), Href: "#", Style: "primary"},
			}
		},
	}
}

func team() Definition {
	item := object([]string{"name"}, map[string]any{
		"name":   stringProp,
		"role":   stringProp,
		"avatar": stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "team",
			Name:        "Team",
			Description: "People behind the product.",
			Category:    CategoryContent,
			Icon:        "users",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				list("members", "Members", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading": schema.TextField{Text: loc("Meet the team")},
				"members": schema.ListField{Items: schema.Items{
					map[string]any{"name": "Sam Lee", "role": "Founder"},
				}},
			}
		},
	}
}

func gallery() Definition {
	item := object([]string{"src"}, map[string]any{
		"src":     stringProp,
		"alt":     stringProp,
		"caption": stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "gallery",
			Name:        "Gallery",
			Description: "Image grid.",
			Category:    CategoryContent,
			Icon:        "image",
			Fields: []FieldSpec{
				text("heading", "Heading", false),
				list("images", "Images", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading": schema.TextField{Text: loc("Gallery")},
				"images": schema.ListField{Items: schema.Items{
					map[string]any{"src": "/images/placeholder-1.png", "alt": "Screenshot"},
				}},
			}
		},
	}
}

func footer() Definition {
	item := object([]string{"label", "href"}, map[string]any{
		"label": stringProp,
		"href":  stringProp,
	})
	return Definition{
		Metadata: Metadata{
			Type:        "footer",
			Name:        "Footer",
			Description: "Site footer with links.",
			Category:    CategoryFooter,
			Icon:        "layout-bottom",
			Fields: []FieldSpec{
				text("copyright", "Copyright", true),
				list("links", "Links", item),
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"copyright": schema.TextField{Text: loc("© Your Company")},
				"links": schema.ListField{Items: schema.Items{
					map[string]any{"label": "Privacy", "href": "/privacy"},
					map[string]any{"label": "Terms", "href": "/terms"},
				}},
			}
		},
	}
}

func productShowcase() Definition {
	return Definition{
		Metadata: Metadata{
			Type:        "product-showcase",
			Name:        "Product showcase",
			Description: "Screenshot framed in a device mockup.",
			Category:    CategoryContent,
			Icon:        "monitor",
			Fields: []FieldSpec{
				text("heading", "Heading", true),
				richtext("description", "Description"),
				{Name: "mockup", Kind: schema.KindMockup, Label: "Mockup"},
			},
		},
		Defaults: func() schema.Fields {
			return schema.Fields{
				"heading":     schema.TextField{Text: loc("See it in action")},
				"description": schema.RichTextField{Text: loc("<p>A tour of the editor.</p>")},
				"mockup":      schema.MockupField{Src: "/images/app-screenshot.png", Device: "laptop"},
			}
		},
	}
}
