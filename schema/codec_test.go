package schema_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagebuilder/schema"
)

func samplePage() *schema.PageDocument {
	description := schema.NewLocalizedText("Landing page", map[schema.Locale]string{"es": "Portada"})
	return &schema.PageDocument{
		ID:   "page-1",
		Slug: "home",
		Metadata: schema.Metadata{
			Title:       schema.NewLocalizedText("Home", map[schema.Locale]string{"es": "Inicio"}),
			Description: &description,
		},
		Components: []schema.Component{
			{
				ID:   "hero-1",
				Type: "hero",
				Fields: schema.Fields{
					"heading":     schema.TextField{Text: schema.Localized("Base Heading")},
					"description": schema.RichTextField{Text: schema.Localized("<p>Base & <b>bold</b></p>")},
					"image":       schema.ImageField{Src: "/img/hero.png", Alt: schema.Localized("Hero")},
					"badge":       schema.BadgeField{Text: schema.Localized("New")},
					"cta":         schema.ButtonField{Label: schema.Localized("Start"), Href: "/start", Style: "primary"},
					"screen":      schema.MockupField{Src: "/img/app.png", Device: "laptop"},
				},
				Variants: schema.Variants{
					"premium": {
						"heading": schema.TextField{Text: schema.Localized("Premium Heading")},
					},
				},
			},
			{
				ID:   "features-1",
				Type: "features",
				Fields: schema.Fields{
					"items": schema.ListField{Items: schema.Items{
						map[string]any{"title": "Fast", "description": "Very fast"},
						map[string]any{"title": "Safe", "order": json.Number("2")},
					}},
				},
			},
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	page := samplePage()

	encoded, err := schema.MarshalDocument(page)
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	decoded, err := schema.UnmarshalDocument(encoded)
	if err != nil {
		t.Fatalf("UnmarshalDocument() error = %v", err)
	}
	if diff := cmp.Diff(page, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := schema.MarshalDocument(decoded)
	if err != nil {
		t.Fatalf("MarshalDocument() second pass error = %v", err)
	}
	if !bytes.Equal(encoded, again) {
		t.Fatalf("expected byte identical output\nfirst:\n%s\nsecond:\n%s", encoded, again)
	}
}

func TestMarshalDocumentLayout(t *testing.T) {
	encoded, err := schema.MarshalDocument(samplePage())
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	if !bytes.HasPrefix(encoded, []byte("{\n  \"id\": \"page-1\",\n  \"slug\": \"home\",")) {
		t.Fatalf("unexpected layout:\n%s", encoded)
	}
	if !bytes.HasSuffix(encoded, []byte("}\n")) {
		t.Fatalf("expected trailing newline")
	}
	if !bytes.Contains(encoded, []byte("<p>Base & <b>bold</b></p>")) {
		t.Fatalf("expected rich text without HTML escaping:\n%s", encoded)
	}
	if !bytes.Contains(encoded, []byte(`"type": "mockup"`)) {
		t.Fatalf("expected tagged mockup field:\n%s", encoded)
	}
}

func TestDecodeFieldRejectsUnknownKind(t *testing.T) {
	_, err := schema.DecodeField([]byte(`{"type":"carousel","value":{"en":"x"}}`))
	if !errors.Is(err, schema.ErrUnknownFieldKind) {
		t.Fatalf("expected ErrUnknownFieldKind, got %v", err)
	}

	_, err = schema.DecodeField([]byte(`{"value":{"en":"x"}}`))
	if !errors.Is(err, schema.ErrUnknownFieldKind) {
		t.Fatalf("expected ErrUnknownFieldKind for missing tag, got %v", err)
	}
}

func TestDecodeFieldRequiresFallbackLocale(t *testing.T) {
	_, err := schema.DecodeField([]byte(`{"type":"text","value":{"es":"Hola"}}`))
	if !errors.Is(err, schema.ErrFallbackLocaleMissing) {
		t.Fatalf("expected ErrFallbackLocaleMissing, got %v", err)
	}

	_, err = schema.DecodeField([]byte(`{"type":"image","src":"/a.png"}`))
	if !errors.Is(err, schema.ErrFallbackLocaleMissing) {
		t.Fatalf("expected ErrFallbackLocaleMissing for image alt, got %v", err)
	}
}

func TestUnmarshalDocumentDefaultsComponents(t *testing.T) {
	doc, err := schema.UnmarshalDocument([]byte(`{"id":"x","slug":"empty","metadata":{"title":{"en":"Empty"}}}`))
	if err != nil {
		t.Fatalf("UnmarshalDocument() error = %v", err)
	}
	if doc.Components == nil || len(doc.Components) != 0 {
		t.Fatalf("expected empty component list, got %#v", doc.Components)
	}
}

func TestListItemNumbersSurviveRoundTrip(t *testing.T) {
	data := []byte(`{
  "id": "page-1",
  "slug": "stats",
  "metadata": {"title": {"en": "Stats"}},
  "components": [
    {
      "id": "stats-1",
      "type": "stats",
      "fields": {
        "items": {"type": "list", "value": [{"label": "Users", "trend": 9007199254740993, "ratio": 1.50, "count": 3}]}
      }
    }
  ]
}`)

	doc, err := schema.UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument() error = %v", err)
	}
	encoded, err := schema.MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	for _, literal := range []string{`"trend": 9007199254740993`, `"ratio": 1.50`, `"count": 3`} {
		if !bytes.Contains(encoded, []byte(literal)) {
			t.Fatalf("expected %s in encoded page:\n%s", literal, encoded)
		}
	}

	again, err := schema.UnmarshalDocument(encoded)
	if err != nil {
		t.Fatalf("UnmarshalDocument() second pass error = %v", err)
	}
	if diff := cmp.Diff(doc, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestListItemGoNumbersAreCanonicalised(t *testing.T) {
	field, err := schema.ListField{}.WithValue(schema.Items{map[string]any{"trend": 3, "ratio": 0.25}})
	if err != nil {
		t.Fatalf("WithValue() error = %v", err)
	}
	doc := &schema.PageDocument{
		ID:       "page-1",
		Slug:     "stats",
		Metadata: schema.Metadata{Title: schema.Localized("Stats")},
		Components: []schema.Component{
			{ID: "stats-1", Type: "stats", Fields: schema.Fields{"items": field}},
		},
	}

	encoded, err := schema.MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error = %v", err)
	}
	decoded, err := schema.UnmarshalDocument(encoded)
	if err != nil {
		t.Fatalf("UnmarshalDocument() error = %v", err)
	}
	if diff := cmp.Diff(doc, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	item := decoded.Components[0].Fields["items"].(schema.ListField).Items[0].(map[string]any)
	if item["trend"] != json.Number("3") {
		t.Fatalf("expected json.Number 3, got %#v", item["trend"])
	}
}
