package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type textWire struct {
	Type  Kind          `json:"type"`
	Value LocalizedText `json:"value"`
}

type imageWire struct {
	Type Kind          `json:"type"`
	Src  string        `json:"src"`
	Alt  LocalizedText `json:"alt"`
}

type listWire struct {
	Type  Kind  `json:"type"`
	Value Items `json:"value"`
}

type buttonWire struct {
	Type    Kind          `json:"type"`
	Label   LocalizedText `json:"label"`
	Href    string        `json:"href"`
	Variant string        `json:"variant,omitempty"`
}

type mockupWire struct {
	Type   Kind   `json:"type"`
	Src    string `json:"src"`
	Device string `json:"device,omitempty"`
}

func (f TextField) MarshalJSON() ([]byte, error) {
	return marshalJSON(textWire{Type: KindText, Value: f.Text})
}

func (f RichTextField) MarshalJSON() ([]byte, error) {
	return marshalJSON(textWire{Type: KindRichText, Value: f.Text})
}

func (f BadgeField) MarshalJSON() ([]byte, error) {
	return marshalJSON(textWire{Type: KindBadge, Value: f.Text})
}

func (f ImageField) MarshalJSON() ([]byte, error) {
	return marshalJSON(imageWire{Type: KindImage, Src: f.Src, Alt: f.Alt})
}

func (f ListField) MarshalJSON() ([]byte, error) {
	items := f.Items
	if items == nil {
		items = Items{}
	}
	return marshalJSON(listWire{Type: KindList, Value: items})
}

func (f ButtonField) MarshalJSON() ([]byte, error) {
	return marshalJSON(buttonWire{Type: KindButton, Label: f.Label, Href: f.Href, Variant: f.Style})
}

func (f MockupField) MarshalJSON() ([]byte, error) {
	return marshalJSON(mockupWire{Type: KindMockup, Src: f.Src, Device: f.Device})
}

// DecodeField decodes one tagged field object. The "type" member selects the variant.
func DecodeField(data []byte) (Field, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("schema: field: %w", err)
	}

	switch head.Type {
	case KindText, KindRichText, KindBadge:
		var wire textWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("schema: %s field: %w", head.Type, err)
		}
		if wire.Value == nil {
			return nil, fmt.Errorf("schema: %s field: %w", head.Type, ErrFallbackLocaleMissing)
		}
		switch head.Type {
		case KindRichText:
			return RichTextField{Text: wire.Value}, nil
		case KindBadge:
			return BadgeField{Text: wire.Value}, nil
		default:
			return TextField{Text: wire.Value}, nil
		}
	case KindImage:
		var wire imageWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("schema: image field: %w", err)
		}
		if wire.Alt == nil {
			return nil, fmt.Errorf("schema: image field: %w", ErrFallbackLocaleMissing)
		}
		return ImageField{Src: wire.Src, Alt: wire.Alt}, nil
	case KindList:
		var wire listWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("schema: list field: %w", err)
		}
		if wire.Value == nil {
			wire.Value = Items{}
		}
		return ListField{Items: wire.Value}, nil
	case KindButton:
		var wire buttonWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("schema: button field: %w", err)
		}
		if wire.Label == nil {
			return nil, fmt.Errorf("schema: button field: %w", ErrFallbackLocaleMissing)
		}
		return ButtonField{Label: wire.Label, Href: wire.Href, Style: wire.Variant}, nil
	case KindMockup:
		var wire mockupWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("schema: mockup field: %w", err)
		}
		return MockupField{Src: wire.Src, Device: wire.Device}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type tag", ErrUnknownFieldKind)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldKind, head.Type)
	}
}

// UnmarshalJSON keeps numbers as json.Number so large integers and literals
// such as 1.50 re-encode unchanged.
func (i *Items) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = nil
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out []any
	if err := decoder.Decode(&out); err != nil {
		return fmt.Errorf("schema: list items: %w", err)
	}
	*i = Items(out)
	return nil
}

// UnmarshalJSON decodes each member through DecodeField.
func (f *Fields) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("schema: fields: %w", err)
	}
	out := make(Fields, len(raw))
	for name, payload := range raw {
		field, err := DecodeField(payload)
		if err != nil {
			return fmt.Errorf("schema: field %q: %w", name, err)
		}
		out[name] = field
	}
	*f = out
	return nil
}

// MarshalDocument renders the persisted page layout: two-space indented JSON,
// no HTML escaping, trailing newline.
func MarshalDocument(doc *PageDocument) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("schema: encode page %q: %w", doc.Slug, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument decodes a persisted page.
func UnmarshalDocument(data []byte) (*PageDocument, error) {
	var doc PageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode page: %w", err)
	}
	if doc.Components == nil {
		doc.Components = []Component{}
	}
	return &doc, nil
}

// marshalJSON encodes without HTML escaping so rich text survives byte for byte.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
