package schema

import "fmt"

// Kind tags a Field variant.
type Kind string

const (
	KindText     Kind = "text"
	KindRichText Kind = "richtext"
	KindImage    Kind = "image"
	KindList     Kind = "list"
	KindBadge    Kind = "badge"
	KindButton   Kind = "button"
	KindMockup   Kind = "mockup"
)

// Kinds lists every field kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindText, KindRichText, KindImage, KindList, KindBadge, KindButton, KindMockup}
}

// Value is the editable payload of a field: LocalizedText or Items.
type Value interface {
	isValue()
}

// Items is the ordered payload of a list field. Item shape depends on the owning
// component type. Numbers inside items are held as json.Number so they encode
// exactly as they were written; Clone converts Go numeric values to that form.
type Items []any

func (Items) isValue() {}

// Clone deep copies nested maps and slices and canonicalises numbers.
func (i Items) Clone() Items {
	if i == nil {
		return nil
	}
	return Items(cloneSlice(i))
}

// Field is the closed union of field variants. The unexported methods seal the set:
// a new variant must implement WithValue before anything compiles against it.
type Field interface {
	Kind() Kind
	// WithValue returns a copy whose value-bearing part is replaced by v. Every
	// other attribute of the field is carried over.
	WithValue(v Value) (Field, error)
	// Value returns the value-bearing part, or nil for kinds without one.
	Value() Value

	clone() Field
	sealed()
}

// CloneField returns an independent copy of f.
func CloneField(f Field) Field {
	if f == nil {
		return nil
	}
	return f.clone()
}

// TextField carries plain localized text.
type TextField struct {
	Text LocalizedText
}

func (TextField) Kind() Kind     { return KindText }
func (f TextField) Value() Value { return f.Text }
func (f TextField) clone() Field { return TextField{Text: f.Text.Clone()} }
func (TextField) sealed()        {}
func (f TextField) WithValue(v Value) (Field, error) {
	text, err := localizedValue(KindText, v)
	if err != nil {
		return nil, err
	}
	return TextField{Text: text}, nil
}

// RichTextField carries localized markup.
type RichTextField struct {
	Text LocalizedText
}

func (RichTextField) Kind() Kind     { return KindRichText }
func (f RichTextField) Value() Value { return f.Text }
func (f RichTextField) clone() Field { return RichTextField{Text: f.Text.Clone()} }
func (RichTextField) sealed()        {}
func (f RichTextField) WithValue(v Value) (Field, error) {
	text, err := localizedValue(KindRichText, v)
	if err != nil {
		return nil, err
	}
	return RichTextField{Text: text}, nil
}

// ImageField carries an image source and localized alt text. Edits replace Alt only.
type ImageField struct {
	Src string
	Alt LocalizedText
}

func (ImageField) Kind() Kind     { return KindImage }
func (f ImageField) Value() Value { return f.Alt }
func (f ImageField) clone() Field { return ImageField{Src: f.Src, Alt: f.Alt.Clone()} }
func (ImageField) sealed()        {}
func (f ImageField) WithValue(v Value) (Field, error) {
	alt, err := localizedValue(KindImage, v)
	if err != nil {
		return nil, err
	}
	return ImageField{Src: f.Src, Alt: alt}, nil
}

// ListField carries an ordered sequence of structured items.
type ListField struct {
	Items Items
}

func (ListField) Kind() Kind     { return KindList }
func (f ListField) Value() Value { return f.Items }
func (f ListField) clone() Field { return ListField{Items: f.Items.Clone()} }
func (ListField) sealed()        {}
func (f ListField) WithValue(v Value) (Field, error) {
	items, ok := v.(Items)
	if !ok {
		return nil, mismatch(KindList, v)
	}
	return ListField{Items: items.Clone()}, nil
}

// BadgeField carries a short localized label shown as a pill.
type BadgeField struct {
	Text LocalizedText
}

func (BadgeField) Kind() Kind     { return KindBadge }
func (f BadgeField) Value() Value { return f.Text }
func (f BadgeField) clone() Field { return BadgeField{Text: f.Text.Clone()} }
func (BadgeField) sealed()        {}
func (f BadgeField) WithValue(v Value) (Field, error) {
	text, err := localizedValue(KindBadge, v)
	if err != nil {
		return nil, err
	}
	return BadgeField{Text: text}, nil
}

// ButtonField carries a localized label and a link target. Edits replace Label only.
type ButtonField struct {
	Label LocalizedText
	Href  string
	Style string
}

func (ButtonField) Kind() Kind     { return KindButton }
func (f ButtonField) Value() Value { return f.Label }
func (f ButtonField) clone() Field {
	return ButtonField{Label: f.Label.Clone(), Href: f.Href, Style: f.Style}
}
func (ButtonField) sealed() {}
func (f ButtonField) WithValue(v Value) (Field, error) {
	label, err := localizedValue(KindButton, v)
	if err != nil {
		return nil, err
	}
	return ButtonField{Label: label, Href: f.Href, Style: f.Style}, nil
}

// MockupField frames a product screenshot inside a device chrome. It has no
// editable text.
type MockupField struct {
	Src    string
	Device string
}

func (MockupField) Kind() Kind     { return KindMockup }
func (MockupField) Value() Value   { return nil }
func (f MockupField) clone() Field { return f }
func (MockupField) sealed()        {}
func (MockupField) WithValue(Value) (Field, error) {
	return nil, fmt.Errorf("%w: %s", ErrFieldNotEditable, KindMockup)
}

func localizedValue(kind Kind, v Value) (LocalizedText, error) {
	text, ok := v.(LocalizedText)
	if !ok {
		return nil, mismatch(kind, v)
	}
	if err := text.Validate(); err != nil {
		return nil, err
	}
	return text.Clone(), nil
}

func mismatch(kind Kind, v Value) error {
	return fmt.Errorf("%w: %s field cannot take %T", ErrValueKindMismatch, kind, v)
}
