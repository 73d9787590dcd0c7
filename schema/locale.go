package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// Locale is a language/region tag such as "en" or "es".
type Locale string

// FallbackLocale is the locale every LocalizedText must carry.
const FallbackLocale Locale = "en"

// LocalizedText maps locale codes to display strings. The FallbackLocale entry is
// mandatory; other locales are optional.
type LocalizedText map[Locale]string

// NewLocalizedText builds a LocalizedText whose fallback entry is always present.
func NewLocalizedText(fallback string, others map[Locale]string) LocalizedText {
	out := make(LocalizedText, len(others)+1)
	for locale, text := range others {
		if code := normalizeLocale(locale); code != "" {
			out[code] = text
		}
	}
	out[FallbackLocale] = fallback
	return out
}

// Localized is shorthand for a fallback-only LocalizedText.
func Localized(fallback string) LocalizedText {
	return LocalizedText{FallbackLocale: fallback}
}

// Resolve returns content[locale] when present, otherwise the fallback entry.
func Resolve(content LocalizedText, locale Locale) string {
	if value, ok := content[normalizeLocale(locale)]; ok {
		return value
	}
	return content[FallbackLocale]
}

// Resolve is the method form of the package level Resolve.
func (t LocalizedText) Resolve(locale Locale) string {
	return Resolve(t, locale)
}

// With returns a copy with the entry for locale set to text.
func (t LocalizedText) With(locale Locale, text string) LocalizedText {
	out := t.Clone()
	if out == nil {
		out = LocalizedText{}
	}
	code := normalizeLocale(locale)
	if code == "" {
		code = FallbackLocale
	}
	out[code] = text
	return out
}

// Clone returns an independent copy.
func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	return maps.Clone(t)
}

// Validate reports ErrFallbackLocaleMissing when the fallback entry is absent.
func (t LocalizedText) Validate() error {
	if _, ok := t[FallbackLocale]; !ok {
		return ErrFallbackLocaleMissing
	}
	return nil
}

// Locales lists the locales carried by the value.
func (t LocalizedText) Locales() []Locale {
	out := make([]Locale, 0, len(t))
	for locale := range t {
		out = append(out, locale)
	}
	return out
}

func (LocalizedText) isValue() {}

// UnmarshalJSON enforces the fallback invariant at decode time so reads never fail.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var raw map[Locale]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("schema: localized text: %w", err)
	}
	decoded := LocalizedText(raw)
	if err := decoded.Validate(); err != nil {
		return err
	}
	*t = decoded
	return nil
}

func normalizeLocale(locale Locale) Locale {
	return Locale(strings.TrimSpace(string(locale)))
}
