package validation

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-pagebuilder/schema"
)

// ValidateDocument checks the page envelope (slug, title, unique component ids)
// and then every component.
func (v *Validator) ValidateDocument(doc *schema.PageDocument) error {
	if doc == nil {
		return schema.ErrNilDocument
	}
	if err := ValidateEnvelope(doc); err != nil {
		return err
	}

	var errs []error
	for _, component := range doc.Components {
		if err := v.ValidateComponent(component); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: page %q: %w", ErrInvalidDocument, doc.Slug, errors.Join(errs...))
	}
	return nil
}

// ValidateEnvelope checks the document fields that do not depend on the
// component registry.
func ValidateEnvelope(doc *schema.PageDocument) error {
	if doc == nil {
		return schema.ErrNilDocument
	}
	errs := validation.Errors{}
	err := validation.ValidateStruct(doc,
		validation.Field(&doc.Slug, validation.Required, validation.By(validSlug)),
		validation.Field(&doc.Components, validation.By(uniqueComponentIDs)),
	)
	if err != nil {
		var fieldErrs validation.Errors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		maps.Copy(errs, fieldErrs)
	}
	if titleErr := doc.Metadata.Title.Validate(); titleErr != nil {
		errs["metadata.title"] = validation.NewError("pagebuilder.page.title_fallback_required", titleErr.Error())
	}
	if doc.Metadata.Description != nil {
		if descErr := doc.Metadata.Description.Validate(); descErr != nil {
			errs["metadata.description"] = validation.NewError("pagebuilder.page.description_fallback_required", descErr.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errs)
	}
	return nil
}

func validSlug(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !slug.IsValid(s) || strings.ToLower(s) != s {
		return validation.NewError("pagebuilder.page.slug_invalid", "slug must be lowercase letters, digits and dashes")
	}
	return nil
}

func uniqueComponentIDs(value any) error {
	components, _ := value.([]schema.Component)
	seen := make(map[string]struct{}, len(components))
	for _, component := range components {
		id := strings.TrimSpace(component.ID)
		if id == "" {
			return validation.NewError("pagebuilder.page.component_id_required", "every component needs an id")
		}
		if _, dup := seen[id]; dup {
			return validation.NewError("pagebuilder.page.component_id_duplicate", fmt.Sprintf("%s: %s", ErrDuplicateComponentID.Error(), id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
