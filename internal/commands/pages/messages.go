package pagescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/schema"
)

const (
	savePageMessageType        = "pagebuilder.pages.save"
	createPageMessageType      = "pagebuilder.pages.create"
	deletePageMessageType      = "pagebuilder.pages.delete"
	insertComponentMessageType = "pagebuilder.pages.component.insert"
	removeComponentMessageType = "pagebuilder.pages.component.remove"
	moveComponentMessageType   = "pagebuilder.pages.component.move"
	updateFieldMessageType     = "pagebuilder.pages.field.update"
	updateTextMessageType      = "pagebuilder.pages.field.update_text"
)

// SavePageCommand replaces a page document as a whole.
type SavePageCommand struct {
	Document *schema.PageDocument `json:"document"`
}

// Type implements command.Message.
func (SavePageCommand) Type() string { return savePageMessageType }

// Validate ensures the command carries an addressable document.
func (m SavePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.Document == nil {
		errs["document"] = validation.NewError("pagebuilder.pages.save.document_required", "document is required")
	} else if strings.TrimSpace(m.Document.Slug) == "" {
		errs["document.slug"] = validation.NewError("pagebuilder.pages.save.slug_required", "document slug is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreatePageCommand creates an empty page.
type CreatePageCommand struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Type implements command.Message.
func (CreatePageCommand) Type() string { return createPageMessageType }

// Validate ensures slug and title are present.
func (m CreatePageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Slug, validation.Required.ErrorObject(
			validation.NewError("pagebuilder.pages.create.slug_required", "slug is required"))),
		validation.Field(&m.Title, validation.Required.ErrorObject(
			validation.NewError("pagebuilder.pages.create.title_required", "title is required"))),
	)
}

// DeletePageCommand removes a page.
type DeletePageCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

// Validate ensures the slug is present.
func (m DeletePageCommand) Validate() error {
	if strings.TrimSpace(m.Slug) == "" {
		return validation.Errors{
			"slug": validation.NewError("pagebuilder.pages.delete.slug_required", "slug is required"),
		}
	}
	return nil
}

// InsertComponentCommand adds a default instance of ComponentType to a page.
// Position -1 appends.
type InsertComponentCommand struct {
	Slug          string `json:"slug"`
	ComponentType string `json:"type"`
	Position      int    `json:"position"`
}

// Type implements command.Message.
func (InsertComponentCommand) Type() string { return insertComponentMessageType }

// Validate ensures slug and component type are present.
func (m InsertComponentCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Slug) == "" {
		errs["slug"] = validation.NewError("pagebuilder.pages.insert.slug_required", "slug is required")
	}
	if strings.TrimSpace(m.ComponentType) == "" {
		errs["type"] = validation.NewError("pagebuilder.pages.insert.type_required", "component type is required")
	}
	if m.Position < -1 {
		errs["position"] = validation.NewError("pagebuilder.pages.insert.position_invalid", "position must be -1 or greater")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemoveComponentCommand drops a component from a page.
type RemoveComponentCommand struct {
	Slug        string `json:"slug"`
	ComponentID string `json:"component_id"`
}

// Type implements command.Message.
func (RemoveComponentCommand) Type() string { return removeComponentMessageType }

// Validate ensures the page and component are addressed.
func (m RemoveComponentCommand) Validate() error {
	return validateComponentAddress("remove", m.Slug, m.ComponentID, nil)
}

// MoveComponentCommand reorders a component within a page.
type MoveComponentCommand struct {
	Slug        string `json:"slug"`
	ComponentID string `json:"component_id"`
	Position    int    `json:"position"`
}

// Type implements command.Message.
func (MoveComponentCommand) Type() string { return moveComponentMessageType }

// Validate ensures the page and component are addressed and the target is not negative.
func (m MoveComponentCommand) Validate() error {
	errs := validation.Errors{}
	if m.Position < 0 {
		errs["position"] = validation.NewError("pagebuilder.pages.move.position_invalid", "position must be zero or greater")
	}
	return validateComponentAddress("move", m.Slug, m.ComponentID, errs)
}

// UpdateFieldCommand sets the value of one field in the base record or, when
// Variant is set, in that variant's override record.
type UpdateFieldCommand struct {
	Slug        string       `json:"slug"`
	ComponentID string       `json:"component_id"`
	Variant     string       `json:"variant,omitempty"`
	Field       string       `json:"field"`
	Value       schema.Value `json:"value"`
}

// Type implements command.Message.
func (UpdateFieldCommand) Type() string { return updateFieldMessageType }

// Validate ensures the field is addressed and a value is supplied.
func (m UpdateFieldCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Field) == "" {
		errs["field"] = validation.NewError("pagebuilder.pages.update_field.field_required", "field is required")
	}
	if m.Value == nil {
		errs["value"] = validation.NewError("pagebuilder.pages.update_field.value_required", "value is required")
	}
	return validateComponentAddress("update_field", m.Slug, m.ComponentID, errs)
}

// UpdateTextCommand replaces one locale of a localized field.
type UpdateTextCommand struct {
	Slug        string `json:"slug"`
	ComponentID string `json:"component_id"`
	Variant     string `json:"variant,omitempty"`
	Field       string `json:"field"`
	Locale      string `json:"locale,omitempty"`
	Text        string `json:"text"`
}

// Type implements command.Message.
func (UpdateTextCommand) Type() string { return updateTextMessageType }

// Validate ensures the field is addressed.
func (m UpdateTextCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Field) == "" {
		errs["field"] = validation.NewError("pagebuilder.pages.update_text.field_required", "field is required")
	}
	return validateComponentAddress("update_text", m.Slug, m.ComponentID, errs)
}

func validateComponentAddress(op, slug, componentID string, errs validation.Errors) error {
	if errs == nil {
		errs = validation.Errors{}
	}
	if strings.TrimSpace(slug) == "" {
		errs["slug"] = validation.NewError("pagebuilder.pages."+op+".slug_required", "slug is required")
	}
	if strings.TrimSpace(componentID) == "" {
		errs["component_id"] = validation.NewError("pagebuilder.pages."+op+".component_id_required", "component_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
