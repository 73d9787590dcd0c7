package pagescmd

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagebuilder/internal/editing"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	pbvalidation "github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/schema"
)

const (
	pageNotFoundCode = "PAGE_NOT_FOUND"
	pageConflictCode = "PAGE_CONFLICT"
	pageInvalidCode  = "PAGE_INVALID"
)

var invalidInput = []error{
	pages.ErrSlugRequired,
	pages.ErrInvalidSlug,
	pages.ErrTitleRequired,
	pages.ErrUnknownType,
	pages.ErrPositionOutOfRange,
	pbvalidation.ErrInvalidDocument,
	pbvalidation.ErrSchemaValidation,
	pbvalidation.ErrUnknownComponentType,
	pbvalidation.ErrUnknownOverrideField,
	pbvalidation.ErrOverrideKindMismatch,
	editing.ErrInvalidFieldName,
	editing.ErrValueKindMismatch,
	editing.ErrFieldNotEditable,
	schema.ErrFallbackLocaleMissing,
}

// categorize tags domain errors so callers can branch on go-errors categories.
// Errors it does not recognise are returned unchanged and end up in the
// command category.
func categorize(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pages.ErrPageNotFound), errors.Is(err, schema.ErrComponentNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "page builder resource not found").
			WithTextCode(pageNotFoundCode)
	case errors.Is(err, pages.ErrPageExists):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "page already exists").
			WithTextCode(pageConflictCode)
	}
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "page change rejected").
				WithTextCode(pageInvalidCode)
		}
	}
	return err
}
