package pages

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

var (
	ErrPageNotFound       = interfaces.ErrPageNotFound
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrPageExists         = errors.New("pages: page already exists")
	ErrTitleRequired      = errors.New("pages: title is required")
	ErrUnknownType        = errors.New("pages: unknown component type")
	ErrPositionOutOfRange = errors.New("pages: position out of range")
	ErrStoreRequired      = errors.New("pages: store is required")
	ErrDatabaseRequired   = errors.New("pages: bun store requires a database")
)

// NotFoundError reports a missing page or component. It matches
// ErrPageNotFound for pages and schema.ErrComponentNotFound for components.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	switch e.Resource {
	case "page":
		return target == ErrPageNotFound
	case "component":
		return target == schema.ErrComponentNotFound
	}
	return false
}

func pageNotFound(slug string) error {
	return &NotFoundError{Resource: "page", Key: slug}
}

func componentNotFound(id string) error {
	return &NotFoundError{Resource: "component", Key: id}
}
