package editing

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/schema"
)

var (
	// ErrInvalidFieldName reports an edit naming a field that exists neither in
	// the base fields nor in the edited variant's overrides.
	ErrInvalidFieldName = errors.New("editing: invalid field name")
	// ErrValueKindMismatch reports a value that does not fit the field kind.
	ErrValueKindMismatch = schema.ErrValueKindMismatch
	// ErrFieldNotEditable reports an edit against a kind without an editable value.
	ErrFieldNotEditable = schema.ErrFieldNotEditable
)
