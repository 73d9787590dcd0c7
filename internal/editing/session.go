package editing

import (
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/personalization"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

// CommitFunc receives the complete replacement component after an edit.
type CommitFunc func(schema.Component) error

// Session tracks editing state for one component instance: whether the editor
// is in view or edit mode, and which variant edits are routed to. It is not
// safe for concurrent use; edits must be serialized by the caller.
type Session struct {
	component schema.Component
	ambient   schema.PersonalizationContext
	editing   bool
	variant   string
	logger    interfaces.Logger
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the logger used for display and commit diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithContext sets the ambient personalization context used in view mode.
func WithContext(ctx schema.PersonalizationContext) Option {
	return func(s *Session) {
		s.ambient = ctx
	}
}

// WithEditing starts the session in edit mode.
func WithEditing(enabled bool) Option {
	return func(s *Session) {
		s.editing = enabled
	}
}

// NewSession starts a session in view mode on the base record.
func NewSession(component schema.Component, opts ...Option) *Session {
	s := &Session{
		component: component,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Component returns the current component record.
func (s *Session) Component() schema.Component {
	return s.component
}

// Editing reports whether the session is in edit mode.
func (s *Session) Editing() bool {
	return s.editing
}

// EditingVariant returns the variant edits are routed to; empty means base.
func (s *Session) EditingVariant() string {
	return s.variant
}

// Context returns the ambient personalization context.
func (s *Session) Context() schema.PersonalizationContext {
	return s.ambient
}

// SetEditing switches between view and edit mode. The edited variant is kept
// so toggling back resumes where the editor left off.
func (s *Session) SetEditing(enabled bool) {
	s.editing = enabled
}

// SetEditingVariant selects the record edits are routed to. An empty name
// selects the base record. The component itself is not touched.
func (s *Session) SetEditingVariant(name string) {
	s.variant = strings.TrimSpace(name)
}

// SetContext replaces the ambient personalization context.
func (s *Session) SetContext(ctx schema.PersonalizationContext) {
	s.ambient = ctx
}

// Reset points the session at a different component and returns to the base
// record.
func (s *Session) Reset(component schema.Component) {
	s.component = component
	s.variant = ""
}

// Variants lists the override records the component carries.
func (s *Session) Variants() []string {
	return s.component.Variants.Names()
}

// DisplaySchema returns the component as it should render right now. View mode
// personalizes for the ambient context; edit mode shows the base record or the
// edited variant merged over it. The result never carries override records.
func (s *Session) DisplaySchema() schema.Component {
	return SafeDisplay(s.component, s.resolve, s.logger)
}

func (s *Session) resolve(component schema.Component) schema.Component {
	switch {
	case !s.editing:
		return personalization.Apply(component, s.ambient)
	case s.variant == "":
		return component
	default:
		return personalization.Apply(component, schema.ForSegment(s.variant))
	}
}

// UpdateField computes the component that results from setting field name to
// value on the selected variant, or on the base record when none is selected.
// Routing ignores view/edit mode. The session state is unchanged.
func (s *Session) UpdateField(name string, value schema.Value) (schema.Component, error) {
	return UpdateField(s.component, s.variant, name, value)
}

// Commit applies an edit and hands the replacement to commit. A nil commit is a
// no-op. The session adopts the replacement only when commit succeeds.
func (s *Session) Commit(name string, value schema.Value, commit CommitFunc) error {
	if commit == nil {
		return nil
	}
	next, err := s.UpdateField(name, value)
	if err != nil {
		return err
	}
	logger := logging.WithPageContext(s.logger, "", next.ID, s.variant)
	if err := commit(next); err != nil {
		logger.Warn("editing.commit_failed", "field", name, "error", err)
		return err
	}
	s.component = next
	logger.Debug("editing.field_committed", "field", name)
	return nil
}
