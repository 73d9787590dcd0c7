package pages

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-pagebuilder/internal/editing"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/personalization"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

// Service manages page documents: lifecycle, component layout and field edits.
type Service interface {
	Get(ctx context.Context, slug string) (*schema.PageDocument, error)
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req CreatePageRequest) (*schema.PageDocument, error)
	Save(ctx context.Context, doc *schema.PageDocument) (*schema.PageDocument, error)
	Delete(ctx context.Context, slug string) error
	InsertComponent(ctx context.Context, req InsertComponentRequest) (*schema.PageDocument, schema.Component, error)
	RemoveComponent(ctx context.Context, req RemoveComponentRequest) (*schema.PageDocument, error)
	MoveComponent(ctx context.Context, req MoveComponentRequest) (*schema.PageDocument, error)
	UpdateField(ctx context.Context, req UpdateFieldRequest) (*schema.PageDocument, error)
	UpdateText(ctx context.Context, req UpdateTextRequest) (*schema.PageDocument, error)
	Resolve(ctx context.Context, slug string, audience schema.PersonalizationContext, locale schema.Locale) (*View, error)
	Watch(ctx context.Context) (<-chan interfaces.PageChangeEvent, error)
}

// ComponentFactory creates default component instances by type.
type ComponentFactory interface {
	CreateInstance(componentType string) (schema.Component, bool)
}

// DocumentValidator checks a page before it is persisted.
type DocumentValidator interface {
	ValidateDocument(doc *schema.PageDocument) error
}

// CreatePageRequest captures the input for a new, empty page.
type CreatePageRequest struct {
	Slug        string
	Title       string
	Description string
}

// InsertComponentRequest adds a default instance of Type at Position. A
// negative position appends.
type InsertComponentRequest struct {
	Slug     string
	Type     string
	Position int
}

// RemoveComponentRequest drops one component from a page.
type RemoveComponentRequest struct {
	Slug        string
	ComponentID string
}

// MoveComponentRequest moves a component to Position in render order.
type MoveComponentRequest struct {
	Slug        string
	ComponentID string
	Position    int
}

// UpdateFieldRequest replaces the value of one field. An empty Variant edits
// the base record.
type UpdateFieldRequest struct {
	Slug        string
	ComponentID string
	Variant     string
	Field       string
	Value       schema.Value
}

// UpdateTextRequest replaces a single locale of a localized field.
type UpdateTextRequest struct {
	Slug        string
	ComponentID string
	Variant     string
	Field       string
	Locale      schema.Locale
	Text        string
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithComponentFactory sets the source of default component instances.
func WithComponentFactory(factory ComponentFactory) ServiceOption {
	return func(s *service) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithDocumentValidator validates every page before it is stored.
func WithDocumentValidator(validator DocumentValidator) ServiceOption {
	return func(s *service) {
		if validator != nil {
			s.validator = validator
		}
	}
}

// WithSanitizer cleans rich text before it is stored.
func WithSanitizer(sanitizer Sanitizer) ServiceOption {
	return func(s *service) {
		if sanitizer != nil {
			s.sanitizer = sanitizer
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store     interfaces.PageStore
	factory   ComponentFactory
	validator DocumentValidator
	sanitizer Sanitizer
	locks     *slugLocks
	logger    interfaces.Logger
}

// NewService constructs a page service over store.
func NewService(store interfaces.PageStore, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		locks:  newSlugLocks(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) Get(ctx context.Context, pageSlug string) (*schema.PageDocument, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	pageSlug = strings.TrimSpace(pageSlug)
	if pageSlug == "" {
		return nil, ErrSlugRequired
	}
	return s.store.GetPage(ctx, pageSlug)
}

func (s *service) List(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	return s.store.ListPages(ctx)
}

// NormalizeSlug returns the storage key Create uses for raw, such as
// "home-page" for "Home Page".
func NormalizeSlug(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(raw)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, raw)
	}
	return normalized, nil
}

// Create normalizes the slug, refuses to overwrite an existing page and
// stores an empty document whose id is derived from the slug.
func (s *service) Create(ctx context.Context, req CreatePageRequest) (*schema.PageDocument, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	normalized, err := NormalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	unlock := s.locks.lock(normalized)
	defer unlock()

	if _, err := s.store.GetPage(ctx, normalized); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrPageExists, normalized)
	} else if !errors.Is(err, ErrPageNotFound) {
		return nil, err
	}

	doc := &schema.PageDocument{
		ID:         identity.PageUUID(normalized).String(),
		Slug:       normalized,
		Components: []schema.Component{},
		Metadata:   schema.Metadata{Title: schema.Localized(title)},
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		text := schema.Localized(description)
		doc.Metadata.Description = &text
	}
	if err := s.persist(ctx, doc); err != nil {
		return nil, err
	}
	s.opLogger(normalized, "", "").Info("pages.created")
	return doc, nil
}

// Save sanitizes, validates and stores doc as a whole.
func (s *service) Save(ctx context.Context, doc *schema.PageDocument) (*schema.PageDocument, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	if doc == nil {
		return nil, schema.ErrNilDocument
	}
	pageSlug := strings.TrimSpace(doc.Slug)
	if pageSlug == "" {
		return nil, ErrSlugRequired
	}
	unlock := s.locks.lock(pageSlug)
	defer unlock()

	next := s.prepare(doc)
	next.Slug = pageSlug
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.opLogger(next.Slug, "", "").Info("pages.saved", "components", len(next.Components))
	return next, nil
}

func (s *service) Delete(ctx context.Context, pageSlug string) error {
	if s.store == nil {
		return ErrStoreRequired
	}
	pageSlug = strings.TrimSpace(pageSlug)
	if pageSlug == "" {
		return ErrSlugRequired
	}
	unlock := s.locks.lock(pageSlug)
	defer unlock()

	if err := s.store.DeletePage(ctx, pageSlug); err != nil {
		return err
	}
	s.opLogger(pageSlug, "", "").Info("pages.deleted")
	return nil
}

// InsertComponent creates a default instance of req.Type and places it at
// req.Position.
func (s *service) InsertComponent(ctx context.Context, req InsertComponentRequest) (*schema.PageDocument, schema.Component, error) {
	if s.factory == nil {
		return nil, schema.Component{}, fmt.Errorf("%w: no component factory configured", ErrUnknownType)
	}
	component, ok := s.factory.CreateInstance(strings.TrimSpace(req.Type))
	if !ok {
		return nil, schema.Component{}, fmt.Errorf("%w: %q", ErrUnknownType, req.Type)
	}

	doc, err := s.modify(ctx, req.Slug, func(doc *schema.PageDocument) error {
		position := req.Position
		if position < 0 {
			position = len(doc.Components)
		}
		if position > len(doc.Components) {
			return fmt.Errorf("%w: %d (page has %d components)", ErrPositionOutOfRange, req.Position, len(doc.Components))
		}
		doc.Components = slices.Insert(doc.Components, position, component)
		return nil
	})
	if err != nil {
		return nil, schema.Component{}, err
	}
	s.opLogger(doc.Slug, component.ID, "").Info("pages.component_inserted", "type", component.Type)
	return doc, component, nil
}

func (s *service) RemoveComponent(ctx context.Context, req RemoveComponentRequest) (*schema.PageDocument, error) {
	doc, err := s.modify(ctx, req.Slug, func(doc *schema.PageDocument) error {
		idx := doc.IndexOf(req.ComponentID)
		if idx < 0 {
			return componentNotFound(req.ComponentID)
		}
		doc.Components = slices.Delete(doc.Components, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opLogger(doc.Slug, req.ComponentID, "").Info("pages.component_removed")
	return doc, nil
}

func (s *service) MoveComponent(ctx context.Context, req MoveComponentRequest) (*schema.PageDocument, error) {
	doc, err := s.modify(ctx, req.Slug, func(doc *schema.PageDocument) error {
		idx := doc.IndexOf(req.ComponentID)
		if idx < 0 {
			return componentNotFound(req.ComponentID)
		}
		if req.Position < 0 || req.Position >= len(doc.Components) {
			return fmt.Errorf("%w: %d (page has %d components)", ErrPositionOutOfRange, req.Position, len(doc.Components))
		}
		component := doc.Components[idx]
		doc.Components = slices.Delete(doc.Components, idx, idx+1)
		doc.Components = slices.Insert(doc.Components, req.Position, component)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opLogger(doc.Slug, req.ComponentID, "").Debug("pages.component_moved", "position", req.Position)
	return doc, nil
}

// UpdateField routes an edit through an editing session so the base record or
// the named variant receives the new value. The page is persisted as part of
// the commit; on failure the stored page is unchanged.
func (s *service) UpdateField(ctx context.Context, req UpdateFieldRequest) (*schema.PageDocument, error) {
	return s.edit(ctx, req.Slug, req.ComponentID, req.Variant, func(component schema.Component) (string, schema.Value, error) {
		return req.Field, req.Value, nil
	})
}

// UpdateText replaces one locale of a localized field and keeps the others.
func (s *service) UpdateText(ctx context.Context, req UpdateTextRequest) (*schema.PageDocument, error) {
	return s.edit(ctx, req.Slug, req.ComponentID, req.Variant, func(component schema.Component) (string, schema.Value, error) {
		value, err := editing.TextEdit(component, req.Variant, req.Field, req.Locale, req.Text)
		return req.Field, value, err
	})
}

// Resolve loads a page and personalizes it for audience, then collapses every
// localized value for locale.
func (s *service) Resolve(ctx context.Context, pageSlug string, audience schema.PersonalizationContext, locale schema.Locale) (*View, error) {
	doc, err := s.Get(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	personalized := personalization.Page(doc, audience)
	return newView(personalized, locale), nil
}

// Watch forwards change events when the store supports them.
func (s *service) Watch(ctx context.Context) (<-chan interfaces.PageChangeEvent, error) {
	watcher, ok := s.store.(interfaces.PageWatcher)
	if !ok {
		return nil, fmt.Errorf("pages: store %T does not support watching", s.store)
	}
	return watcher.Watch(ctx)
}

type fieldEdit func(component schema.Component) (string, schema.Value, error)

func (s *service) edit(ctx context.Context, pageSlug, componentID, variant string, build fieldEdit) (*schema.PageDocument, error) {
	variant = strings.TrimSpace(variant)
	var committed *schema.PageDocument

	_, err := s.modify(ctx, pageSlug, func(doc *schema.PageDocument) error {
		component, ok := doc.Component(componentID)
		if !ok {
			return componentNotFound(componentID)
		}
		field, value, err := build(component)
		if err != nil {
			return err
		}

		logger := s.opLogger(doc.Slug, componentID, variant)
		session := editing.NewSession(component, editing.WithLogger(logger), editing.WithEditing(variant != ""))
		session.SetEditingVariant(variant)
		return session.Commit(field, value, func(next schema.Component) error {
			updated, err := doc.ReplaceComponent(next)
			if err != nil {
				return err
			}
			updated = s.prepare(updated)
			if err := s.persist(ctx, updated); err != nil {
				return err
			}
			committed = updated
			return nil
		})
	}, withoutPersist())
	if err != nil {
		return nil, err
	}
	return committed, nil
}

type modifyConfig struct {
	persist bool
}

type modifyOption func(*modifyConfig)

// withoutPersist leaves storage to the mutate func.
func withoutPersist() modifyOption {
	return func(cfg *modifyConfig) {
		cfg.persist = false
	}
}

// modify runs a read-modify-write cycle on one page under its slug lock.
func (s *service) modify(ctx context.Context, pageSlug string, mutate func(*schema.PageDocument) error, opts ...modifyOption) (*schema.PageDocument, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	pageSlug = strings.TrimSpace(pageSlug)
	if pageSlug == "" {
		return nil, ErrSlugRequired
	}
	cfg := modifyConfig{persist: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	unlock := s.locks.lock(pageSlug)
	defer unlock()

	current, err := s.store.GetPage(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	doc := current.Clone()
	if err := mutate(doc); err != nil {
		return nil, err
	}
	if !cfg.persist {
		return doc, nil
	}
	next := s.prepare(doc)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) prepare(doc *schema.PageDocument) *schema.PageDocument {
	next := sanitizeDocument(doc, s.sanitizer)
	if next.Components == nil {
		next.Components = []schema.Component{}
	}
	return next
}

func (s *service) persist(ctx context.Context, doc *schema.PageDocument) error {
	if s.validator != nil {
		if err := s.validator.ValidateDocument(doc); err != nil {
			s.opLogger(doc.Slug, "", "").Warn("pages.validation_failed", "error", err)
			return err
		}
	}
	if err := s.store.SavePage(ctx, doc); err != nil {
		s.opLogger(doc.Slug, "", "").Error("pages.save_failed", "error", err)
		return err
	}
	return nil
}

func (s *service) opLogger(pageSlug, componentID, variant string) interfaces.Logger {
	return logging.WithPageContext(s.logger, pageSlug, componentID, variant)
}
