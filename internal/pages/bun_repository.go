package pages

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

const pageNamespace = "page"

// BunStore persists page documents through go-repository-bun, optionally
// fronted by go-repository-cache.
type BunStore struct {
	db           *bun.DB
	repo         repository.Repository[*PageRecord]
	cacheService cache.CacheService
	cachePrefix  string
	logger       interfaces.Logger
	now          func() time.Time
}

var _ interfaces.PageStore = (*BunStore)(nil)

// BunStoreOption customises a BunStore.
type BunStoreOption func(*bunStoreConfig)

type bunStoreConfig struct {
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	logger       interfaces.Logger
	now          func() time.Time
}

// WithBunCache enables read-through caching for page lookups.
func WithBunCache(cacheService cache.CacheService, serializer cache.KeySerializer) BunStoreOption {
	return func(cfg *bunStoreConfig) {
		cfg.cacheService = cacheService
		cfg.serializer = serializer
	}
}

// WithBunLogger sets the store logger.
func WithBunLogger(logger interfaces.Logger) BunStoreOption {
	return func(cfg *bunStoreConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithBunClock overrides the timestamp source.
func WithBunClock(now func() time.Time) BunStoreOption {
	return func(cfg *bunStoreConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// NewPageRepository creates a repository for page records keyed by slug.
func NewPageRepository(db *bun.DB) repository.Repository[*PageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageRecord]{
		NewRecord: func() *PageRecord { return &PageRecord{} },
		GetID: func(record *PageRecord) uuid.UUID {
			return record.ID
		},
		SetID: func(record *PageRecord, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(record *PageRecord) string {
			return record.Slug
		},
	})
}

// NewBunStore wraps db in a page store.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) (*BunStore, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	cfg := bunStoreConfig{logger: logging.NoOp(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	base := NewPageRepository(db)
	store := &BunStore{db: db, logger: cfg.logger, now: cfg.now}
	if cfg.cacheService != nil && cfg.serializer != nil {
		base = repositorycache.New(base, cfg.cacheService, cfg.serializer)
		store.cacheService = cfg.cacheService
		store.cachePrefix = pageNamespace + cache.KeySeparator
	}
	store.repo = base
	return store, nil
}

// EnsureSchema creates the pages table when it does not exist.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*PageRecord)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("pages: create table: %w", err)
	}
	return nil
}

// GetPage loads and decodes the page stored under slug.
func (s *BunStore) GetPage(ctx context.Context, slug string) (*schema.PageDocument, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	record, err := s.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	doc, err := schema.UnmarshalDocument([]byte(record.Payload))
	if err != nil {
		return nil, fmt.Errorf("pages: decode %q: %w", slug, err)
	}
	doc.Slug = record.Slug
	return doc, nil
}

// SavePage inserts or replaces the row for doc.Slug.
func (s *BunStore) SavePage(ctx context.Context, doc *schema.PageDocument) error {
	if doc == nil {
		return schema.ErrNilDocument
	}
	slug := strings.TrimSpace(doc.Slug)
	if slug == "" {
		return ErrSlugRequired
	}
	payload, err := schema.MarshalDocument(doc)
	if err != nil {
		return err
	}
	now := s.now().UTC()

	existing, err := s.repo.GetByIdentifier(ctx, slug)
	switch {
	case err == nil:
		existing.Title = doc.Metadata.Title.Resolve(schema.FallbackLocale)
		existing.Payload = string(payload)
		existing.UpdatedAt = now
		_, err = s.repo.Update(ctx, existing,
			repository.UpdateByID(existing.ID.String()),
			repository.UpdateColumns("title", "payload", "updated_at"),
		)
		if err != nil {
			return fmt.Errorf("pages: update %q: %w", slug, err)
		}
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		record := &PageRecord{
			ID:        recordID(doc),
			Slug:      slug,
			Title:     doc.Metadata.Title.Resolve(schema.FallbackLocale),
			Payload:   string(payload),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("pages: create %q: %w", slug, err)
		}
	default:
		return mapRepositoryError(err, slug)
	}
	return s.invalidate(ctx)
}

// ListPages returns stored slugs in sorted order.
func (s *BunStore) ListPages(ctx context.Context) ([]string, error) {
	records, _, err := s.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("slug ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("pages: list: %w", err)
	}
	slugs := make([]string, 0, len(records))
	for _, record := range records {
		slugs = append(slugs, record.Slug)
	}
	slices.Sort(slugs)
	return slugs, nil
}

// DeletePage removes the row stored under slug.
func (s *BunStore) DeletePage(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ErrSlugRequired
	}
	record, err := s.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return mapRepositoryError(err, slug)
	}
	if err := s.repo.Delete(ctx, &PageRecord{ID: record.ID}); err != nil {
		return fmt.Errorf("pages: delete %q: %w", slug, err)
	}
	return s.invalidate(ctx)
}

// InvalidateCache drops every cached page lookup.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	return s.invalidate(ctx)
}

func (s *BunStore) invalidate(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	if err := s.cacheService.DeleteByPrefix(ctx, s.cachePrefix); err != nil {
		s.logger.Warn("pages.cache_invalidate_failed", "error", err)
		return fmt.Errorf("pages: invalidate cache: %w", err)
	}
	return nil
}

func recordID(doc *schema.PageDocument) uuid.UUID {
	if id, err := uuid.Parse(strings.TrimSpace(doc.ID)); err == nil && id != uuid.Nil {
		return id
	}
	return identity.PageUUID(doc.Slug)
}

func mapRepositoryError(err error, slug string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return pageNotFound(slug)
	}
	return fmt.Errorf("page repository error: %w", err)
}
