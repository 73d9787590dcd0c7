package pages

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

// MemoryStore keeps page documents in memory. Useful for tests and previews.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]*schema.PageDocument
}

var _ interfaces.PageStore = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store, optionally seeded with docs.
func NewMemoryStore(docs ...*schema.PageDocument) *MemoryStore {
	store := &MemoryStore{pages: make(map[string]*schema.PageDocument)}
	for _, doc := range docs {
		if doc != nil && doc.Slug != "" {
			store.pages[doc.Slug] = doc.Clone()
		}
	}
	return store
}

// GetPage returns a copy of the page stored under slug.
func (m *MemoryStore) GetPage(_ context.Context, slug string) (*schema.PageDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.pages[strings.TrimSpace(slug)]
	if !ok {
		return nil, pageNotFound(slug)
	}
	return doc.Clone(), nil
}

// SavePage stores a copy of doc, replacing any page with the same slug.
func (m *MemoryStore) SavePage(_ context.Context, doc *schema.PageDocument) error {
	if doc == nil {
		return schema.ErrNilDocument
	}
	if strings.TrimSpace(doc.Slug) == "" {
		return ErrSlugRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[doc.Slug] = doc.Clone()
	return nil
}

// ListPages returns stored slugs in sorted order.
func (m *MemoryStore) ListPages(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.pages)), nil
}

// DeletePage removes the page stored under slug.
func (m *MemoryStore) DeletePage(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slug = strings.TrimSpace(slug)
	if _, ok := m.pages[slug]; !ok {
		return pageNotFound(slug)
	}
	delete(m.pages, slug)
	return nil
}
