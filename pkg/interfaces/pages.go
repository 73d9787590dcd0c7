package interfaces

import (
	"context"
	"errors"

	"github.com/goliatone/go-pagebuilder/schema"
)

// ErrPageNotFound is matched by every store's not-found error.
var ErrPageNotFound = errors.New("pages: page not found")

// PageStore persists page documents keyed by slug. Implementations must return
// independent copies; callers may mutate what they receive.
type PageStore interface {
	GetPage(ctx context.Context, slug string) (*schema.PageDocument, error)
	SavePage(ctx context.Context, doc *schema.PageDocument) error
	ListPages(ctx context.Context) ([]string, error)
	DeletePage(ctx context.Context, slug string) error
}

// PageWatcher is implemented by stores that can report out-of-band changes,
// such as files edited on disk.
type PageWatcher interface {
	Watch(ctx context.Context) (<-chan PageChangeEvent, error)
}

// PageChangeType classifies a PageChangeEvent.
type PageChangeType string

const (
	PageCreated PageChangeType = "created"
	PageUpdated PageChangeType = "updated"
	PageDeleted PageChangeType = "deleted"
)

// PageChangeEvent reports a change to the page stored under Slug.
type PageChangeEvent struct {
	Type PageChangeType
	Slug string
}
