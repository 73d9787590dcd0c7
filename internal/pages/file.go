package pages

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/schema"
)

const pageFileExt = ".json"

// ErrInvalidSlug reports a slug that cannot be mapped to a file name.
var ErrInvalidSlug = errors.New("pages: slug cannot be used as a file name")

// FileStore persists one pretty-printed <slug>.json file per page. Reads accept
// comments and trailing commas so hand-edited files still load. Writes go
// through a temp file and rename so readers never see a partial document.
type FileStore struct {
	dir    string
	mu     sync.RWMutex
	logger interfaces.Logger
}

var (
	_ interfaces.PageStore   = (*FileStore)(nil)
	_ interfaces.PageWatcher = (*FileStore)(nil)
)

// FileStoreOption customises a FileStore.
type FileStoreOption func(*FileStore)

// WithFileLogger sets the logger used for watcher diagnostics.
func WithFileLogger(logger interfaces.Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore creates dir when missing and returns a store rooted there.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("pages: file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pages: create %s: %w", dir, err)
	}
	store := &FileStore{dir: dir, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// GetPage reads and decodes <dir>/<slug>.json. The file name is authoritative:
// the decoded slug is set to slug.
func (s *FileStore) GetPage(_ context.Context, slug string) (*schema.PageDocument, error) {
	path, err := s.path(slug)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pageNotFound(slug)
		}
		return nil, fmt.Errorf("pages: read %s: %w", path, err)
	}

	doc, err := schema.UnmarshalDocument(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("pages: %s: %w", path, err)
	}
	doc.Slug = slug
	return doc, nil
}

// SavePage writes doc atomically.
func (s *FileStore) SavePage(_ context.Context, doc *schema.PageDocument) error {
	if doc == nil {
		return schema.ErrNilDocument
	}
	path, err := s.path(doc.Slug)
	if err != nil {
		return err
	}
	data, err := schema.MarshalDocument(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.dir, path, data)
}

// ListPages returns the slugs of every page file in sorted order.
func (s *FileStore) ListPages(context.Context) ([]string, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("pages: list %s: %w", s.dir, err)
	}
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if slug, ok := slugFromFile(entry.Name()); ok {
			slugs = append(slugs, slug)
		}
	}
	slices.Sort(slugs)
	return slugs, nil
}

// DeletePage removes <dir>/<slug>.json.
func (s *FileStore) DeletePage(_ context.Context, slug string) error {
	path, err := s.path(slug)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pageNotFound(slug)
		}
		return fmt.Errorf("pages: delete %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) path(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", ErrSlugRequired
	}
	if strings.ContainsAny(slug, `/\`) || strings.HasPrefix(slug, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return filepath.Join(s.dir, slug+pageFileExt), nil
}

func slugFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, pageFileExt) {
		return "", false
	}
	slug := strings.TrimSuffix(name, pageFileExt)
	return slug, slug != ""
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("pages: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("pages: write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("pages: sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("pages: close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("pages: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("pages: rename %s: %w", path, err)
	}
	return nil
}
