package pages_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
	"github.com/goliatone/go-pagebuilder/schema"
)

func newFileStore(t *testing.T) *pages.FileStore {
	t.Helper()
	store, err := pages.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store
}

func TestFileStoreRoundTripIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	page := testsupport.Page("home", testsupport.HeroComponent())

	if err := store.SavePage(ctx, page); err != nil {
		t.Fatalf("SavePage() error = %v", err)
	}
	got, err := store.GetPage(ctx, "home")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if diff := cmp.Diff(page, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	first, err := os.ReadFile(filepath.Join(store.Dir(), "home.json"))
	if err != nil {
		t.Fatalf("read page file: %v", err)
	}
	if err := store.SavePage(ctx, got); err != nil {
		t.Fatalf("SavePage() second pass error = %v", err)
	}
	second, _ := os.ReadFile(filepath.Join(store.Dir(), "home.json"))
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical bytes after load and save")
	}

	expected, _ := schema.MarshalDocument(page)
	if !bytes.Equal(expected, first) {
		t.Fatalf("file content differs from MarshalDocument output")
	}
}

func TestFileStoreReadsCommentedFiles(t *testing.T) {
	store := newFileStore(t)
	content := `{
  // hand edited
  "id": "page-notes",
  "slug": "ignored",
  "components": [
    {
      "id": "hero-1",
      "type": "hero",
      "fields": {
        "heading": {"type": "text", "value": {"en": "Hello"}},
      },
    },
  ],
  "metadata": {"title": {"en": "Notes"}},
}`
	if err := os.WriteFile(filepath.Join(store.Dir(), "notes.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := store.GetPage(context.Background(), "notes")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if doc.Slug != "notes" {
		t.Fatalf("expected file name to win, got slug %q", doc.Slug)
	}
	heading := doc.Components[0].Fields["heading"].(schema.TextField)
	if heading.Text.Resolve("en") != "Hello" {
		t.Fatalf("unexpected heading %v", heading.Text)
	}
}

func TestFileStoreListSkipsForeignFiles(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	for _, slug := range []string{"b", "a"} {
		if err := store.SavePage(ctx, testsupport.Page(slug)); err != nil {
			t.Fatalf("SavePage(%s) error = %v", slug, err)
		}
	}
	_ = os.WriteFile(filepath.Join(store.Dir(), ".hidden.json"), []byte("{}"), 0o644)
	_ = os.WriteFile(filepath.Join(store.Dir(), "readme.md"), []byte("x"), 0o644)
	_ = os.Mkdir(filepath.Join(store.Dir(), "nested.json"), 0o755)

	slugs, err := store.ListPages(ctx)
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, slugs); diff != "" {
		t.Fatalf("unexpected slugs (-want +got):\n%s", diff)
	}
}

func TestFileStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	if _, err := store.GetPage(ctx, "missing"); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	var notFound *pages.NotFoundError
	if err := store.DeletePage(ctx, "missing"); !errors.As(err, &notFound) || notFound.Key != "missing" {
		t.Fatalf("expected NotFoundError for missing, got %v", err)
	}
	if err := store.SavePage(ctx, testsupport.Page("../escape")); !errors.Is(err, pages.ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
	if err := store.SavePage(ctx, nil); !errors.Is(err, schema.ErrNilDocument) {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
}

func TestFileStoreWatchReportsChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newFileStore(t)

	events, err := store.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := store.SavePage(ctx, testsupport.Page("home")); err != nil {
		t.Fatalf("SavePage() error = %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Slug != "home" {
				continue
			}
			if event.Type != interfaces.PageCreated && event.Type != interfaces.PageUpdated {
				t.Fatalf("unexpected change type %q", event.Type)
			}
			cancel()
			for range events {
			}
			return
		case <-timeout:
			t.Fatalf("timed out waiting for change event")
		}
	}
}
