package pages

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Watch reports page files created, changed or removed in the store directory
// until ctx is cancelled. Temp files written by SavePage are ignored; the
// rename that publishes them shows up as a create.
func (s *FileStore) Watch(ctx context.Context) (<-chan interfaces.PageChangeEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("pages: start watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("pages: watch %s: %w", s.dir, err)
	}

	out := make(chan interfaces.PageChangeEvent, 16)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change, ok := changeFromEvent(event)
				if !ok {
					continue
				}
				s.logger.Debug("pages.file_changed", "page_slug", change.Slug, "change", string(change.Type))
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("pages.watch_error", "dir", s.dir, "error", err)
			}
		}
	}()
	return out, nil
}

func changeFromEvent(event fsnotify.Event) (interfaces.PageChangeEvent, bool) {
	slug, ok := slugFromFile(filepath.Base(event.Name))
	if !ok {
		return interfaces.PageChangeEvent{}, false
	}
	var kind interfaces.PageChangeType
	switch {
	case event.Op&fsnotify.Create != 0:
		kind = interfaces.PageCreated
	case event.Op&fsnotify.Write != 0:
		kind = interfaces.PageUpdated
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		kind = interfaces.PageDeleted
	default:
		return interfaces.PageChangeEvent{}, false
	}
	return interfaces.PageChangeEvent{Type: kind, Slug: slug}, true
}
