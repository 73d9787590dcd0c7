package pages

import (
	"strings"
	"sync"
)

// slugLocks serializes read-modify-write cycles per page slug. Entries are
// reference counted and dropped once no caller holds or waits on them.
type slugLocks struct {
	mu    sync.Mutex
	locks map[string]*slugLock
}

type slugLock struct {
	mu   sync.Mutex
	refs int
}

func newSlugLocks() *slugLocks {
	return &slugLocks{locks: make(map[string]*slugLock)}
}

// lock acquires the mutex for slug and returns its release func. Surrounding
// whitespace is not part of the key, matching how stores address pages.
func (l *slugLocks) lock(slug string) func() {
	slug = strings.TrimSpace(slug)
	l.mu.Lock()
	entry, ok := l.locks[slug]
	if !ok {
		entry = &slugLock{}
		l.locks[slug] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, slug)
		}
		l.mu.Unlock()
	}
}

func (l *slugLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
