package identity_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/identity"
)

func TestPageUUIDIsDeterministic(t *testing.T) {
	first := identity.PageUUID("home")
	second := identity.PageUUID("  HOME ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable id for normalised slug, got %s and %s", first, second)
	}
	if first == identity.PageUUID("pricing") {
		t.Fatalf("expected different slugs to map to different ids")
	}
	if first == identity.ComponentTypeUUID("home") {
		t.Fatalf("expected page and component type namespaces to differ")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := identity.UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for empty key, got %s", got)
	}
}

func TestComponentIDUsesTypePrefix(t *testing.T) {
	id := identity.ComponentID(identity.UUIDv7(), "hero")
	if !strings.HasPrefix(id, "hero-") {
		t.Fatalf("expected hero- prefix, got %s", id)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(id, "hero-")); err != nil {
		t.Fatalf("expected uuid suffix, got %s: %v", id, err)
	}
	if other := identity.ComponentID(identity.UUIDv7(), "hero"); other == id {
		t.Fatalf("expected fresh ids, got %s twice", id)
	}
}

func TestSequenceAndPrefixed(t *testing.T) {
	gen := identity.Prefixed("c", identity.Sequence("-"))
	if got := gen(); got != "c-1" {
		t.Fatalf("expected c-1, got %s", got)
	}
	if got := gen(); got != "c-2" {
		t.Fatalf("expected c-2, got %s", got)
	}
}
