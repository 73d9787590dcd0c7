package identity

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generator produces a fresh identifier on every call.
type Generator func() string

// UUIDv7 returns time ordered UUIDs, so component ids sort by creation.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed prepends prefix to every id produced by gen.
func Prefixed(prefix string, gen Generator) Generator {
	if gen == nil {
		gen = UUIDv7()
	}
	return func() string {
		return prefix + gen()
	}
}

// ComponentID builds a component id of the form "<type>-<uuid>".
func ComponentID(gen Generator, componentType string) string {
	if gen == nil {
		gen = UUIDv7()
	}
	componentType = strings.TrimSpace(componentType)
	if componentType == "" {
		return gen()
	}
	return componentType + "-" + gen()
}

// Sequence returns a deterministic generator used by tests and fixtures.
func Sequence(prefix string) Generator {
	next := 0
	return func() string {
		next++
		return prefix + strconv.Itoa(next)
	}
}
