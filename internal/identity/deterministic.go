package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys must be namespaced by entity kind so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID returns the stable id of the page addressed by slug.
func PageUUID(slug string) uuid.UUID {
	return UUID("go-pagebuilder:page:" + strings.ToLower(strings.TrimSpace(slug)))
}

// ComponentTypeUUID returns the stable id of a registered component type.
func ComponentTypeUUID(componentType string) uuid.UUID {
	return UUID("go-pagebuilder:component_type:" + strings.ToLower(strings.TrimSpace(componentType)))
}
