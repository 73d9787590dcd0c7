package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRecord is the relational row backing a page document. The document is
// kept verbatim in Payload; Slug and Title are projected for lookups and lists.
type PageRecord struct {
	bun.BaseModel `bun:"table:pagebuilder_pages,alias:pbp"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	Title     string    `bun:"title" json:"title"`
	Payload   string    `bun:"payload,notnull" json:"payload"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
