// Package catalog is the demo domain served by cmd/server: a small book
// catalog whose entities are made filterable through descriptor
// configuration.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Author is a catalog author.
type Author struct {
	ID    uuid.UUID
	Name  string
	Email string
	Born  *time.Time
}

// Book is a catalog book. Internal bookkeeping fields are kept out of the
// filter surface via the graphql tag.
type Book struct {
	ID         uuid.UUID
	Title      string
	Subtitle   *string
	Pages      int
	Price      float64
	Published  bool
	ReleasedAt time.Time
	Author     Author
	Checksum   string `graphql:"-"`
}
