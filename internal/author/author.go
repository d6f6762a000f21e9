package author

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an author does not exist.
var ErrNotFound = errors.New("author not found")

// ResourceType names authors in response documents.
const ResourceType = "authors"

// Author is a writer of books in the catalog.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Books is only populated when requested through Include.
	Books []BookSummary `json:"-"`
}

// BookSummary is the slice of a book shown under its author.
type BookSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Fields carries the columns a create or update request supplied.
type Fields struct {
	Name *string
	// BioSet distinguishes an explicit null bio from an omitted one.
	BioSet bool
	Bio    *string
}
