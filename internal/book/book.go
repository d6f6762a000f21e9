package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book does not exist or was deleted.
var ErrNotFound = errors.New("book not found")

// ResourceType names books in response documents.
const ResourceType = "books"

// Book represents a catalog title. Deleted books keep their row with DeletedAt set.
type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	AuthorID        *int64     `json:"authorId"`
	PublishedDate   time.Time  `json:"publishedDate"`
	ISBN            string     `json:"isbn"`
	Genre           string     `json:"genre"`
	AvailableCopies int64      `json:"availableCopies"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`

	Author *AuthorSummary `json:"-"`
}

// AuthorSummary is the author shown alongside a book.
type AuthorSummary struct {
	ID   int64
	Name string
	Bio  *string
}

// Fields carries the columns a create or update request supplied.
type Fields struct {
	Title           *string
	AuthorID        *int64
	PublishedDate   *time.Time
	ISBN            *string
	Genre           *string
	AvailableCopies *int64
}
