package borrower

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a borrower does not exist.
var ErrNotFound = errors.New("borrower not found")

// ResourceType names borrowers in response documents.
const ResourceType = "borrowers"

// Borrower is a library member. Borrowers carry no audit timestamps.
type Borrower struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	MembershipDate time.Time `json:"membershipDate"`

	Records []RecordSummary `json:"-"`
}

// RecordSummary is a borrowing record listed under its borrower. Book is nil
// when the book was deleted or unlinked.
type RecordSummary struct {
	ID   int64
	Book *BookSummary
}

type BookSummary struct {
	ID    int64
	Title string
}

// Fields carries the columns a create or update request supplied.
type Fields struct {
	Name           *string
	Email          *string
	MembershipDate *time.Time
}

func (f Fields) empty() bool {
	return f.Name == nil && f.Email == nil && f.MembershipDate == nil
}
