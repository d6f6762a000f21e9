// Package borrowing tracks loans of books to borrowers.
package borrowing

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a borrowing record does not exist.
var ErrNotFound = errors.New("borrowing record not found")

// ResourceType names borrowing records in response documents.
const ResourceType = "borrowingRecords"

// Status is the loan state. Any transition between the two values is allowed.
type Status string

const (
	StatusBorrowed Status = "Borrowed"
	StatusReturned Status = "Returned"
)

// Record is one loan of a book to a borrower.
type Record struct {
	ID         int64      `json:"id"`
	BookID     *int64     `json:"bookId"`
	BorrowerID *int64     `json:"borrowerId"`
	BorrowDate time.Time  `json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Book     *BookSummary     `json:"-"`
	Borrower *BorrowerSummary `json:"-"`
}

type BookSummary struct {
	ID    int64
	Title string
}

type BorrowerSummary struct {
	ID   int64
	Name string
}

// Fields carries the columns a create or update request supplied.
type Fields struct {
	BookID     *int64
	BorrowerID *int64
	BorrowDate *time.Time
	ReturnDate *time.Time
	Status     *Status
}
