package borrowing

import (
	"context"
	"errors"
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/integrity"
	"libraryapi/internal/platform/validation"
)

const (
	MsgNotFound  = "Borrowing Record not found"
	MsgDeleted   = "Borrowing Record successfully deleted"
	MsgInvalidID = "Borrowing Record ID must be an integer"
)

var rules = validation.RuleSet{
	validation.Required("bookId",
		validation.Rule("is_int", "Book ID must be an integer"),
	),
	validation.Required("borrowerId",
		validation.Rule("is_int", "Borrower ID must be an integer"),
	),
	validation.Required("borrowDate",
		validation.Rule("iso8601", "Valid borrow date is required"),
	),
	validation.Optional("returnDate",
		validation.Rule("iso8601", "Valid return date is required"),
	),
	validation.Required("status",
		validation.Rule("oneof="+string(StatusBorrowed)+" "+string(StatusReturned), "Status must be either Borrowed or Returned"),
	),
}

var fullInclude = Include{Book: true, Borrower: true}

// Service provides borrowing-record business logic.
type Service struct {
	repo      Repository
	books     integrity.Lookup
	borrowers integrity.Lookup
}

// NewService creates a new borrowing service. books must only report live books.
func NewService(repo Repository, books, borrowers integrity.Lookup) *Service {
	return &Service{repo: repo, books: books, borrowers: borrowers}
}

func fieldsFrom(p validation.Payload) Fields {
	f := Fields{
		BookID:     p.Int("bookId"),
		BorrowerID: p.Int("borrowerId"),
		BorrowDate: p.Time("borrowDate"),
		ReturnDate: p.Time("returnDate"),
	}
	if s := p.String("status"); s != nil {
		status := Status(*s)
		f.Status = &status
	}
	return f
}

func mapError(err error, op string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(MsgNotFound)
	}
	return apperr.Internal(fmt.Errorf("%s borrowing record: %w", op, err))
}

func (s *Service) checkRefs(ctx context.Context, f Fields) error {
	return integrity.Check(ctx,
		integrity.Ref{Field: "bookId", ID: f.BookID, Lookup: s.books},
		integrity.Ref{Field: "borrowerId", ID: f.BorrowerID, Lookup: s.borrowers},
	)
}

// Create validates the payload, checks both references and stores the record.
// Available copies are not adjusted.
func (s *Service) Create(ctx context.Context, p validation.Payload) (Record, error) {
	if err := rules.Validate(p, validation.ModeCreate); err != nil {
		return Record{}, err
	}
	f := fieldsFrom(p)
	if err := s.checkRefs(ctx, f); err != nil {
		return Record{}, err
	}
	rec, err := s.repo.Create(ctx, f)
	if err != nil {
		return Record{}, mapError(err, "create")
	}
	return rec, nil
}

// List returns every record with its book and borrower.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.repo.List(ctx, fullInclude)
	if err != nil {
		return nil, mapError(err, "list")
	}
	return records, nil
}

// Get returns one record with its book and borrower.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id, fullInclude)
	if err != nil {
		return Record{}, mapError(err, "get")
	}
	return rec, nil
}

// Update applies the supplied fields and returns the reloaded record.
func (s *Service) Update(ctx context.Context, id int64, p validation.Payload) (Record, error) {
	if err := rules.Validate(p, validation.ModeUpdate); err != nil {
		return Record{}, err
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return Record{}, mapError(err, "update")
	}
	if !exists {
		return Record{}, apperr.NotFound(MsgNotFound)
	}

	f := fieldsFrom(p)
	if err := s.checkRefs(ctx, f); err != nil {
		return Record{}, err
	}
	if err := s.repo.Update(ctx, id, f); err != nil {
		return Record{}, mapError(err, "update")
	}
	return s.Get(ctx, id)
}

// Delete removes the record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "delete")
	}
	return nil
}
