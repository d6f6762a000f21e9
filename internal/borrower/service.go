package borrower

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/validation"
)

const (
	MsgNotFound  = "Borrower not found"
	MsgDeleted   = "Borrower successfully deleted"
	MsgInvalidID = "Borrower ID must be an integer"
)

var rules = validation.RuleSet{
	validation.Required("name",
		validation.Rule("required", "Name is required").OnUpdate("Name cannot be empty"),
	),
	validation.Required("email",
		validation.Rule("required,email", "Valid email is required"),
	),
	validation.Optional("membershipDate",
		validation.Rule("iso8601", "Valid membership date is required"),
	),
}

// Service provides borrower-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new borrower service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func fieldsFrom(p validation.Payload) Fields {
	return Fields{
		Name:           p.String("name"),
		Email:          p.String("email"),
		MembershipDate: p.Time("membershipDate"),
	}
}

func mapError(err error, op string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(MsgNotFound)
	}
	return apperr.Internal(fmt.Errorf("%s borrower: %w", op, err))
}

// Create validates the payload and enrolls a borrower. A blank
// membershipDate is dropped so the database stamps the enrollment time.
func (s *Service) Create(ctx context.Context, p validation.Payload) (Borrower, error) {
	if v, ok := p["membershipDate"].(string); ok && strings.TrimSpace(v) == "" {
		delete(p, "membershipDate")
	}
	if err := rules.Validate(p, validation.ModeCreate); err != nil {
		return Borrower{}, err
	}
	b, err := s.repo.Create(ctx, fieldsFrom(p))
	if err != nil {
		return Borrower{}, mapError(err, "create")
	}
	return b, nil
}

// List returns every borrower with their borrowing records.
func (s *Service) List(ctx context.Context) ([]Borrower, error) {
	borrowers, err := s.repo.List(ctx, Include{BorrowingRecords: true})
	if err != nil {
		return nil, mapError(err, "list")
	}
	return borrowers, nil
}

// Get returns one borrower with their borrowing records.
func (s *Service) Get(ctx context.Context, id int64) (Borrower, error) {
	b, err := s.repo.GetByID(ctx, id, Include{BorrowingRecords: true})
	if err != nil {
		return Borrower{}, mapError(err, "get")
	}
	return b, nil
}

// Update applies the supplied fields and returns the reloaded borrower.
func (s *Service) Update(ctx context.Context, id int64, p validation.Payload) (Borrower, error) {
	if err := rules.Validate(p, validation.ModeUpdate); err != nil {
		return Borrower{}, err
	}
	if err := s.repo.Update(ctx, id, fieldsFrom(p)); err != nil {
		return Borrower{}, mapError(err, "update")
	}
	return s.Get(ctx, id)
}

// Delete removes the borrower. Their records keep a null borrower link.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "delete")
	}
	return nil
}
