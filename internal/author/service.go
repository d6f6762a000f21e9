package author

import (
	"context"
	"errors"
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/validation"
)

const (
	MsgNotFound  = "Author not found"
	MsgDeleted   = "Author successfully deleted"
	MsgInvalidID = "Author ID must be an integer"
)

var rules = validation.RuleSet{
	validation.Required("name",
		validation.Rule("required", "Name is required").OnUpdate("Name cannot be empty"),
	),
	validation.Optional("bio",
		validation.Rule("is_string", "Bio must be a string"),
	),
}

// Service provides author-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new author service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func fieldsFrom(p validation.Payload) Fields {
	return Fields{
		Name:   p.String("name"),
		BioSet: p.Has("bio"),
		Bio:    p.String("bio"),
	}
}

func mapError(err error, op string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(MsgNotFound)
	}
	return apperr.Internal(fmt.Errorf("%s author: %w", op, err))
}

// Create validates the payload and stores a new author.
func (s *Service) Create(ctx context.Context, p validation.Payload) (Author, error) {
	if err := rules.Validate(p, validation.ModeCreate); err != nil {
		return Author{}, err
	}
	a, err := s.repo.Create(ctx, fieldsFrom(p))
	if err != nil {
		return Author{}, mapError(err, "create")
	}
	return a, nil
}

// List returns every author with their books.
func (s *Service) List(ctx context.Context) ([]Author, error) {
	authors, err := s.repo.List(ctx, Include{Books: true})
	if err != nil {
		return nil, mapError(err, "list")
	}
	return authors, nil
}

// Get returns one author with their books.
func (s *Service) Get(ctx context.Context, id int64) (Author, error) {
	a, err := s.repo.GetByID(ctx, id, Include{Books: true})
	if err != nil {
		return Author{}, mapError(err, "get")
	}
	return a, nil
}

// Update applies the supplied fields and returns the reloaded author.
func (s *Service) Update(ctx context.Context, id int64, p validation.Payload) (Author, error) {
	if err := rules.Validate(p, validation.ModeUpdate); err != nil {
		return Author{}, err
	}
	if err := s.repo.Update(ctx, id, fieldsFrom(p)); err != nil {
		return Author{}, mapError(err, "update")
	}
	return s.Get(ctx, id)
}

// Delete removes the author. Their books keep a null author link.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err, "delete")
	}
	return nil
}
