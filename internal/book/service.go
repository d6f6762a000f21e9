package book

import (
	"context"
	"errors"
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/integrity"
	"libraryapi/internal/platform/validation"
)

const (
	MsgNotFound  = "Book not found"
	MsgDeleted   = "Book successfully deleted"
	MsgInvalidID = "Book ID must be an integer"
)

var rules = validation.RuleSet{
	validation.Required("title",
		validation.Rule("required", "Title is required").OnUpdate("Title cannot be empty"),
	),
	validation.Required("authorId",
		validation.Rule("is_int", "Author ID must be an integer"),
	),
	validation.Required("publishedDate",
		validation.Rule("iso8601", "Published Date must be a valid date"),
	),
	validation.Required("isbn",
		validation.Rule("required", "ISBN is required").OnUpdate("ISBN cannot be empty"),
	),
	validation.Required("genre",
		validation.Rule("required", "Genre is required").OnUpdate("Genre cannot be empty"),
	),
	validation.Required("availableCopies",
		validation.Rule("is_int,int_gte=0,int_lte=2147483647", "Available Copies must be a non-negative integer"),
	),
}

// Service provides book-related business logic.
type Service struct {
	repo    Repository
	authors integrity.Lookup
}

// NewService creates a new book service. authors resolves authorId references.
func NewService(repo Repository, authors integrity.Lookup) *Service {
	return &Service{repo: repo, authors: authors}
}

func fieldsFrom(p validation.Payload) Fields {
	return Fields{
		Title:           p.String("title"),
		AuthorID:        p.Int("authorId"),
		PublishedDate:   p.Time("publishedDate"),
		ISBN:            p.String("isbn"),
		Genre:           p.String("genre"),
		AvailableCopies: p.Int("availableCopies"),
	}
}

func mapError(err error, op string) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(MsgNotFound)
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal(fmt.Errorf("%s book: %w", op, err))
}

func (s *Service) checkRefs(ctx context.Context, f Fields) error {
	return integrity.Check(ctx, integrity.Ref{Field: "authorId", ID: f.AuthorID, Lookup: s.authors})
}

// Create validates the payload, checks the author and stores the book.
func (s *Service) Create(ctx context.Context, p validation.Payload) (Book, error) {
	if err := rules.Validate(p, validation.ModeCreate); err != nil {
		return Book{}, err
	}
	f := fieldsFrom(p)
	if err := s.checkRefs(ctx, f); err != nil {
		return Book{}, err
	}
	b, err := s.repo.Create(ctx, f)
	if err != nil {
		return Book{}, mapError(err, "create")
	}
	return b, nil
}

// List returns every live book with its author.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx, Include{Author: true})
	if err != nil {
		return nil, mapError(err, "list")
	}
	return books, nil
}

// Get returns one live book with its author.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.GetByID(ctx, id, Include{Author: true})
	if err != nil {
		return Book{}, mapError(err, "get")
	}
	return b, nil
}

// Update applies the supplied fields and returns the reloaded book.
func (s *Service) Update(ctx context.Context, id int64, p validation.Payload) (Book, error) {
	if err := rules.Validate(p, validation.ModeUpdate); err != nil {
		return Book{}, err
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return Book{}, mapError(err, "update")
	}
	if !exists {
		return Book{}, apperr.NotFound(MsgNotFound)
	}

	f := fieldsFrom(p)
	if err := s.checkRefs(ctx, f); err != nil {
		return Book{}, err
	}
	if err := s.repo.Update(ctx, id, f); err != nil {
		return Book{}, mapError(err, "update")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes the book.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return mapError(err, "delete")
	}
	return nil
}
