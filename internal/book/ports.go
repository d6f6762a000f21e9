package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Include selects the relations loaded alongside books.
type Include struct {
	Author bool
}

// Repository defines the contract for book data storage. Deleted books are
// invisible to every method.
type Repository interface {
	Create(ctx context.Context, f Fields) (Book, error)
	List(ctx context.Context, inc Include) ([]Book, error)
	GetByID(ctx context.Context, id int64, inc Include) (Book, error)
	Update(ctx context.Context, id int64, f Fields) error
	SoftDelete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
