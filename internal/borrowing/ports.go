package borrowing

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=borrowing

// Include selects the relations loaded alongside records.
type Include struct {
	Book     bool
	Borrower bool
}

// Repository defines the contract for borrowing record storage.
type Repository interface {
	Create(ctx context.Context, f Fields) (Record, error)
	List(ctx context.Context, inc Include) ([]Record, error)
	GetByID(ctx context.Context, id int64, inc Include) (Record, error)
	Update(ctx context.Context, id int64, f Fields) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
