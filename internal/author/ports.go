package author

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=author

// Include selects the relations loaded alongside authors.
type Include struct {
	Books bool
}

// Repository defines the contract for author data storage.
type Repository interface {
	Create(ctx context.Context, f Fields) (Author, error)
	List(ctx context.Context, inc Include) ([]Author, error)
	GetByID(ctx context.Context, id int64, inc Include) (Author, error)
	Update(ctx context.Context, id int64, f Fields) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
