package borrower

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=borrower

// Include selects the relations loaded alongside borrowers.
type Include struct {
	// BorrowingRecords loads each record together with its book title.
	BorrowingRecords bool
}

// Repository defines the contract for borrower data storage.
type Repository interface {
	Create(ctx context.Context, f Fields) (Borrower, error)
	List(ctx context.Context, inc Include) ([]Borrower, error)
	GetByID(ctx context.Context, id int64, inc Include) (Borrower, error)
	Update(ctx context.Context, id int64, f Fields) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
