// Package integrity verifies that foreign-key values supplied in a request
// name rows that currently exist.
package integrity

import (
	"context"
	"fmt"

	"libraryapi/internal/apperr"
)

// Lookup reports whether a row with the given id exists.
type Lookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, id int64) (bool, error)

func (f LookupFunc) Exists(ctx context.Context, id int64) (bool, error) {
	return f(ctx, id)
}

// Ref is one foreign key in a request. A nil ID means the field was not supplied.
type Ref struct {
	Field  string
	ID     *int64
	Lookup Lookup
}

// Check resolves every supplied reference in order and fails on the first
// dangling one. Omitted references are left alone.
func Check(ctx context.Context, refs ...Ref) error {
	for _, ref := range refs {
		if ref.ID == nil {
			continue
		}
		ok, err := ref.Lookup.Exists(ctx, *ref.ID)
		if err != nil {
			return apperr.Internal(fmt.Errorf("lookup %s %d: %w", ref.Field, *ref.ID, err))
		}
		if !ok {
			return apperr.Reference("Invalid " + ref.Field)
		}
	}
	return nil
}
