package borrowing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/testutil"
)

func TestPostgresRepo_Lifecycle(t *testing.T) {
	pool := testutil.OpenTestDB(t, "borrowing_repo_test")
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	var bookID, borrowerID int64
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO books (title, published_date, isbn, genre, available_copies)
		VALUES ('Dune', '1965-08-01', '9780441013593', 'Science Fiction', 4) RETURNING id`).Scan(&bookID))
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO borrowers (name, email) VALUES ('Paul', 'paul@arrakis.test') RETURNING id`).Scan(&borrowerID))

	borrowed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	status := StatusBorrowed
	created, err := repo.Create(ctx, Fields{BookID: &bookID, BorrowerID: &borrowerID, BorrowDate: &borrowed, Status: &status})
	require.NoError(t, err)
	assert.Nil(t, created.ReturnDate)
	assert.Equal(t, StatusBorrowed, created.Status)

	got, err := repo.GetByID(ctx, created.ID, Include{Book: true, Borrower: true})
	require.NoError(t, err)
	require.NotNil(t, got.Book)
	require.NotNil(t, got.Borrower)
	assert.Equal(t, "Dune", got.Book.Title)
	assert.Equal(t, "Paul", got.Borrower.Name)

	returned := StatusReturned
	returnedAt := borrowed.Add(14 * 24 * time.Hour)
	require.NoError(t, repo.Update(ctx, created.ID, Fields{Status: &returned, ReturnDate: &returnedAt}))

	_, err = pool.Exec(ctx, `UPDATE books SET deleted_at = NOW() WHERE id = $1`, bookID)
	require.NoError(t, err)

	list, err := repo.List(ctx, Include{Book: true, Borrower: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusReturned, list[0].Status)
	require.NotNil(t, list[0].ReturnDate)
	assert.True(t, list[0].ReturnDate.Equal(returnedAt))
	assert.Nil(t, list[0].Book, "deleted books are not joined")
	assert.NotNil(t, list[0].BookID)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID, Include{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}

func TestPostgresRepo_StatusConstraint(t *testing.T) {
	pool := testutil.OpenTestDB(t, "borrowing_repo_test")
	repo := NewPostgresRepo(pool, 5*time.Second)

	borrowed := time.Now()
	bogus := Status("Lost")
	_, err := repo.Create(context.Background(), Fields{BorrowDate: &borrowed, Status: &bogus})
	assert.Error(t, err)
}
