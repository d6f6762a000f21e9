package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"libraryapi/internal/platform/database"
)

type PostgresRepo struct {
	db      database.DBTX
	timeout time.Duration
}

func NewPostgresRepo(db database.DBTX, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

var bookColumns = []any{
	goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.author_id"), goqu.I("b.published_date"),
	goqu.I("b.isbn"), goqu.I("b.genre"), goqu.I("b.available_copies"),
	goqu.I("b.created_at"), goqu.I("b.updated_at"), goqu.I("b.deleted_at"),
}

var returningColumns = []any{
	"id", "title", "author_id", "published_date", "isbn", "genre", "available_copies",
	"created_at", "updated_at", "deleted_at",
}

func (f Fields) record() goqu.Record {
	rec := goqu.Record{}
	if f.Title != nil {
		rec["title"] = *f.Title
	}
	if f.AuthorID != nil {
		rec["author_id"] = *f.AuthorID
	}
	if f.PublishedDate != nil {
		rec["published_date"] = *f.PublishedDate
	}
	if f.ISBN != nil {
		rec["isbn"] = *f.ISBN
	}
	if f.Genre != nil {
		rec["genre"] = *f.Genre
	}
	if f.AvailableCopies != nil {
		rec["available_copies"] = *f.AvailableCopies
	}
	return rec
}

func (r *PostgresRepo) selectBooks(inc Include, where ...exp.Expression) *goqu.SelectDataset {
	ds := database.Dialect.From(goqu.T("books").As("b")).
		Select(bookColumns...).
		Where(append([]exp.Expression{goqu.I("b.deleted_at").IsNull()}, where...)...).
		Order(goqu.I("b.id").Asc())
	if inc.Author {
		ds = ds.LeftJoin(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
			SelectAppend(goqu.I("a.id"), goqu.I("a.name"), goqu.I("a.bio"))
	}
	return ds.Prepared(true)
}

func scanBook(row pgx.Row, inc Include) (Book, error) {
	var b Book
	dest := []any{
		&b.ID, &b.Title, &b.AuthorID, &b.PublishedDate, &b.ISBN, &b.Genre, &b.AvailableCopies,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	}

	var (
		authorID   *int64
		authorName *string
		authorBio  *string
	)
	if inc.Author {
		dest = append(dest, &authorID, &authorName, &authorBio)
	}
	if err := row.Scan(dest...); err != nil {
		return Book{}, err
	}
	if authorID != nil && authorName != nil {
		b.Author = &AuthorSummary{ID: *authorID, Name: *authorName, Bio: authorBio}
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Book, error) {
	query, args, err := database.Dialect.Insert("books").
		Rows(f.record()).
		Returning(returningColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build insert: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, args...), Include{})
}

func (r *PostgresRepo) List(ctx context.Context, inc Include) ([]Book, error) {
	query, args, err := r.selectBooks(inc).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows, inc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64, inc Include) (Book, error) {
	query, args, err := r.selectBooks(inc, goqu.I("b.id").Eq(id)).ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...), inc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, f Fields) error {
	rec := f.record()
	rec["updated_at"] = goqu.L("NOW()")

	query, args, err := database.Dialect.Update("books").
		Set(rec).
		Where(goqu.C("id").Eq(id), goqu.C("deleted_at").IsNull()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at. Deleting an already deleted book reports ErrNotFound.
func (r *PostgresRepo) SoftDelete(ctx context.Context, id int64) error {
	const query = `
	UPDATE books SET deleted_at = NOW(), updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a live book has the id.
func (r *PostgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1 AND deleted_at IS NULL)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
