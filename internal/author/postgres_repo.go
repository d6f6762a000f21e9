package author

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"libraryapi/internal/platform/database"
)

const table = "authors"

var columns = []any{"id", "name", "bio", "created_at", "updated_at"}

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

func (f Fields) record() goqu.Record {
	rec := goqu.Record{}
	if f.Name != nil {
		rec["name"] = *f.Name
	}
	if f.BioSet {
		if f.Bio != nil {
			rec["bio"] = *f.Bio
		} else {
			rec["bio"] = nil
		}
	}
	return rec
}

func scanAuthor(row pgx.Row) (Author, error) {
	var a Author
	err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Author, error) {
	query, args, err := database.Dialect.Insert(table).
		Rows(f.record()).
		Returning(columns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Author{}, fmt.Errorf("build insert: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanAuthor(r.db.QueryRow(timeoutCtx, query, args...))
}

func (r *PostgresRepo) List(ctx context.Context, inc Include) ([]Author, error) {
	query, args, err := database.Dialect.From(table).
		Select(columns...).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
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

	out := []Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if inc.Books {
		if err := r.attachBooks(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64, inc Include) (Author, error) {
	query, args, err := database.Dialect.From(table).
		Select(columns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Author{}, fmt.Errorf("build select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	a, err := scanAuthor(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, err
	}

	if inc.Books {
		authors := []Author{a}
		if err := r.attachBooks(ctx, authors); err != nil {
			return Author{}, err
		}
		a = authors[0]
	}
	return a, nil
}

// attachBooks loads the live books of every author in one query.
func (r *PostgresRepo) attachBooks(ctx context.Context, authors []Author) error {
	if len(authors) == 0 {
		return nil
	}
	ids := make([]int64, len(authors))
	index := make(map[int64]int, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
		index[authors[i].ID] = i
		authors[i].Books = []BookSummary{}
	}

	query, args, err := database.Dialect.From("books").
		Select("id", "title", "author_id").
		Where(goqu.C("author_id").In(ids), goqu.C("deleted_at").IsNull()).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build books select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b        BookSummary
			authorID int64
		)
		if err := rows.Scan(&b.ID, &b.Title, &authorID); err != nil {
			return err
		}
		if i, ok := index[authorID]; ok {
			authors[i].Books = append(authors[i].Books, b)
		}
	}
	return rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, f Fields) error {
	rec := f.record()
	rec["updated_at"] = goqu.L("NOW()")

	query, args, err := database.Dialect.Update(table).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
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

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM authors WHERE id = $1`
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

func (r *PostgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
