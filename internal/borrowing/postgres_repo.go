package borrowing

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

var recordColumns = []any{
	goqu.I("r.id"), goqu.I("r.book_id"), goqu.I("r.borrower_id"), goqu.I("r.borrow_date"),
	goqu.I("r.return_date"), goqu.I("r.status"), goqu.I("r.created_at"), goqu.I("r.updated_at"),
}

var returningColumns = []any{
	"id", "book_id", "borrower_id", "borrow_date", "return_date", "status", "created_at", "updated_at",
}

func (f Fields) record() goqu.Record {
	rec := goqu.Record{}
	if f.BookID != nil {
		rec["book_id"] = *f.BookID
	}
	if f.BorrowerID != nil {
		rec["borrower_id"] = *f.BorrowerID
	}
	if f.BorrowDate != nil {
		rec["borrow_date"] = *f.BorrowDate
	}
	if f.ReturnDate != nil {
		rec["return_date"] = *f.ReturnDate
	}
	if f.Status != nil {
		rec["status"] = string(*f.Status)
	}
	return rec
}

func (r *PostgresRepo) selectRecords(inc Include, where ...exp.Expression) *goqu.SelectDataset {
	ds := database.Dialect.From(goqu.T("borrowing_records").As("r")).
		Select(recordColumns...).
		Where(where...).
		Order(goqu.I("r.id").Asc())
	if inc.Book {
		ds = ds.LeftJoin(goqu.T("books").As("b"), goqu.On(
			goqu.I("b.id").Eq(goqu.I("r.book_id")),
			goqu.I("b.deleted_at").IsNull(),
		)).SelectAppend(goqu.I("b.id"), goqu.I("b.title"))
	}
	if inc.Borrower {
		ds = ds.LeftJoin(goqu.T("borrowers").As("br"), goqu.On(goqu.I("br.id").Eq(goqu.I("r.borrower_id")))).
			SelectAppend(goqu.I("br.id"), goqu.I("br.name"))
	}
	return ds.Prepared(true)
}

func scanRecord(row pgx.Row, inc Include) (Record, error) {
	var (
		rec    Record
		status string
	)
	dest := []any{
		&rec.ID, &rec.BookID, &rec.BorrowerID, &rec.BorrowDate,
		&rec.ReturnDate, &status, &rec.CreatedAt, &rec.UpdatedAt,
	}

	var (
		bookID, borrowerID    *int64
		bookTitle, borrowerNm *string
	)
	if inc.Book {
		dest = append(dest, &bookID, &bookTitle)
	}
	if inc.Borrower {
		dest = append(dest, &borrowerID, &borrowerNm)
	}
	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}

	rec.Status = Status(status)
	if bookID != nil && bookTitle != nil {
		rec.Book = &BookSummary{ID: *bookID, Title: *bookTitle}
	}
	if borrowerID != nil && borrowerNm != nil {
		rec.Borrower = &BorrowerSummary{ID: *borrowerID, Name: *borrowerNm}
	}
	return rec, nil
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Record, error) {
	query, args, err := database.Dialect.Insert("borrowing_records").
		Rows(f.record()).
		Returning(returningColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Record{}, fmt.Errorf("build insert: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanRecord(r.db.QueryRow(timeoutCtx, query, args...), Include{})
}

func (r *PostgresRepo) List(ctx context.Context, inc Include) ([]Record, error) {
	query, args, err := r.selectRecords(inc).ToSQL()
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

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows, inc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64, inc Include) (Record, error) {
	query, args, err := r.selectRecords(inc, goqu.I("r.id").Eq(id)).ToSQL()
	if err != nil {
		return Record{}, fmt.Errorf("build select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rec, err := scanRecord(r.db.QueryRow(timeoutCtx, query, args...), inc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, f Fields) error {
	rec := f.record()
	rec["updated_at"] = goqu.L("NOW()")

	query, args, err := database.Dialect.Update("borrowing_records").
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
	const query = `DELETE FROM borrowing_records WHERE id = $1`
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
	const query = `SELECT EXISTS (SELECT 1 FROM borrowing_records WHERE id = $1)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
