package borrower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"libraryapi/internal/platform/database"
)

const table = "borrowers"

var columns = []any{"id", "name", "email", "membership_date"}

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
	if f.Email != nil {
		rec["email"] = *f.Email
	}
	if f.MembershipDate != nil {
		rec["membership_date"] = *f.MembershipDate
	}
	return rec
}

func scanBorrower(row pgx.Row) (Borrower, error) {
	var b Borrower
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.MembershipDate)
	return b, err
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Borrower, error) {
	query, args, err := database.Dialect.Insert(table).
		Rows(f.record()).
		Returning(columns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Borrower{}, fmt.Errorf("build insert: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBorrower(r.db.QueryRow(timeoutCtx, query, args...))
}

func (r *PostgresRepo) List(ctx context.Context, inc Include) ([]Borrower, error) {
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

	out := []Borrower{}
	for rows.Next() {
		b, err := scanBorrower(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if inc.BorrowingRecords {
		if err := r.attachRecords(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64, inc Include) (Borrower, error) {
	query, args, err := database.Dialect.From(table).
		Select(columns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Borrower{}, fmt.Errorf("build select: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBorrower(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Borrower{}, ErrNotFound
		}
		return Borrower{}, err
	}

	if inc.BorrowingRecords {
		borrowers := []Borrower{b}
		if err := r.attachRecords(ctx, borrowers); err != nil {
			return Borrower{}, err
		}
		b = borrowers[0]
	}
	return b, nil
}

// attachRecords loads every borrower's records with the title of each live book.
func (r *PostgresRepo) attachRecords(ctx context.Context, borrowers []Borrower) error {
	if len(borrowers) == 0 {
		return nil
	}
	ids := make([]int64, len(borrowers))
	index := make(map[int64]int, len(borrowers))
	for i := range borrowers {
		ids[i] = borrowers[i].ID
		index[borrowers[i].ID] = i
		borrowers[i].Records = []RecordSummary{}
	}

	query, args, err := database.Dialect.From(goqu.T("borrowing_records").As("r")).
		Select(goqu.I("r.id"), goqu.I("r.borrower_id"), goqu.I("b.id"), goqu.I("b.title")).
		LeftJoin(goqu.T("books").As("b"), goqu.On(
			goqu.I("b.id").Eq(goqu.I("r.book_id")),
			goqu.I("b.deleted_at").IsNull(),
		)).
		Where(goqu.I("r.borrower_id").In(ids)).
		Order(goqu.I("r.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build records select: %w", err)
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
			rec        RecordSummary
			borrowerID int64
			bookID     *int64
			bookTitle  *string
		)
		if err := rows.Scan(&rec.ID, &borrowerID, &bookID, &bookTitle); err != nil {
			return err
		}
		if bookID != nil && bookTitle != nil {
			rec.Book = &BookSummary{ID: *bookID, Title: *bookTitle}
		}
		if i, ok := index[borrowerID]; ok {
			borrowers[i].Records = append(borrowers[i].Records, rec)
		}
	}
	return rows.Err()
}

// Update writes the supplied columns. Borrowers have no updated_at, so an
// empty update only confirms the row exists.
func (r *PostgresRepo) Update(ctx context.Context, id int64, f Fields) error {
	if f.empty() {
		ok, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	}

	query, args, err := database.Dialect.Update(table).
		Set(f.record()).
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
	const query = `DELETE FROM borrowers WHERE id = $1`
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
	const query = `SELECT EXISTS (SELECT 1 FROM borrowers WHERE id = $1)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
