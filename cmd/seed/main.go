package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/author"
	"libraryapi/internal/borrower"
	"libraryapi/internal/borrowing"
	"libraryapi/internal/config"
	"libraryapi/internal/platform/database"
	"libraryapi/internal/platform/logging"
)

type options struct {
	authors        int
	booksPerAuthor int
	borrowers      int
	loans          int
	reset          bool
}

var genres = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}

func main() {
	var opts options
	flag.IntVar(&opts.authors, "authors", 20, "Number of authors")
	flag.IntVar(&opts.booksPerAuthor, "books-per-author", 5, "Books written by each author")
	flag.IntVar(&opts.borrowers, "borrowers", 50, "Number of borrowers")
	flag.IntVar(&opts.loans, "loans", 100, "Number of borrowing records")
	flag.BoolVar(&opts.reset, "reset", false, "Empty every library table first")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(os.Stderr, "text", cfg.LogLevel)

	ctx := context.Background()
	pool, err := database.Open(ctx, database.Options{DSN: cfg.DatabaseDSN})
	if err != nil {
		logger.Error("connect", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool, cfg.DBQueryTimeout, opts, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, opts options, logger *slog.Logger) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.reset {
		if _, err := pool.Exec(ctx, `TRUNCATE borrowing_records, books, borrowers, authors RESTART IDENTITY CASCADE`); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		logger.Info("tables emptied")
	}

	authors := author.NewPostgresRepo(pool, timeout)
	authorIDs := make([]int64, 0, opts.authors)
	for i := 0; i < opts.authors; i++ {
		name := fmt.Sprintf("Author %d %s", i+1, getRandomWord(rng))
		bio := fmt.Sprintf("Writes about %s.", getRandomWord(rng))
		a, err := authors.Create(ctx, author.Fields{Name: &name, BioSet: true, Bio: &bio})
		if err != nil {
			return fmt.Errorf("create author: %w", err)
		}
		authorIDs = append(authorIDs, a.ID)
	}
	logger.Info("authors inserted", "count", len(authorIDs))

	// Books go through COPY; there can be many more of them.
	now := time.Now()
	rows := make([][]any, 0, len(authorIDs)*opts.booksPerAuthor)
	for _, authorID := range authorIDs {
		for j := 0; j < opts.booksPerAuthor; j++ {
			n := len(rows) + 1
			rows = append(rows, []any{
				fmt.Sprintf("Book Title %d - %s", n, getRandomWord(rng)),
				authorID,
				time.Date(1950+rng.Intn(75), time.Month(1+rng.Intn(12)), 1, 0, 0, 0, 0, time.UTC),
				fmt.Sprintf("978-%010d", n),
				genres[rng.Intn(len(genres))],
				int32(rng.Intn(10)),
				now,
				now,
			})
		}
	}
	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"books"},
		[]string{"title", "author_id", "published_date", "isbn", "genre", "available_copies", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy books: %w", err)
	}
	logger.Info("books inserted", "count", copied)

	borrowers := borrower.NewPostgresRepo(pool, timeout)
	borrowerIDs := make([]int64, 0, opts.borrowers)
	for i := 0; i < opts.borrowers; i++ {
		name := fmt.Sprintf("Borrower %d", i+1)
		email := fmt.Sprintf("borrower%d@library.test", i+1)
		joined := now.AddDate(0, -rng.Intn(36), 0)
		b, err := borrowers.Create(ctx, borrower.Fields{Name: &name, Email: &email, MembershipDate: &joined})
		if err != nil {
			return fmt.Errorf("create borrower: %w", err)
		}
		borrowerIDs = append(borrowerIDs, b.ID)
	}
	logger.Info("borrowers inserted", "count", len(borrowerIDs))

	bookIDs, err := liveBookIDs(ctx, pool)
	if err != nil {
		return err
	}
	if len(bookIDs) == 0 || len(borrowerIDs) == 0 {
		logger.Info("no books or borrowers, skipping loans")
		return nil
	}

	records := borrowing.NewPostgresRepo(pool, timeout)
	for i := 0; i < opts.loans; i++ {
		bookID := bookIDs[rng.Intn(len(bookIDs))]
		borrowerID := borrowerIDs[rng.Intn(len(borrowerIDs))]
		borrowed := now.AddDate(0, 0, -rng.Intn(120))
		status := borrowing.StatusBorrowed
		f := borrowing.Fields{BookID: &bookID, BorrowerID: &borrowerID, BorrowDate: &borrowed, Status: &status}
		if rng.Intn(2) == 0 {
			returned := borrowed.AddDate(0, 0, 1+rng.Intn(21))
			status = borrowing.StatusReturned
			f.ReturnDate = &returned
		}
		if _, err := records.Create(ctx, f); err != nil {
			return fmt.Errorf("create borrowing record: %w", err)
		}
	}
	logger.Info("borrowing records inserted", "count", opts.loans)
	return nil
}

func liveBookIDs(ctx context.Context, pool *pgxpool.Pool) ([]int64, error) {
	rows, err := pool.Query(ctx, `SELECT id FROM books WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func getRandomWord(rng *rand.Rand) string {
	words := []string{"Adventure", "Mystery", "Journey", "Discovery", "Secret", "Legacy", "Quest", "Dream", "Shadow", "Light", "Storm", "Fire", "Ocean", "Mountain", "Forest", "Desert", "Star", "Moon", "Sun", "Earth"}
	return words[rng.Intn(len(words))]
}
