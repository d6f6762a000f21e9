package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/borrower"
	"libraryapi/internal/borrowing"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
	"libraryapi/internal/platform/database"
	"libraryapi/internal/platform/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.Open(ctx, database.Options{DSN: cfg.DatabaseDSN, MaxConns: cfg.DBMaxConns})
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("database connection OK", "dsn", database.RedactDSN(cfg.DatabaseDSN))

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	authorRepository := author.NewPostgresRepo(dbPool, cfg.DBQueryTimeout)
	bookRepository := book.NewPostgresRepo(dbPool, cfg.DBQueryTimeout)
	borrowerRepository := borrower.NewPostgresRepo(dbPool, cfg.DBQueryTimeout)
	borrowingRepository := borrowing.NewPostgresRepo(dbPool, cfg.DBQueryTimeout)

	authorService := author.NewService(authorRepository)
	bookService := book.NewService(bookRepository, authorRepository)
	borrowerService := borrower.NewService(borrowerRepository)
	borrowingService := borrowing.NewService(borrowingRepository, bookRepository, borrowerRepository)

	router := newRouter(routes{
		authors:          author.NewHTTPHandler(authorService),
		books:            book.NewHTTPHandler(bookService),
		borrowers:        borrower.NewHTTPHandler(borrowerService),
		borrowingRecords: borrowing.NewHTTPHandler(borrowingService),
		ready:            dbPool.Ping,
	})

	var rateLimiter *httpx.RateLimitMiddleware
	if cfg.RateLimitRPS > 0 {
		rateLimiter = httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go rateLimiter.Run(ctx.Done())
	}

	httpServer := &http.Server{
		Addr: cfg.Addr,
		Handler: withMiddleware(router, logger, middlewareOptions{
			allowedOrigins: cfg.CORSAllowedOrigins,
			maxBodyBytes:   cfg.MaxBodyBytes,
			rateLimiter:    rateLimiter,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}
