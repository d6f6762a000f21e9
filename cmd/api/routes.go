package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"libraryapi/internal/httpx"
)

type resourceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type routes struct {
	authors          resourceHandler
	books            resourceHandler
	borrowers        resourceHandler
	borrowingRecords resourceHandler
	// ready reports whether the database answers.
	ready func(ctx context.Context) error
}

func newRouter(rt routes) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := rt.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mountResource(router, "/api/authors", rt.authors)
	mountResource(router, "/api/books", rt.books)
	mountResource(router, "/api/borrowers", rt.borrowers)
	mountResource(router, "/api/borrowing-records", rt.borrowingRecords)

	return router
}

// mountResource registers the five CRUD routes. The collection answers with
// and without a trailing slash.
func mountResource(router *http.ServeMux, prefix string, h resourceHandler) {
	router.HandleFunc("POST "+prefix, h.Create)
	router.HandleFunc("POST "+prefix+"/{$}", h.Create)
	router.HandleFunc("GET "+prefix, h.List)
	router.HandleFunc("GET "+prefix+"/{$}", h.List)
	router.HandleFunc("GET "+prefix+"/{id}", h.Get)
	router.HandleFunc("PUT "+prefix+"/{id}", h.Update)
	router.HandleFunc("DELETE "+prefix+"/{id}", h.Delete)
}

type middlewareOptions struct {
	allowedOrigins []string
	maxBodyBytes   int64
	rateLimiter    *httpx.RateLimitMiddleware
}

func withMiddleware(h http.Handler, logger *slog.Logger, opts middlewareOptions) http.Handler {
	chain := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(opts.allowedOrigins),
	}
	if opts.rateLimiter != nil {
		chain = append(chain, opts.rateLimiter.Middleware)
	}
	chain = append(chain, httpx.RequestSizeLimitMiddleware(opts.maxBodyBytes))
	return httpx.Chain(h, chain...)
}
