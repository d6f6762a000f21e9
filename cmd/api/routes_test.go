package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/borrower"
	"libraryapi/internal/borrowing"
	"libraryapi/internal/httpx"
)

type testRepos struct {
	authors   *author.MockRepository
	books     *book.MockRepository
	borrowers *borrower.MockRepository
	records   *borrowing.MockRepository
}

func newTestServer(t *testing.T, ready func(context.Context) error) (http.Handler, testRepos) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repos := testRepos{
		authors:   author.NewMockRepository(ctrl),
		books:     book.NewMockRepository(ctrl),
		borrowers: borrower.NewMockRepository(ctrl),
		records:   borrowing.NewMockRepository(ctrl),
	}
	router := newRouter(routes{
		authors:          author.NewHTTPHandler(author.NewService(repos.authors)),
		books:            book.NewHTTPHandler(book.NewService(repos.books, repos.authors)),
		borrowers:        borrower.NewHTTPHandler(borrower.NewService(repos.borrowers)),
		borrowingRecords: borrowing.NewHTTPHandler(borrowing.NewService(repos.records, repos.books, repos.borrowers)),
		ready:            ready,
	})

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return withMiddleware(router, logger, middlewareOptions{maxBodyBytes: 1 << 20}), repos
}

func TestRouting_Collections(t *testing.T) {
	handler, repos := newTestServer(t, nil)

	repos.authors.EXPECT().List(gomock.Any(), gomock.Any()).Return([]author.Author{}, nil).Times(2)
	repos.books.EXPECT().List(gomock.Any(), gomock.Any()).Return([]book.Book{}, nil)
	repos.borrowers.EXPECT().List(gomock.Any(), gomock.Any()).Return([]borrower.Borrower{}, nil)
	repos.records.EXPECT().List(gomock.Any(), gomock.Any()).Return([]borrowing.Record{}, nil)

	for _, path := range []string{"/api/authors", "/api/authors/", "/api/books", "/api/borrowers", "/api/borrowing-records"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String(), path)
		assert.NotEmpty(t, w.Header().Get(httpx.RequestIDHeader), path)
	}
}

func TestRouting_PathID(t *testing.T) {
	handler, repos := newTestServer(t, nil)

	repos.books.EXPECT().GetByID(gomock.Any(), int64(12), book.Include{Author: true}).Return(book.Book{ID: 12}, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books/12", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Book ID must be an integer")
}

func TestRouting_CreateBookEndToEnd(t *testing.T) {
	handler, repos := newTestServer(t, nil)

	repos.authors.EXPECT().Exists(gomock.Any(), int64(404)).Return(false, nil)

	body := `{"title":"T","authorId":404,"publishedDate":"2020-01-01","isbn":"1","genre":"g","availableCopies":1}`
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"status":"400","title":"Invalid Reference","detail":"Invalid authorId"}]}`, w.Body.String())
}

func TestRouting_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestServer(t, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/authors/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouting_Health(t *testing.T) {
	handler, _ := newTestServer(t, func(context.Context) error { return nil })

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouting_NotReady(t *testing.T) {
	handler, _ := newTestServer(t, func(context.Context) error { return errors.New("down") })

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
