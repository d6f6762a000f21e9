package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/testutil"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(mockRepo, authorsWith(1))), mockRepo
}

func TestHTTPHandler_Create(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success echoes the record", func(t *testing.T) {
		authorID := int64(1)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(Book{
			ID: 3, Title: "The Dispossessed", AuthorID: &authorID, ISBN: "9780060512750",
			Genre: "Science Fiction", AvailableCopies: 3,
			PublishedDate: time.Date(1974, 5, 1, 0, 0, 0, 0, time.UTC),
		}, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/api/books", map[string]any{
			"title": "The Dispossessed", "authorId": 1, "publishedDate": "1974-05-01",
			"isbn": "9780060512750", "genre": "Science Fiction", "availableCopies": 3,
		}))

		res := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, "books", res.Data()["type"])
		attrs := res.Data()["attributes"].(map[string]interface{})
		assert.Equal(t, "The Dispossessed", attrs["title"])
		assert.Equal(t, float64(1), attrs["authorId"])
		assert.Equal(t, "1974-05-01T00:00:00Z", attrs["publishedDate"])
		assert.NotContains(t, attrs, "deletedAt")
	})

	t.Run("dangling author", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/api/books", map[string]any{
			"title": "T", "authorId": 42, "publishedDate": "2020-01-01",
			"isbn": "1", "genre": "g", "availableCopies": 1,
		}))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "Invalid Reference", res.FirstError()["title"])
		assert.Equal(t, "Invalid authorId", res.FirstError()["detail"])
	})

	t.Run("string copies", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/api/books", map[string]any{
			"title": "T", "authorId": 1, "publishedDate": "2020-01-01",
			"isbn": "1", "genre": "g", "availableCopies": "many",
		}))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "Available Copies must be a non-negative integer", res.FirstError()["detail"])
	})
}

func TestHTTPHandler_List(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	published := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), Include{Author: true}).Return([]Book{
			{ID: 1, Title: "Linked", PublishedDate: published, ISBN: "1", Genre: "g", AvailableCopies: 2,
				Author: &AuthorSummary{ID: 7, Name: "N"}},
			{ID: 2, Title: "Orphan", PublishedDate: published, ISBN: "2", Genre: "g"},
		}, nil)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[
			{"type":"books","id":1,
			 "attributes":{"title":"Linked","publishedDate":"2001-01-01T00:00:00Z","isbn":"1","genre":"g","availableCopies":2},
			 "author":{"data":{"id":7,"attributes":{"name":"N","bio":null}}}},
			{"type":"books","id":2,
			 "attributes":{"title":"Orphan","publishedDate":"2001-01-01T00:00:00Z","isbn":"2","genre":"g","availableCopies":0},
			 "author":{"data":null}}
		]}`, w.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusInternalServerError, res.Code)
		assert.Equal(t, "An unexpected error occurred", res.FirstError()["detail"])
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1), Include{Author: true}).Return(Book{ID: 1, Title: "Test"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/1", nil)
		r.SetPathValue("id", "1")
		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1), gomock.Any()).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/1", nil)
		r.SetPathValue("id", "1")
		handler.Get(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "Book not found", res.FirstError()["detail"])
	})

	t.Run("abc", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/abc", nil)
		r.SetPathValue("id", "abc")
		handler.Get(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "Book ID must be an integer", res.FirstError()["detail"])
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	published := time.Date(1969, 3, 1, 0, 0, 0, 0, time.UTC)
	bio := "Wrote Earthsea"

	t.Run("author under relationships", func(t *testing.T) {
		mockRepo.EXPECT().Exists(gomock.Any(), int64(5)).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).Return(nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(5), Include{Author: true}).Return(Book{
			ID: 5, Title: "The Left Hand of Darkness", PublishedDate: published, ISBN: "9780441478125",
			Genre: "Science Fiction", AvailableCopies: 2,
			Author: &AuthorSummary{ID: 1, Name: "Ursula K. Le Guin", Bio: &bio},
		}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/5", map[string]any{"authorId": 1, "availableCopies": 2})
		r.SetPathValue("id", "5")
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"type":"books","id":5,
			"attributes":{"title":"The Left Hand of Darkness","publishedDate":"1969-03-01T00:00:00Z",
				"isbn":"9780441478125","genre":"Science Fiction","availableCopies":2},
			"relationships":{"author":{"data":{"type":"authors","id":1,
				"attributes":{"name":"Ursula K. Le Guin","bio":"Wrote Earthsea"}}}}}}`, w.Body.String())
	})

	t.Run("unlinked author", func(t *testing.T) {
		mockRepo.EXPECT().Exists(gomock.Any(), int64(6)).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), int64(6), gomock.Any()).Return(nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(6), Include{Author: true}).Return(Book{ID: 6, Title: "Orphan"}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/6", map[string]any{"title": "Orphan"})
		r.SetPathValue("id", "6")
		handler.Update(w, r)

		res := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, res.Code)
		rel := res.Data()["relationships"].(map[string]interface{})["author"].(map[string]interface{})
		assert.Nil(t, rel["data"])
	})

	t.Run("oversized author id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/5", `{"authorId":99999999999999999999}`)
		r.SetPathValue("id", "5")
		handler.Update(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "Author ID must be an integer", res.FirstError()["detail"])
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	mockRepo.EXPECT().SoftDelete(gomock.Any(), int64(4)).Return(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/books/4", nil)
	r.SetPathValue("id", "4")
	handler.Delete(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book successfully deleted"}`, w.Body.String())
}
