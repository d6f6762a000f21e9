package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/apperr"
)

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCreated(w, Resource("authors", 7, map[string]any{"id": 7, "name": "Ursula"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"type":"authors","id":7,"attributes":{"id":7,"name":"Ursula"}}}`, w.Body.String())
}

func TestWriteData_List(t *testing.T) {
	w := httptest.NewRecorder()
	WriteData(w, http.StatusOK, []int{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMessage(w, "Book successfully deleted")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book successfully deleted"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "validation",
			err:        apperr.Validation("Name is required"),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Validation Error",
			wantDetail: "Name is required",
		},
		{
			name:       "reference",
			err:        apperr.Reference("Invalid authorId"),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Invalid Reference",
			wantDetail: "Invalid authorId",
		},
		{
			name:       "not found",
			err:        apperr.NotFound("Book not found"),
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
			wantDetail: "Book not found",
		},
		{
			name:       "plain error hides cause",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
			wantDetail: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, httptest.NewRequest(http.MethodGet, "/api/books/1", nil), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var doc ErrorDocument
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
			require.Len(t, doc.Errors, 1)
			assert.Equal(t, tt.wantTitle, doc.Errors[0].Title)
			assert.Equal(t, tt.wantDetail, doc.Errors[0].Detail)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestWriteError_StatusIsString(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), apperr.NotFound("Author not found"))

	assert.JSONEq(t, `{"errors":[{"status":"404","title":"Not Found","detail":"Author not found"}]}`, w.Body.String())
}
