package borrowing

import (
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
	return NewHTTPHandler(NewService(mockRepo, known(1), known(2))), mockRepo
}

func TestHTTPHandler_Create(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	borrowed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	bookID, borrowerID := int64(1), int64(2)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(Record{
		ID: 5, BookID: &bookID, BorrowerID: &borrowerID, BorrowDate: borrowed, Status: StatusBorrowed,
		CreatedAt: borrowed, UpdatedAt: borrowed,
	}, nil)

	w := httptest.NewRecorder()
	handler.Create(w, testutil.NewRequest(http.MethodPost, "/api/borrowing-records", map[string]any{
		"bookId": 1, "borrowerId": 2, "borrowDate": "2024-01-10", "status": "Borrowed",
	}))

	res := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, "borrowingRecords", res.Data()["type"])
	attrs := res.Data()["attributes"].(map[string]interface{})
	assert.Equal(t, "Borrowed", attrs["status"])
	assert.Nil(t, attrs["returnDate"])
	assert.Equal(t, float64(1), attrs["bookId"])
}

func TestHTTPHandler_Create_DanglingReference(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.Create(w, testutil.NewRequest(http.MethodPost, "/api/borrowing-records", map[string]any{
		"bookId": 99, "borrowerId": 2, "borrowDate": "2024-01-10", "status": "Borrowed",
	}))

	res := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid Reference", res.FirstError()["title"])
	assert.Equal(t, "Invalid bookId", res.FirstError()["detail"])
}

func TestHTTPHandler_Get(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	borrowed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().GetByID(gomock.Any(), int64(5), Include{Book: true, Borrower: true}).Return(Record{
		ID: 5, BorrowDate: borrowed, Status: StatusBorrowed,
		Book:     &BookSummary{ID: 1, Title: "Dune"},
		Borrower: &BorrowerSummary{ID: 2, Name: "Paul"},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/borrowing-records/5", nil)
	r.SetPathValue("id", "5")
	handler.Get(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"type":"borrowingRecords","id":5,
		"attributes":{"borrowDate":"2024-01-10T00:00:00Z","returnDate":null,"status":"Borrowed"},
		"book":{"data":{"id":1,"type":"books","title":"Dune"}},
		"borrower":{"data":{"id":2,"type":"borrowers","name":"Paul"}}}}`, w.Body.String())
}

func TestHTTPHandler_List_DeletedBookRendersNull(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	mockRepo.EXPECT().List(gomock.Any(), Include{Book: true, Borrower: true}).Return([]Record{
		{ID: 1, Status: StatusReturned, Borrower: &BorrowerSummary{ID: 2, Name: "Paul"}},
	}, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/borrowing-records", nil))

	res := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, res.Code)
	first := res.DataList()[0].(map[string]interface{})
	assert.Nil(t, first["book"].(map[string]interface{})["data"])
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/borrowing-records/5", nil)
		r.SetPathValue("id", "5")
		handler.Delete(w, r)

		assert.JSONEq(t, `{"message":"Borrowing Record successfully deleted"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), int64(6)).Return(ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/borrowing-records/6", nil)
		r.SetPathValue("id", "6")
		handler.Delete(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "Borrowing Record not found", res.FirstError()["detail"])
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/borrowing-records/x", nil)
		r.SetPathValue("id", "x")
		handler.Delete(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, "Borrowing Record ID must be an integer", res.FirstError()["detail"])
	})
}
