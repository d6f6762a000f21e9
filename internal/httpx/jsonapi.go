package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"libraryapi/internal/apperr"
)

// Document is the top-level success envelope.
type Document struct {
	Data any `json:"data"`
}

// ResourceObject is a typed resource whose attributes are the full record.
type ResourceObject struct {
	Type       string `json:"type"`
	ID         int64  `json:"id"`
	Attributes any    `json:"attributes"`
}

// Resource wraps a record as {type, id, attributes}.
func Resource(typ string, id int64, record any) ResourceObject {
	return ResourceObject{Type: typ, ID: id, Attributes: record}
}

// ErrorObject is one entry of the errors array.
type ErrorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ErrorDocument is the top-level failure envelope.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// MessageResponse is the plain body returned by deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("encode response", "error", err)
	}
}

// WriteData answers {"data": data} with the given status.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Document{Data: data})
}

// WriteCreated answers 201 with the created resource.
func WriteCreated(w http.ResponseWriter, resource ResourceObject) {
	WriteData(w, http.StatusCreated, resource)
}

// WriteMessage answers 200 with {"message": msg}.
func WriteMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// WriteError converts err into the errors envelope. Internal failures are
// logged with their cause; the client only sees the generic detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindInternal {
		slog.Default().ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r),
			"error", err,
		)
	}
	writeErrorDocument(w, appErr)
}

func writeErrorDocument(w http.ResponseWriter, e *apperr.Error) {
	writeStatusError(w, e.Status(), e.Title, e.Detail)
}

func writeStatusError(w http.ResponseWriter, status int, title, detail string) {
	writeJSON(w, status, ErrorDocument{Errors: []ErrorObject{{
		Status: strconv.Itoa(status),
		Title:  title,
		Detail: detail,
	}}})
}
