package borrowing

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/platform/validation"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Create handles POST /api/borrowing-records
// @Summary Record a loan
// @Description bookId and borrowerId must reference existing rows
// @Tags borrowing-records
// @Accept json
// @Produce json
// @Param request body object true "bookId, borrowerId, borrowDate, returnDate, status"
// @Success 201 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/borrowing-records [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := validation.Decode(r.Body)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	rec, err := h.service.Create(r.Context(), p)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteCreated(w, httpx.Resource(ResourceType, rec.ID, rec))
}

// List handles GET /api/borrowing-records
// @Summary List borrowing records
// @Description Every record with its book and borrower
// @Tags borrowing-records
// @Produce json
// @Success 200 {object} httpx.Document
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/borrowing-records [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocuments(records))
}

// Get handles GET /api/borrowing-records/{id}
// @Summary Get a borrowing record
// @Tags borrowing-records
// @Produce json
// @Param id path int true "Borrowing record ID"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/borrowing-records/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r.PathValue("id"), MsgInvalidID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocument(rec))
}

// Update handles PUT /api/borrowing-records/{id}
// @Summary Update a borrowing record
// @Description Only the supplied fields change
// @Tags borrowing-records
// @Accept json
// @Produce json
// @Param id path int true "Borrowing record ID"
// @Param request body object true "any of bookId, borrowerId, borrowDate, returnDate, status"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/borrowing-records/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r.PathValue("id"), MsgInvalidID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	p, err := validation.Decode(r.Body)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	rec, err := h.service.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocument(rec))
}

// Delete handles DELETE /api/borrowing-records/{id}
// @Summary Delete a borrowing record
// @Tags borrowing-records
// @Produce json
// @Param id path int true "Borrowing record ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/borrowing-records/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r.PathValue("id"), MsgInvalidID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, MsgDeleted)
}
