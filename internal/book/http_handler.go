package book

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

// Create handles POST /api/books
// @Summary Create a book
// @Description authorId must reference an existing author
// @Tags books
// @Accept json
// @Produce json
// @Param request body object true "title, authorId, publishedDate, isbn, genre, availableCopies"
// @Success 201 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := validation.Decode(r.Body)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), p)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteCreated(w, httpx.Resource(ResourceType, b.ID, b))
}

// List handles GET /api/books
// @Summary List books
// @Description Every book that has not been deleted, with its author
// @Tags books
// @Produce json
// @Success 200 {object} httpx.Document
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocuments(books))
}

// Get handles GET /api/books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r.PathValue("id"), MsgInvalidID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocument(b))
}

// Update handles PUT /api/books/{id}
// @Summary Update a book
// @Description Only the supplied fields change
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body object true "any of title, authorId, publishedDate, isbn, genre, availableCopies"
// @Success 200 {object} book.UpdateDocument
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/books/{id} [put]
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

	b, err := h.service.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewUpdateDocument(b))
}

// Delete handles DELETE /api/books/{id}
// @Summary Delete a book
// @Description The row is kept and hidden from every other endpoint
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/books/{id} [delete]
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
