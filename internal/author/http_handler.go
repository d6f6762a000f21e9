package author

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

// Create handles POST /api/authors
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Param request body object true "name (required), bio"
// @Success 201 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/authors [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := validation.Decode(r.Body)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	a, err := h.service.Create(r.Context(), p)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteCreated(w, httpx.Resource(ResourceType, a.ID, a))
}

// List handles GET /api/authors
// @Summary List authors
// @Description Every author with the titles of their books
// @Tags authors
// @Produce json
// @Success 200 {object} httpx.Document
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/authors [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocuments(authors))
}

// Get handles GET /api/authors/{id}
// @Summary Get an author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/authors/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r.PathValue("id"), MsgInvalidID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocument(a))
}

// Update handles PUT /api/authors/{id}
// @Summary Update an author
// @Description Only the supplied fields change
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param request body object true "name, bio"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/authors/{id} [put]
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

	a, err := h.service.Update(r.Context(), id, p)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocument(a))
}

// Delete handles DELETE /api/authors/{id}
// @Summary Delete an author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/authors/{id} [delete]
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
