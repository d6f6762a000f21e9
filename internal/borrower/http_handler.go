package borrower

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

// Create handles POST /api/borrowers
// @Summary Enroll a borrower
// @Description membershipDate defaults to the enrollment time
// @Tags borrowers
// @Accept json
// @Produce json
// @Param request body object true "name, email, membershipDate"
// @Success 201 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/borrowers [post]
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

// List handles GET /api/borrowers
// @Summary List borrowers
// @Description Every borrower with their borrowing records
// @Tags borrowers
// @Produce json
// @Success 200 {object} httpx.Document
// @Failure 500 {object} httpx.ErrorDocument
// @Router /api/borrowers [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, NewDocuments(borrowers))
}

// Get handles GET /api/borrowers/{id}
// @Summary Get a borrower
// @Tags borrowers
// @Produce json
// @Param id path int true "Borrower ID"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/borrowers/{id} [get]
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

// Update handles PUT /api/borrowers/{id}
// @Summary Update a borrower
// @Description Only the supplied fields change
// @Tags borrowers
// @Accept json
// @Produce json
// @Param id path int true "Borrower ID"
// @Param request body object true "any of name, email, membershipDate"
// @Success 200 {object} httpx.Document
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/borrowers/{id} [put]
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
	httpx.WriteData(w, http.StatusOK, NewDocument(b))
}

// Delete handles DELETE /api/borrowers/{id}
// @Summary Delete a borrower
// @Description Borrowing records of the borrower are kept with a null borrower
// @Tags borrowers
// @Produce json
// @Param id path int true "Borrower ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorDocument
// @Failure 404 {object} httpx.ErrorDocument
// @Router /api/borrowers/{id} [delete]
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
