package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hearthwick-api/internal/media"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// AdminMediaHandler serves the Cloudinary-backed media library.
type AdminMediaHandler struct {
	library *media.Library
}

// NewAdminMediaHandler creates a new admin media handler.
func NewAdminMediaHandler(library *media.Library) *AdminMediaHandler {
	return &AdminMediaHandler{library: library}
}

// List handles GET /api/v1/admin/media?cursor=...
func (h *AdminMediaHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.library.List(r.Context(), r.URL.Query().Get("cursor"))
	if err != nil {
		response.Error(w, apierror.Internal(err.Error()))
		return
	}
	response.OK(w, page)
}

type uploadMediaRequest struct {
	Data     string `json:"data"` // base64, bare or data: URI
	Filename string `json:"filename"`
}

// Upload handles POST /api/v1/admin/media
func (h *AdminMediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}
	if req.Data == "" {
		response.Error(w, apierror.BadRequest("Image data is required."))
		return
	}

	asset, err := h.library.UploadBase64(r.Context(), req.Data, req.Filename)
	if err != nil {
		response.Error(w, apierror.Internal(err.Error()))
		return
	}

	response.Created(w, asset)
}

// Delete handles DELETE /api/v1/admin/media/*
// The wildcard keeps folder-qualified public IDs ("hearthwick/foo-1a2b3c4d")
// routable.
func (h *AdminMediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "*")
	if id == "" {
		response.Error(w, apierror.BadRequest("Asset id is required."))
		return
	}

	if err := h.library.Delete(r.Context(), id); err != nil {
		response.Error(w, apierror.Internal(err.Error()))
		return
	}

	response.NoContent(w)
}
