package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hearthwick-api/internal/model"
	"hearthwick-api/internal/service"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// AdminPromoHandler serves promo code CRUD for the admin panel.
type AdminPromoHandler struct {
	promos *service.PromoService
}

// NewAdminPromoHandler creates a new admin promo handler.
func NewAdminPromoHandler(promos *service.PromoService) *AdminPromoHandler {
	return &AdminPromoHandler{promos: promos}
}

// List handles GET /api/v1/admin/promos
func (h *AdminPromoHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.promos.ListPromoCodes(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, codes)
}

// Create handles POST /api/v1/admin/promos
func (h *AdminPromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var promo model.PromoCode
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	if err := h.promos.AddPromoCode(r.Context(), promo); err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, map[string]string{"status": "created"})
}

// Update handles PUT /api/v1/admin/promos/{code}
func (h *AdminPromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var promo model.PromoCode
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	if err := h.promos.UpdatePromoCode(r.Context(), code, promo); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}

// Delete handles DELETE /api/v1/admin/promos/{code}
func (h *AdminPromoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.promos.DeletePromoCode(r.Context(), chi.URLParam(r, "code")); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
