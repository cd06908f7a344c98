package handler

import (
	"encoding/json"
	"net/http"

	"hearthwick-api/internal/service"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// PromoHandler serves the public promo validation endpoint.
type PromoHandler struct {
	promos *service.PromoService
}

// NewPromoHandler creates a new promo handler.
func NewPromoHandler(promos *service.PromoService) *PromoHandler {
	return &PromoHandler{promos: promos}
}

type validatePromoRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// Validate handles POST /api/promo/validate
//
// A rejected code is a 200 with {valid:false, error:...}, not an HTTP error:
// the storefront renders it inline next to the input. The subtotal here only
// previews the discount; checkout recomputes it server-side.
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	response.OK(w, h.promos.Validate(r.Context(), req.Code, req.Subtotal))
}
