package handler

import (
	"encoding/json"
	"net/http"

	"hearthwick-api/internal/model"
	"hearthwick-api/internal/service"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// AdminInventoryHandler serves the admin inventory table.
type AdminInventoryHandler struct {
	inventory *service.InventoryService
}

// NewAdminInventoryHandler creates a new admin inventory handler.
func NewAdminInventoryHandler(inventory *service.InventoryService) *AdminInventoryHandler {
	return &AdminInventoryHandler{inventory: inventory}
}

// List handles GET /api/v1/admin/inventory
func (h *AdminInventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.inventory.ListInventory(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, rows)
}

// Update handles PUT /api/v1/admin/inventory
//
// The body is the full set of quantity edits; the service rewrites the whole
// sheet range from the catalog and clears the storefront cache, so shoppers
// see the new stock on their next request instead of after the TTL.
func (h *AdminInventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rows []model.InventoryRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	if err := h.inventory.UpdateInventory(r.Context(), rows); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}
