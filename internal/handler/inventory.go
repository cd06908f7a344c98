package handler

import (
	"net/http"

	"hearthwick-api/internal/service"
	"hearthwick-api/pkg/response"
)

// InventoryHandler serves the public availability endpoint.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// GetAvailability handles GET /api/inventory
//
// Never errors: on remote trouble the storefront keeps showing the last good
// snapshot (or an empty map, which the fail-open checks treat as everything
// available).
func (h *InventoryHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.inventory.GetAvailability(r.Context()))
}
