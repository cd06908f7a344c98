package handler

import (
	"encoding/json"
	"net/http"

	"hearthwick-api/internal/model"
	"hearthwick-api/internal/service"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// OrderHandler serves order submission and the contact form.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Submit handles POST /api/orders
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	conf, err := h.orders.Submit(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, conf)
}

// Contact handles POST /api/contact
func (h *OrderHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	if err := h.orders.Contact(r.Context(), req); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "sent"})
}
