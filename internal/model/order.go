package model

// OrderItem is one line of a storefront order.
type OrderItem struct {
	Scent    string `json:"scent"`
	Size     Size   `json:"size"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the storefront checkout payload. The subtotal is always
// recomputed server-side from the price table; any client-sent totals or
// discount amounts are ignored.
type OrderRequest struct {
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	PromoCode    string      `json:"promoCode,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// OrderConfirmation is returned to the storefront after a successful submission.
type OrderConfirmation struct {
	OrderNumber string  `json:"orderNumber"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
