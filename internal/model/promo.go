package model

import (
	"strings"
	"time"
)

// Promo discount types.
const (
	PromoTypePercent = "percent"
	PromoTypeFlat    = "flat"
)

// PromoCode is one promo code row. Code is stored normalized (upper-case,
// trimmed) and looked up case-insensitively.
type PromoCode struct {
	Code        string     `json:"code"`
	Type        string     `json:"type"` // percent or flat
	Value       float64    `json:"value"`
	Active      bool       `json:"active"`
	MinPurchase float64    `json:"minPurchase"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
}

// NormalizePromoCode trims and upper-cases a candidate code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Expired reports whether the code is past its expiry at the given instant.
// A code with no expiry never expires; the expiry date itself is valid
// through 23:59:59.999 of that calendar day (the codec stores end-of-day).
func (p PromoCode) Expired(now time.Time) bool {
	return p.ExpiryDate != nil && now.After(*p.ExpiryDate)
}

// PromoValidation is the outcome of validating a code against a subtotal.
type PromoValidation struct {
	Valid          bool    `json:"valid"`
	Code           string  `json:"code,omitempty"`
	Type           string  `json:"type,omitempty"`
	Value          float64 `json:"value,omitempty"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
	Error          string  `json:"error,omitempty"`
}
