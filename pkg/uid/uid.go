package uid

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// OrderNumber generates a short human-readable order reference, e.g. HW-3F9A21C4.
func OrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "HW-" + raw[:8]
}
