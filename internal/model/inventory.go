package model

// Size is a candle jar size. The shop sells exactly two.
type Size string

const (
	Size8oz  Size = "8oz"
	Size16oz Size = "16oz"
)

// Per-size retail prices in dollars.
const (
	Price8oz  = 24.0
	Price16oz = 38.0
)

// Scent is one entry of the fixed product catalog.
type Scent struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// ScentCatalog is the canonical product list. Sheet rows whose name does not
// match an entry here exactly (case-sensitive, trimmed) are ignored, and every
// bulk inventory write re-derives one row per catalog entry in this order.
var ScentCatalog = []Scent{
	{Name: "Lavender Fields", Tag: "floral"},
	{Name: "Vanilla Bean", Tag: "classic"},
	{Name: "Sea Salt & Sage", Tag: "fresh"},
	{Name: "Cedar & Smoke", Tag: "woody"},
	{Name: "Fresh Linen", Tag: "fresh"},
	{Name: "Honey Amber", Tag: "warm"},
	{Name: "Eucalyptus Mint", Tag: "fresh"},
	{Name: "Rose Garden", Tag: "floral"},
	{Name: "Sandalwood", Tag: "woody"},
	{Name: "Citrus Grove", Tag: "bright"},
	{Name: "Pumpkin Spice", Tag: "seasonal"},
	{Name: "Winter Pine", Tag: "seasonal"},
}

// KnownScent reports whether name matches a catalog entry exactly.
func KnownScent(name string) bool {
	_, ok := CatalogScent(name)
	return ok
}

// CatalogScent looks up a catalog entry by exact name.
func CatalogScent(name string) (Scent, bool) {
	for _, s := range ScentCatalog {
		if s.Name == name {
			return s, true
		}
	}
	return Scent{}, false
}

// PriceFor returns the unit price for a size, or false for an unknown size.
func PriceFor(size Size) (float64, bool) {
	switch size {
	case Size8oz:
		return Price8oz, true
	case Size16oz:
		return Price16oz, true
	}
	return 0, false
}

// InventoryRow is the admin view of one catalog scent's stock.
type InventoryRow struct {
	Name    string `json:"name"`
	Tag     string `json:"tag"`
	Qty8oz  int    `json:"qty8oz"`
	Qty16oz int    `json:"qty16oz"`
}

// Availability is the public per-size in-stock flags for one scent,
// derived from quantities (quantity > 0), never stored directly.
type Availability struct {
	Size8oz  bool `json:"8oz"`
	Size16oz bool `json:"16oz"`
}

// AvailabilityMap maps scent name to availability.
type AvailabilityMap map[string]Availability

// The public availability checks fail OPEN: a scent missing from the map is
// treated as orderable. The admin inventory view fails CLOSED instead (a
// missing scent shows as quantity 0). This asymmetry is deliberate: shoppers
// should never be blocked by an unsynced sheet, while the admin table must
// show the sheet as it is.

// IsScentAvailable reports whether any size of the scent can be ordered.
func IsScentAvailable(m AvailabilityMap, name string) bool {
	a, ok := m[name]
	if !ok {
		return true
	}
	return a.Size8oz || a.Size16oz
}

// IsSizeAvailable reports whether the given size of the scent can be ordered.
func IsSizeAvailable(m AvailabilityMap, name string, size Size) bool {
	a, ok := m[name]
	if !ok {
		return true
	}
	switch size {
	case Size8oz:
		return a.Size8oz
	case Size16oz:
		return a.Size16oz
	}
	return false
}
