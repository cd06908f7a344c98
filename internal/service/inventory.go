package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hearthwick-api/internal/cache"
	"hearthwick-api/internal/model"
	"hearthwick-api/internal/sheets"
	"hearthwick-api/pkg/apierror"
)

// inventoryRange is the stock table: Name | Qty8oz | Qty16oz, data from row 2.
// The Qty16oz column is optional on legacy sheets.
const inventoryRange = "Inventory!A2:C"

// InventoryService serves the public availability map through a TTL'd
// whole-snapshot cache and performs the admin read-modify-write updates.
type InventoryService struct {
	sheets    sheets.Store
	snapshots cache.SnapshotStore
	ttl       time.Duration
}

// NewInventoryService creates an inventory service.
func NewInventoryService(store sheets.Store, snapshots cache.SnapshotStore, ttl time.Duration) *InventoryService {
	return &InventoryService{
		sheets:    store,
		snapshots: snapshots,
		ttl:       ttl,
	}
}

// GetAvailability returns the scent -> per-size availability map.
//
// Within the TTL the cached snapshot is served as-is. Past it, one refresh is
// attempted; a failed refresh serves the previous snapshot unchanged no
// matter how old it is (stale-if-error), and an empty map when no snapshot
// was ever populated. Read failures are never surfaced to the storefront.
func (s *InventoryService) GetAvailability(ctx context.Context) model.AvailabilityMap {
	cached, fetchedAt, haveCache := s.loadSnapshot(ctx)
	if haveCache && time.Since(fetchedAt) < s.ttl {
		return cached
	}

	rows, err := s.sheets.ReadRange(ctx, inventoryRange)
	if err != nil {
		log.Printf("[inventory] refresh failed, serving %s: %v",
			map[bool]string{true: "stale snapshot", false: "empty map"}[haveCache], err)
		if haveCache {
			return cached
		}
		return model.AvailabilityMap{}
	}

	m := buildAvailability(rows)
	s.storeSnapshot(ctx, m)
	return m
}

// ClearCache drops the snapshot immediately. The next GetAvailability is a
// forced synchronous refresh. Admin mutation handlers call this after every
// successful sheet write so readers see new stock within one request.
func (s *InventoryService) ClearCache(ctx context.Context) {
	if err := s.snapshots.Clear(ctx, cache.KeyInventory); err != nil {
		log.Printf("[inventory] cache clear failed: %v", err)
	}
}

// ListInventory is the admin view: the sheet read fresh (never from cache),
// one row per catalog scent in catalog order. Scents missing from the sheet
// show as quantity 0 (the opposite of the public fail-open policy) and
// sheet rows with unknown names are dropped.
func (s *InventoryService) ListInventory(ctx context.Context) ([]model.InventoryRow, error) {
	rows, err := s.sheets.ReadRange(ctx, inventoryRange)
	if err != nil {
		return nil, apierror.Internal(err.Error())
	}

	byName := make(map[string]model.InventoryRow)
	for _, row := range rows {
		name, qty8, qty16, ok := sheets.ParseInventoryRow(row)
		if !ok || !model.KnownScent(name) {
			continue
		}
		byName[name] = model.InventoryRow{Name: name, Qty8oz: qty8, Qty16oz: qty16}
	}

	out := make([]model.InventoryRow, 0, len(model.ScentCatalog))
	for _, scent := range model.ScentCatalog {
		row := byName[scent.Name]
		row.Name = scent.Name
		row.Tag = scent.Tag
		out = append(out, row)
	}
	return out, nil
}

// UpdateInventory is the admin bulk update: a full-range replace, not a
// per-row patch. The written row set is re-derived from the catalog so the
// sheet always ends up with exactly one row per known scent in catalog order;
// scents absent from the payload reset to 0/0 and orphan rows are blanked.
func (s *InventoryService) UpdateInventory(ctx context.Context, updates []model.InventoryRow) error {
	byName := make(map[string]model.InventoryRow, len(updates))
	for _, row := range updates {
		if !model.KnownScent(row.Name) {
			return apierror.BadRequest(fmt.Sprintf("Unknown scent name: %q.", row.Name))
		}
		if row.Qty8oz < 0 {
			row.Qty8oz = 0
		}
		if row.Qty16oz < 0 {
			row.Qty16oz = 0
		}
		byName[row.Name] = row
	}

	// Fresh read for the authoritative row count, so rows beyond the catalog
	// (orphans, stale leftovers) get blanked by the overwrite.
	current, err := s.sheets.ReadRange(ctx, inventoryRange)
	if err != nil {
		return apierror.Internal(err.Error())
	}

	full := make([][]interface{}, 0, len(model.ScentCatalog))
	for _, scent := range model.ScentCatalog {
		row := byName[scent.Name]
		full = append(full, sheets.FormatInventoryRow(scent.Name, row.Qty8oz, row.Qty16oz))
	}
	for len(full) < len(current) {
		full = append(full, []interface{}{"", "", ""})
	}

	if err := s.sheets.UpdateRange(ctx, inventoryRange, full); err != nil {
		return apierror.Internal(err.Error())
	}

	s.ClearCache(ctx)
	return nil
}

// buildAvailability derives the public map from raw sheet rows. Unknown
// names are ignored; known names absent from the sheet stay absent from the
// map, where the fail-open checks treat them as available.
func buildAvailability(rows [][]interface{}) model.AvailabilityMap {
	m := make(model.AvailabilityMap)
	for _, row := range rows {
		name, qty8, qty16, ok := sheets.ParseInventoryRow(row)
		if !ok || !model.KnownScent(name) {
			continue
		}
		m[name] = model.Availability{
			Size8oz:  qty8 > 0,
			Size16oz: qty16 > 0,
		}
	}
	return m
}

func (s *InventoryService) loadSnapshot(ctx context.Context) (model.AvailabilityMap, time.Time, bool) {
	data, fetchedAt, ok, err := s.snapshots.Load(ctx, cache.KeyInventory)
	if err != nil {
		log.Printf("[inventory] snapshot load failed: %v", err)
		return nil, time.Time{}, false
	}
	if !ok {
		return nil, time.Time{}, false
	}

	var m model.AvailabilityMap
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("[inventory] snapshot decode failed: %v", err)
		return nil, time.Time{}, false
	}
	return m, fetchedAt, true
}

func (s *InventoryService) storeSnapshot(ctx context.Context, m model.AvailabilityMap) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[inventory] snapshot encode failed: %v", err)
		return
	}
	if err := s.snapshots.Store(ctx, cache.KeyInventory, data, time.Now()); err != nil {
		log.Printf("[inventory] snapshot store failed: %v", err)
	}
}
