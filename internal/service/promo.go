package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"hearthwick-api/internal/cache"
	"hearthwick-api/internal/model"
	"hearthwick-api/internal/sheets"
	"hearthwick-api/pkg/apierror"
)

// The promo tab carries TWO disjoint windows. Admin CRUD works on the raw
// data area at A2:F; the public validator reads the display area at I10:N.
// The split is part of the sheet's contract. Do not unify the ranges, or
// the admin UI and the storefront validator will silently diverge.
const (
	promoTab         = "Promo Codes"
	promoAdminRange  = "'Promo Codes'!A2:F"
	promoPublicRange = "'Promo Codes'!I10:N"

	// promoAdminRange starts at sheet row 2, so list index i lives at sheet
	// row i+2, which the structural delete addresses as zero-based row i+1.
	promoAdminFirstRow = 2
)

// PromoService validates storefront promo codes through a TTL'd snapshot
// cache and performs the admin CRUD against the sheet.
type PromoService struct {
	sheets    sheets.Store
	snapshots cache.SnapshotStore
	ttl       time.Duration
}

// NewPromoService creates a promo service.
func NewPromoService(store sheets.Store, snapshots cache.SnapshotStore, ttl time.Duration) *PromoService {
	return &PromoService{
		sheets:    store,
		snapshots: snapshots,
		ttl:       ttl,
	}
}

// Validate applies the business rules to a candidate code and a
// server-recomputed cart subtotal, short-circuiting at the first failure.
// The subtotal is trusted as given; callers must never derive it from
// client-sent amounts.
func (s *PromoService) Validate(ctx context.Context, code string, subtotal float64) model.PromoValidation {
	normalized := model.NormalizePromoCode(code)
	if normalized == "" {
		return invalidPromo("Please enter a promo code.")
	}

	promo, ok := s.promoMap(ctx)[normalized]
	if !ok {
		return invalidPromo("Invalid promo code.")
	}
	if !promo.Active {
		return invalidPromo("This promo code is not currently active.")
	}
	if promo.Expired(time.Now()) {
		return invalidPromo("This promo code has expired.")
	}
	if promo.MinPurchase > 0 && subtotal < promo.MinPurchase {
		return invalidPromo(fmt.Sprintf("Minimum purchase of $%s required for this code.", formatDollars(promo.MinPurchase)))
	}

	var discount float64
	switch promo.Type {
	case model.PromoTypeFlat:
		// A flat discount never exceeds the subtotal.
		discount = math.Min(promo.Value, subtotal)
	default:
		discount = math.Round(subtotal * promo.Value / 100)
	}

	return model.PromoValidation{
		Valid:          true,
		Code:           promo.Code,
		Type:           promo.Type,
		Value:          promo.Value,
		DiscountAmount: discount,
	}
}

// ClearCache drops the promo snapshot; the next validation re-reads the sheet.
func (s *PromoService) ClearCache(ctx context.Context) {
	if err := s.snapshots.Clear(ctx, cache.KeyPromos); err != nil {
		log.Printf("[promo] cache clear failed: %v", err)
	}
}

// promoMap is the cache-backed lookup table, keyed by normalized code, built
// from the PUBLIC range. Same stale-if-error shape as the inventory cache
// with its own TTL; a failed refresh with no prior snapshot yields an empty
// map, which makes every lookup fail as "Invalid promo code".
func (s *PromoService) promoMap(ctx context.Context) map[string]model.PromoCode {
	cached, fetchedAt, haveCache := s.loadSnapshot(ctx)
	if haveCache && time.Since(fetchedAt) < s.ttl {
		return cached
	}

	rows, err := s.sheets.ReadRange(ctx, promoPublicRange)
	if err != nil {
		log.Printf("[promo] refresh failed: %v", err)
		if haveCache {
			return cached
		}
		return map[string]model.PromoCode{}
	}

	m := make(map[string]model.PromoCode)
	for _, p := range sheets.ParsePromoRows(rows) {
		m[p.Code] = p
	}
	s.storeSnapshot(ctx, m)
	return m
}

// ListPromoCodes is the admin list, read fresh from the admin range.
// Malformed rows are dropped silently, same as the bulk parser everywhere.
func (s *PromoService) ListPromoCodes(ctx context.Context) ([]model.PromoCode, error) {
	rows, err := s.sheets.ReadRange(ctx, promoAdminRange)
	if err != nil {
		return nil, apierror.Internal(err.Error())
	}
	return sheets.ParsePromoRows(rows), nil
}

// AddPromoCode appends a new code after a duplicate check against a fresh read.
func (s *PromoService) AddPromoCode(ctx context.Context, promo model.PromoCode) error {
	promo.Code = model.NormalizePromoCode(promo.Code)
	if err := validatePromoFields(promo); err != nil {
		return err
	}

	existing, err := s.sheets.ReadRange(ctx, promoAdminRange)
	if err != nil {
		return apierror.Internal(err.Error())
	}
	if _, found := findPromoRow(existing, promo.Code); found {
		return apierror.Conflict("A promo code with this code already exists.")
	}

	if err := s.sheets.AppendRows(ctx, promoAdminRange, [][]interface{}{sheets.FormatPromoRow(promo)}); err != nil {
		return apierror.Internal(err.Error())
	}

	s.ClearCache(ctx)
	return nil
}

// UpdatePromoCode rewrites the row holding code with the new fields.
func (s *PromoService) UpdatePromoCode(ctx context.Context, code string, promo model.PromoCode) error {
	code = model.NormalizePromoCode(code)
	promo.Code = model.NormalizePromoCode(promo.Code)
	if promo.Code == "" {
		promo.Code = code
	}
	if err := validatePromoFields(promo); err != nil {
		return err
	}

	existing, err := s.sheets.ReadRange(ctx, promoAdminRange)
	if err != nil {
		return apierror.Internal(err.Error())
	}
	idx, found := findPromoRow(existing, code)
	if !found {
		return apierror.NotFound("Promo code not found.")
	}
	if promo.Code != code {
		if _, taken := findPromoRow(existing, promo.Code); taken {
			return apierror.Conflict("A promo code with this code already exists.")
		}
	}

	rowRange := fmt.Sprintf("'%s'!A%d:F%d", promoTab, idx+promoAdminFirstRow, idx+promoAdminFirstRow)
	if err := s.sheets.UpdateRange(ctx, rowRange, [][]interface{}{sheets.FormatPromoRow(promo)}); err != nil {
		return apierror.Internal(err.Error())
	}

	s.ClearCache(ctx)
	return nil
}

// DeletePromoCode structurally removes the row holding code. The row index
// is resolved from a fresh read inside this same request: a structural
// delete shifts every later row up, so an index resolved before someone
// else's delete would remove the wrong code.
func (s *PromoService) DeletePromoCode(ctx context.Context, code string) error {
	code = model.NormalizePromoCode(code)
	if code == "" {
		return apierror.BadRequest("Promo code is required.")
	}

	existing, err := s.sheets.ReadRange(ctx, promoAdminRange)
	if err != nil {
		return apierror.Internal(err.Error())
	}
	idx, found := findPromoRow(existing, code)
	if !found {
		return apierror.NotFound("Promo code not found.")
	}

	// List index -> zero-based tab row: +1 for the header row above A2.
	if err := s.sheets.DeleteRow(ctx, promoTab, idx+promoAdminFirstRow-1); err != nil {
		return apierror.Internal(err.Error())
	}

	s.ClearCache(ctx)
	return nil
}

// findPromoRow locates the list index of a normalized code within raw rows.
// Invalid rows still occupy an index: they are positions in the sheet even
// when the codec rejects them.
func findPromoRow(rows [][]interface{}, code string) (int, bool) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if p, ok := sheets.ParsePromoRow(row); ok && p.Code == code {
			return i, true
		}
	}
	return 0, false
}

func validatePromoFields(p model.PromoCode) error {
	if p.Code == "" {
		return apierror.BadRequest("Promo code is required.")
	}
	if p.Type != model.PromoTypePercent && p.Type != model.PromoTypeFlat {
		return apierror.BadRequest(`Promo type must be "percent" or "flat".`)
	}
	if p.Value <= 0 {
		return apierror.BadRequest("Discount value must be greater than zero.")
	}
	if p.Type == model.PromoTypePercent && p.Value > 100 {
		return apierror.BadRequest("Percent discount cannot exceed 100.")
	}
	if p.MinPurchase < 0 {
		return apierror.BadRequest("Minimum purchase cannot be negative.")
	}
	return nil
}

func invalidPromo(msg string) model.PromoValidation {
	return model.PromoValidation{Valid: false, Error: msg}
}

// formatDollars renders an amount without trailing zeros ("20", "7.5").
func formatDollars(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *PromoService) loadSnapshot(ctx context.Context) (map[string]model.PromoCode, time.Time, bool) {
	data, fetchedAt, ok, err := s.snapshots.Load(ctx, cache.KeyPromos)
	if err != nil {
		log.Printf("[promo] snapshot load failed: %v", err)
		return nil, time.Time{}, false
	}
	if !ok {
		return nil, time.Time{}, false
	}

	var m map[string]model.PromoCode
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("[promo] snapshot decode failed: %v", err)
		return nil, time.Time{}, false
	}
	return m, fetchedAt, true
}

func (s *PromoService) storeSnapshot(ctx context.Context, m map[string]model.PromoCode) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[promo] snapshot encode failed: %v", err)
		return
	}
	if err := s.snapshots.Store(ctx, cache.KeyPromos, data, time.Now()); err != nil {
		log.Printf("[promo] snapshot store failed: %v", err)
	}
}
