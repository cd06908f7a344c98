package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hearthwick-api/internal/model"
)

// Row codecs between loosely typed sheet rows and domain records. The values
// API hands cells back as interface{} (usually strings, sometimes float64 or
// bool) and legacy rows may be short, so everything here is defensive and
// coerces garbage to zero values rather than erroring.

// expiryLayout is the sheet's date format, e.g. 3/14/2026.
const expiryLayout = "1/2/2006"

// cellString returns the trimmed string form of a cell.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// cellNumber parses a cell as a non-negative number. Blank, non-numeric and
// negative cells all coerce to 0.
func cellNumber(cell interface{}) float64 {
	var n float64
	switch v := cell.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// cellQuantity parses a cell as a non-negative integer quantity.
func cellQuantity(cell interface{}) int {
	return int(cellNumber(cell))
}

// cellBool parses an Active cell: a boolean-typed cell, or the literal
// string "TRUE". Anything else is false.
func cellBool(cell interface{}) bool {
	switch v := cell.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) == "TRUE"
	}
	return false
}

// ParseInventoryRow decodes [name, qty8oz, qty16oz?]. When the third column
// is absent, qty16oz takes qty8oz's value: legacy single-quantity sheets
// apply the same count to both sizes. Returns false for a blank name.
func ParseInventoryRow(row []interface{}) (name string, qty8, qty16 int, ok bool) {
	if len(row) == 0 {
		return "", 0, 0, false
	}
	name = cellString(row[0])
	if name == "" {
		return "", 0, 0, false
	}
	if len(row) > 1 {
		qty8 = cellQuantity(row[1])
	}
	if len(row) > 2 {
		qty16 = cellQuantity(row[2])
	} else {
		qty16 = qty8
	}
	return name, qty8, qty16, true
}

// ParsePromoRow decodes the 6-column promo layout
// [code, type, value, active, minPurchase, expiryDate].
// Rows with an empty code or non-positive value are rejected (ok=false);
// bulk parsers drop them silently rather than surfacing errors.
func ParsePromoRow(row []interface{}) (model.PromoCode, bool) {
	var p model.PromoCode
	if len(row) == 0 {
		return p, false
	}

	p.Code = model.NormalizePromoCode(cellString(row[0]))
	if p.Code == "" {
		return p, false
	}

	p.Type = model.PromoTypePercent
	if len(row) > 1 && strings.EqualFold(cellString(row[1]), model.PromoTypeFlat) {
		p.Type = model.PromoTypeFlat
	}

	if len(row) > 2 {
		p.Value = cellNumber(row[2])
	}
	if p.Value <= 0 {
		return p, false
	}

	if len(row) > 3 {
		p.Active = cellBool(row[3])
	}
	if len(row) > 4 {
		p.MinPurchase = cellNumber(row[4])
	}
	if len(row) > 5 {
		if exp, ok := parseExpiry(cellString(row[5])); ok {
			p.ExpiryDate = &exp
		}
	}

	return p, true
}

// ParsePromoRows bulk-parses a range into a list, dropping invalid rows.
func ParsePromoRows(rows [][]interface{}) []model.PromoCode {
	out := make([]model.PromoCode, 0, len(rows))
	for _, row := range rows {
		if p, ok := ParsePromoRow(row); ok {
			out = append(out, p)
		}
	}
	return out
}

// parseExpiry parses M/D/YYYY and pushes the instant to the very end of that
// calendar day: a code expiring 3/14 still works all of 3/14.
func parseExpiry(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(expiryLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(24*time.Hour - time.Millisecond), true
}

// FormatPromoRow encodes a promo code back into the 6-column layout.
func FormatPromoRow(p model.PromoCode) []interface{} {
	active := "FALSE"
	if p.Active {
		active = "TRUE"
	}
	expiry := ""
	if p.ExpiryDate != nil {
		expiry = p.ExpiryDate.Format(expiryLayout)
	}
	return []interface{}{
		p.Code,
		p.Type,
		formatAmount(p.Value),
		active,
		formatAmount(p.MinPurchase),
		expiry,
	}
}

// FormatInventoryRow encodes one inventory row as [name, qty8, qty16].
func FormatInventoryRow(name string, qty8, qty16 int) []interface{} {
	return []interface{}{name, strconv.Itoa(qty8), strconv.Itoa(qty16)}
}

// formatAmount renders a dollar amount without trailing zeros ("20", "7.5").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
