package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthwick-api/internal/model"
)

func TestParseInventoryRow(t *testing.T) {
	tests := []struct {
		name  string
		row   []interface{}
		scent string
		qty8  int
		qty16 int
		ok    bool
	}{
		{"full row", []interface{}{"Lavender Fields", "0", "3"}, "Lavender Fields", 0, 3, true},
		{"legacy two columns", []interface{}{"Lavender Fields", "5"}, "Lavender Fields", 5, 5, true},
		{"name only", []interface{}{"Lavender Fields"}, "Lavender Fields", 0, 0, true},
		{"numeric cells", []interface{}{"Sandalwood", float64(2), float64(7)}, "Sandalwood", 2, 7, true},
		{"garbage quantity", []interface{}{"Sandalwood", "lots", "3"}, "Sandalwood", 0, 3, true},
		{"negative quantity", []interface{}{"Sandalwood", "-4", "3"}, "Sandalwood", 0, 3, true},
		{"padded name", []interface{}{"  Sandalwood  ", "1", "1"}, "Sandalwood", 1, 1, true},
		{"blank name", []interface{}{"", "1", "1"}, "", 0, 0, false},
		{"empty row", []interface{}{}, "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, qty8, qty16, ok := ParseInventoryRow(tt.row)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.scent, name)
				assert.Equal(t, tt.qty8, qty8)
				assert.Equal(t, tt.qty16, qty16)
			}
		})
	}
}

func TestParsePromoRowDefaultsAndCoercion(t *testing.T) {
	p, ok := ParsePromoRow([]interface{}{"save20", "", "20", "TRUE", "", ""})
	require.True(t, ok)
	assert.Equal(t, "SAVE20", p.Code, "codes normalize to upper case")
	assert.Equal(t, model.PromoTypePercent, p.Type, "missing type defaults to percent")
	assert.Equal(t, 20.0, p.Value)
	assert.True(t, p.Active)
	assert.Zero(t, p.MinPurchase)
	assert.Nil(t, p.ExpiryDate)
}

func TestParsePromoRowTypeOnlyFlatIsFlat(t *testing.T) {
	for _, typeCell := range []string{"flat", "FLAT", "Flat"} {
		p, ok := ParsePromoRow([]interface{}{"X", typeCell, "5", "TRUE"})
		require.True(t, ok)
		assert.Equal(t, model.PromoTypeFlat, p.Type, "type cell %q", typeCell)
	}
	for _, typeCell := range []string{"percentage", "bogo", "discount"} {
		p, ok := ParsePromoRow([]interface{}{"X", typeCell, "5", "TRUE"})
		require.True(t, ok)
		assert.Equal(t, model.PromoTypePercent, p.Type, "type cell %q", typeCell)
	}
}

func TestParsePromoRowActiveCell(t *testing.T) {
	tests := []struct {
		cell   interface{}
		active bool
	}{
		{"TRUE", true},
		{true, true},
		{false, false},
		{"true", false}, // only the literal sheet string counts
		{"yes", false},
		{"", false},
		{nil, false},
	}
	for _, tt := range tests {
		p, ok := ParsePromoRow([]interface{}{"X", "percent", "5", tt.cell})
		require.True(t, ok)
		assert.Equal(t, tt.active, p.Active, "active cell %v", tt.cell)
	}
}

func TestParsePromoRowRejections(t *testing.T) {
	tests := []struct {
		name string
		row  []interface{}
	}{
		{"empty row", []interface{}{}},
		{"blank code", []interface{}{"", "percent", "10", "TRUE"}},
		{"zero value", []interface{}{"X", "percent", "0", "TRUE"}},
		{"negative value", []interface{}{"X", "percent", "-5", "TRUE"}},
		{"garbage value", []interface{}{"X", "percent", "ten", "TRUE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParsePromoRow(tt.row)
			assert.False(t, ok)
		})
	}
}

func TestParsePromoRowsDropsInvalidSilently(t *testing.T) {
	codes := ParsePromoRows([][]interface{}{
		{"GOOD", "percent", "10", "TRUE"},
		{"", "percent", "10", "TRUE"},
		{"ALSOGOOD", "flat", "5", "FALSE"},
		{"BROKEN", "percent", "0", "TRUE"},
	})

	require.Len(t, codes, 2)
	assert.Equal(t, "GOOD", codes[0].Code)
	assert.Equal(t, "ALSOGOOD", codes[1].Code)
}

func TestParseExpiryEndOfDay(t *testing.T) {
	p, ok := ParsePromoRow([]interface{}{"X", "percent", "10", "TRUE", "", "3/14/2026"})
	require.True(t, ok)
	require.NotNil(t, p.ExpiryDate)

	// The instant sits at the very end of 3/14, so the code works all day.
	assert.Equal(t, 2026, p.ExpiryDate.Year())
	assert.Equal(t, time.March, p.ExpiryDate.Month())
	assert.Equal(t, 14, p.ExpiryDate.Day())
	assert.Equal(t, 23, p.ExpiryDate.Hour())

	midDay := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.Local)
	assert.False(t, p.Expired(midDay))
	nextDay := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)
	assert.True(t, p.Expired(nextDay))
}

func TestParseExpiryGarbageMeansNoExpiry(t *testing.T) {
	for _, cell := range []string{"", "soon", "2026-03-14", "14/3/2026"} {
		p, ok := ParsePromoRow([]interface{}{"X", "percent", "10", "TRUE", "", cell})
		require.True(t, ok)
		assert.Nil(t, p.ExpiryDate, "expiry cell %q", cell)
	}
}

func TestFormatPromoRowRoundTrip(t *testing.T) {
	expiry := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.Local)
	original := model.PromoCode{
		Code:        "HOLIDAY",
		Type:        model.PromoTypeFlat,
		Value:       7.5,
		Active:      true,
		MinPurchase: 50,
		ExpiryDate:  &expiry,
	}

	row := FormatPromoRow(original)
	assert.Equal(t, []interface{}{"HOLIDAY", "flat", "7.5", "TRUE", "50", "12/31/2026"}, row)

	parsed, ok := ParsePromoRow(row)
	require.True(t, ok)
	assert.Equal(t, original.Code, parsed.Code)
	assert.Equal(t, original.Type, parsed.Type)
	assert.Equal(t, original.Value, parsed.Value)
	assert.Equal(t, original.Active, parsed.Active)
	assert.Equal(t, original.MinPurchase, parsed.MinPurchase)
	require.NotNil(t, parsed.ExpiryDate)
	assert.Equal(t, expiry.Day(), parsed.ExpiryDate.Day())
}

func TestFormatInventoryRow(t *testing.T) {
	assert.Equal(t, []interface{}{"Sandalwood", "4", "0"}, FormatInventoryRow("Sandalwood", 4, 0))
}
