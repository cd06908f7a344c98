package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"hearthwick-api/internal/sheets"
)

// fakeSheets is an in-memory sheets.Store for service tests. It mimics the
// values API closely enough to matter: trailing all-blank rows vanish on
// read, appends insert rows, and DeleteRow shifts later rows up by one.
type fakeSheets struct {
	mu     sync.Mutex
	ranges map[string][][]interface{}

	reads      int
	readRanges []string
	failReads  bool
	failWrites bool
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{ranges: make(map[string][][]interface{})}
}

func (f *fakeSheets) seed(rng string, rows [][]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges[rng] = cloneRows(rows)
}

func (f *fakeSheets) rows(rng string) [][]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneRows(f.ranges[rng])
}

func (f *fakeSheets) ReadRange(ctx context.Context, rng string) ([][]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, &sheets.RemoteError{Status: 500, Body: "backend error"}
	}
	f.reads++
	f.readRanges = append(f.readRanges, rng)

	rows := cloneRows(f.ranges[rng])
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

// promoRowRange matches the single-row update range the promo service emits,
// e.g. 'Promo Codes'!A3:F3.
var promoRowRange = regexp.MustCompile(`^'Promo Codes'!A(\d+):F\d+$`)

func (f *fakeSheets) UpdateRange(ctx context.Context, rng string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return &sheets.RemoteError{Status: 500, Body: "backend error"}
	}

	if rng == inventoryRange {
		f.ranges[inventoryRange] = cloneRows(rows)
		return nil
	}
	if m := promoRowRange.FindStringSubmatch(rng); m != nil {
		sheetRow, _ := strconv.Atoi(m[1])
		idx := sheetRow - promoAdminFirstRow
		dst := f.ranges[promoAdminRange]
		if idx < 0 || idx >= len(dst) || len(rows) != 1 {
			return fmt.Errorf("update out of range: %s", rng)
		}
		dst[idx] = cloneRow(rows[0])
		return nil
	}
	return fmt.Errorf("unexpected update range %q", rng)
}

func (f *fakeSheets) AppendRows(ctx context.Context, rng string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return &sheets.RemoteError{Status: 500, Body: "backend error"}
	}
	f.ranges[rng] = append(f.ranges[rng], cloneRows(rows)...)
	return nil
}

// DeleteRow interprets rowIndex as the zero-based tab row, where row 0 is the
// header above the admin range, exactly like the real structural delete.
func (f *fakeSheets) DeleteRow(ctx context.Context, tab string, rowIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return &sheets.RemoteError{Status: 500, Body: "backend error"}
	}
	if tab != promoTab {
		return fmt.Errorf("unexpected tab %q", tab)
	}

	idx := rowIndex - (promoAdminFirstRow - 1)
	dst := f.ranges[promoAdminRange]
	if idx < 0 || idx >= len(dst) {
		return fmt.Errorf("delete out of range: row %d", rowIndex)
	}
	f.ranges[promoAdminRange] = append(dst[:idx], dst[idx+1:]...)
	return nil
}

func blankRow(row []interface{}) bool {
	for _, cell := range row {
		if s, ok := cell.(string); !ok || s != "" {
			return false
		}
	}
	return true
}

func cloneRows(rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = cloneRow(row)
	}
	return out
}

func cloneRow(row []interface{}) []interface{} {
	out := make([]interface{}, len(row))
	copy(out, row)
	return out
}
