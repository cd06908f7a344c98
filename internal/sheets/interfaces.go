package sheets

import (
	"context"
	"errors"
	"fmt"
)

// Store defines the operations the services need against the spreadsheet.
// The Google-backed Client implements it; tests substitute an in-memory fake.
type Store interface {
	// ReadRange returns the values of an A1 range. An empty range yields an
	// empty slice, not an error.
	ReadRange(ctx context.Context, rng string) ([][]interface{}, error)

	// UpdateRange overwrites the range with the given rows, RAW value
	// semantics (no formula evaluation or remote type coercion).
	UpdateRange(ctx context.Context, rng string, rows [][]interface{}) error

	// AppendRows appends rows after the last populated row of the range,
	// inserting new rows rather than overwriting.
	AppendRows(ctx context.Context, rng string, rows [][]interface{}) error

	// DeleteRow structurally removes one row of the named tab by zero-based
	// index, shifting every subsequent row up. Callers must not reuse row
	// indices resolved before the delete.
	DeleteRow(ctx context.Context, tab string, rowIndex int) error
}

// ErrNotConfigured means no spreadsheet credentials are present at all.
var ErrNotConfigured = errors.New("Google Sheets is not configured: set SHEETS_SPREADSHEET_ID and either SHEETS_CREDENTIALS_FILE or SHEETS_API_KEY")

// ErrReadOnly means a write was attempted with only an API key configured.
var ErrReadOnly = errors.New("Google Sheets writes require a service account: set SHEETS_CREDENTIALS_FILE")

// ErrForbidden means the remote rejected the call with 403. The fix is almost
// always sharing the spreadsheet with the service account as an editor.
var ErrForbidden = errors.New("Google Sheets returned 403: share the spreadsheet with the service account email and grant it editor access")

// RemoteError is any other non-2xx response, kept verbatim for diagnosability.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Google Sheets request failed: status=%d body=%s", e.Status, e.Body)
}
