package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"hearthwick-api/internal/config"
)

// Client talks to the Google Sheets values API for one spreadsheet.
//
// Two credential modes exist. A service account (JSON key file) can read and
// write. A static API key can only read public data and is used for the
// storefront paths when no service account is configured; writes through it
// are rejected locally with ErrReadOnly.
type Client struct {
	spreadsheetID string
	readTimeout   time.Duration
	writeTimeout  time.Duration

	readSvc  *sheetsapi.Service // API key or service account
	writeSvc *sheetsapi.Service // service account only

	mu   sync.Mutex
	gids map[string]int64 // tab name -> sheet GID, cached for the process lifetime
}

// NewClient builds a client from config. A client with no credentials is
// still returned (every call fails with ErrNotConfigured) so the server can
// boot in a partially configured environment.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	c := &Client{
		spreadsheetID: cfg.SpreadsheetID,
		readTimeout:   cfg.ReadTimeout,
		writeTimeout:  cfg.WriteTimeout,
		gids:          make(map[string]int64),
	}

	if cfg.SpreadsheetID == "" {
		return c, nil
	}

	if cfg.CredentialsFile != "" {
		creds, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read sheets credentials: %w", err)
		}
		svc, err := sheetsapi.NewService(ctx,
			option.WithCredentialsJSON(creds),
			option.WithScopes(sheetsapi.SpreadsheetsScope),
		)
		if err != nil {
			return nil, fmt.Errorf("create sheets service: %w", err)
		}
		c.readSvc = svc
		c.writeSvc = svc
		return c, nil
	}

	if cfg.APIKey != "" {
		svc, err := sheetsapi.NewService(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("create sheets service: %w", err)
		}
		c.readSvc = svc
	}

	return c, nil
}

// Configured reports whether at least read access is available.
func (c *Client) Configured() bool {
	return c.readSvc != nil && c.spreadsheetID != ""
}

// Writable reports whether admin writes are possible.
func (c *Client) Writable() bool {
	return c.writeSvc != nil && c.spreadsheetID != ""
}

// ReadRange implements Store.
func (c *Client) ReadRange(ctx context.Context, rng string) ([][]interface{}, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	vr, err := c.readSvc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, mapRemoteErr(err)
	}
	if vr.Values == nil {
		return [][]interface{}{}, nil
	}
	return vr.Values, nil
}

// UpdateRange implements Store.
func (c *Client) UpdateRange(ctx context.Context, rng string, rows [][]interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if !c.Writable() {
		return ErrReadOnly
	}
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	_, err := c.writeSvc.Spreadsheets.Values.
		Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return mapRemoteErr(err)
	}
	return nil
}

// AppendRows implements Store.
func (c *Client) AppendRows(ctx context.Context, rng string, rows [][]interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if !c.Writable() {
		return ErrReadOnly
	}
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	_, err := c.writeSvc.Spreadsheets.Values.
		Append(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return mapRemoteErr(err)
	}
	return nil
}

// SheetGID resolves a tab's human name to its durable numeric identifier.
// Tab identity never changes, so the result is cached for the process.
func (c *Client) SheetGID(ctx context.Context, tab string) (int64, error) {
	if !c.Configured() {
		return 0, ErrNotConfigured
	}

	c.mu.Lock()
	gid, ok := c.gids[tab]
	c.mu.Unlock()
	if ok {
		return gid, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	ss, err := c.readSvc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return 0, mapRemoteErr(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			c.gids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	gid, ok = c.gids[tab]
	if !ok {
		return 0, fmt.Errorf("spreadsheet has no tab named %q", tab)
	}
	return gid, nil
}

// DeleteRow implements Store. This is a structural delete (DeleteDimension),
// not a value clear: every row below rowIndex shifts up by one.
func (c *Client) DeleteRow(ctx context.Context, tab string, rowIndex int) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if !c.Writable() {
		return ErrReadOnly
	}

	gid, err := c.SheetGID(ctx, tab)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex),
					EndIndex:   int64(rowIndex + 1),
				},
			},
		}},
	}
	if _, err := c.writeSvc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return mapRemoteErr(err)
	}
	return nil
}

// mapRemoteErr translates Google API errors into the client's taxonomy.
// Timeouts land in the generic remote case: a call that never answered is
// indistinguishable from one that failed, and neither is retried.
func mapRemoteErr(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 403 {
			log.Printf("[sheets] 403 from remote: %s", gerr.Body)
			return ErrForbidden
		}
		return &RemoteError{Status: gerr.Code, Body: gerr.Body}
	}
	return &RemoteError{Status: 0, Body: err.Error()}
}
