package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client writes cell values through the Sheets v4 API
type Client struct {
	service *sheets.Service
}

// Config selects the service account credentials. Path wins over JSON.
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opt option.ClientOption
	switch {
	case cfg.CredentialsPath != "":
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	case len(cfg.CredentialsJSON) > 0:
		opt = option.WithCredentialsJSON(cfg.CredentialsJSON)
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	service, err := sheets.NewService(ctx, opt, option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Client{service: service}, nil
}

// Append inserts rows after the last row of the table found in cellRange
func (c *Client) Append(ctx context.Context, spreadsheetID, cellRange string, rows [][]any) error {
	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, cellRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", cellRange, err)
	}
	return nil
}

// Update overwrites cells starting at cellRange
func (c *Client) Update(ctx context.Context, spreadsheetID, cellRange string, rows [][]any) error {
	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, cellRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", cellRange, err)
	}
	return nil
}

// Clear empties cellRange, keeping formatting
func (c *Client) Clear(ctx context.Context, spreadsheetID, cellRange string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, cellRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", cellRange, err)
	}
	return nil
}

// EnsureHeader writes header into row 1 of tab when that row is empty
func (c *Client) EnsureHeader(ctx context.Context, spreadsheetID, tab string, header []any) error {
	cellRange := tab + "!1:1"
	got, err := c.service.Spreadsheets.Values.Get(spreadsheetID, cellRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: read header: %w", err)
	}
	if len(got.Values) > 0 && len(got.Values[0]) > 0 {
		return nil
	}
	return c.Update(ctx, spreadsheetID, tab+"!A1", [][]any{header})
}
