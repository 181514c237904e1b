package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/careerhub/internal/mcp/tools"
)

const defaultTab = "Sheet1"

var sheetHeader = []any{"Title", "Company", "Location", "Salary", "Posted", "URL", "Status", "Notes", "Updated"}

// sheetWriter is the part of pkg/sheets.Client the exporter uses
type sheetWriter interface {
	Append(ctx context.Context, spreadsheetID, cellRange string, rows [][]any) error
	Update(ctx context.Context, spreadsheetID, cellRange string, rows [][]any) error
	Clear(ctx context.Context, spreadsheetID, cellRange string) error
	EnsureHeader(ctx context.Context, spreadsheetID, tab string, header []any) error
}

// sheetsExporter implements tools.SheetsClient
type sheetsExporter struct {
	writer sheetWriter
	clock  func() time.Time
}

func newSheetsExporter(w sheetWriter) *sheetsExporter {
	return &sheetsExporter{writer: w, clock: time.Now}
}

func (e *sheetsExporter) Export(ctx context.Context, params tools.SheetsExportParams) (tools.SheetsExportResult, error) {
	tab := params.Sheet.Tab
	if tab == "" {
		tab = defaultTab
	}
	result := tools.SheetsExportResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           tab,
	}

	if len(params.Rows) == 0 {
		result.CompletedAt = e.clock().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	id := params.Sheet.SpreadsheetID
	if params.ClearTab {
		if err := e.writer.Clear(ctx, id, tab+"!A2:Z"); err != nil {
			return result, err
		}
	}
	if err := e.writer.EnsureHeader(ctx, id, tab, sheetHeader); err != nil {
		return result, err
	}

	values := rowValues(params.Rows)
	cellRange := targetRange(params.Sheet.Range, tab, params.Upsert)
	var err error
	if params.Upsert {
		err = e.writer.Update(ctx, id, cellRange, values)
	} else {
		err = e.writer.Append(ctx, id, cellRange, values)
	}
	if err != nil {
		return result, err
	}

	result.WrittenRows = len(values)
	result.CompletedAt = e.clock().UTC()
	result.Message = fmt.Sprintf("exported %d row(s) to %s", result.WrittenRows, tab)
	return result, nil
}

// targetRange leaves row 1 to the header
func targetRange(override, tab string, upsert bool) string {
	if override != "" {
		return override
	}
	if upsert {
		return tab + "!A2"
	}
	return tab + "!A1"
}

func rowValues(rows []tools.SheetRow) [][]any {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			r.Title, r.Company, r.Location, r.Salary, r.PostedAt,
			r.URL, r.Status, r.Notes, r.UpdatedAt,
		})
	}
	return values
}
