package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/domain"
)

// maxExportRows caps the rows a filter export writes
const maxExportRows = 500

// SheetsClient writes rows to a spreadsheet
type SheetsClient interface {
	Export(ctx context.Context, params SheetsExportParams) (SheetsExportResult, error)
}

// JobLookup loads stored jobs by ID
type JobLookup interface {
	Jobs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error)
}

// SheetRow defines a row to write into Sheets
type SheetRow struct {
	Title     string `json:"title,omitempty" jsonschema:"Job title text"`
	Company   string `json:"company,omitempty" jsonschema:"Company name"`
	Location  string `json:"location,omitempty" jsonschema:"Location text"`
	Salary    string `json:"salary,omitempty" jsonschema:"Salary text as listed"`
	PostedAt  string `json:"posted_at,omitempty" jsonschema:"Relative posting age, e.g. 3 days ago"`
	URL       string `json:"url,omitempty" jsonschema:"Application URL"`
	Status    string `json:"status,omitempty" jsonschema:"Pipeline status e.g. saved/applied/interviewing"`
	Notes     string `json:"notes,omitempty" jsonschema:"Free-form notes"`
	UpdatedAt string `json:"updated_at,omitempty" jsonschema:"ISO timestamp captured by client"`
}

// SheetTarget names the destination sheet
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write to"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool.
// Rows come from rows, else from job_ids, else from the filters query.
type SheetsExportParams struct {
	JobIDs   []string      `json:"job_ids,omitempty" jsonschema:"Stored jobs to export"`
	Rows     []SheetRow    `json:"rows,omitempty" jsonschema:"Explicit rows to write"`
	Filters  *FilterParams `json:"filters,omitempty" jsonschema:"Export every listing matching these filters"`
	Upsert   bool          `json:"upsert,omitempty" jsonschema:"Whether to overwrite from row 2 (true) or append (false)"`
	ClearTab bool          `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Sheet    SheetTarget   `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab,omitempty"`
	WrittenRows   int       `json:"written_rows"`
	Mode          string    `json:"mode" jsonschema:"rows, jobs or query"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

type sheetsHandler struct {
	client SheetsClient
	lookup JobLookup
	jobs   JobQuerier
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(client SheetsClient, lookup JobLookup, jobs JobQuerier) Option {
	return func(reg *registry) {
		if client == nil {
			reg.logger.Warn("sheets_export disabled: no sheets client")
			return
		}
		h := sheetsHandler{client: client, lookup: lookup, jobs: jobs}
		addTool(reg, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export job listings to Google Sheets",
		}, h.handle)
	}
}

func (h sheetsHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Sheet.SpreadsheetID == "" {
		return toolError("sheets_export", &domain.ValidationError{Msg: "sheet.spreadsheet_id is required"})
	}

	mode := "rows"
	switch {
	case len(params.Rows) > 0:
	case len(params.JobIDs) > 0:
		mode = "jobs"
		rows, err := h.rowsFromIDs(ctx, params.JobIDs)
		if err != nil {
			return toolError("sheets_export", err)
		}
		params.Rows = rows
	case params.Filters != nil:
		mode = "query"
		rows, err := h.rowsFromQuery(ctx, *params.Filters)
		if err != nil {
			return toolError("sheets_export", err)
		}
		params.Rows = rows
	default:
		return toolError("sheets_export", &domain.ValidationError{Msg: "one of rows, job_ids or filters is required"})
	}

	result, err := h.client.Export(ctx, params)
	if err != nil {
		return toolError("sheets_export", err)
	}
	result.Mode = mode

	return textResult(result.Message), result, nil
}

func (h sheetsHandler) rowsFromIDs(ctx context.Context, raw []string) ([]SheetRow, error) {
	if h.lookup == nil {
		return nil, fmt.Errorf("job lookup not configured")
	}

	ids := make([]domain.JobID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, &domain.ValidationError{Msg: fmt.Sprintf("bad job id %q", s)}
		}
		ids = append(ids, id)
	}

	jobs, err := h.lookup.Jobs(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]SheetRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, postingRow(j.Posting(now), now))
	}
	return rows, nil
}

func (h sheetsHandler) rowsFromQuery(ctx context.Context, p FilterParams) ([]SheetRow, error) {
	if h.jobs == nil {
		return nil, fmt.Errorf("job service not configured")
	}

	f, err := p.apply(domain.DefaultSavedFilters())
	if err != nil {
		return nil, err
	}
	res, err := h.jobs.Query(ctx, f.Spec(1, maxExportRows))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]SheetRow, 0, len(res.Results))
	for _, j := range res.Results {
		rows = append(rows, postingRow(j, now))
	}
	return rows, nil
}

func postingRow(j domain.JobPosting, now time.Time) SheetRow {
	return SheetRow{
		Title:     j.Title,
		Company:   j.Company,
		Location:  j.Location,
		Salary:    j.Salary,
		PostedAt:  j.PostedAt,
		URL:       j.URL,
		Status:    "saved",
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}
}
