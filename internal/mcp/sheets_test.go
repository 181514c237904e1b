package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/mcp/tools"
)

type writeCall struct {
	op    string
	rng   string
	rows  [][]any
	sheet string
}

type fakeWriter struct {
	calls []writeCall
	err   error
}

func (w *fakeWriter) Append(_ context.Context, id, rng string, rows [][]any) error {
	w.calls = append(w.calls, writeCall{op: "append", rng: rng, rows: rows, sheet: id})
	return w.err
}

func (w *fakeWriter) Update(_ context.Context, id, rng string, rows [][]any) error {
	w.calls = append(w.calls, writeCall{op: "update", rng: rng, rows: rows, sheet: id})
	return w.err
}

func (w *fakeWriter) Clear(_ context.Context, id, rng string) error {
	w.calls = append(w.calls, writeCall{op: "clear", rng: rng, sheet: id})
	return w.err
}

func (w *fakeWriter) EnsureHeader(_ context.Context, id, tab string, _ []any) error {
	w.calls = append(w.calls, writeCall{op: "header", rng: tab, sheet: id})
	return w.err
}

func fixedExporter(w sheetWriter) *sheetsExporter {
	e := newSheetsExporter(w)
	e.clock = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestSheetsExporter_Append(t *testing.T) {
	w := &fakeWriter{}
	res, err := fixedExporter(w).Export(context.Background(), tools.SheetsExportParams{
		Sheet: tools.SheetTarget{SpreadsheetID: "doc"},
		Rows:  []tools.SheetRow{{Title: "Go Engineer", Company: "Acme", Salary: "$120K - $150K"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.WrittenRows)
	assert.Equal(t, defaultTab, res.Tab)
	require.Len(t, w.calls, 2)
	assert.Equal(t, "header", w.calls[0].op)
	assert.Equal(t, "append", w.calls[1].op)
	assert.Equal(t, "Sheet1!A1", w.calls[1].rng)
	assert.Equal(t, []any{"Go Engineer", "Acme", "", "$120K - $150K", "", "", "", "", ""}, w.calls[1].rows[0])
}

func TestSheetsExporter_UpsertClearsFirst(t *testing.T) {
	w := &fakeWriter{}
	_, err := fixedExporter(w).Export(context.Background(), tools.SheetsExportParams{
		Sheet:    tools.SheetTarget{SpreadsheetID: "doc", Tab: "Pipeline"},
		Rows:     []tools.SheetRow{{Title: "a"}, {Title: "b"}},
		Upsert:   true,
		ClearTab: true,
	})
	require.NoError(t, err)

	ops := make([]string, 0, len(w.calls))
	for _, c := range w.calls {
		ops = append(ops, c.op)
	}
	assert.Equal(t, []string{"clear", "header", "update"}, ops)
	assert.Equal(t, "Pipeline!A2:Z", w.calls[0].rng)
	assert.Equal(t, "Pipeline!A2", w.calls[2].rng)
	assert.Len(t, w.calls[2].rows, 2)
}

func TestSheetsExporter_NoRows(t *testing.T) {
	w := &fakeWriter{}
	res, err := fixedExporter(w).Export(context.Background(), tools.SheetsExportParams{Sheet: tools.SheetTarget{SpreadsheetID: "doc"}})
	require.NoError(t, err)
	assert.Empty(t, w.calls)
	assert.Equal(t, "no rows to export", res.Message)
}

func TestSheetsExporter_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("quota")}
	_, err := fixedExporter(w).Export(context.Background(), tools.SheetsExportParams{
		Sheet: tools.SheetTarget{SpreadsheetID: "doc"},
		Rows:  []tools.SheetRow{{Title: "a"}},
	})
	assert.EqualError(t, err, "quota")
}

func TestTargetRange(t *testing.T) {
	assert.Equal(t, "Jobs!C5", targetRange("Jobs!C5", "Jobs", true))
	assert.Equal(t, "Jobs!A2", targetRange("", "Jobs", true))
	assert.Equal(t, "Jobs!A1", targetRange("", "Jobs", false))
}
