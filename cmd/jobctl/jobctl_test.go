package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/domain"
)

const dataset = `
- id: a
  title: Senior Go Engineer
  company: Acme
  location: Remote
  salary: "$140K - $160K"
  tags: [Senior, Go]
  postedAt: 3 days ago
- id: b
  title: Junior Designer
  company: Studio
  location: Berlin
  salary: "$50K - $60K"
  tags: [Entry]
  postedAt: 2 hours ago
  featured: true
- id: c
  title: Staff Engineer
  company: Numbers
  location: Remote
  salary: Competitive
  tags: [Staff]
  postedAt: 2 weeks ago
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))
	return path
}

func TestQuery_JSON(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "query", "--dataset", path, "--location", "remote", "--sort", "newest", "-o", "json")
	require.NoError(t, err)

	var res domain.QueryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "a", res.Results[0].ID)
	assert.Equal(t, "c", res.Results[1].ID)
}

func TestQuery_SalaryAndTable(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "query", "--dataset", path, "--location", "", "--sort", "relevant", "--salary", "100,200", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Senior Go Engineer")
	assert.NotContains(t, out, "Junior Designer")
	assert.Contains(t, out, "1 match(es), page 1 of 1")
}

func TestQuery_RejectsBadFlags(t *testing.T) {
	path := writeDataset(t)

	_, err := run(t, "query", "--dataset", path, "--salary", "100", "-o", "json")
	assert.Error(t, err)

	_, err = run(t, "query", "--dataset", path, "--salary", "0,300", "--sort", "oldest", "-o", "json")
	assert.Error(t, err)

	_, err = run(t, "query", "--dataset", filepath.Join(t.TempDir(), "missing.yaml"), "--sort", "relevant")
	assert.Error(t, err)
}

func TestRemoteArguments_OnlyChangedFlags(t *testing.T) {
	f := domain.DefaultSavedFilters()
	f.SearchTerm = "go"
	f.SalaryRange = domain.SalaryRange{MinK: 80, MaxK: 150}

	changed := map[string]bool{"search": true, "salary": true}
	args := remoteArguments(f, "u1", 2, 5, func(name string) bool { return changed[name] })

	assert.Equal(t, "u1", args["userId"])
	assert.Equal(t, 2, args["page"])
	assert.Equal(t, 5, args["pageSize"])
	assert.Equal(t, map[string]any{"searchTerm": "go", "salaryRange": []int{80, 150}}, args["filters"])
}
