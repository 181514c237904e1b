package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/domain"
)

func TestLoadBuiltin(t *testing.T) {
	p, err := Load(Builtin)
	require.NoError(t, err)

	postings := p.Postings()
	require.Len(t, postings, 12)

	featured := 0
	for _, j := range postings {
		if j.Featured {
			featured++
		}
	}
	assert.Equal(t, 3, featured)
	assert.Equal(t, "$90K - $110K", postings[1].Salary)
}

func TestSearchResolvesPostedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p, err := ParseAt([]byte(`
- id: rel
  title: Relative
  postedAt: 3 days ago
  tags: [Mid Level]
- id: abs
  title: Absolute
  postedAt: "2026-03-01T08:00:00Z"
`), now)
	require.NoError(t, err)
	later := now.Add(6 * time.Hour)
	p.clock = func() time.Time { return later }

	jobs, err := p.Search(context.Background(), "ignored", domain.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, now.Add(-72*time.Hour), jobs[0].PostedAt)
	assert.Equal(t, "fixture", jobs[0].Source)
	assert.Equal(t, "rel", jobs[0].ExternalID)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), jobs[1].PostedAt)
	assert.Equal(t, later, jobs[0].FetchedAt)
	assert.Equal(t, "3 days ago", jobs[0].Posting(now).PostedAt)

	again, err := p.Search(context.Background(), "ignored", domain.SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, jobs[0].PostedAt, again[0].PostedAt)
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	content := `[{"id": "a", "title": "Go Engineer", "salary": "$100K - $120K", "featured": true, "tags": ["Senior Level"]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	postings := p.Postings()
	require.Len(t, postings, 1)
	assert.True(t, postings[0].Featured)
	assert.Equal(t, []string{"Senior Level"}, postings[0].Tags)
}

func TestParseRejectsMissingID(t *testing.T) {
	_, err := Parse([]byte(`- title: No ID`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/jobs.yaml")
	assert.Error(t, err)
}
