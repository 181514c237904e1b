package adzuna

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/pkg/adzuna"
)

type stubClient struct {
	jobs   []adzuna.Job
	err    error
	params adzuna.SearchParams
	pages  int
}

func (c *stubClient) SearchJobs(_ context.Context, _ string, params adzuna.SearchParams, maxPages int) ([]adzuna.Job, error) {
	c.params = params
	c.pages = maxPages
	return c.jobs, c.err
}

func TestProviderSearch(t *testing.T) {
	posted := time.Date(2026, 3, 8, 9, 30, 0, 0, time.UTC)
	client := &stubClient{jobs: []adzuna.Job{
		{ID: "4711", Title: "Senior Go Engineer", CompanyName: "Acme Corp", Location: "Portland", Category: "IT Jobs", ContractTime: "full_time", SalaryMin: 120000, SalaryMax: 150000, PostedAt: posted},
		{ID: "4712", Title: "Data Analyst", CompanyName: "Northwind", Category: "Accounting & Finance Jobs", ContractType: "contract", SalaryMin: 50000, SalaryMax: 55000, SalaryPredicted: true},
	}}

	p, err := NewProvider(client)
	require.NoError(t, err)

	jobs, err := p.Search(context.Background(), "engineer", domain.SearchFilters{Location: "Portland"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Portland", client.params.Location)
	assert.Equal(t, maxAgeDays, client.params.MaxDays)
	assert.Equal(t, adzuna.SortDate, client.params.SortBy)
	assert.Equal(t, searchPages, client.pages)

	first := jobs[0]
	assert.Equal(t, uuid.Nil, first.ID)
	assert.Equal(t, "adzuna", first.Source)
	assert.Equal(t, "4711", first.ExternalID)
	assert.Equal(t, domain.CompanyRef{ID: "acme-corp", Name: "Acme Corp"}, first.Company)
	assert.Equal(t, "IT", first.Industry)
	assert.Equal(t, "Full-time", first.Type)
	assert.Equal(t, []string{"Senior Level"}, first.Tags)
	assert.Equal(t, posted, first.PostedAt)
	assert.Equal(t, 150000.0, first.SalaryMax)

	assert.Equal(t, "Accounting & Finance", jobs[1].Industry)
	assert.Equal(t, "Contract", jobs[1].Type)
	assert.Zero(t, jobs[1].SalaryMin)
	assert.Zero(t, jobs[1].SalaryMax)
	assert.Equal(t, []string{"Mid Level"}, jobs[1].Tags)
}

func TestProviderSearch_Error(t *testing.T) {
	p, err := NewProvider(&stubClient{err: errors.New("boom")})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "x", domain.SearchFilters{})
	assert.Error(t, err)
}

func TestLevelTags(t *testing.T) {
	assert.Equal(t, []string{"Lead"}, levelTags("Staff Software Engineer"))
	assert.Equal(t, []string{"Entry Level"}, levelTags("Junior QA Tester"))
	assert.Equal(t, []string{"Senior Level"}, levelTags("Sr. Accountant"))
	assert.Equal(t, []string{"Mid Level"}, levelTags("Backend Developer"))
}

func TestNewProvider_RequiresClient(t *testing.T) {
	_, err := NewProvider(nil)
	assert.Error(t, err)
}
