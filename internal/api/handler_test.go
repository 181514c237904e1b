package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/api"
	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/filters"
	"github.com/honeycarbs/careerhub/internal/domain/jobquery"
	"github.com/honeycarbs/careerhub/internal/storage/memory"
)

var postings = []domain.JobPosting{
	{ID: "1", Title: "Go Engineer", Company: "Acme", Location: "Remote", Salary: "$120K - $150K", Tags: []string{"Senior"}, PostedAt: "2 days ago"},
	{ID: "2", Title: "Designer", Company: "Studio", Location: "Berlin", Salary: "$60K - $80K", Tags: []string{"Junior"}, PostedAt: "1 hour ago", Featured: true},
	{ID: "3", Title: "Data Engineer", Company: "Numbers", Location: "Remote", Salary: "Competitive", Tags: []string{"Mid-level"}, PostedAt: "3 weeks ago"},
}

type engineQuerier struct {
	last domain.FilterSpec
	err  error
}

func (q *engineQuerier) Query(_ context.Context, spec domain.FilterSpec) (domain.QueryResult, error) {
	q.last = spec
	if q.err != nil {
		return domain.QueryResult{}, q.err
	}
	return jobquery.Query(postings, spec), nil
}

func newServer(t *testing.T, q api.JobQuerier) (*httptest.Server, *filters.Service) {
	t.Helper()
	svc, err := filters.NewService(memory.NewFilterStore(), nil)
	require.NoError(t, err)

	mux := http.NewServeMux()
	api.NewHandler(q, svc, 2, nil).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, svc
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestListJobs_Defaults(t *testing.T) {
	q := &engineQuerier{}
	srv, _ := newServer(t, q)

	var res domain.QueryResult
	status := getJSON(t, srv.URL+"/api/jobs", &res)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "2", res.Results[0].ID, "featured first under relevant sort")
	assert.Equal(t, 1, q.last.Page)
	assert.Equal(t, 2, q.last.PageSize)
}

func TestListJobs_Filters(t *testing.T) {
	q := &engineQuerier{}
	srv, _ := newServer(t, q)

	var res domain.QueryResult
	status := getJSON(t, srv.URL+"/api/jobs?location=remote&sortBy=newest&experienceLevels=senior,%20lead&page=0", &res)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"senior", "lead"}, q.last.ExperienceLevels)
	assert.Equal(t, 1, q.last.Page, "page clamps to 1")
	require.Len(t, res.Results, 1)
	assert.Equal(t, "1", res.Results[0].ID)
}

func TestListJobs_SalaryRange(t *testing.T) {
	q := &engineQuerier{}
	srv, _ := newServer(t, q)

	var res domain.QueryResult
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/jobs?salaryRange=100,200", &res))
	assert.Equal(t, domain.SalaryRange{MinK: 100, MaxK: 200}, q.last.SalaryRange)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "1", res.Results[0].ID)
}

func TestListJobs_BadInput(t *testing.T) {
	srv, _ := newServer(t, &engineQuerier{})

	for _, query := range []string{"salaryRange=100", "salaryRange=a,b", "sortBy=oldest", "page=x", "datePosted=1y"} {
		var body map[string]string
		status := getJSON(t, srv.URL+"/api/jobs?"+query, &body)
		assert.Equal(t, http.StatusBadRequest, status, query)
		assert.NotEmpty(t, body["error"], query)
	}
}

func TestListJobs_UsesSavedFilters(t *testing.T) {
	q := &engineQuerier{}
	srv, svc := newServer(t, q)

	saved := domain.DefaultSavedFilters()
	saved.Location = "Berlin"
	require.NoError(t, svc.Save(context.Background(), "u1", saved))

	var res domain.QueryResult
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/jobs?userId=u1&searchTerm=design", &res))
	assert.Equal(t, "Berlin", q.last.Location)
	assert.Equal(t, "design", q.last.SearchTerm)
	assert.Equal(t, 1, res.Total)
}

func TestListJobs_QueryError(t *testing.T) {
	srv, _ := newServer(t, &engineQuerier{err: errors.New("boom")})

	var body map[string]string
	assert.Equal(t, http.StatusInternalServerError, getJSON(t, srv.URL+"/api/jobs", &body))
	assert.Equal(t, "internal error", body["error"])
}

func TestFiltersLifecycle(t *testing.T) {
	srv, _ := newServer(t, &engineQuerier{})
	url := srv.URL + "/api/filters/u1"

	assert.Equal(t, http.StatusNotFound, getJSON(t, url, nil))

	body := `{"searchTerm":"go","salaryRange":[50,150],"jobTypes":["Contract"]}`
	req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var saved domain.SavedFilters
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "go", saved.SearchTerm)
	assert.Equal(t, domain.SortRelevant, saved.SortBy, "omitted keys keep defaults")
	assert.Equal(t, []string{}, saved.ExperienceLevels)

	var loaded domain.SavedFilters
	require.Equal(t, http.StatusOK, getJSON(t, url, &loaded))
	assert.Equal(t, saved, loaded)

	req, err = http.NewRequest(http.MethodDelete, url, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, getJSON(t, url, nil))
}

func TestPutFilters_Rejects(t *testing.T) {
	srv, _ := newServer(t, &engineQuerier{})

	for _, body := range []string{`{"sortBy":"oldest"}`, `{"salaryRange":[1]}`, `not json`} {
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/filters/u1", strings.NewReader(body))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}
