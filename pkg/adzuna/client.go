package adzuna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "us"
	defaultPageSize = 20
	maxPageSize     = 50
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, errors.New("adzuna: app_id and app_key are required")
	}

	c := &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    strings.ToLower(cfg.Country),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		pageSize:   min(cfg.PageSize, maxPageSize),
	}
	if c.country == "" {
		c.country = defaultCountry
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.pageSize <= 0 {
		c.pageSize = defaultPageSize
	}
	return c, nil
}

// Search fetches a single result page
func (c *Client) Search(ctx context.Context, query string, params SearchParams) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, errors.New("adzuna: client is nil")
	}

	page := max(params.Page, 1)
	u, err := c.searchURL(query, page, params)
	if err != nil {
		return SearchResult{}, err
	}

	var payload jobSearchResponse
	if err := c.get(ctx, u, &payload); err != nil {
		return SearchResult{}, err
	}

	fetchedAt := time.Now().UTC()
	res := SearchResult{Count: payload.Count, Page: page, Jobs: make([]Job, 0, len(payload.Results))}
	for _, posting := range payload.Results {
		if posting.ID == "" {
			continue
		}
		job := mapPosting(posting)
		job.FetchedAt = fetchedAt
		res.Jobs = append(res.Jobs, job)
	}
	return res, nil
}

// SearchJobs walks up to maxPages result pages starting at params.Page.
// It stops early on a short page. A rate limit hit after the first page
// ends the walk and keeps what was already fetched.
func (c *Client) SearchJobs(ctx context.Context, query string, params SearchParams, maxPages int) ([]Job, error) {
	maxPages = max(maxPages, 1)
	start := max(params.Page, 1)

	var jobs []Job
	for page := start; page < start+maxPages; page++ {
		params.Page = page
		res, err := c.Search(ctx, query, params)
		if err != nil {
			var apiErr *APIError
			if page > start && errors.As(err, &apiErr) && apiErr.RateLimited() {
				break
			}
			return nil, err
		}
		jobs = append(jobs, res.Jobs...)
		if len(res.Jobs) < c.pageSize || len(jobs) >= res.Count {
			break
		}
	}
	return jobs, nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("adzuna: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("adzuna: decode response: %w", err)
	}
	return nil
}

func (c *Client) searchURL(query string, page int, params SearchParams) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("adzuna: query is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "v1", "api", "jobs", c.country, "search", strconv.Itoa(page))

	values := url.Values{
		"app_id":           {c.appID},
		"app_key":          {c.appKey},
		"what":             {query},
		"results_per_page": {strconv.Itoa(c.pageSize)},
	}
	set := func(key, v string) {
		if v != "" {
			values.Set(key, v)
		}
	}
	set("where", params.Location)
	set("sort_by", params.SortBy)
	set("category", params.Category)
	if params.Remote != nil && *params.Remote {
		values.Set("what_or", "remote")
	}
	if params.MaxDays > 0 {
		values.Set("max_days_old", strconv.Itoa(params.MaxDays))
	}
	if params.SalaryMin > 0 {
		values.Set("salary_min", strconv.Itoa(params.SalaryMin))
	}
	if params.FullTime {
		values.Set("full_time", "1")
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func mapPosting(p jobPosting) Job {
	job := Job{
		ID:              p.ID,
		Title:           strings.TrimSpace(p.Title),
		CompanyName:     p.Company.DisplayName,
		Location:        p.Location.DisplayName,
		Area:            p.Location.Area,
		URL:             p.RedirectURL,
		Description:     p.Description,
		Category:        p.Category.Label,
		CategoryTag:     p.Category.Tag,
		ContractTime:    p.ContractTime,
		ContractType:    p.ContractType,
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		SalaryPredicted: p.SalaryPredicted == "1",
	}

	if ts, err := time.Parse(time.RFC3339, p.Created); err == nil {
		job.PostedAt = ts
	}

	job.Remote = strings.Contains(strings.ToLower(p.Title+" "+p.Location.DisplayName), "remote")
	return job
}
