package adzuna

import (
	"fmt"
	"net/http"
	"time"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// Sort orders accepted by the search endpoint
const (
	SortDate      = "date"
	SortSalary    = "salary"
	SortRelevance = "relevance"
)

// SearchParams describe a job search request
type SearchParams struct {
	Location  string
	Remote    *bool
	MaxDays   int
	Page      int
	SortBy    string
	Category  string // Adzuna category tag, e.g. "it-jobs"
	SalaryMin int
	FullTime  bool
}

// SearchResult is one page of results. Count is Adzuna's total match count
// across all pages.
type SearchResult struct {
	Jobs  []Job
	Count int
	Page  int
}

// APIError is a non-2xx answer from Adzuna
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("adzuna: API error (%d): %s", e.StatusCode, e.Body)
}

// RateLimited reports whether Adzuna rejected the call for exceeding the quota
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

type jobSearchResponse struct {
	Count   int          `json:"count"`
	Results []jobPosting `json:"results"`
}

type jobPosting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Created      string `json:"created"`
	RedirectURL  string `json:"redirect_url"`
	ContractTime string `json:"contract_time"`
	ContractType string `json:"contract_type"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string   `json:"display_name"`
		Area        []string `json:"area"`
	} `json:"location"`
	Category struct {
		Tag   string `json:"tag"`
		Label string `json:"label"`
	} `json:"category"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
	// "1" when Adzuna estimated the salary from similar ads
	SalaryPredicted string `json:"salary_is_predicted"`
}

// Job represents a normalized Adzuna job posting.
type Job struct {
	ID              string
	Title           string
	CompanyName     string
	Location        string
	Area            []string
	URL             string
	Description     string
	Category        string
	CategoryTag     string
	ContractTime    string
	ContractType    string
	Remote          bool
	PostedAt        time.Time
	SalaryMin       float64
	SalaryMax       float64
	SalaryPredicted bool
	FetchedAt       time.Time
}
