package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobID uniquely identifies a stored job
type JobID = uuid.UUID

// CompanyRef references a company
type CompanyRef struct {
	ID   string
	Name string
}

// Job is the normalized job entity kept by repositories.
// PostedAt is absolute; the relative display string is derived by Posting.
type Job struct {
	ID          JobID
	Title       string
	Company     CompanyRef
	Description string
	Location    string
	Industry    string
	Type        string
	Remote      bool
	SalaryMin   float64
	SalaryMax   float64
	SalaryText  string
	Tags        []string
	Featured    bool
	URL         string
	Source      string
	ExternalID  string
	PostedAt    time.Time
	FetchedAt   time.Time
}

// JobPosting is the listing record consumed by the query engine
type JobPosting struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Company     string   `json:"company" yaml:"company"`
	Description string   `json:"description" yaml:"description"`
	Location    string   `json:"location" yaml:"location"`
	Industry    string   `json:"industry" yaml:"industry"`
	Type        string   `json:"type" yaml:"type"`
	Salary      string   `json:"salary" yaml:"salary"`
	Tags        []string `json:"tags" yaml:"tags"`
	PostedAt    string   `json:"postedAt" yaml:"postedAt"`
	Featured    bool     `json:"featured" yaml:"featured"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// Posting projects the job into a JobPosting as seen at now
func (j Job) Posting(now time.Time) JobPosting {
	salary := j.SalaryText
	if salary == "" {
		salary = FormatSalary(j.SalaryMin, j.SalaryMax)
	}

	tags := make([]string, len(j.Tags))
	copy(tags, j.Tags)

	return JobPosting{
		ID:          j.ID.String(),
		Title:       j.Title,
		Company:     j.Company.Name,
		Description: j.Description,
		Location:    j.Location,
		Industry:    j.Industry,
		Type:        j.Type,
		Salary:      salary,
		Tags:        tags,
		PostedAt:    RelativeAge(now.Sub(j.PostedAt)),
		Featured:    j.Featured,
		URL:         j.URL,
	}
}

// Postings projects every job as seen at now, keeping order
func Postings(jobs []Job, now time.Time) []JobPosting {
	out := make([]JobPosting, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Posting(now))
	}
	return out
}

// QueryResult is one page of engine output
type QueryResult struct {
	Results    []JobPosting `json:"results"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

// SearchFilters narrow a provider search
type SearchFilters struct {
	Location string
	Remote   *bool
}
