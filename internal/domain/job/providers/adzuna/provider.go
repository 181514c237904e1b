package adzuna

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/careerhub/internal/domain"
	jobdomain "github.com/honeycarbs/careerhub/internal/domain/job"
	"github.com/honeycarbs/careerhub/pkg/adzuna"
)

const (
	// maxAgeDays bounds searches to what the 30d bucket can still show
	maxAgeDays  = 30
	searchPages = 3
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams, maxPages int) ([]adzuna.Job, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

// Search queries Adzuna and returns normalized jobs
func (p *Provider) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.Job, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("adzuna provider: client is nil")
	}

	respJobs, err := p.client.SearchJobs(ctx, query, adzuna.SearchParams{
		Location: filters.Location,
		Remote:   filters.Remote,
		MaxDays:  maxAgeDays,
		SortBy:   adzuna.SortDate,
	}, searchPages)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0, len(respJobs))
	for _, j := range respJobs {
		// estimated salaries would make the range filter match ads that never stated one
		if j.SalaryPredicted {
			j.SalaryMin, j.SalaryMax = 0, 0
		}
		out = append(out, domain.Job{
			Title: j.Title,
			Company: domain.CompanyRef{
				ID:   slugify(j.CompanyName),
				Name: j.CompanyName,
			},
			Description: j.Description,
			Location:    j.Location,
			Industry:    industry(j.Category),
			Type:        employmentType(j.ContractTime, j.ContractType),
			Remote:      j.Remote,
			SalaryMin:   j.SalaryMin,
			SalaryMax:   j.SalaryMax,
			Tags:        levelTags(j.Title),
			URL:         j.URL,
			Source:      "adzuna",
			ExternalID:  j.ID,
			PostedAt:    j.PostedAt,
			FetchedAt:   j.FetchedAt,
		})
	}

	return out, nil
}

var _ jobdomain.Provider = (*Provider)(nil)

// industry trims Adzuna's " Jobs" suffix: "IT Jobs" -> "IT"
func industry(category string) string {
	return strings.TrimSpace(strings.TrimSuffix(category, " Jobs"))
}

func employmentType(contractTime, contractType string) string {
	if contractType == "contract" {
		return "Contract"
	}
	switch contractTime {
	case "full_time":
		return "Full-time"
	case "part_time":
		return "Part-time"
	}
	return ""
}

// levelKeywords maps title words to experience level tags, checked in order
var levelKeywords = []struct {
	tag      string
	keywords []string
}{
	{tag: "Lead", keywords: []string{"lead", "principal", "staff", "head of"}},
	{tag: "Senior Level", keywords: []string{"senior", "sr.", "sr "}},
	{tag: "Entry Level", keywords: []string{"junior", "jr.", "jr ", "graduate", "entry", "intern"}},
}

func levelTags(title string) []string {
	t := strings.ToLower(title) + " "
	for _, lk := range levelKeywords {
		for _, kw := range lk.keywords {
			if strings.Contains(t, kw) {
				return []string{lk.tag}
			}
		}
	}
	return []string{"Mid Level"}
}

func slugify(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
