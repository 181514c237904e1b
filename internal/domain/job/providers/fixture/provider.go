// Package fixture serves a static job dataset read from YAML or JSON.
package fixture

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/careerhub/internal/domain"
	jobdomain "github.com/honeycarbs/careerhub/internal/domain/job"
	"github.com/honeycarbs/careerhub/internal/domain/jobquery"
)

// Builtin names the embedded sample dataset
const Builtin = "builtin"

//go:embed sample_jobs.yaml
var sampleJobs []byte

// Entry is one dataset record. PostedAt is either RFC 3339 or a relative
// string such as "3 days ago", resolved once against the parse time.
type Entry struct {
	domain.JobPosting `yaml:",inline"`
	Remote            bool `yaml:"remote"`
}

// Provider returns the whole dataset on every search
type Provider struct {
	entries []Entry
	posted  []time.Time
	clock   func() time.Time
}

// Load reads a dataset from path, or the embedded sample for Builtin
func Load(path string) (*Provider, error) {
	data := sampleJobs
	if path != Builtin {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fixture: read %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse decodes a dataset; yaml.v3 also accepts JSON documents
func Parse(data []byte) (*Provider, error) {
	return ParseAt(data, time.Now())
}

// ParseAt decodes a dataset, anchoring relative postedAt values at now
func ParseAt(data []byte, now time.Time) (*Provider, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("fixture: parse dataset: %w", err)
	}

	posted := make([]time.Time, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("fixture: entry %d has no id", i)
		}
		posted[i] = postedAt(e.PostedAt, now)
	}

	return &Provider{entries: entries, posted: posted, clock: time.Now}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "fixture"
}

// Search ignores query and filters; the dataset is small enough to hand over whole.
func (p *Provider) Search(_ context.Context, _ string, _ domain.SearchFilters) ([]domain.Job, error) {
	now := p.clock()

	out := make([]domain.Job, 0, len(p.entries))
	for i, e := range p.entries {
		out = append(out, domain.Job{
			Title:       e.Title,
			Company:     domain.CompanyRef{ID: e.Company, Name: e.Company},
			Description: e.Description,
			Location:    e.Location,
			Industry:    e.Industry,
			Type:        e.Type,
			Remote:      e.Remote,
			SalaryText:  e.Salary,
			Tags:        append([]string(nil), e.Tags...),
			Featured:    e.Featured,
			URL:         e.URL,
			Source:      "fixture",
			ExternalID:  e.ID,
			PostedAt:    p.posted[i],
			FetchedAt:   now,
		})
	}
	return out, nil
}

// Postings returns the dataset exactly as written, for offline queries
func (p *Provider) Postings() []domain.JobPosting {
	out := make([]domain.JobPosting, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.JobPosting)
	}
	return out
}

func postedAt(raw string, now time.Time) time.Time {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	return now.Add(-jobquery.ParseAge(raw))
}

var _ jobdomain.Provider = (*Provider)(nil)
