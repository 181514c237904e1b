package job

import (
	"context"

	"github.com/honeycarbs/careerhub/internal/domain"
)

// Provider represents an external job data source (Adzuna, a fixture dataset, etc.)
type Provider interface {
	// e.g. "adzuna" or "fixture"
	Name() string

	// Search returns normalized jobs for a query
	Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.Job, error)
}

// SearchQuery is one provider search issued on every refresh
type SearchQuery struct {
	Query    string `yaml:"query" validate:"required"`
	Location string `yaml:"location"`
}
