package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/domain"
)

// FilterService stores per-user filter state
type FilterService interface {
	Save(ctx context.Context, userID string, f domain.SavedFilters) error
	LoadOrDefault(ctx context.Context, userID string) (domain.SavedFilters, error)
}

// FilterParams is the wire form of SavedFilters. Omitted fields keep the
// value they are applied over.
type FilterParams struct {
	SearchTerm       string   `json:"searchTerm,omitempty" jsonschema:"Case-insensitive text matched against title, company and description"`
	Location         string   `json:"location,omitempty" jsonschema:"Case-insensitive location substring"`
	Industry         string   `json:"industry,omitempty" jsonschema:"Exact industry name"`
	DatePosted       string   `json:"datePosted,omitempty" jsonschema:"Recency bucket: any, 24h, 7d, 14d or 30d"`
	ExperienceLevels []string `json:"experienceLevels,omitempty" jsonschema:"Experience levels matched against tags, e.g. senior, entry"`
	JobTypes         []string `json:"jobTypes,omitempty" jsonschema:"Employment types, e.g. Full-time, Contract"`
	SalaryRange      []int    `json:"salaryRange,omitempty" jsonschema:"Salary range [min, max] in thousands; [0, 300] disables it"`
	SortBy           string   `json:"sortBy,omitempty" jsonschema:"relevant (featured first) or newest"`
}

// apply overlays the set fields of p on base
func (p FilterParams) apply(base domain.SavedFilters) (domain.SavedFilters, error) {
	f := base
	if p.SearchTerm != "" {
		f.SearchTerm = p.SearchTerm
	}
	if p.Location != "" {
		f.Location = p.Location
	}
	if p.Industry != "" {
		f.Industry = p.Industry
	}
	if p.DatePosted != "" {
		f.DatePosted = p.DatePosted
	}
	if p.ExperienceLevels != nil {
		f.ExperienceLevels = p.ExperienceLevels
	}
	if p.JobTypes != nil {
		f.JobTypes = p.JobTypes
	}
	if p.SalaryRange != nil {
		if len(p.SalaryRange) != 2 {
			return f, &domain.ValidationError{Msg: fmt.Sprintf("salaryRange wants 2 values, got %d", len(p.SalaryRange))}
		}
		f.SalaryRange = domain.SalaryRange{MinK: p.SalaryRange[0], MaxK: p.SalaryRange[1]}
	}
	if p.SortBy != "" {
		f.SortBy = p.SortBy
	}
	return f, f.Validate()
}

// FiltersSaveParams defines the arguments for the filters_save tool
type FiltersSaveParams struct {
	UserID  string       `json:"userId" jsonschema:"User whose filters are stored"`
	Filters FilterParams `json:"filters" jsonschema:"Filter state to persist; omitted fields take their defaults"`
}

// FiltersLoadParams defines the arguments for the filters_load tool
type FiltersLoadParams struct {
	UserID string `json:"userId" jsonschema:"User whose filters are loaded"`
}

type filtersHandler struct {
	svc FilterService
}

// WithFilters registers filters_save and filters_load
func WithFilters(svc FilterService) Option {
	return func(reg *registry) {
		if svc == nil {
			reg.logger.Warn("filter tools disabled: no filter service")
			return
		}
		h := filtersHandler{svc: svc}
		addTool(reg, &sdkmcp.Tool{
			Name:        "filters_save",
			Description: "Persist a user's job filter state so the next session starts from it",
		}, h.save)
		addTool(reg, &sdkmcp.Tool{
			Name:        "filters_load",
			Description: "Load a user's saved job filters, or the defaults for a new user",
		}, h.load)
	}
}

func (h filtersHandler) save(ctx context.Context, _ *sdkmcp.CallToolRequest, params FiltersSaveParams) (*sdkmcp.CallToolResult, any, error) {
	f, err := params.Filters.apply(domain.DefaultSavedFilters())
	if err != nil {
		return toolError("filters_save", err)
	}
	if err := h.svc.Save(ctx, params.UserID, f); err != nil {
		return toolError("filters_save", err)
	}
	return textResult(fmt.Sprintf("saved filters for %s", params.UserID)), f, nil
}

func (h filtersHandler) load(ctx context.Context, _ *sdkmcp.CallToolRequest, params FiltersLoadParams) (*sdkmcp.CallToolResult, any, error) {
	f, err := h.svc.LoadOrDefault(ctx, params.UserID)
	if err != nil {
		return toolError("filters_load", err)
	}
	return nil, f, nil
}
