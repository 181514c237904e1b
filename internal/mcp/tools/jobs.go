package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/job"
)

// JobQuerier answers filter queries over the current collection
type JobQuerier interface {
	Query(ctx context.Context, spec domain.FilterSpec) (domain.QueryResult, error)
}

// JobRefresher pulls fresh jobs from every provider
type JobRefresher interface {
	Refresh(ctx context.Context) (job.RefreshResult, error)
}

// JobQueryParams defines the arguments for the job_query tool
type JobQueryParams struct {
	UserID   string       `json:"userId,omitempty" jsonschema:"Start from this user's saved filters"`
	Filters  FilterParams `json:"filters,omitempty" jsonschema:"Filters applied over the saved or default state"`
	Page     int          `json:"page,omitempty" jsonschema:"1-based page number; values below 1 become 1"`
	PageSize int          `json:"pageSize,omitempty" jsonschema:"Results per page"`
}

// JobRefreshParams defines the arguments for the job_refresh tool
type JobRefreshParams struct{}

type jobQueryHandler struct {
	jobs     JobQuerier
	saved    FilterService
	pageSize int
}

// WithJobQuery registers job_query. saved may be nil, in which case userId is ignored.
func WithJobQuery(jobs JobQuerier, saved FilterService, pageSize int) Option {
	return func(reg *registry) {
		if jobs == nil {
			reg.logger.Warn("job_query disabled: no job service")
			return
		}
		if pageSize < 1 {
			pageSize = domain.DefaultPageSize
		}
		h := jobQueryHandler{jobs: jobs, saved: saved, pageSize: pageSize}
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_query",
			Description: "Filter, sort and paginate the job listings",
		}, h.handle)
	}
}

func (h jobQueryHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobQueryParams) (*sdkmcp.CallToolResult, any, error) {
	base := domain.DefaultSavedFilters()
	if params.UserID != "" && h.saved != nil {
		var err error
		if base, err = h.saved.LoadOrDefault(ctx, params.UserID); err != nil {
			return toolError("job_query", err)
		}
	}

	f, err := params.Filters.apply(base)
	if err != nil {
		return toolError("job_query", err)
	}

	page := max(params.Page, 1)
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = h.pageSize
	}

	res, err := h.jobs.Query(ctx, f.Spec(page, pageSize))
	if err != nil {
		return toolError("job_query", err)
	}

	return textResult(summarize(res)), res, nil
}

func summarize(res domain.QueryResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d job(s) match; page %d of %d\n", res.Total, res.Page, res.TotalPages)
	for _, j := range res.Results {
		fmt.Fprintf(&sb, "- %s at %s (%s, %s)", j.Title, j.Company, j.Location, j.PostedAt)
		if j.Featured {
			sb.WriteString(" [featured]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

type jobRefreshHandler struct {
	jobs JobRefresher
}

// WithJobRefresh registers job_refresh
func WithJobRefresh(jobs JobRefresher) Option {
	return func(reg *registry) {
		if jobs == nil {
			return
		}
		h := jobRefreshHandler{jobs: jobs}
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_refresh",
			Description: "Fetch jobs from every configured provider, store them and republish the listings",
		}, h.handle)
	}
}

func (h jobRefreshHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, _ JobRefreshParams) (*sdkmcp.CallToolResult, any, error) {
	res, err := h.jobs.Refresh(ctx)
	if err != nil {
		return toolError("job_refresh", err)
	}

	msg := fmt.Sprintf("fetched %d job(s) from %d source(s); %d stored", res.Fetched, res.Sources, res.Stored)
	if len(res.Failed) > 0 {
		msg += "; failed: " + strings.Join(res.Failed, ", ")
	}
	return textResult(msg), res, nil
}
